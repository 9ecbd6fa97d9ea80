package game

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// UnreachableDistance is the sentinel for cells no goal can reach. A large
// finite value keeps downstream arithmetic graceful where an infinity or an
// error would propagate.
const UnreachableDistance = 999

// DistanceOracle produces and caches shortest-path distance maps for
// arbitrary topologies, where raw hex distance misestimates travel around
// walls and concave layouts. One oracle is valid for the lifetime of one
// fixed topology; callers invalidate it when a new game or board begins.
type DistanceOracle struct {
	mu         sync.Mutex
	maxEntries int
	cache      map[string]map[string]int
	order      []string // insertion order, oldest first
}

// NewDistanceOracle bounds the cache at maxEntries maps, evicting oldest
// first.
func NewDistanceOracle(maxEntries int) *DistanceOracle {
	if maxEntries <= 0 {
		maxEntries = 16
	}
	return &DistanceOracle{
		maxEntries: maxEntries,
		cache:      make(map[string]map[string]int),
	}
}

// DistanceMap returns the map from cell key to minimum hex-step distance to
// any of the goal cells, over board adjacency with walls excluded. The map
// is cached by board size and goal set; callers must not mutate it.
func (o *DistanceOracle) DistanceMap(board Board, goals []CubeCoord) map[string]int {
	key := cacheKey(board, goals)

	o.mu.Lock()
	if m, ok := o.cache[key]; ok {
		o.mu.Unlock()
		return m
	}
	o.mu.Unlock()

	m := multiSourceBFS(board, goals)

	o.mu.Lock()
	if _, ok := o.cache[key]; !ok {
		if len(o.order) >= o.maxEntries {
			oldest := o.order[0]
			o.order = o.order[1:]
			delete(o.cache, oldest)
		}
		o.cache[key] = m
		o.order = append(o.order, key)
	}
	o.mu.Unlock()
	return m
}

// Invalidate drops every cached map. Call when the topology changes.
func (o *DistanceOracle) Invalidate() {
	o.mu.Lock()
	o.cache = make(map[string]map[string]int)
	o.order = nil
	o.mu.Unlock()
}

func cacheKey(board Board, goals []CubeCoord) string {
	keys := make([]string, len(goals))
	for i, g := range goals {
		keys[i] = g.Key()
	}
	sort.Strings(keys)
	return strconv.Itoa(len(board)) + "|" + strings.Join(keys, ";")
}

// multiSourceBFS seeds the search simultaneously from every goal cell.
func multiSourceBFS(board Board, goals []CubeCoord) map[string]int {
	dist := make(map[string]int, len(board))
	for k, cell := range board {
		if cell != Wall {
			dist[k] = UnreachableDistance
		}
	}

	var queue []CubeCoord
	for _, g := range goals {
		k := g.Key()
		if d, ok := dist[k]; ok && d == UnreachableDistance {
			dist[k] = 0
			queue = append(queue, g)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[cur.Key()]
		for i := 0; i < 6; i++ {
			n := cur.Neighbor(i)
			nk := n.Key()
			cell, ok := board[nk]
			if !ok || cell == Wall {
				continue
			}
			if dist[nk] > d+1 {
				dist[nk] = d + 1
				queue = append(queue, n)
			}
		}
	}
	return dist
}

func lookupDistance(dist map[string]int, c CubeCoord) int {
	if d, ok := dist[c.Key()]; ok {
		return d
	}
	return UnreachableDistance
}

// PathProgress interpolates a 0-100 progress score between the summed
// starting-cell path cost (0) and all pieces on goals (100).
func PathProgress(dist map[string]int, pieces, starting []CubeCoord) float64 {
	homeTotal := 0
	for _, c := range starting {
		homeTotal += lookupDistance(dist, c)
	}
	if homeTotal == 0 {
		return 100
	}
	total := 0
	for _, p := range pieces {
		total += lookupDistance(dist, p)
	}
	progress := 100 * (1 - float64(total)/float64(homeTotal))
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// WorstPathDistance is the straggler cost: the largest remaining path
// distance among pieces not yet on a goal cell.
func WorstPathDistance(dist map[string]int, pieces []CubeCoord) int {
	worst := 0
	for _, p := range pieces {
		if d := lookupDistance(dist, p); d > worst {
			worst = d
		}
	}
	return worst
}

// AssignmentCost greedily assigns each outside piece to its nearest still
// unoccupied goal cell and sums the hex distances, a cheap lower-bound style
// estimate of the remaining work on custom boards.
func AssignmentCost(board Board, pieces, goals []CubeCoord) int {
	var openGoals []CubeCoord
	occupied := func(c CubeCoord) bool {
		cell, ok := board.At(c)
		return ok && cell.IsPiece()
	}
	for _, g := range goals {
		if !occupied(g) {
			openGoals = append(openGoals, g)
		}
	}

	var outside []CubeCoord
	for _, p := range pieces {
		onGoal := false
		for _, g := range goals {
			if p == g {
				onGoal = true
				break
			}
		}
		if !onGoal {
			outside = append(outside, p)
		}
	}

	taken := make([]bool, len(openGoals))
	cost := 0
	for _, p := range outside {
		best, bestIdx := UnreachableDistance, -1
		for i, g := range openGoals {
			if taken[i] {
				continue
			}
			if d := Distance(p, g); d < best {
				best, bestIdx = d, i
			}
		}
		if bestIdx >= 0 {
			taken[bestIdx] = true
			cost += best
		} else {
			cost += UnreachableDistance
		}
	}
	return cost
}
