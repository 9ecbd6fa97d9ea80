// Package searcher picks moves by adversarial lookahead: alpha-beta minimax
// for two players, a max^n approximation for more, with a rule-ladder
// override once the endgame begins.
package searcher

import (
	"fmt"
	"math"
	"sort"

	"sternhalma/eval"
	"sternhalma/game"

	"golang.org/x/exp/rand"
)

// Difficulty selects depth, pruning width, and noise behavior.
type Difficulty string

const (
	Easy    Difficulty = "easy"
	Medium  Difficulty = "medium"
	Hard    Difficulty = "hard"
	Expert  Difficulty = "expert"
	Evolved Difficulty = "evolved"
)

type preset struct {
	depth   int
	moveCap int
	noise   float64
}

var presets = map[Difficulty]preset{
	Easy:    {depth: 1, moveCap: 8, noise: 15},
	Medium:  {depth: 2, moveCap: 10, noise: 0},
	Hard:    {depth: 3, moveCap: 12, noise: 0},
	Expert:  {depth: 4, moveCap: 16, noise: 0},
	Evolved: {depth: 4, moveCap: 16, noise: 0},
}

type Option func(*Searcher)

// WithDepth overrides the preset search depth. The trainer uses this to run
// depth-reduced headless games.
func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

// WithMoveCap overrides the pruning width.
func WithMoveCap(cap int) Option {
	return func(s *Searcher) {
		if cap > 0 {
			s.moveCap = cap
		}
	}
}

// WithEvaluator substitutes the scoring function, e.g. one carrying a
// trained genome or a personality table.
func WithEvaluator(e *eval.Evaluator) Option {
	return func(s *Searcher) {
		if e != nil {
			s.evaluator = e
		}
	}
}

// WithRand seeds the random source used by easy-difficulty sampling.
func WithRand(rng *rand.Rand) Option {
	return func(s *Searcher) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// Searcher is a move recommender for one difficulty setting. It is pure
// with respect to GameState: FindMove never mutates its input.
type Searcher struct {
	difficulty Difficulty
	depth      int
	moveCap    int
	evaluator  *eval.Evaluator
	rng        *rand.Rand
}

// New builds a searcher. An unknown difficulty is a caller contract
// violation.
func New(difficulty Difficulty, options ...Option) *Searcher {
	p, ok := presets[difficulty]
	if !ok {
		panic(fmt.Sprintf("unknown difficulty %q", difficulty))
	}
	s := &Searcher{
		difficulty: difficulty,
		depth:      p.depth,
		moveCap:    p.moveCap,
		rng:        rand.New(rand.NewSource(1)),
	}
	for _, option := range options {
		option(s)
	}
	if s.evaluator == nil {
		if p.noise > 0 {
			s.evaluator = eval.New(eval.WithNoise(s.rng, p.noise))
		} else {
			s.evaluator = eval.New()
		}
	}
	return s
}

type scoredMove struct {
	move  game.Move
	score float64
}

// FindMove recommends a move for the current player, or false when no legal
// move exists. Once the player is deep in the endgame the priority solver
// replaces flat search.
func (s *Searcher) FindMove(gs *game.GameState) (game.Move, bool) {
	player := gs.CurrentPlayer
	moves := gs.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, false
	}

	if m, ok := s.endgameMove(gs, player, moves); ok {
		return m, true
	}

	moves = s.prune(gs, moves)

	scored := make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		penalty := s.movePenalty(gs, m)
		var score float64
		if math.IsInf(penalty, 1) {
			score = math.Inf(-1)
		} else {
			score = s.search(gs.ApplyMove(m), s.depth-1, player, math.Inf(-1), math.Inf(1)) - penalty
		}
		scored = append(scored, scoredMove{move: m, score: score})
	}

	if s.difficulty == Easy {
		return s.sampleTop(scored), true
	}

	best := scored[0]
	for _, sm := range scored[1:] {
		if sm.score > best.score {
			best = sm
		}
	}
	if math.IsInf(best.score, -1) {
		// Every candidate vetoed: moving badly beats not moving at all.
		return scored[0].move, true
	}
	return best.move, true
}

// search is depth-limited minimax with alpha-beta bounds over the searching
// player's own evaluation: maximize on the player's turns, minimize on
// every other turn.
// With three or more active players this is the max^n approximation that
// assumes each opponent acts to minimize the searcher's score. The rest of
// the tuning (genome ranges, penalty constants) is calibrated against this
// exact approximation, so it is kept rather than replaced by a more
// accurate multi-agent algorithm.
func (s *Searcher) search(gs *game.GameState, depth int, player int, alpha, beta float64) float64 {
	if depth <= 0 || gs.IsOver() {
		return s.evaluator.Evaluate(gs, player)
	}
	moves := gs.LegalMoves()
	if len(moves) == 0 {
		// Terminal for search purposes, not an error.
		return s.evaluator.Evaluate(gs, player)
	}
	moves = s.prune(gs, moves)

	if gs.CurrentPlayer == player {
		best := math.Inf(-1)
		for _, m := range moves {
			v := s.search(gs.ApplyMove(m), depth-1, player, alpha, beta)
			if v > best {
				best = v
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, m := range moves {
		v := s.search(gs.ApplyMove(m), depth-1, player, alpha, beta)
		if v < best {
			best = v
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// prune keeps the top moveCap candidates by a cheap one-ply lookahead:
// apply, evaluate for the mover, subtract penalties, sort descending.
func (s *Searcher) prune(gs *game.GameState, moves []game.Move) []game.Move {
	if len(moves) <= s.moveCap {
		return moves
	}
	mover := gs.CurrentPlayer
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		penalty := s.movePenalty(gs, m)
		var score float64
		if math.IsInf(penalty, 1) {
			score = math.Inf(-1)
		} else {
			score = s.evaluator.Evaluate(gs.ApplyMove(m), mover) - penalty
		}
		scored[i] = scoredMove{move: m, score: score}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	kept := make([]game.Move, s.moveCap)
	for i := range kept {
		kept[i] = scored[i].move
	}
	return kept
}

// sampleTop picks uniformly among the best three candidates, skipping
// vetoed moves whenever a non-vetoed alternative exists.
func (s *Searcher) sampleTop(scored []scoredMove) game.Move {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	pool := make([]scoredMove, 0, 3)
	for _, sm := range scored {
		if math.IsInf(sm.score, -1) {
			continue
		}
		pool = append(pool, sm)
		if len(pool) == 3 {
			break
		}
	}
	if len(pool) == 0 {
		return scored[0].move
	}
	return pool[s.rng.Intn(len(pool))].move
}
