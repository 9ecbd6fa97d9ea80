package searcher

import (
	"sternhalma/eval"
	"sternhalma/game"
)

// The endgame solver replaces flat-evaluation search once most pieces are
// home: multi-move "make room" maneuvers inside the goal are poorly
// rewarded by any single-ply heuristic. Goal depth is hex distance from the
// board center; deeper cells fill first, because filling shallow cells
// first can physically block the deeper entries behind them.

const shuffleLookahead = 4

// endgameMove applies the priority ladder and reports whether it produced a
// move. It only engages once the player has enough pieces home.
func (s *Searcher) endgameMove(gs *game.GameState, player int, moves []game.Move) (game.Move, bool) {
	goals := gs.GoalCells(player)
	home := 0
	for _, g := range goals {
		if cell, ok := gs.Board.At(g); ok && cell == game.PieceOf(player) {
			home++
		}
	}
	pieceCount := len(gs.PiecePositions(player))
	threshold := s.evaluator.Genome()[eval.GeneEndgameThreshold]
	if pieceCount == 0 || float64(home) < threshold*float64(pieceCount)/10 {
		return game.Move{}, false
	}

	solver := &endgameSolver{
		gs:     gs,
		player: player,
		goals:  goals,
		center: boardCenter(gs),
	}
	return solver.pick(moves)
}

type endgameSolver struct {
	gs     *game.GameState
	player int
	goals  []game.CubeCoord
	center game.CubeCoord
}

// boardCenter is the origin on the standard star and the cell centroid on
// custom layouts, where no distinguished center exists.
func boardCenter(gs *game.GameState) game.CubeCoord {
	if !gs.IsCustomLayout {
		return game.BoardCenter
	}
	var q, r, n int
	for _, k := range gs.Board.SortedKeys() {
		c, err := game.ParseKey(k)
		if err != nil {
			continue
		}
		q += c.Q
		r += c.R
		n++
	}
	if n == 0 {
		return game.BoardCenter
	}
	return game.Coord(q/n, r/n)
}

func (e *endgameSolver) depth(c game.CubeCoord) int {
	return game.Distance(c, e.center)
}

func (e *endgameSolver) inGoal(c game.CubeCoord) bool {
	for _, g := range e.goals {
		if g == c {
			return true
		}
	}
	return false
}

// pick walks the ladder; the first rule that matches wins.
func (e *endgameSolver) pick(moves []game.Move) (game.Move, bool) {
	if len(moves) == 0 {
		return game.Move{}, false
	}
	if m, ok := e.directEntry(moves); ok {
		return m, true
	}
	if m, ok := e.makeRoom(moves); ok {
		return m, true
	}
	if m, ok := e.deepen(moves); ok {
		return m, true
	}
	if m, ok := e.steppingStone(moves); ok {
		return m, true
	}
	if m, ok := e.unlockingShuffle(moves); ok {
		return m, true
	}
	if m, ok := e.shuffleSearch(moves); ok {
		return m, true
	}
	if m, ok := e.advanceOutside(moves); ok {
		return m, true
	}
	if m, ok := e.harmlessMove(moves); ok {
		return m, true
	}
	return e.leastHarmfulVacate(moves), true
}

// Rule 1: enter the goal from outside, deepest target first, longest jump
// chain as tie-break.
func (e *endgameSolver) directEntry(moves []game.Move) (game.Move, bool) {
	var best game.Move
	found := false
	for _, m := range moves {
		if e.inGoal(m.From) || !e.inGoal(m.To) {
			continue
		}
		if !found ||
			e.depth(m.To) > e.depth(best.To) ||
			(e.depth(m.To) == e.depth(best.To) && len(m.JumpPath) > len(best.JumpPath)) {
			best = m
			found = true
		}
	}
	return best, found
}

// Rule 2: relocate a shallow in-goal piece deeper when that frees a cell an
// outside piece could jump into.
func (e *endgameSolver) makeRoom(moves []game.Move) (game.Move, bool) {
	for _, m := range moves {
		if !e.inGoal(m.From) || !e.inGoal(m.To) || e.depth(m.To) <= e.depth(m.From) {
			continue
		}
		after := e.gs.MovePiece(m)
		if e.jumpIntoCellExists(after, m.From) {
			return m, true
		}
	}
	return game.Move{}, false
}

// Rule 3: any in-goal move to a strictly deeper cell, largest gain first.
func (e *endgameSolver) deepen(moves []game.Move) (game.Move, bool) {
	var best game.Move
	bestGain := 0
	for _, m := range moves {
		if !e.inGoal(m.From) || !e.inGoal(m.To) {
			continue
		}
		if gain := e.depth(m.To) - e.depth(m.From); gain > bestGain {
			best = m
			bestGain = gain
		}
	}
	return best, bestGain > 0
}

// Rule 4: place a stepping stone next to an empty goal cell so that an
// outside piece can jump over it straight in.
func (e *endgameSolver) steppingStone(moves []game.Move) (game.Move, bool) {
	for _, m := range moves {
		if e.inGoal(m.From) {
			continue
		}
		after := e.gs.MovePiece(m)
		for _, p := range e.outsidePieces(after) {
			if p == m.To || game.Distance(p, m.To) != 1 {
				continue
			}
			land := game.JumpDestination(p, m.To)
			if e.inGoal(land) && after.Board.IsOpen(land) {
				return m, true
			}
		}
	}
	return game.Move{}, false
}

// Rule 5: an in-goal shuffle that immediately unlocks a direct entry.
func (e *endgameSolver) unlockingShuffle(moves []game.Move) (game.Move, bool) {
	for _, m := range moves {
		if !e.inGoal(m.From) || !e.inGoal(m.To) {
			continue
		}
		if e.directEntryExists(e.gs.MovePiece(m)) {
			return m, true
		}
	}
	return game.Move{}, false
}

// Rule 6: bounded lookahead over in-goal shuffle sequences (opponents held
// still) until one unlocks an entry.
func (e *endgameSolver) shuffleSearch(moves []game.Move) (game.Move, bool) {
	seen := map[game.StateHash]bool{e.gs.Hash(): true}
	for _, m := range moves {
		if !e.inGoal(m.From) || !e.inGoal(m.To) {
			continue
		}
		if e.shuffleUnlocks(e.gs.MovePiece(m), shuffleLookahead-1, seen) {
			return m, true
		}
	}
	return game.Move{}, false
}

func (e *endgameSolver) shuffleUnlocks(gs *game.GameState, depth int, seen map[game.StateHash]bool) bool {
	if e.directEntryExists(gs) {
		return true
	}
	if depth <= 0 {
		return false
	}
	h := gs.Hash()
	if seen[h] {
		return false
	}
	seen[h] = true

	for _, p := range e.insidePieces(gs) {
		for _, m := range gs.PieceMoves(p) {
			if !e.inGoal(m.To) {
				continue
			}
			if e.shuffleUnlocks(gs.MovePiece(m), depth-1, seen) {
				return true
			}
		}
	}
	return false
}

// Rule 7: advance outside pieces toward the deepest unfilled goal cell, by
// forward progress, then raw remaining distance, then jump length.
func (e *endgameSolver) advanceOutside(moves []game.Move) (game.Move, bool) {
	target, ok := e.deepestEmptyGoal(e.gs)
	if !ok {
		return game.Move{}, false
	}
	var best game.Move
	bestProgress, bestRemaining, bestJump := 0, 0, -1
	found := false
	for _, m := range moves {
		if e.inGoal(m.From) || e.inGoal(m.To) {
			continue
		}
		progress := game.Distance(m.From, target) - game.Distance(m.To, target)
		if progress <= 0 {
			continue
		}
		remaining := game.Distance(m.To, target)
		jump := len(m.JumpPath)
		if !found ||
			progress > bestProgress ||
			(progress == bestProgress && remaining < bestRemaining) ||
			(progress == bestProgress && remaining == bestRemaining && jump > bestJump) {
			best, bestProgress, bestRemaining, bestJump = m, progress, remaining, jump
			found = true
		}
	}
	return best, found
}

// Rule 8: any move that neither vacates a goal cell nor retreats within the
// goal.
func (e *endgameSolver) harmlessMove(moves []game.Move) (game.Move, bool) {
	for _, m := range moves {
		if !e.inGoal(m.From) {
			return m, true
		}
		if e.inGoal(m.To) && e.depth(m.To) >= e.depth(m.From) {
			return m, true
		}
	}
	return game.Move{}, false
}

// Rule 9: a goal cell must be vacated. Prefer the option that re-enables an
// entry, then the one making the most forward progress next turn.
func (e *endgameSolver) leastHarmfulVacate(moves []game.Move) game.Move {
	best := moves[0]
	bestScore := -1 << 30
	for _, m := range moves {
		after := e.gs.MovePiece(m)
		score := 0
		if e.directEntryExists(after) {
			score += 1000
		}
		if target, ok := e.deepestEmptyGoal(after); ok {
			score -= game.Distance(m.To, target)
		}
		if score > bestScore {
			best = m
			bestScore = score
		}
	}
	return best
}

func (e *endgameSolver) outsidePieces(gs *game.GameState) []game.CubeCoord {
	var outside []game.CubeCoord
	for _, p := range gs.PiecePositions(e.player) {
		if !e.inGoal(p) {
			outside = append(outside, p)
		}
	}
	return outside
}

func (e *endgameSolver) insidePieces(gs *game.GameState) []game.CubeCoord {
	var inside []game.CubeCoord
	for _, p := range gs.PiecePositions(e.player) {
		if e.inGoal(p) {
			inside = append(inside, p)
		}
	}
	return inside
}

// directEntryExists reports whether any outside piece has a legal move into
// an empty goal cell.
func (e *endgameSolver) directEntryExists(gs *game.GameState) bool {
	for _, p := range e.outsidePieces(gs) {
		for _, m := range gs.PieceMoves(p) {
			if e.inGoal(m.To) {
				return true
			}
		}
	}
	return false
}

// jumpIntoCellExists reports whether any outside piece has a jump landing
// exactly on target.
func (e *endgameSolver) jumpIntoCellExists(gs *game.GameState, target game.CubeCoord) bool {
	for _, p := range e.outsidePieces(gs) {
		for _, m := range gs.PieceMoves(p) {
			if m.IsJump && m.To == target {
				return true
			}
		}
	}
	return false
}

func (e *endgameSolver) deepestEmptyGoal(gs *game.GameState) (game.CubeCoord, bool) {
	var best game.CubeCoord
	bestDepth := -1
	for _, g := range e.goals {
		if !gs.Board.IsOpen(g) {
			continue
		}
		if d := e.depth(g); d > bestDepth {
			best = g
			bestDepth = d
		}
	}
	return best, bestDepth >= 0
}
