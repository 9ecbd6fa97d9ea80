package searcher

import (
	"math"

	"sternhalma/eval"
	"sternhalma/game"
)

// movePenalty is the sum of the regression and repetition penalties for m,
// evaluated relative to the move's own player. +Inf is an absolute veto.
func (s *Searcher) movePenalty(gs *game.GameState, m game.Move) float64 {
	rep := s.repetitionPenalty(gs, m)
	if math.IsInf(rep, 1) {
		return rep
	}
	return s.regressionPenalty(gs, m) + rep
}

// regressionPenalty charges for moving away from the goal centroid, plus a
// large fixed amount for vacating an occupied goal cell for a non-goal
// cell. Moves between two goal cells never pay the fixed charge.
func (s *Searcher) regressionPenalty(gs *game.GameState, m game.Move) float64 {
	cell, ok := gs.Board.At(m.From)
	if !ok || !cell.IsPiece() {
		return 0
	}
	player := cell.PieceOwner()
	genome := s.evaluator.Genome()

	penalty := 0.0
	cq, cr, cs := goalCentroid(gs.GoalCells(player))
	increase := centroidDistance(m.To, cq, cr, cs) - centroidDistance(m.From, cq, cr, cs)
	if increase > 0 {
		penalty += genome[eval.GeneRegressionDistance] * increase
	}

	if gs.IsGoalCell(player, m.From) && !gs.IsGoalCell(player, m.To) {
		penalty += genome[eval.GeneGoalVacatePenalty]
	}
	return penalty
}

func goalCentroid(goals []game.CubeCoord) (float64, float64, float64) {
	if len(goals) == 0 {
		return 0, 0, 0
	}
	var q, r, s float64
	for _, g := range goals {
		q += float64(g.Q)
		r += float64(g.R)
		s += float64(g.S)
	}
	n := float64(len(goals))
	return q / n, r / n, s / n
}

func centroidDistance(c game.CubeCoord, q, r, s float64) float64 {
	dq := math.Abs(float64(c.Q) - q)
	dr := math.Abs(float64(c.R) - r)
	ds := math.Abs(float64(c.S) - s)
	return math.Max(dq, math.Max(dr, ds))
}

// repetitionPenalty traces the moving piece's positions backward through a
// bounded window of recent history. Appending the proposal to the piece's
// recorded moves, two or more exact back-and-forth reversals veto the move
// outright, a single reversal pays a large fixed penalty, and any other
// revisit of a past position pays a smaller one.
func (s *Searcher) repetitionPenalty(gs *game.GameState, m game.Move) float64 {
	cell, ok := gs.Board.At(m.From)
	if !ok || !cell.IsPiece() {
		return 0
	}
	player := cell.PieceOwner()
	genome := s.evaluator.Genome()

	window := gs.PlayerCount * int(genome[eval.GeneLookbackSpan])
	start := len(gs.MoveHistory) - window
	if start < 0 {
		start = 0
	}

	// Reconstruct this piece's moves inside the window, oldest first, by
	// chasing its position backward from m.From.
	pos := m.From
	var pieceMoves []game.Move
	for i := len(gs.MoveHistory) - 1; i >= start; i-- {
		e := gs.MoveHistory[i]
		if e.Player == player && e.To == pos {
			pieceMoves = append([]game.Move{e}, pieceMoves...)
			pos = e.From
		}
	}
	if len(pieceMoves) == 0 {
		return 0
	}

	// Only a destination the piece has already occupied can repeat.
	revisit := false
	for _, e := range pieceMoves {
		if e.From == m.To {
			revisit = true
			break
		}
	}
	if !revisit {
		return 0
	}

	sequence := append(pieceMoves, m)
	reversals := 0
	for i := 0; i+1 < len(sequence); i++ {
		if sequence[i].From == sequence[i+1].To && sequence[i].To == sequence[i+1].From {
			reversals++
		}
	}
	if reversals >= 2 {
		return math.Inf(1)
	}
	if reversals == 1 {
		return genome[eval.GeneReversalPenalty]
	}
	return genome[eval.GeneRevisitPenalty]
}
