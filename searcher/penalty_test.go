package searcher

import (
	"math"
	"testing"

	"sternhalma/eval"
	"sternhalma/game"

	"github.com/stretchr/testify/require"
)

// stateWithPiece builds a two-player standard-board state with a single
// player-1 piece and the standard goal region.
func stateWithPiece(at game.CubeCoord) *game.GameState {
	board := game.StandardBoard()
	board[at.Key()] = game.PieceOf(1)
	return &game.GameState{
		Board:             board,
		PlayerCount:       2,
		ActivePlayers:     []int{1, 2},
		CurrentPlayer:     1,
		TurnNumber:        1,
		StartingPositions: map[int][]game.CubeCoord{1: game.ArmCells(0)},
		GoalPositions:     map[int][]game.CubeCoord{1: game.ArmCells(3)},
	}
}

func TestRegressionPenalty(t *testing.T) {
	s := New(Medium)
	vacate := s.evaluator.Genome()[eval.GeneGoalVacatePenalty]

	t.Run("vacating a goal cell pays the fixed charge", func(t *testing.T) {
		gs := stateWithPiece(game.Coord(-5, 4))
		m := game.Move{From: game.Coord(-5, 4), To: game.Coord(-4, 4)}
		require.GreaterOrEqual(t, s.regressionPenalty(gs, m), vacate)
	})

	t.Run("moving between goal cells is exempt", func(t *testing.T) {
		gs := stateWithPiece(game.Coord(-5, 4))
		m := game.Move{From: game.Coord(-5, 4), To: game.Coord(-6, 4)}
		require.Less(t, s.regressionPenalty(gs, m), vacate)
	})

	t.Run("retreating from the goal centroid is charged per cell", func(t *testing.T) {
		gs := stateWithPiece(game.Coord(0, 0))
		retreat := game.Move{From: game.Coord(0, 0), To: game.Coord(1, 0)}
		advance := game.Move{From: game.Coord(0, 0), To: game.Coord(-1, 0)}
		require.Greater(t, s.regressionPenalty(gs, retreat), 0.0)
		require.Zero(t, s.regressionPenalty(gs, advance))
	})

	t.Run("empty origin is a zero penalty", func(t *testing.T) {
		gs := stateWithPiece(game.Coord(0, 0))
		m := game.Move{From: game.Coord(3, 3), To: game.Coord(2, 3)}
		require.Zero(t, s.regressionPenalty(gs, m))
	})
}

func TestRepetitionPenalty(t *testing.T) {
	s := New(Medium)
	genome := s.evaluator.Genome()
	a, b, c := game.Coord(0, 0), game.Coord(1, 0), game.Coord(0, 1)

	t.Run("second reversal of the same shuttle is vetoed", func(t *testing.T) {
		gs := stateWithPiece(a)
		gs.MoveHistory = []game.Move{
			{From: a, To: b, Player: 1, TurnNumber: 1},
			{From: game.Coord(-5, 4), To: game.Coord(-4, 4), Player: 2, TurnNumber: 1},
			{From: b, To: a, Player: 1, TurnNumber: 2},
			{From: game.Coord(-4, 4), To: game.Coord(-5, 4), Player: 2, TurnNumber: 2},
		}
		penalty := s.repetitionPenalty(gs, game.Move{From: a, To: b})
		require.True(t, math.IsInf(penalty, 1), "A->B, B->A, A->B again must be vetoed")
	})

	t.Run("first reversal pays the fixed penalty", func(t *testing.T) {
		gs := stateWithPiece(b)
		gs.MoveHistory = []game.Move{{From: a, To: b, Player: 1, TurnNumber: 1}}
		penalty := s.repetitionPenalty(gs, game.Move{From: b, To: a})
		require.Equal(t, genome[eval.GeneReversalPenalty], penalty)
	})

	t.Run("a fresh destination costs nothing", func(t *testing.T) {
		gs := stateWithPiece(b)
		gs.MoveHistory = []game.Move{{From: a, To: b, Player: 1, TurnNumber: 1}}
		require.Zero(t, s.repetitionPenalty(gs, game.Move{From: b, To: c}))
	})

	t.Run("history outside the lookback window is forgotten", func(t *testing.T) {
		gs := stateWithPiece(b)
		gs.MoveHistory = []game.Move{{From: a, To: b, Player: 1, TurnNumber: 1}}
		window := gs.PlayerCount * int(genome[eval.GeneLookbackSpan])
		for i := 0; i < window; i++ {
			gs.MoveHistory = append(gs.MoveHistory,
				game.Move{From: game.Coord(-5, 4), To: game.Coord(-4, 4), Player: 2})
		}
		require.Zero(t, s.repetitionPenalty(gs, game.Move{From: b, To: a}))
	})

	t.Run("another player's shuttle is not this piece's history", func(t *testing.T) {
		gs := stateWithPiece(b)
		gs.MoveHistory = []game.Move{{From: a, To: b, Player: 2, TurnNumber: 1}}
		require.Zero(t, s.repetitionPenalty(gs, game.Move{From: b, To: a}))
	})
}

func TestMovePenalty(t *testing.T) {
	s := New(Medium)

	t.Run("veto dominates any finite regression", func(t *testing.T) {
		gs := stateWithPiece(game.Coord(0, 0))
		a, b := game.Coord(0, 0), game.Coord(1, 0)
		gs.MoveHistory = []game.Move{
			{From: a, To: b, Player: 1, TurnNumber: 1},
			{From: b, To: a, Player: 1, TurnNumber: 2},
		}
		require.True(t, math.IsInf(s.movePenalty(gs, game.Move{From: a, To: b}), 1))
	})

	t.Run("penalties add", func(t *testing.T) {
		gs := stateWithPiece(game.Coord(-5, 4))
		m := game.Move{From: game.Coord(-5, 4), To: game.Coord(-4, 4)}
		require.Equal(t, s.regressionPenalty(gs, m)+s.repetitionPenalty(gs, m), s.movePenalty(gs, m))
	})
}
