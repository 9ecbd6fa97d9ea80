package searcher

import (
	"testing"

	"sternhalma/eval"
	"sternhalma/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNew(t *testing.T) {
	t.Run("presets apply", func(t *testing.T) {
		s := New(Hard)
		require.Equal(t, 3, s.depth)
		require.Equal(t, 12, s.moveCap)
	})

	t.Run("options override presets", func(t *testing.T) {
		s := New(Hard, WithDepth(1), WithMoveCap(4))
		require.Equal(t, 1, s.depth)
		require.Equal(t, 4, s.moveCap)
	})

	t.Run("unknown difficulty panics", func(t *testing.T) {
		require.Panics(t, func() { New("nightmare") })
	})
}

func TestFindMove(t *testing.T) {
	t.Run("recommends a legal move from the opening position", func(t *testing.T) {
		gs := game.NewStandardGameState(2)
		for _, difficulty := range []Difficulty{Easy, Medium} {
			s := New(difficulty, WithDepth(1))
			m, found := s.FindMove(gs)
			require.True(t, found, "difficulty %s", difficulty)
			require.True(t, gs.IsValidMove(m), "difficulty %s move %s", difficulty, m)
		}
	})

	t.Run("no pieces means no move", func(t *testing.T) {
		gs := &game.GameState{
			Board:         game.StandardBoard(),
			PlayerCount:   2,
			ActivePlayers: []int{1, 2},
			CurrentPlayer: 1,
			GoalPositions: map[int][]game.CubeCoord{1: game.ArmCells(3)},
		}
		_, found := New(Medium).FindMove(gs)
		require.False(t, found)
	})

	t.Run("non-easy search is deterministic", func(t *testing.T) {
		gs := game.NewStandardGameState(2)
		a, _ := New(Medium, WithDepth(1)).FindMove(gs)
		b, _ := New(Medium, WithDepth(1)).FindMove(gs)
		require.Equal(t, a, b)
	})

	t.Run("the input state is never mutated", func(t *testing.T) {
		gs := game.NewStandardGameState(2)
		before := gs.Hash()
		New(Medium, WithDepth(1)).FindMove(gs)
		require.Equal(t, before, gs.Hash())
	})

	t.Run("easy sampling respects the seeded source", func(t *testing.T) {
		gs := game.NewStandardGameState(2)
		a, _ := New(Easy, WithRand(rand.New(rand.NewSource(9)))).FindMove(gs)
		b, _ := New(Easy, WithRand(rand.New(rand.NewSource(9)))).FindMove(gs)
		require.Equal(t, a, b)
	})
}

func TestPrune(t *testing.T) {
	gs := game.NewStandardGameState(2)
	s := New(Medium)
	moves := gs.LegalMoves()
	require.Greater(t, len(moves), s.moveCap, "the opening should have enough moves to prune")

	kept := s.prune(gs, moves)
	require.Len(t, kept, s.moveCap)

	t.Run("short lists pass through untouched", func(t *testing.T) {
		short := moves[:3]
		require.Equal(t, short, s.prune(gs, short))
	})
}

func TestSearchPrefersWinningEntry(t *testing.T) {
	// One piece left outside with a direct step into the last goal cell.
	// Whatever the depth, the searcher must finish the game.
	gs := ladderState(
		[]game.CubeCoord{game.Coord(-8, 4), game.Coord(-7, 4), game.Coord(-7, 3)},
		game.Coord(-4, 4),
	)
	gs.StartingPositions[2] = game.ArmCells(0)
	gs.GoalPositions[2] = game.ArmCells(0)

	for _, difficulty := range []Difficulty{Medium, Expert} {
		s := New(difficulty)
		m, found := s.FindMove(gs)
		require.True(t, found)
		require.True(t, gs.IsGoalCell(1, m.To), "difficulty %s should enter the goal", difficulty)
	}
}

func TestEvolvedUsesSuppliedGenome(t *testing.T) {
	genome := eval.DefaultGenome()
	genome[eval.GeneGoalVacatePenalty] = 150
	s := New(Evolved, WithEvaluator(eval.New(eval.WithGenome(genome))))
	require.Equal(t, 150.0, s.evaluator.Genome()[eval.GeneGoalVacatePenalty])
}
