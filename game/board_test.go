package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStarTopology(t *testing.T) {
	t.Run("the star has 121 cells", func(t *testing.T) {
		require.Len(t, StarCells(), StandardCellCount)
		require.Len(t, StandardBoard(), StandardCellCount)
	})

	t.Run("cells partition into a 61-cell hexagon and six 10-cell arms", func(t *testing.T) {
		counts := make(map[int]int)
		for _, c := range StarCells() {
			counts[ClassifyRegion(c)]++
		}
		require.Equal(t, 61, counts[NoRegion])
		for arm := 0; arm < 6; arm++ {
			require.Equal(t, PiecesPerPlayer, counts[arm], "arm %d", arm)
		}
	})

	t.Run("every arm cell classifies as its arm", func(t *testing.T) {
		for arm := 0; arm < 6; arm++ {
			cells := ArmCells(arm)
			require.Len(t, cells, PiecesPerPlayer)
			for _, c := range cells {
				require.Equal(t, arm, ClassifyRegion(c), "cell %s", c)
			}
		}
	})

	t.Run("arm tips sit at distance 8 from the center", func(t *testing.T) {
		for arm := 0; arm < 6; arm++ {
			cells := ArmCells(arm)
			tip := cells[len(cells)-1]
			require.Equal(t, 2*CenterRadius, Distance(BoardCenter, tip))
		}
	})
}

func TestBoardAccess(t *testing.T) {
	board := StandardBoard()

	t.Run("on-board empty cell is open", func(t *testing.T) {
		require.True(t, board.IsOpen(Coord(0, 0)))
	})

	t.Run("off-board cell is neither present nor open", func(t *testing.T) {
		off := Coord(20, 20)
		_, ok := board.At(off)
		require.False(t, ok)
		require.False(t, board.IsOpen(off))
	})

	t.Run("pieces and walls are not open", func(t *testing.T) {
		b := board.Copy()
		b[Coord(0, 0).Key()] = PieceOf(1)
		b[Coord(1, 0).Key()] = Wall
		require.False(t, b.IsOpen(Coord(0, 0)))
		require.False(t, b.IsOpen(Coord(1, 0)))
	})

	t.Run("copy is independent", func(t *testing.T) {
		b := board.Copy()
		b[Coord(0, 0).Key()] = PieceOf(2)
		require.True(t, board.IsOpen(Coord(0, 0)))
	})
}

func TestArmSeats(t *testing.T) {
	t.Run("goal arm is opposite the home arm", func(t *testing.T) {
		for count := 2; count <= 6; count++ {
			for player := 1; player <= count; player++ {
				home := HomeArm(player, count)
				goal := GoalArm(player, count)
				require.Equal(t, (home+3)%6, goal)
			}
		}
	})

	t.Run("two players face each other", func(t *testing.T) {
		require.Equal(t, 0, HomeArm(1, 2))
		require.Equal(t, 3, HomeArm(2, 2))
	})

	t.Run("seat assignments are distinct", func(t *testing.T) {
		for count := 2; count <= 6; count++ {
			seen := make(map[int]bool)
			for player := 1; player <= count; player++ {
				arm := HomeArm(player, count)
				require.False(t, seen[arm], "arm %d assigned twice for %d players", arm, count)
				seen[arm] = true
			}
		}
	})

	t.Run("unsupported player count panics", func(t *testing.T) {
		require.Panics(t, func() { HomeArm(1, 7) })
	})
}
