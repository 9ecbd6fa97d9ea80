package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCubeCoordInvariant(t *testing.T) {
	t.Run("every star cell satisfies q+r+s=0", func(t *testing.T) {
		for _, c := range StarCells() {
			require.Zero(t, c.Q+c.R+c.S, "cell %s violates the cube invariant", c)
		}
	})

	t.Run("Coord derives the third axis", func(t *testing.T) {
		c := Coord(3, -1)
		require.Equal(t, CubeCoord{Q: 3, R: -1, S: -2}, c)
	})

	t.Run("arithmetic preserves the invariant", func(t *testing.T) {
		a, b := Coord(2, -3), Coord(-1, 4)
		require.Zero(t, a.Add(b).Q+a.Add(b).R+a.Add(b).S)
		require.Zero(t, a.Sub(b).Q+a.Sub(b).R+a.Sub(b).S)
	})
}

func TestDistance(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		require.Zero(t, Distance(Coord(3, -2), Coord(3, -2)))
	})

	t.Run("all six neighbors are at distance one", func(t *testing.T) {
		c := Coord(1, 1)
		for i := 0; i < 6; i++ {
			require.Equal(t, 1, Distance(c, c.Neighbor(i)),
				"direction %d should produce an adjacent cell", i)
		}
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, b := Coord(-4, 2), Coord(3, 1)
		require.Equal(t, Distance(a, b), Distance(b, a))
	})

	t.Run("distance is the max component delta", func(t *testing.T) {
		require.Equal(t, 7, Distance(Coord(0, 0), Coord(3, 4)))
		require.Equal(t, 4, Distance(Coord(0, 0), Coord(4, -2)))
	})
}

func TestRotate(t *testing.T) {
	t.Run("six steps are the identity", func(t *testing.T) {
		for _, c := range []CubeCoord{Coord(5, -4), Coord(0, 0), Coord(-2, 6)} {
			require.Equal(t, c, c.Rotate(6))
		}
	})

	t.Run("rotation preserves distance from origin", func(t *testing.T) {
		c := Coord(5, -2)
		for k := 0; k < 6; k++ {
			require.Equal(t, Distance(Coord(0, 0), c), Distance(Coord(0, 0), c.Rotate(k)))
		}
	})

	t.Run("one step advances the direction cycle", func(t *testing.T) {
		for i, d := range Directions {
			require.Equal(t, Directions[(i+1)%6], d.Rotate(1))
		}
	})

	t.Run("negative counts normalize", func(t *testing.T) {
		c := Coord(3, -1)
		require.Equal(t, c.Rotate(5), c.Rotate(-1))
	})
}

func TestJumpDestination(t *testing.T) {
	from := Coord(0, 0)
	for i := 0; i < 6; i++ {
		over := from.Neighbor(i)
		land := JumpDestination(from, over)
		require.Equal(t, 2, Distance(from, land), "landing should be two cells out")
		require.Equal(t, 1, Distance(over, land), "landing should be adjacent to the jumped piece")
	}
}

func TestCoordKey(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, c := range []CubeCoord{Coord(0, 0), Coord(-8, 4), Coord(5, -4)} {
			parsed, err := ParseKey(c.Key())
			require.NoError(t, err)
			require.Equal(t, c, parsed)
		}
	})

	t.Run("malformed keys error", func(t *testing.T) {
		for _, key := range []string{"", "1", "1,2,3", "a,b"} {
			_, err := ParseKey(key)
			require.Error(t, err, "key %q should be rejected", key)
		}
	})
}
