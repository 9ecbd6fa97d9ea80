package game

import (
	"fmt"
	"strconv"
	"strings"
)

// CubeCoord is a hex-grid position in cube coordinates. The three axes are
// redundant: Q+R+S = 0 holds for every coordinate the engine produces, and S
// is stored rather than derived so that region classification and rotation
// stay symmetric across all three axes.
type CubeCoord struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
	S int `json:"s" yaml:"s"`
}

// Coord constructs a CubeCoord from the two free axes.
func Coord(q, r int) CubeCoord {
	return CubeCoord{Q: q, R: r, S: -q - r}
}

// Directions lists the six unit steps of hex adjacency, in rotation order.
var Directions = [6]CubeCoord{
	{1, -1, 0}, {1, 0, -1}, {0, 1, -1},
	{-1, 1, 0}, {-1, 0, 1}, {0, -1, 1},
}

func (c CubeCoord) Add(o CubeCoord) CubeCoord {
	return CubeCoord{c.Q + o.Q, c.R + o.R, c.S + o.S}
}

func (c CubeCoord) Sub(o CubeCoord) CubeCoord {
	return CubeCoord{c.Q - o.Q, c.R - o.R, c.S - o.S}
}

// Neighbor returns the adjacent coordinate in direction i (0..5).
func (c CubeCoord) Neighbor(i int) CubeCoord {
	return c.Add(Directions[i])
}

// Distance is the hex-step distance: the maximum absolute component delta.
func Distance(a, b CubeCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S - b.S)
	return max(dq, max(dr, ds))
}

// Rotate applies k sixths of a full turn around the origin. One step is the
// cube identity (q,r,s) -> (-r,-s,-q).
func (c CubeCoord) Rotate(k int) CubeCoord {
	k = ((k % 6) + 6) % 6
	for i := 0; i < k; i++ {
		c = CubeCoord{Q: -c.R, R: -c.S, S: -c.Q}
	}
	return c
}

// JumpDestination reflects over through from: the landing cell of a single
// jump. It is always at distance 2 from from and distance 1 from over.
func JumpDestination(from, over CubeCoord) CubeCoord {
	return over.Add(over.Sub(from))
}

// Key renders the canonical board-map key. S is implied by Q and R.
func (c CubeCoord) Key() string {
	return strconv.Itoa(c.Q) + "," + strconv.Itoa(c.R)
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (CubeCoord, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 2 {
		return CubeCoord{}, fmt.Errorf("malformed coordinate key %q", key)
	}
	q, err := strconv.Atoi(parts[0])
	if err != nil {
		return CubeCoord{}, fmt.Errorf("malformed coordinate key %q: %w", key, err)
	}
	r, err := strconv.Atoi(parts[1])
	if err != nil {
		return CubeCoord{}, fmt.Errorf("malformed coordinate key %q: %w", key, err)
	}
	return Coord(q, r), nil
}

func (c CubeCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.Q, c.R, c.S)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
