package game

import "sort"

// Cell is the content of one board position: empty, a wall, or a piece
// belonging to a player (players are numbered from 1).
type Cell int8

const (
	Empty Cell = 0
	Wall  Cell = -1
)

func (c Cell) IsPiece() bool { return c > 0 }

// PieceOwner returns the owning player of a piece cell, or 0.
func (c Cell) PieceOwner() int {
	if c > 0 {
		return int(c)
	}
	return 0
}

func PieceOf(player int) Cell { return Cell(player) }

// Board maps canonical coordinate keys to cell contents. Topology membership
// is always tested by key lookup, never by bounds arithmetic, so custom
// layouts and the standard star flow through the same code.
type Board map[string]Cell

func (b Board) Copy() Board {
	nb := make(Board, len(b))
	for k, v := range b {
		nb[k] = v
	}
	return nb
}

// At returns the cell at c and whether c is on the board at all.
func (b Board) At(c CubeCoord) (Cell, bool) {
	cell, ok := b[c.Key()]
	return cell, ok
}

// IsOpen reports whether c is an on-board empty cell.
func (b Board) IsOpen(c CubeCoord) bool {
	cell, ok := b[c.Key()]
	return ok && cell == Empty
}

// SortedKeys returns the board's keys in deterministic order, used by the
// snapshot codec and the distance-oracle cache key.
func (b Board) SortedKeys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const (
	// CenterRadius is the radius of the star's central hexagon. Cells within
	// it belong to no player's home or goal region.
	CenterRadius = 4

	// PiecesPerPlayer is the arm size of the standard star.
	PiecesPerPlayer = 10

	// StandardCellCount is the full six-pointed star: a radius-4 hexagon
	// plus six 10-cell triangular arms.
	StandardCellCount = 121
)

// BoardCenter is the origin of the standard star.
var BoardCenter = CubeCoord{}

// inStar tests membership in the six-pointed star: the union of the two
// overlapping triangles {q,r,s <= 4} and {q,r,s >= -4}.
func inStar(c CubeCoord) bool {
	if c.Q <= CenterRadius && c.R <= CenterRadius && c.S <= CenterRadius {
		return true
	}
	return c.Q >= -CenterRadius && c.R >= -CenterRadius && c.S >= -CenterRadius
}

// StarCells enumerates the 121 cells of the standard board in a fixed order.
func StarCells() []CubeCoord {
	var cells []CubeCoord
	for q := -2 * CenterRadius; q <= 2*CenterRadius; q++ {
		for r := -2 * CenterRadius; r <= 2*CenterRadius; r++ {
			c := Coord(q, r)
			if abs(c.S) <= 2*CenterRadius && inStar(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// StandardBoard builds an all-empty standard star board.
func StandardBoard() Board {
	b := make(Board, StandardCellCount)
	for _, c := range StarCells() {
		b[c.Key()] = Empty
	}
	return b
}

// NoRegion marks a cell inside the central hexagon.
const NoRegion = -1

// ClassifyRegion assigns a star cell to one of the six arms (0..5), or
// NoRegion for cells within the central hexagon. Outside the hexagon the
// axis with the largest absolute value is unique on the star, and its sign
// picks one of the two opposite arms sharing that axis. Arm indices follow
// the 60-degree rotation cycle +q, -s, +r, -q, +s, -r.
func ClassifyRegion(c CubeCoord) int {
	aq, ar, as := abs(c.Q), abs(c.R), abs(c.S)
	if max(aq, max(ar, as)) <= CenterRadius {
		return NoRegion
	}
	switch {
	case aq >= ar && aq >= as:
		if c.Q > 0 {
			return 0
		}
		return 3
	case as >= aq && as >= ar:
		if c.S < 0 {
			return 1
		}
		return 4
	default:
		if c.R > 0 {
			return 2
		}
		return 5
	}
}

// ArmCells lists the 10 cells of one arm, deepest tip last. Arm 0 is the
// +q point; the others are its rotations.
func ArmCells(arm int) []CubeCoord {
	var cells []CubeCoord
	for q := CenterRadius + 1; q <= 2*CenterRadius; q++ {
		for r := -CenterRadius; r <= CenterRadius-q; r++ {
			cells = append(cells, Coord(q, r).Rotate(arm))
		}
	}
	return cells
}

// armSeats maps player count to the occupied arms, in turn order. Each
// player's goal is the arm opposite their home.
var armSeats = map[int][]int{
	2: {0, 3},
	3: {0, 2, 4},
	4: {0, 1, 3, 4},
	5: {0, 1, 2, 3, 4},
	6: {0, 1, 2, 3, 4, 5},
}

// HomeArm returns the home arm for a 1-based player seat, panicking on an
// unsupported player count (caller contract: 2..6).
func HomeArm(player, playerCount int) int {
	seats, ok := armSeats[playerCount]
	if !ok {
		panic("unsupported player count")
	}
	return seats[player-1]
}

// GoalArm is the arm opposite the player's home arm.
func GoalArm(player, playerCount int) int {
	return (HomeArm(player, playerCount) + 3) % 6
}
