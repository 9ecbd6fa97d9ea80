package game

import "fmt"

// Move is one piece relocation. A chain jump is a single Move whose JumpPath
// holds the jumped-over cells in order; a swap steps onto an opponent piece
// sitting on one of the mover's goal cells and displaces it back to From.
// Player and TurnNumber are filled in when the move is recorded in history.
type Move struct {
	From       CubeCoord   `json:"from"`
	To         CubeCoord   `json:"to"`
	IsJump     bool        `json:"isJump,omitempty"`
	JumpPath   []CubeCoord `json:"jumpPath,omitempty"`
	IsSwap     bool        `json:"isSwap,omitempty"`
	Player     int         `json:"player,omitempty"`
	TurnNumber int         `json:"turnNumber,omitempty"`
}

func (m Move) String() string {
	kind := "step"
	if m.IsJump {
		kind = fmt.Sprintf("jump(%d)", len(m.JumpPath))
	} else if m.IsSwap {
		kind = "swap"
	}
	return fmt.Sprintf("%s %s -> %s", kind, m.From, m.To)
}

// SameEndpoints reports whether two moves relocate between the same cells.
func (m Move) SameEndpoints(o Move) bool {
	return m.From == o.From && m.To == o.To
}

// ClassifyMove rebuilds a fully tagged Move from the raw coordinate pair an
// external synchronization layer delivers. The kind is derived purely from
// coordinate distance plus goal and ownership inspection; a caller-supplied
// jump path is never trusted, the legal chain is re-derived instead.
func (gs *GameState) ClassifyMove(from, to CubeCoord) (Move, error) {
	cell, ok := gs.Board.At(from)
	if !ok || !cell.IsPiece() {
		return Move{}, fmt.Errorf("no piece at %s", from)
	}
	player := cell.PieceOwner()

	if Distance(from, to) == 1 {
		target, ok := gs.Board.At(to)
		if !ok {
			return Move{}, fmt.Errorf("destination %s is off the board", to)
		}
		if target.IsPiece() && target.PieceOwner() != player && gs.IsGoalCell(player, to) {
			return Move{From: from, To: to, IsSwap: true}, nil
		}
		return Move{From: from, To: to}, nil
	}

	for _, m := range gs.pieceJumpMoves(from) {
		if m.To == to {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("no legal move from %s to %s", from, to)
}
