package game

// LegalMoves returns every legal move for the current player.
func (gs *GameState) LegalMoves() []Move {
	var moves []Move
	for _, from := range gs.PiecePositions(gs.CurrentPlayer) {
		moves = append(moves, gs.PieceMoves(from)...)
	}
	return moves
}

// PieceMoves enumerates the legal moves of the piece at from: single steps
// onto empty neighbors, chain jumps, and swap captures.
func (gs *GameState) PieceMoves(from CubeCoord) []Move {
	cell, ok := gs.Board.At(from)
	if !ok || !cell.IsPiece() {
		return nil
	}
	player := cell.PieceOwner()

	var moves []Move
	for i := 0; i < 6; i++ {
		to := from.Neighbor(i)
		if gs.Board.IsOpen(to) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	moves = append(moves, gs.pieceJumpMoves(from)...)
	moves = append(moves, gs.swapMoves(from, player)...)
	return moves
}

// pieceJumpMoves runs a breadth-first search over chain continuations. From
// each landing cell, jumping over any adjacent piece onto the empty reflected
// cell yields a destination and a new frontier. A landing cell is never
// revisited within one chain, which keeps the search finite on cyclic custom
// topologies and guarantees distinct destinations.
func (gs *GameState) pieceJumpMoves(from CubeCoord) []Move {
	type frontier struct {
		at   CubeCoord
		path []CubeCoord
	}

	visited := map[string]bool{from.Key(): true}
	queue := []frontier{{at: from}}
	var moves []Move

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for i := 0; i < 6; i++ {
			over := cur.at.Neighbor(i)
			overCell, ok := gs.Board.At(over)
			if !ok || !overCell.IsPiece() {
				continue
			}
			// The mover has left its origin, so the origin is landable but
			// never jumpable.
			if over == from {
				continue
			}
			land := JumpDestination(cur.at, over)
			if visited[land.Key()] {
				continue
			}
			if !gs.Board.IsOpen(land) {
				continue
			}
			visited[land.Key()] = true

			path := make([]CubeCoord, len(cur.path)+1)
			copy(path, cur.path)
			path[len(cur.path)] = over

			moves = append(moves, Move{From: from, To: land, IsJump: true, JumpPath: path})
			queue = append(queue, frontier{at: land, path: path})
		}
	}
	return moves
}

// swapMoves yields the swap captures available to the piece at from. A swap
// is a single step onto an adjacent goal cell of the mover occupied by an
// opponent, and only becomes legal once the mover has vacated every one of
// their own starting cells.
func (gs *GameState) swapMoves(from CubeCoord, player int) []Move {
	if !gs.hasVacatedHome(player) {
		return nil
	}
	var moves []Move
	for i := 0; i < 6; i++ {
		to := from.Neighbor(i)
		cell, ok := gs.Board.At(to)
		if !ok || !cell.IsPiece() || cell.PieceOwner() == player {
			continue
		}
		if gs.IsGoalCell(player, to) {
			moves = append(moves, Move{From: from, To: to, IsSwap: true})
		}
	}
	return moves
}

func (gs *GameState) hasVacatedHome(player int) bool {
	for _, c := range gs.StartingPositions[player] {
		if cell, ok := gs.Board.At(c); ok && cell == PieceOf(player) {
			return false
		}
	}
	return true
}

// IsValidMove re-derives the legal move set for the piece at m.From and
// checks membership by endpoints and kind. Caller-supplied jump paths are
// ignored; only generator output is trusted.
func (gs *GameState) IsValidMove(m Move) bool {
	cell, ok := gs.Board.At(m.From)
	if !ok || cell != PieceOf(gs.CurrentPlayer) {
		return false
	}
	for _, legal := range gs.PieceMoves(m.From) {
		if legal.SameEndpoints(m) && legal.IsJump == m.IsJump && legal.IsSwap == m.IsSwap {
			return true
		}
	}
	return false
}
