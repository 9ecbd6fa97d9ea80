package engine

import "sternhalma/game"

// MaxMoves caps a headless game; a game still unfinished at the cap is a
// draw from the caller's point of view.
const MaxMoves = 2000

// Agent recommends the next move for the current player of a state. The
// second result is false when the player has no legal move.
type Agent interface {
	FindMove(gs *game.GameState) (game.Move, bool)
}
