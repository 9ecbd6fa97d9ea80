package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// Finish records a player's finishing rank and when it happened.
type Finish struct {
	Player    int `json:"player"`
	MoveCount int `json:"moveCount"`
}

// GameState is one immutable snapshot of a game. Every transition returns a
// new snapshot and leaves the receiver untouched, which is what makes undo,
// replay, and lock-free concurrent reads correct. The topology (board key
// set, starting and goal positions) is fixed for the lifetime of a game and
// shared between snapshots.
type GameState struct {
	Board           Board
	PlayerCount     int
	ActivePlayers   []int // fixed turn order
	CurrentPlayer   int
	MoveHistory     []Move // append-only
	Winner          int    // first finisher, 0 while in progress
	FinishedPlayers []Finish
	TurnNumber      int

	IsCustomLayout    bool
	StartingPositions map[int][]CubeCoord
	GoalPositions     map[int][]CubeCoord
}

// NewStandardGameState sets up a game on the 121-cell star for 2-6 players,
// pieces placed on each player's home arm, goals on the opposite arm.
func NewStandardGameState(playerCount int) *GameState {
	seats, ok := armSeats[playerCount]
	if !ok {
		panic(fmt.Sprintf("unsupported player count %d", playerCount))
	}

	board := StandardBoard()
	starting := make(map[int][]CubeCoord, playerCount)
	goals := make(map[int][]CubeCoord, playerCount)
	active := make([]int, playerCount)

	for i := range seats {
		player := i + 1
		active[i] = player
		starting[player] = ArmCells(HomeArm(player, playerCount))
		goals[player] = ArmCells(GoalArm(player, playerCount))
		for _, c := range starting[player] {
			board[c.Key()] = PieceOf(player)
		}
	}

	return &GameState{
		Board:             board,
		PlayerCount:       playerCount,
		ActivePlayers:     active,
		CurrentPlayer:     active[0],
		TurnNumber:        1,
		StartingPositions: starting,
		GoalPositions:     goals,
	}
}

// Copy deep-copies the mutable parts of the snapshot. Topology maps are
// shared: they never change mid-game.
func (gs *GameState) Copy() *GameState {
	boardCopy := gs.Board.Copy()

	historyCopy := make([]Move, len(gs.MoveHistory))
	copy(historyCopy, gs.MoveHistory)

	activeCopy := make([]int, len(gs.ActivePlayers))
	copy(activeCopy, gs.ActivePlayers)

	finishedCopy := make([]Finish, len(gs.FinishedPlayers))
	copy(finishedCopy, gs.FinishedPlayers)

	return &GameState{
		Board:             boardCopy,
		PlayerCount:       gs.PlayerCount,
		ActivePlayers:     activeCopy,
		CurrentPlayer:     gs.CurrentPlayer,
		MoveHistory:       historyCopy,
		Winner:            gs.Winner,
		FinishedPlayers:   finishedCopy,
		TurnNumber:        gs.TurnNumber,
		IsCustomLayout:    gs.IsCustomLayout,
		StartingPositions: gs.StartingPositions,
		GoalPositions:     gs.GoalPositions,
	}
}

// GoalCells returns the player's goal region.
func (gs *GameState) GoalCells(player int) []CubeCoord {
	return gs.GoalPositions[player]
}

// IsGoalCell reports whether c belongs to the player's goal region.
func (gs *GameState) IsGoalCell(player int, c CubeCoord) bool {
	for _, g := range gs.GoalPositions[player] {
		if g == c {
			return true
		}
	}
	return false
}

// PiecePositions lists the player's pieces in deterministic board order.
func (gs *GameState) PiecePositions(player int) []CubeCoord {
	var positions []CubeCoord
	for _, k := range gs.Board.SortedKeys() {
		if gs.Board[k] == PieceOf(player) {
			c, err := ParseKey(k)
			if err != nil {
				panic(err)
			}
			positions = append(positions, c)
		}
	}
	return positions
}

// HasFinished reports whether every piece of the player sits on a goal cell.
func (gs *GameState) HasFinished(player int) bool {
	count := 0
	for _, g := range gs.GoalPositions[player] {
		if cell, ok := gs.Board.At(g); ok && cell == PieceOf(player) {
			count++
		}
	}
	if count == 0 {
		return false
	}
	return count == len(gs.PiecePositions(player))
}

func (gs *GameState) isRecordedFinisher(player int) bool {
	for _, f := range gs.FinishedPlayers {
		if f.Player == player {
			return true
		}
	}
	return false
}

// IsOver reports the fully-over terminal state: every active player finished.
func (gs *GameState) IsOver() bool {
	return len(gs.FinishedPlayers) == len(gs.ActivePlayers)
}

// MovePiece relocates the mover's piece without advancing the turn, so a
// chain jump in progress can continue from the new snapshot. The move is
// appended to history and a finish is detected immediately. A move with no
// piece at its origin is a caller contract violation.
func (gs *GameState) MovePiece(m Move) *GameState {
	cell, ok := gs.Board.At(m.From)
	if !ok || !cell.IsPiece() {
		panic(fmt.Sprintf("no piece at move origin %s", m.From))
	}
	player := cell.PieceOwner()

	next := gs.Copy()
	if m.IsSwap {
		displaced, ok := next.Board.At(m.To)
		if !ok || !displaced.IsPiece() || displaced.PieceOwner() == player {
			panic(fmt.Sprintf("swap target %s holds no opponent piece", m.To))
		}
		next.Board[m.From.Key()] = displaced
	} else {
		next.Board[m.From.Key()] = Empty
	}
	next.Board[m.To.Key()] = PieceOf(player)

	m.Player = player
	m.TurnNumber = gs.TurnNumber
	next.MoveHistory = append(next.MoveHistory, m)

	if next.HasFinished(player) && !next.isRecordedFinisher(player) {
		next.FinishedPlayers = append(next.FinishedPlayers, Finish{
			Player:    player,
			MoveCount: len(next.MoveHistory),
		})
		if next.Winner == 0 {
			next.Winner = player
		}
	}
	return next
}

// AdvanceTurn passes play to the next non-finished entry in ActivePlayers,
// incrementing TurnNumber on wraparound. With every player finished the
// current player is left unchanged.
func (gs *GameState) AdvanceTurn() *GameState {
	next := gs.Copy()
	idx := next.playerIndex(next.CurrentPlayer)
	for step := 1; step <= len(next.ActivePlayers); step++ {
		cand := next.ActivePlayers[(idx+step)%len(next.ActivePlayers)]
		if (idx+step) >= len(next.ActivePlayers) {
			next.TurnNumber = gs.TurnNumber + 1
		}
		if !next.isRecordedFinisher(cand) {
			next.CurrentPlayer = cand
			return next
		}
	}
	return next
}

// ApplyMove composes MovePiece and AdvanceTurn for single-shot use, e.g.
// non-interactive replay.
func (gs *GameState) ApplyMove(m Move) *GameState {
	return gs.MovePiece(m).AdvanceTurn()
}

// UndoMove reverses the last history entry, restoring board contents (swap
// displacements included), current player, turn number, and any finish the
// undone move caused.
func (gs *GameState) UndoMove() *GameState {
	if len(gs.MoveHistory) == 0 {
		return gs.Copy()
	}
	next := gs.Copy()
	m := next.MoveHistory[len(next.MoveHistory)-1]
	next.MoveHistory = next.MoveHistory[:len(next.MoveHistory)-1]

	if m.IsSwap {
		displaced, ok := next.Board.At(m.From)
		if !ok || !displaced.IsPiece() {
			panic("inconsistent history: swap origin holds no displaced piece")
		}
		next.Board[m.To.Key()] = displaced
	} else {
		next.Board[m.To.Key()] = Empty
	}
	next.Board[m.From.Key()] = PieceOf(m.Player)

	next.CurrentPlayer = m.Player
	next.TurnNumber = m.TurnNumber

	// A finish recorded at or beyond the new history length no longer holds.
	kept := next.FinishedPlayers[:0]
	for _, f := range next.FinishedPlayers {
		if f.MoveCount <= len(next.MoveHistory) {
			kept = append(kept, f)
		}
	}
	next.FinishedPlayers = kept
	if len(next.FinishedPlayers) == 0 {
		next.Winner = 0
	} else {
		next.Winner = next.FinishedPlayers[0].Player
	}
	return next
}

func (gs *GameState) playerIndex(player int) int {
	for i, p := range gs.ActivePlayers {
		if p == player {
			return i
		}
	}
	panic(fmt.Sprintf("player %d is not in this game", player))
}

// StateHash is a position fingerprint used by tests and the engine log.
type StateHash uint64

// Hash fingerprints board contents, current player, and turn number.
func (gs *GameState) Hash() StateHash {
	h := fnv.New64a()
	binary.Write(h, binary.LittleEndian, int64(gs.CurrentPlayer))
	binary.Write(h, binary.LittleEndian, int64(gs.TurnNumber))
	for _, k := range gs.Board.SortedKeys() {
		h.Write([]byte(k))
		binary.Write(h, binary.LittleEndian, int64(gs.Board[k]))
	}
	return StateHash(h.Sum64())
}
