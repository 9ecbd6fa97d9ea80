package game

import (
	"fmt"
	"sort"
)

// BoardCell is one key/value pair of the flattened board.
type BoardCell struct {
	Key  string `json:"key"`
	Cell Cell   `json:"cell"`
}

// PlayerCells attaches a cell list to a player for the flat form.
type PlayerCells struct {
	Player int         `json:"player"`
	Cells  []CubeCoord `json:"cells"`
}

// Snapshot is the flat, ownership-transferable form of a GameState: the
// board as an explicit sorted key/value list rather than a live map, so the
// value can cross a message-passing boundary with no shared memory.
type Snapshot struct {
	Cells             []BoardCell   `json:"cells"`
	PlayerCount       int           `json:"playerCount"`
	ActivePlayers     []int         `json:"activePlayers"`
	CurrentPlayer     int           `json:"currentPlayer"`
	MoveHistory       []Move        `json:"moveHistory,omitempty"`
	Winner            int           `json:"winner,omitempty"`
	FinishedPlayers   []Finish      `json:"finishedPlayers,omitempty"`
	TurnNumber        int           `json:"turnNumber"`
	IsCustomLayout    bool          `json:"isCustomLayout,omitempty"`
	StartingPositions []PlayerCells `json:"startingPositions"`
	GoalPositions     []PlayerCells `json:"goalPositions"`
}

// Snapshot flattens the state. The result shares nothing with the receiver.
func (gs *GameState) Snapshot() Snapshot {
	cells := make([]BoardCell, 0, len(gs.Board))
	for _, k := range gs.Board.SortedKeys() {
		cells = append(cells, BoardCell{Key: k, Cell: gs.Board[k]})
	}

	history := make([]Move, len(gs.MoveHistory))
	copy(history, gs.MoveHistory)
	active := make([]int, len(gs.ActivePlayers))
	copy(active, gs.ActivePlayers)
	finished := make([]Finish, len(gs.FinishedPlayers))
	copy(finished, gs.FinishedPlayers)

	return Snapshot{
		Cells:             cells,
		PlayerCount:       gs.PlayerCount,
		ActivePlayers:     active,
		CurrentPlayer:     gs.CurrentPlayer,
		MoveHistory:       history,
		Winner:            gs.Winner,
		FinishedPlayers:   finished,
		TurnNumber:        gs.TurnNumber,
		IsCustomLayout:    gs.IsCustomLayout,
		StartingPositions: flattenPlayerCells(gs.StartingPositions),
		GoalPositions:     flattenPlayerCells(gs.GoalPositions),
	}
}

// Restore rebuilds a live GameState from its flat form.
func Restore(s Snapshot) (*GameState, error) {
	board := make(Board, len(s.Cells))
	for _, bc := range s.Cells {
		if _, err := ParseKey(bc.Key); err != nil {
			return nil, err
		}
		if _, dup := board[bc.Key]; dup {
			return nil, fmt.Errorf("duplicate board key %q in snapshot", bc.Key)
		}
		board[bc.Key] = bc.Cell
	}

	history := make([]Move, len(s.MoveHistory))
	copy(history, s.MoveHistory)
	active := make([]int, len(s.ActivePlayers))
	copy(active, s.ActivePlayers)
	finished := make([]Finish, len(s.FinishedPlayers))
	copy(finished, s.FinishedPlayers)

	return &GameState{
		Board:             board,
		PlayerCount:       s.PlayerCount,
		ActivePlayers:     active,
		CurrentPlayer:     s.CurrentPlayer,
		MoveHistory:       history,
		Winner:            s.Winner,
		FinishedPlayers:   finished,
		TurnNumber:        s.TurnNumber,
		IsCustomLayout:    s.IsCustomLayout,
		StartingPositions: unflattenPlayerCells(s.StartingPositions),
		GoalPositions:     unflattenPlayerCells(s.GoalPositions),
	}, nil
}

func flattenPlayerCells(m map[int][]CubeCoord) []PlayerCells {
	players := make([]int, 0, len(m))
	for p := range m {
		players = append(players, p)
	}
	sort.Ints(players)
	out := make([]PlayerCells, 0, len(players))
	for _, p := range players {
		cells := make([]CubeCoord, len(m[p]))
		copy(cells, m[p])
		out = append(out, PlayerCells{Player: p, Cells: cells})
	}
	return out
}

func unflattenPlayerCells(list []PlayerCells) map[int][]CubeCoord {
	m := make(map[int][]CubeCoord, len(list))
	for _, pc := range list {
		cells := make([]CubeCoord, len(pc.Cells))
		copy(cells, pc.Cells)
		m[pc.Player] = cells
	}
	return m
}

// SavedMove is the normalized move record of a saved game: chain-jump hops
// pre-merged into a single jump per turn, no kind tags.
type SavedMove struct {
	From     CubeCoord   `json:"from"`
	To       CubeCoord   `json:"to"`
	JumpPath []CubeCoord `json:"jumpPath,omitempty"`
}

// SavedGame is the persisted record consumed by replay reconstruction.
// Layout is nil for games on the standard star.
type SavedGame struct {
	PlayerCount int          `json:"playerCount"`
	Layout      *BoardLayout `json:"layout,omitempty"`
	Moves       []SavedMove  `json:"moves"`
	FinishOrder []Finish     `json:"finishOrder,omitempty"`
}

// Replay deterministically regenerates every intermediate state of a saved
// game, the initial position first. Each raw move is classified from
// coordinates alone, so the same path also serves online-turn reconciliation
// where confirmed turns arrive without kind tags.
func Replay(sg SavedGame) ([]*GameState, error) {
	var state *GameState
	if sg.Layout != nil {
		var err error
		state, err = NewCustomGameState(*sg.Layout)
		if err != nil {
			return nil, fmt.Errorf("replay setup: %w", err)
		}
	} else {
		state = NewStandardGameState(sg.PlayerCount)
	}

	states := make([]*GameState, 0, len(sg.Moves)+1)
	states = append(states, state)

	for i, sm := range sg.Moves {
		m, err := state.ClassifyMove(sm.From, sm.To)
		if err != nil {
			return nil, fmt.Errorf("replay move %d: %w", i, err)
		}
		state = state.ApplyMove(m)
		states = append(states, state)
	}
	return states, nil
}
