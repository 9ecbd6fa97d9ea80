package game

import "fmt"

// BoardLayout is the input contract with an external board-design tool: an
// explicit cell set plus per-player starting cells, optional per-player goal
// cells, and optional walls. Player lists are indexed by seat order.
type BoardLayout struct {
	Cells             []CubeCoord   `json:"cells" yaml:"cells"`
	StartingPositions [][]CubeCoord `json:"startingPositions" yaml:"startingPositions"`
	GoalPositions     [][]CubeCoord `json:"goalPositions,omitempty" yaml:"goalPositions,omitempty"`
	Walls             []CubeCoord   `json:"walls,omitempty" yaml:"walls,omitempty"`
}

// NewCustomGameState builds a game on an arbitrary topology. When the layout
// omits goal positions each player's goal defaults to the starting cells of
// the opposite seat (seat + half the player count, wrapping).
func NewCustomGameState(layout BoardLayout) (*GameState, error) {
	playerCount := len(layout.StartingPositions)
	if playerCount < 2 || playerCount > 6 {
		return nil, fmt.Errorf("custom layout needs 2-6 players, got %d", playerCount)
	}
	if len(layout.Cells) == 0 {
		return nil, fmt.Errorf("custom layout has no cells")
	}
	if layout.GoalPositions != nil && len(layout.GoalPositions) != playerCount {
		return nil, fmt.Errorf("custom layout has %d goal lists for %d players",
			len(layout.GoalPositions), playerCount)
	}

	board := make(Board, len(layout.Cells))
	for _, c := range layout.Cells {
		if _, dup := board[c.Key()]; dup {
			return nil, fmt.Errorf("duplicate cell %s in layout", c)
		}
		board[c.Key()] = Empty
	}
	for _, w := range layout.Walls {
		if _, ok := board[w.Key()]; !ok {
			return nil, fmt.Errorf("wall %s is not a layout cell", w)
		}
		board[w.Key()] = Wall
	}

	starting := make(map[int][]CubeCoord, playerCount)
	goals := make(map[int][]CubeCoord, playerCount)
	active := make([]int, playerCount)

	for i := 0; i < playerCount; i++ {
		player := i + 1
		active[i] = player
		for _, c := range layout.StartingPositions[i] {
			cell, ok := board[c.Key()]
			if !ok {
				return nil, fmt.Errorf("starting cell %s of player %d is not a layout cell", c, player)
			}
			if cell != Empty {
				return nil, fmt.Errorf("starting cell %s of player %d is not free", c, player)
			}
			board[c.Key()] = PieceOf(player)
		}
		starting[player] = append([]CubeCoord(nil), layout.StartingPositions[i]...)
	}

	for i := 0; i < playerCount; i++ {
		player := i + 1
		if layout.GoalPositions != nil {
			goals[player] = append([]CubeCoord(nil), layout.GoalPositions[i]...)
		} else {
			opposite := (i + playerCount/2) % playerCount
			goals[player] = append([]CubeCoord(nil), layout.StartingPositions[opposite]...)
		}
		for _, g := range goals[player] {
			if _, ok := board[g.Key()]; !ok {
				return nil, fmt.Errorf("goal cell %s of player %d is not a layout cell", g, player)
			}
		}
	}

	return &GameState{
		Board:             board,
		PlayerCount:       playerCount,
		ActivePlayers:     active,
		CurrentPlayer:     active[0],
		TurnNumber:        1,
		IsCustomLayout:    true,
		StartingPositions: starting,
		GoalPositions:     goals,
	}, nil
}
