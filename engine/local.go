package engine

import (
	"sternhalma/game"

	"github.com/rs/zerolog/log"
)

// Local drives a headless game between agents, one per active player, until
// the game is fully over or the move cap is reached. The caller is the only
// writer: each iteration replaces State with the next snapshot, and prior
// snapshots stay valid for anything still holding them.
type Local struct {
	State    *game.GameState
	Agents   map[int]Agent
	MoveCap  int
	moveNums int
}

// NewLocal pairs agents with the state's active players in seat order.
func NewLocal(state *game.GameState, agents []Agent) *Local {
	if len(agents) != len(state.ActivePlayers) {
		panic("number of agents does not match number of players")
	}
	byPlayer := make(map[int]Agent, len(agents))
	for i, p := range state.ActivePlayers {
		byPlayer[p] = agents[i]
	}
	return &Local{State: state, Agents: byPlayer, MoveCap: MaxMoves}
}

// Run executes the game loop and returns the final snapshot. The winner, if
// any, is on the returned state.
func (e *Local) Run() *game.GameState {
	log.Debug().Int("player", e.State.CurrentPlayer).Msg("game starting")

	for !e.State.IsOver() && e.moveNums < e.MoveCap {
		player := e.State.CurrentPlayer
		agent, ok := e.Agents[player]
		if !ok {
			panic("no agent for current player")
		}

		move, found := agent.FindMove(e.State)
		if !found {
			// A blocked player forfeits the turn, not the game. The forfeit
			// still consumes from the cap so a fully blocked game terminates.
			e.State = e.State.AdvanceTurn()
			e.moveNums++
			continue
		}

		finishedBefore := len(e.State.FinishedPlayers)
		e.State = e.State.ApplyMove(move)
		e.moveNums++

		if len(e.State.FinishedPlayers) > finishedBefore {
			log.Info().Int("player", player).Int("moves", e.moveNums).Msg("player finished")
		}
	}

	log.Debug().
		Int("winner", e.State.Winner).
		Int("moves", e.moveNums).
		Msg("game over")
	return e.State
}

// Moves reports how many turns Run consumed, forfeits included.
func (e *Local) Moves() int {
	return e.moveNums
}
