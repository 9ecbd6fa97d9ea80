package engine

import (
	"context"

	"sternhalma/game"
	"sternhalma/searcher"

	"github.com/rs/zerolog/log"
)

// Request carries one move computation across the worker boundary. The
// state travels as a flat snapshot, not a live reference: nothing is shared
// between the interactive side and the search goroutine.
type Request struct {
	Snapshot   game.Snapshot
	Difficulty searcher.Difficulty
	Options    []searcher.Option
	reply      chan Response
}

// Response is the worker's answer to one Request.
type Response struct {
	Move  game.Move
	Found bool
	Err   error
}

// Worker computes AI moves on a dedicated goroutine so deep search never
// blocks interactive move handling. It is reachable only via message
// passing.
type Worker struct {
	requests chan Request
}

func NewWorker(queueSize int) *Worker {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Worker{requests: make(chan Request, queueSize)}
}

// Start launches the worker loop. It exits when ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case req := <-w.requests:
				req.reply <- w.handle(req)
			}
		}
	}()
}

func (w *Worker) handle(req Request) Response {
	state, err := game.Restore(req.Snapshot)
	if err != nil {
		return Response{Err: err}
	}
	s := searcher.New(req.Difficulty, req.Options...)
	move, found := s.FindMove(state)
	if !found {
		log.Debug().Int("player", state.CurrentPlayer).Msg("no legal move for player")
	}
	return Response{Move: move, Found: found}
}

// Recommend submits a snapshot and blocks until the worker answers or ctx
// is cancelled. Concurrent callers are fine; each request carries its own
// reply channel.
func (w *Worker) Recommend(ctx context.Context, snapshot game.Snapshot, difficulty searcher.Difficulty, options ...searcher.Option) (Response, error) {
	req := Request{
		Snapshot:   snapshot,
		Difficulty: difficulty,
		Options:    options,
		reply:      make(chan Response, 1),
	}
	select {
	case w.requests <- req:
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
	select {
	case resp := <-req.reply:
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}
