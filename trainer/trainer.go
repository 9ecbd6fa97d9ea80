// Package trainer tunes evaluation genomes by self-play: a round-robin
// tournament scores each generation's population, and genetic operators
// produce the next. Progress is checkpointed after every single game, so an
// interrupted run resumes mid-tournament instead of restarting.
package trainer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"sternhalma/engine"
	"sternhalma/eval"
	"sternhalma/game"
	"sternhalma/model"
	"sternhalma/searcher"
	"sternhalma/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	winFitness  = 3.0
	drawFitness = 1.0

	pausePoll = 100 * time.Millisecond
)

// Trainer runs one training session against a checkpoint store.
type Trainer struct {
	store   storage.Store
	session model.Session
	paused  atomic.Bool
}

// New starts a fresh session under a new ID.
func New(cfg model.TrainingConfig, store storage.Store) (*Trainer, error) {
	if cfg.PopulationSize < 2 {
		return nil, fmt.Errorf("population size %d is too small", cfg.PopulationSize)
	}
	if cfg.Elites < 0 || cfg.Elites >= cfg.PopulationSize {
		return nil, fmt.Errorf("elite count %d does not fit population %d", cfg.Elites, cfg.PopulationSize)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	return &Trainer{
		store: store,
		session: model.Session{
			ID:         uuid.NewString(),
			Config:     cfg,
			Population: SeedPopulation(cfg.PopulationSize, rng),
			BestGenome: eval.DefaultGenome(),
		},
	}, nil
}

// Resume reloads a checkpointed session. The cursor in the checkpoint
// points at the first game that has not completed.
func Resume(ctx context.Context, store storage.Store, id string) (*Trainer, error) {
	session, found, err := store.LoadSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if !found {
		return nil, fmt.Errorf("no session %s", id)
	}
	return &Trainer{store: store, session: session}, nil
}

// SessionID identifies this run for later resumption.
func (t *Trainer) SessionID() string {
	return t.session.ID
}

// SetPaused suspends or resumes the loop at the next game boundary.
// Already-checkpointed progress is unaffected.
func (t *Trainer) SetPaused(paused bool) {
	t.paused.Store(paused)
}

// Run executes the training loop until every generation is done or ctx is
// cancelled. On cancellation the last full checkpoint remains the resume
// point; only the in-flight game is discarded. The best genome seen so far
// is returned either way.
func (t *Trainer) Run(ctx context.Context) (eval.Genome, error) {
	cfg := t.session.Config
	pairs := Pairs(cfg.PopulationSize)

	for t.session.Generation < cfg.Generations {
		if err := t.runTournament(ctx, pairs); err != nil {
			return t.session.BestGenome, err
		}
		if err := t.finishGeneration(ctx); err != nil {
			return t.session.BestGenome, err
		}
	}
	return t.session.BestGenome, nil
}

// runTournament plays the remaining round-robin games of the current
// generation, starting from the checkpointed cursor.
func (t *Trainer) runTournament(ctx context.Context, pairs [][2]int) error {
	cfg := t.session.Config

	for t.session.Cursor.PairIndex < len(pairs) {
		pair := pairs[t.session.Cursor.PairIndex]
		for t.session.Cursor.GameIndex < cfg.GamesPerPair {
			if err := t.waitWhilePaused(ctx); err != nil {
				return err
			}

			gameIdx := t.session.Cursor.GameIndex
			firstIsA := gameIdx%2 == 0
			t.playPairGame(pair[0], pair[1], firstIsA)

			t.session.Cursor.GameIndex++
			if err := t.checkpoint(ctx); err != nil {
				return err
			}
		}
		t.session.Cursor.PairIndex++
		t.session.Cursor.GameIndex = 0
		if err := t.checkpoint(ctx); err != nil {
			return err
		}
	}
	return nil
}

// playPairGame runs one headless depth-reduced 2-player game between
// population members a and b and applies the scoring: 3 fitness and a win
// for a decisive result, 1 fitness each for a move-cap draw.
func (t *Trainer) playPairGame(a, b int, firstIsA bool) {
	cfg := t.session.Config
	first, second := a, b
	if !firstIsA {
		first, second = b, a
	}

	seed := t.gameSeed()
	state := game.NewStandardGameState(2)
	agents := []engine.Agent{
		t.agentFor(t.session.Population[first].Genome, seed),
		t.agentFor(t.session.Population[second].Genome, seed+1),
	}
	e := engine.NewLocal(state, agents)
	e.MoveCap = cfg.MoveCap
	final := e.Run()

	t.session.Population[a].GamesPlayed++
	t.session.Population[b].GamesPlayed++

	switch final.Winner {
	case 0:
		t.session.Population[a].Fitness += drawFitness
		t.session.Population[b].Fitness += drawFitness
	case 1:
		t.session.Population[first].Fitness += winFitness
		t.session.Population[first].Wins++
	case 2:
		t.session.Population[second].Fitness += winFitness
		t.session.Population[second].Wins++
	}
}

// gameSeed derives a deterministic per-game seed from the cursor, so a
// resumed run replays the same schedule it would have played uninterrupted.
func (t *Trainer) gameSeed() uint64 {
	c := t.session.Cursor
	return t.session.Config.Seed +
		uint64(t.session.Generation)*1_000_000 +
		uint64(c.PairIndex)*1_000 +
		uint64(c.GameIndex)*2
}

func (t *Trainer) agentFor(genome eval.Genome, seed uint64) engine.Agent {
	cfg := t.session.Config
	return searcher.New(searcher.Evolved,
		searcher.WithDepth(cfg.SearchDepth),
		searcher.WithEvaluator(eval.New(eval.WithGenome(genome))),
		searcher.WithRand(rand.New(rand.NewSource(seed))),
	)
}

// finishGeneration records history, persists the best genome, evolves the
// population, and checkpoints at the boundary.
func (t *Trainer) finishGeneration(ctx context.Context) error {
	best, mean := 0, 0.0
	for i, ind := range t.session.Population {
		mean += ind.Fitness
		if ind.Fitness > t.session.Population[best].Fitness {
			best = i
		}
	}
	mean /= float64(len(t.session.Population))

	record := model.GenerationRecord{
		Generation:  t.session.Generation,
		BestFitness: t.session.Population[best].Fitness,
		MeanFitness: mean,
		BestWins:    t.session.Population[best].Wins,
		BestGenome:  t.session.Population[best].Genome,
	}
	t.session.History = append(t.session.History, record)
	t.session.BestGenome = t.session.Population[best].Genome

	log.Info().
		Int("generation", t.session.Generation).
		Float64("bestFitness", record.BestFitness).
		Float64("meanFitness", record.MeanFitness).
		Msg("generation complete")

	if err := t.store.SaveGenome(ctx, storage.BestGenomeName, t.session.BestGenome); err != nil {
		return fmt.Errorf("persist best genome: %w", err)
	}

	rng := rand.New(rand.NewSource(t.session.Config.Seed + uint64(t.session.Generation)*31))
	t.session.Population = EvolveGeneration(t.session.Population, t.session.Config, rng)
	t.session.Generation++
	t.session.Cursor = model.Cursor{}

	return t.checkpoint(ctx)
}

func (t *Trainer) checkpoint(ctx context.Context) error {
	t.session.UpdatedAt = time.Now().UTC()
	if err := t.store.SaveSession(ctx, t.session); err != nil {
		return fmt.Errorf("checkpoint session: %w", err)
	}
	return nil
}

// waitWhilePaused blocks between games while the pause flag is set, and
// surfaces cancellation so the loop terminates cleanly with its progress
// already persisted.
func (t *Trainer) waitWhilePaused(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !t.paused.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pausePoll):
		}
	}
}

// History returns the per-generation summaries recorded so far.
func (t *Trainer) History() []model.GenerationRecord {
	return t.session.History
}
