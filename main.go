package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sternhalma/engine"
	"sternhalma/eval"
	"sternhalma/game"
	"sternhalma/model"
	"sternhalma/searcher"
	"sternhalma/storage"
	"sternhalma/trainer"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"golang.org/x/exp/rand"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "selfplay":
		err = runSelfplay(os.Args[2:])
	case "train":
		err = runTrain(os.Args[2:], "")
	case "resume":
		err = runResume(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sternhalma <selfplay|train|resume> [flags]")
}

func runSelfplay(args []string) error {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	players := fs.Int("players", 2, "number of players (2-6)")
	games := fs.Int("games", 1, "number of games to play")
	difficulty := fs.String("difficulty", "hard", "easy|medium|hard|expert|evolved")
	dbPath := fs.String("db", "sternhalma.db", "checkpoint database (for evolved genomes)")
	seed := fs.Uint64("seed", 1, "random seed")
	fs.Parse(args)

	d := searcher.Difficulty(*difficulty)
	evaluator, err := evaluatorFor(d, *dbPath, *seed)
	if err != nil {
		return err
	}

	for i := 0; i < *games; i++ {
		state := game.NewStandardGameState(*players)
		agents := make([]engine.Agent, *players)
		for p := range agents {
			agents[p] = searcher.New(d,
				searcher.WithEvaluator(evaluator),
				searcher.WithRand(rand.New(rand.NewSource(*seed+uint64(i)*7+uint64(p)))),
			)
		}
		e := engine.NewLocal(state, agents)
		final := e.Run()
		log.Info().
			Int("game", i+1).
			Int("winner", final.Winner).
			Int("moves", e.Moves()).
			Msg("selfplay game over")
	}
	return nil
}

// evaluatorFor builds the evaluation function for a difficulty. The evolved
// difficulty substitutes the persisted best genome, silently falling back
// to default weights when none exists.
func evaluatorFor(d searcher.Difficulty, dbPath string, seed uint64) (*eval.Evaluator, error) {
	if d != searcher.Evolved {
		if d == searcher.Easy {
			return eval.New(eval.WithNoise(rand.New(rand.NewSource(seed)), 15)), nil
		}
		return eval.New(), nil
	}

	ctx := context.Background()
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("open checkpoint store: %w", err)
	}
	defer store.Close()

	genome, found, err := store.LoadGenome(ctx, storage.BestGenomeName)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Warn().Msg("no trained genome found, using default weights")
		return eval.New(), nil
	}
	return eval.New(eval.WithGenome(genome)), nil
}

func runTrain(args []string, resumeID string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", "", "yaml training config (defaults used if empty)")
	dbPath := fs.String("db", "sternhalma.db", "checkpoint database")
	historyPath := fs.String("history", "", "optional CSV export of generation history")
	fs.Parse(args)

	cfg := model.DefaultTrainingConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := storage.NewSQLiteStore(*dbPath)
	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("open checkpoint store: %w", err)
	}
	defer store.Close()

	var t *trainer.Trainer
	var err error
	if resumeID != "" {
		t, err = trainer.Resume(ctx, store, resumeID)
	} else {
		t, err = trainer.New(cfg, store)
	}
	if err != nil {
		return err
	}
	log.Info().Str("session", t.SessionID()).Msg("training started")

	best, runErr := t.Run(ctx)
	if runErr != nil && ctx.Err() != nil {
		// Interrupted: the last checkpoint is the resume point.
		log.Info().Str("session", t.SessionID()).Msg("training interrupted, progress saved")
		runErr = nil
	}
	if runErr != nil {
		return runErr
	}

	log.Info().Floats64("genome", best[:]).Msg("best genome")
	if *historyPath != "" {
		if err := trainer.WriteHistoryCSV(*historyPath, t.History()); err != nil {
			return err
		}
	}
	return nil
}

func runResume(args []string) error {
	fs := flag.NewFlagSet("resume", flag.ExitOnError)
	id := fs.String("id", "", "session ID to resume")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("resume requires -id")
	}
	rest := fs.Args()
	return runTrain(rest, *id)
}
