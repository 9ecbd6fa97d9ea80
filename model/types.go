// Package model holds the persisted records shared between the trainer and
// the checkpoint store.
package model

import (
	"time"

	"sternhalma/eval"
)

// TrainingConfig drives one evolutionary run. Yaml tags match the config
// files the CLI loads.
type TrainingConfig struct {
	PopulationSize   int     `json:"populationSize" yaml:"populationSize"`
	Generations      int     `json:"generations" yaml:"generations"`
	GamesPerPair     int     `json:"gamesPerPair" yaml:"gamesPerPair"`
	Elites           int     `json:"elites" yaml:"elites"`
	TournamentK      int     `json:"tournamentK" yaml:"tournamentK"`
	MutationRate     float64 `json:"mutationRate" yaml:"mutationRate"`
	MutationStrength float64 `json:"mutationStrength" yaml:"mutationStrength"`
	SearchDepth      int     `json:"searchDepth" yaml:"searchDepth"`
	MoveCap          int     `json:"moveCap" yaml:"moveCap"`
	Seed             uint64  `json:"seed" yaml:"seed"`
}

// DefaultTrainingConfig is a small but serious run.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		PopulationSize:   12,
		Generations:      20,
		GamesPerPair:     2,
		Elites:           2,
		TournamentK:      3,
		MutationRate:     0.25,
		MutationStrength: 0.15,
		SearchDepth:      2,
		MoveCap:          200,
		Seed:             1,
	}
}

// Individual is one member of the population. Fitness, wins, and games are
// mutable only inside one generation's tournament.
type Individual struct {
	Genome      eval.Genome `json:"genome"`
	Fitness     float64     `json:"fitness"`
	Wins        int         `json:"wins"`
	GamesPlayed int         `json:"gamesPlayed"`
}

// Cursor locates the exact next game within the round-robin schedule, so an
// interrupted tournament resumes from the same game rather than restarting
// the generation.
type Cursor struct {
	PairIndex int `json:"pairIndex"`
	GameIndex int `json:"gameIndex"`
}

// GenerationRecord summarizes one finished generation.
type GenerationRecord struct {
	Generation  int         `json:"generation"`
	BestFitness float64     `json:"bestFitness"`
	MeanFitness float64     `json:"meanFitness"`
	BestWins    int         `json:"bestWins"`
	BestGenome  eval.Genome `json:"bestGenome"`
}

// Session is the checkpointable snapshot of a training run.
type Session struct {
	ID         string             `json:"id"`
	Config     TrainingConfig     `json:"config"`
	Generation int                `json:"generation"`
	Population []Individual       `json:"population"`
	BestGenome eval.Genome        `json:"bestGenome"`
	History    []GenerationRecord `json:"history"`
	Cursor     Cursor             `json:"cursor"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}
