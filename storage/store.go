// Package storage persists training sessions and trained genomes. Two
// backends exist: sqlite for real runs and an in-memory store for tests.
package storage

import (
	"context"

	"sternhalma/eval"
	"sternhalma/model"
)

// Store is the checkpoint persistence contract. Loads return a found flag:
// a missing record is a normal condition, not an error, and a corrupt
// genome record loads as absent so callers fall back to default weights.
type Store interface {
	Init(ctx context.Context) error
	SaveSession(ctx context.Context, session model.Session) error
	LoadSession(ctx context.Context, id string) (model.Session, bool, error)
	SaveGenome(ctx context.Context, name string, genome eval.Genome) error
	LoadGenome(ctx context.Context, name string) (eval.Genome, bool, error)
	Close() error
}

// BestGenomeName is the record the evolved difficulty reads.
const BestGenomeName = "best"
