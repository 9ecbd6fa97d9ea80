package storage

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"sternhalma/eval"
	"sternhalma/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists checkpoints in a single sqlite file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS genomes (
			name TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);
	`)
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func (s *SQLiteStore) SaveSession(ctx context.Context, session model.Session) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	payload, err := encodeSession(session)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO sessions (id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, session.ID, payload, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) LoadSession(ctx context.Context, id string) (model.Session, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.Session{}, false, err
	}
	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM sessions WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Session{}, false, nil
		}
		return model.Session{}, false, err
	}
	session, err := decodeSession(payload)
	if err != nil {
		return model.Session{}, false, err
	}
	return session, true, nil
}

func (s *SQLiteStore) SaveGenome(ctx context.Context, name string, genome eval.Genome) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	payload, err := encodeGenome(genome)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO genomes (name, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, name, payload, time.Now().UTC().Format(time.RFC3339))
	return err
}

// LoadGenome treats a corrupt record the same as a missing one: the evolved
// difficulty falls back to default weights either way.
func (s *SQLiteStore) LoadGenome(ctx context.Context, name string) (eval.Genome, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return eval.Genome{}, false, err
	}
	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM genomes WHERE name = ?`, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return eval.Genome{}, false, nil
		}
		return eval.Genome{}, false, err
	}
	genome, err := decodeGenome(payload)
	if err != nil {
		return eval.Genome{}, false, nil
	}
	return genome, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
