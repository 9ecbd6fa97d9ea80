package storage

import (
	"context"
	"sync"

	"sternhalma/eval"
	"sternhalma/model"
)

// MemoryStore keeps checkpoints in process memory. Payloads go through the
// same codec as sqlite so tests also exercise the round trip.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	genomes  map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]byte),
		genomes:  make(map[string][]byte),
	}
}

func (s *MemoryStore) Init(context.Context) error { return nil }

func (s *MemoryStore) SaveSession(_ context.Context, session model.Session) error {
	payload, err := encodeSession(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[session.ID] = payload
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) LoadSession(_ context.Context, id string) (model.Session, bool, error) {
	s.mu.RLock()
	payload, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return model.Session{}, false, nil
	}
	session, err := decodeSession(payload)
	if err != nil {
		return model.Session{}, false, err
	}
	return session, true, nil
}

func (s *MemoryStore) SaveGenome(_ context.Context, name string, genome eval.Genome) error {
	payload, err := encodeGenome(genome)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.genomes[name] = payload
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) LoadGenome(_ context.Context, name string) (eval.Genome, bool, error) {
	s.mu.RLock()
	payload, ok := s.genomes[name]
	s.mu.RUnlock()
	if !ok {
		return eval.Genome{}, false, nil
	}
	genome, err := decodeGenome(payload)
	if err != nil {
		return eval.Genome{}, false, nil
	}
	return genome, true, nil
}

// Corrupt injects a bad payload, used by tests of the silent-fallback path.
func (s *MemoryStore) Corrupt(name string) {
	s.mu.Lock()
	s.genomes[name] = []byte("{not json")
	s.mu.Unlock()
}

func (s *MemoryStore) Close() error { return nil }
