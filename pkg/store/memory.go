package store

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// MemoryStore keeps records in memory. Intended for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record // by ID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Put stores a record, assigning an ID and timestamps if missing.
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.records {
		if other.Name == rec.Name && other.ID != rec.ID {
			return ErrDuplicateName
		}
	}

	prepare(rec)
	cp := *rec
	s.records[rec.ID] = &cp
	return nil
}

// Get retrieves a record by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// GetByName retrieves a record by name.
func (s *MemoryStore) GetByName(ctx context.Context, name string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.Name == name {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// List returns all records, sorted by name.
func (s *MemoryStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		cp := *rec
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *Record) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

// Delete removes a record by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
