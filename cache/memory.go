package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store. Pairs live in a map behind a RWMutex.
// Intended for tests and single-process setups without a cache directory.
type MemoryStore struct {
	mu    sync.RWMutex
	pairs map[string]*Entry

	// now is swappable for tests.
	now func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pairs: make(map[string]*Entry),
		now:   time.Now,
	}
}

// Lookup returns the pair for key, if present.
func (s *MemoryStore) Lookup(ctx context.Context, key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.pairs[key]
	if !ok {
		return nil, false
	}
	cp := *e
	return &cp, true
}

// Put stores both artifacts under key.
func (s *MemoryStore) Put(ctx context.Context, key string, jsonBytes, imageBytes []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[key] = &Entry{
		Key:       key,
		JSON:      append([]byte(nil), jsonBytes...),
		Image:     append([]byte(nil), imageBytes...),
		CreatedAt: s.now(),
	}
	return nil
}

// Delete removes the pair for key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pairs, key)
	return nil
}

// Sweep removes pairs older than ttl.
func (s *MemoryStore) Sweep(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, e := range s.pairs {
		if e.CreatedAt.Before(cutoff) {
			delete(s.pairs, key)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored pairs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pairs)
}
