package persistence

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory RangeStore used by tests and the in-process
// server mode.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[RangeKey]RangeRecord
}

var _ RangeStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[RangeKey]RangeRecord)}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Save(_ context.Context, rec RangeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if prev, ok := s.records[rec.Key]; ok {
		rec.CreatedAt = prev.CreatedAt
	} else {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	s.records[rec.Key] = rec
	return nil
}

func (s *MemoryStore) Load(_ context.Context, key RangeKey) (*RangeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) List(_ context.Context, player, position string) ([]RangeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []RangeRecord
	for key, rec := range s.records {
		if key.Player != player {
			continue
		}
		if position != "" && key.Position != position {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Name < b.Name
	})
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, key RangeKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return false, nil
	}
	delete(s.records, key)
	return true, nil
}
