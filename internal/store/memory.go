package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// MemoryStore keeps records in process memory. It is the default store and
// backs the tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]Record)}
}

func (s *MemoryStore) Save(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := nowFunc()
	rec.CreatedAt, rec.UpdatedAt = now, now
	s.records[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID string, id uuid.UUID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok || rec.UserID != userID {
		return nil, notFound(id)
	}
	return &rec, nil
}

func (s *MemoryStore) List(_ context.Context, userID string) ([]*Record, error) {
	s.mu.RLock()
	owned := lo.FilterMap(lo.Values(s.records), func(rec Record, _ int) (*Record, bool) {
		return &rec, rec.UserID == userID
	})
	s.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID.String() < owned[j].ID.String()
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

func (s *MemoryStore) Update(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[rec.ID]
	if !ok || existing.UserID != rec.UserID {
		return notFound(rec.ID)
	}
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = nowFunc()
	s.records[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.UserID != userID {
		return notFound(id)
	}
	delete(s.records, id)
	return nil
}
