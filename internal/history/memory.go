package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a simple in-process history store for local/dev use.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	lastAt  time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, original, translated string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Timestamps are monotonically non-decreasing per insertion order.
	now := time.Now().UTC()
	if !now.After(s.lastAt) {
		now = s.lastAt.Add(time.Microsecond)
	}
	s.lastAt = now

	s.records = append(s.records, Record{
		ID:         uuid.NewString(),
		Original:   original,
		Translated: translated,
		CreatedAt:  now,
	})
	return nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		record := s.records[i]
		if record.Original == "" || record.Translated == "" {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *MemoryStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

func (s *MemoryStore) Close() error { return nil }
