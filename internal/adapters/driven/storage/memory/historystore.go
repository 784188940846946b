// Package memory provides in-memory storage adapters, used by tests and by
// deployments that do not persist history between runs.
package memory

import (
	"context"
	"sync"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Entries are kept most recent first, deduplicated by ID and bounded to
// domain.HistoryLimit.
type HistoryStore struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
}

// NewHistoryStore creates an empty in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record inserts the entry at the front under one critical section:
// dedup, prepend and truncation are atomic together.
func (s *HistoryStore) Record(_ context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.HistoryEntry, 0, len(s.entries)+1)
	kept = append(kept, entry)
	for _, e := range s.entries {
		if e.ID == entry.ID {
			continue
		}
		kept = append(kept, e)
	}

	if len(kept) > domain.HistoryLimit {
		kept = kept[:domain.HistoryLimit]
	}
	s.entries = kept
	return nil
}

// Recent returns up to limit entries, most recent first.
func (s *HistoryStore) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]domain.HistoryEntry, limit)
	copy(out, s.entries[:limit])
	return out, nil
}

// Clear removes all entries.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
