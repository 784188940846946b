package driven

import (
	"context"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

// HistoryStore persists the bounded selection history for the current user.
type HistoryStore interface {
	// Record inserts an entry at the front, removing any older entry with
	// the same ID and truncating to domain.HistoryLimit. The whole update
	// is atomic with respect to concurrent Record calls.
	Record(ctx context.Context, entry domain.HistoryEntry) error

	// Recent returns up to limit entries, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
