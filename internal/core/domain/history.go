package domain

import "time"

// HistoryLimit bounds the stored selection history.
const HistoryLimit = 20

// HistoryEntry is one past selection, most recent first in storage.
// Entries are deduplicated by ID on insert.
type HistoryEntry struct {
	ID          string     `json:"id"`
	DisplayText string     `json:"text"`
	Kind        SourceKind `json:"kind"`
	SelectedAt  time.Time  `json:"selected_at"`
}

// HistoryEntryFrom builds a history entry from an accepted result.
func HistoryEntryFrom(r SearchResult, at time.Time) HistoryEntry {
	return HistoryEntry{
		ID:          r.ID,
		DisplayText: r.DisplayText,
		Kind:        r.Kind,
		SelectedAt:  at,
	}
}
