package repository

import (
	"context"

	"github.com/bnema/sashes/internal/domain/entity"
)

// JournalEntry is one stored lifecycle event.
type JournalEntry struct {
	Seq   int64            `json:"seq"`
	Event entity.PaneEvent `json:"event"`
}

// JournalFilter narrows a journal listing. Zero fields match everything.
type JournalFilter struct {
	PaneID string
	Type   entity.EventType
	// Limit caps the number of entries, newest first when set.
	Limit int
}

// JournalRepository persists emitted pane events in emission order.
type JournalRepository interface {
	// Record appends an event.
	Record(ctx context.Context, event entity.PaneEvent) error
	// List returns matching entries in emission order.
	List(ctx context.Context, filter JournalFilter) ([]JournalEntry, error)
	Count(ctx context.Context) (int64, error)
	// Clear deletes every entry and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}
