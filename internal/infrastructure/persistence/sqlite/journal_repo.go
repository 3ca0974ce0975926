package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/sashes/internal/application/port"
	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/domain/repository"
	"github.com/bnema/sashes/internal/logging"
)

type journalRepo struct {
	db *sql.DB
}

var _ port.EventRecorder = (*journalRepo)(nil)

// NewJournalRepository stores events in the pane_events table.
func NewJournalRepository(db *sql.DB) repository.JournalRepository {
	return &journalRepo{db: db}
}

func (r *journalRepo) Record(ctx context.Context, event entity.PaneEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	logging.FromContext(ctx).Trace().
		Str("event_type", string(event.Type)).
		Str("pane_id", event.Pane.ID).
		Msg("journaling event")

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO pane_events (type, pane_id, emitted_at, payload) VALUES (?, ?, ?, ?)`,
		string(event.Type), event.Pane.ID, event.Timestamp, string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to journal %s for %q: %w", event.Type, event.Pane.ID, err)
	}
	return nil
}

func (r *journalRepo) List(ctx context.Context, filter repository.JournalFilter) ([]repository.JournalEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.PaneID != "" {
		where = append(where, "pane_id = ?")
		args = append(args, filter.PaneID)
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}

	query := "SELECT seq, payload FROM pane_events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if filter.Limit > 0 {
		// Newest entries, returned in emission order.
		query = "SELECT seq, payload FROM (" + query + " ORDER BY seq DESC LIMIT ?) ORDER BY seq ASC"
		args = append(args, filter.Limit)
	} else {
		query += " ORDER BY seq ASC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []repository.JournalEntry
	for rows.Next() {
		var (
			entry   repository.JournalEntry
			payload string
		)
		if err := rows.Scan(&entry.Seq, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &entry.Event); err != nil {
			return nil, fmt.Errorf("failed to decode journal entry %d: %w", entry.Seq, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *journalRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pane_events").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	return n, nil
}

func (r *journalRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM pane_events")
	if err != nil {
		return 0, fmt.Errorf("failed to clear journal: %w", err)
	}
	return res.RowsAffected()
}
