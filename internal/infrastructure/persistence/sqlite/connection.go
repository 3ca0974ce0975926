// Package sqlite stores the pane event journal in an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver (pure Go)
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite WASM binary

	"github.com/bnema/sashes/internal/logging"
)

// NewConnection opens the journal database, creating its directory, and
// applies pragmas and pending migrations.
func NewConnection(ctx context.Context, dbPath string) (*sql.DB, error) {
	const dbDirPerm = 0o750
	log := logging.FromContext(ctx)

	if dbPath == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}

	// The data dir may not exist yet on first run.
	if err := os.MkdirAll(filepath.Dir(dbPath), dbDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pool limits must be set before the first query opens a connection.
	configurePool(db)

	// sql.Open is lazy; ping so a bad path fails here and not on the
	// first recorded event.
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("journal database ready")

	return db, nil
}

// applyPragmas tunes SQLite for an append-mostly event log.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",   // readers (sashes journal) never block the recorder
		"PRAGMA synchronous = NORMAL", // safe in WAL mode
		"PRAGMA temp_store = MEMORY",  // temp tables for ORDER BY stay in RAM
		"PRAGMA busy_timeout = 5000",  // a second sashes process waits instead of failing
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	return nil
}

// configurePool keeps a single long-lived connection.
//
// SQLite allows one writer at a time, and the journal is opened once per
// process and closed on exit, so connections never need to be recycled.
func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(1)    // single writer
	db.SetMaxIdleConns(1)    // keep it warm between events
	db.SetConnMaxLifetime(0) // never expire
	db.SetConnMaxIdleTime(0) // never close while idle
}

// Close closes the database connection gracefully.
func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
