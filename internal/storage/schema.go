package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// The whole engine state is one versioned JSON snapshot, written
		// through on every mutation and rehydrated once at startup.
		`CREATE TABLE IF NOT EXISTS state (
			key TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			data TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		// Append-only audit of completion events. Not authoritative; the
		// snapshot is. Powers activity stats and debugging.
		`CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			node_id TEXT NOT NULL,
			sub_node_id TEXT NOT NULL,
			task_idx INTEGER NOT NULL,
			completed_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_session_id_completed_at ON completions(session_id, completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_completed_at ON completions(completed_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
