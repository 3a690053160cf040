package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const stateKey = "engine"

type StateRepo struct {
	db *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

// Save writes the single snapshot record, replacing any previous one.
func (r *StateRepo) Save(ctx context.Context, version int, data []byte, at time.Time) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, stateKey); err != nil {
			return fmt.Errorf("state delete: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO state (key, version, data, updated_at) VALUES (?, ?, ?, ?)
		`, stateKey, version, string(data), at); err != nil {
			return fmt.Errorf("state insert: %w", err)
		}
		return nil
	})
}

// Load returns the persisted snapshot, or nil when none exists yet.
func (r *StateRepo) Load(ctx context.Context) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT version, data, updated_at FROM state WHERE key = ?`, stateKey)

	var (
		version   int
		data      string
		updatedAt time.Time
	)
	if err := row.Scan(&version, &data, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("state load: %w", err)
	}
	return &Snapshot{Version: version, Data: []byte(data), UpdatedAt: updatedAt}, nil
}
