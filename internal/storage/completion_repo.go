package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type CompletionRepo struct {
	db *sql.DB
}

func NewCompletionRepo(db *sql.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

type CompletionInsert struct {
	SessionID   string
	NodeID      string
	SubNodeID   string
	TaskIndex   int
	CompletedAt time.Time
}

func (r *CompletionRepo) Insert(ctx context.Context, in CompletionInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO completions (session_id, node_id, sub_node_id, task_idx, completed_at)
		VALUES (?, ?, ?, ?, ?)
	`, in.SessionID, in.NodeID, in.SubNodeID, in.TaskIndex, in.CompletedAt)
	if err != nil {
		return 0, fmt.Errorf("completion insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("completion last insert id: %w", err)
	}
	return id, nil
}

func (r *CompletionRepo) ListBySession(ctx context.Context, sessionID string) ([]Completion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, node_id, sub_node_id, task_idx, completed_at
		FROM completions
		WHERE session_id = ?
		ORDER BY completed_at ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		if err := rows.Scan(&c.ID, &c.SessionID, &c.NodeID, &c.SubNodeID, &c.TaskIndex, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}

// CountSince counts completion events at or after the given instant across
// all sessions.
func (r *CompletionRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM completions WHERE completed_at >= ?`, since)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("completion count: %w", err)
	}
	return n, nil
}
