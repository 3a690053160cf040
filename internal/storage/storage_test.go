package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*StateRepo, *CompletionRepo) {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewStateRepo(db), NewCompletionRepo(db)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, db.Close())

	// Reopening runs migrations again against the existing schema.
	db, err = Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestStateRepoSaveAndLoad(t *testing.T) {
	states, _ := openTestDB(t)
	ctx := context.Background()

	snap, err := states.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap, "fresh db should have no snapshot")

	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, states.Save(ctx, 1, []byte(`{"version":1}`), at))

	snap, err = states.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 1, snap.Version)
	assert.JSONEq(t, `{"version":1}`, string(snap.Data))
}

func TestStateRepoSaveReplacesPrevious(t *testing.T) {
	states, _ := openTestDB(t)
	ctx := context.Background()

	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, states.Save(ctx, 1, []byte(`{"version":1,"n":1}`), at))
	require.NoError(t, states.Save(ctx, 1, []byte(`{"version":1,"n":2}`), at.Add(time.Hour)))

	snap, err := states.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.JSONEq(t, `{"version":1,"n":2}`, string(snap.Data), "only the latest snapshot survives")
}

func TestCompletionRepoAuditTrail(t *testing.T) {
	_, completions := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := completions.Insert(ctx, CompletionInsert{
			SessionID:   "s1",
			NodeID:      "n1",
			SubNodeID:   "n1-a",
			TaskIndex:   i,
			CompletedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := completions.Insert(ctx, CompletionInsert{
		SessionID: "s2", NodeID: "n1", SubNodeID: "n1-a", TaskIndex: 0,
		CompletedAt: base.Add(48 * time.Hour),
	})
	require.NoError(t, err)

	list, err := completions.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 0, list[0].TaskIndex, "rows ordered by completion time")
	assert.Equal(t, 2, list[2].TaskIndex)

	n, err := completions.CountSince(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, n, "counts span sessions")
}
