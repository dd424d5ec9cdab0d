package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sandevgo/netnavi/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(context.Background(), t.TempDir()+"/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTurnsRepo_AppendAndRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewTurnsRepo(newTestDB(t))

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	turns := []core.Turn{
		{Role: core.RoleUser, Text: "おはよう", Timestamp: base},
		{Role: core.RoleModel, Text: "おはようございます、オペレーター。", Timestamp: base.Add(time.Second)},
		{Role: core.RoleUser, Text: "今日の予定は？", Timestamp: base.Add(2 * time.Second)},
	}
	for _, turn := range turns {
		require.NoError(t, repo.AppendTurn(ctx, turn))
	}

	got, err := repo.RecentTurns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Chronological order, oldest first.
	assert.Equal(t, "おはよう", got[0].Text)
	assert.Equal(t, core.RoleUser, got[0].Role)
	assert.Equal(t, "今日の予定は？", got[2].Text)

	// Limit keeps the most recent turns.
	got, err = repo.RecentTurns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "おはようございます、オペレーター。", got[0].Text)
	assert.Equal(t, "今日の予定は？", got[1].Text)
}

func TestTurnsRepo_Empty(t *testing.T) {
	repo := NewTurnsRepo(newTestDB(t))

	got, err := repo.RecentTurns(context.Background(), 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoriesRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoriesRepo(newTestDB(t))

	saved, err := repo.SaveFact(ctx, core.MemoryFact{Content: "likes coffee", Category: "hobby"})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, "hobby", saved.Category)

	facts, err := repo.RecentFacts(ctx, 50)
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "likes coffee", facts[0].Content)
	assert.Equal(t, "hobby", facts[0].Category)
}

func TestMemoriesRepo_RecencyOrderAndDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoriesRepo(newTestDB(t))

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	_, err := repo.SaveFact(ctx, core.MemoryFact{Content: "older fact", CreatedAt: base})
	require.NoError(t, err)
	_, err = repo.SaveFact(ctx, core.MemoryFact{Content: "newer fact", CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)

	facts, err := repo.RecentFacts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "newer fact", facts[0].Content)

	all, err := repo.RecentFacts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, "newer fact", all[0].Content)
	// Missing category falls back to general.
	assert.Equal(t, "general", all[0].Category)
}
