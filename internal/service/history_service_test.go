package service

import (
	"context"
	"fusion_backend/internal/model"
	"fusion_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_List(t *testing.T) {
	_, rdb := setupRedis(t)
	ctx := context.Background()

	puzzles := repository.NewPuzzleRepository(rdb)
	history := repository.NewHistoryRepository(setupDB(t))
	stats := NewStatsService(repository.NewStatsRepository(rdb, 0), puzzles)

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		p := testPuzzle()
		p.Date = date
		_, err := history.Append(ctx, p)
		require.NoError(t, err)
	}
	require.NoError(t, stats.Record(ctx, "2024-01-01", 4))
	require.NoError(t, stats.Record(ctx, "2024-01-01", 7))

	current := testPuzzle()
	current.Date = "2024-01-03"
	storeCurrent(t, puzzles, current)

	svc := NewHistoryService(history, puzzles, stats)
	svc.now = func() time.Time { return time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC) }

	items, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2024-01-02", items[0].Date)
	assert.Equal(t, int64(0), items[0].TotalSolvers)
	assert.Equal(t, model.HistoryItem{
		Date:         "2024-01-01",
		EntityA:      "Ahri",
		EntityB:      "Yone",
		Theme:        "Arcane",
		ImageURL:     current.ImageURL,
		TotalSolvers: 2,
	}, items[1])

	items, err = svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
