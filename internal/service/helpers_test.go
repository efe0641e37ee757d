package service

import (
	"context"
	"fusion_backend/internal/model"
	"fusion_backend/internal/repository"
	"fusion_backend/pkg/database"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "fusion.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testPuzzle() *model.Puzzle {
	return &model.Puzzle{
		EntityA:  "Ahri",
		EntityB:  "Yone",
		Theme:    "Arcane",
		ImageURL: "https://cdn.example.com/fusion-2024-01-01.png",
		Date:     "2024-01-01",
	}
}

func storeCurrent(t *testing.T, puzzles *repository.PuzzleRepository, puzzle *model.Puzzle) {
	t.Helper()
	require.NoError(t, puzzles.SetCurrent(context.Background(), puzzle))
}
