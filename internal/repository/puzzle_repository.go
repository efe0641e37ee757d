package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"fusion_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

// currentPuzzleKey 当前谜题单例，与日期无关
const currentPuzzleKey = "daily_puzzle"

type PuzzleRepository struct {
	Redis *redis.Client
}

func NewPuzzleRepository(rdb *redis.Client) *PuzzleRepository {
	return &PuzzleRepository{Redis: rdb}
}

// GetCurrent 没有当前谜题时返回 nil, nil
func (r *PuzzleRepository) GetCurrent(ctx context.Context) (*model.Puzzle, error) {
	data, err := r.Redis.Get(ctx, currentPuzzleKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current puzzle: %w", err)
	}

	var puzzle model.Puzzle
	if err := json.Unmarshal(data, &puzzle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal current puzzle: %w", err)
	}
	return &puzzle, nil
}

// SetCurrent 覆盖写入，并发触发时后写者生效
func (r *PuzzleRepository) SetCurrent(ctx context.Context, puzzle *model.Puzzle) error {
	data, err := json.Marshal(puzzle)
	if err != nil {
		return fmt.Errorf("failed to marshal puzzle: %w", err)
	}
	if err := r.Redis.Set(ctx, currentPuzzleKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set current puzzle: %w", err)
	}
	return nil
}
