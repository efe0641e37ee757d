package service

import (
	"context"
	"fusion_backend/internal/model"
	"fusion_backend/internal/repository"
	"fusion_backend/internal/util"
	"fusion_backend/pkg/monitoring"
)

type StatsService struct {
	stats   *repository.StatsRepository
	puzzles *repository.PuzzleRepository
}

func NewStatsService(stats *repository.StatsRepository, puzzles *repository.PuzzleRepository) *StatsService {
	return &StatsService{stats: stats, puzzles: puzzles}
}

// Record 只在真正通关时调用，放弃不计入
func (s *StatsService) Record(ctx context.Context, date string, attempts int) error {
	if attempts < 1 {
		return util.ErrInvalidAttempts
	}
	if !util.ValidDate(date) {
		return util.ErrInvalidDate
	}
	if err := s.stats.Increment(ctx, date, attempts); err != nil {
		return err
	}
	monitoring.Completions.Inc()
	return nil
}

// Read 没有数据时返回空分布
func (s *StatsService) Read(ctx context.Context, date string) (*model.AttemptStats, error) {
	if !util.ValidDate(date) {
		return nil, util.ErrInvalidDate
	}
	distribution, total, err := s.stats.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	stats := model.NewAttemptStats(date)
	stats.Distribution = distribution
	stats.Total = total
	return stats, nil
}

func (s *StatsService) ReadCurrent(ctx context.Context) (*model.AttemptStats, error) {
	puzzle, err := s.puzzles.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if puzzle == nil {
		return nil, util.ErrNoActivePuzzle
	}
	return s.Read(ctx, puzzle.Date)
}

func (s *StatsService) TotalsFor(ctx context.Context, dates []string) (map[string]int64, error) {
	return s.stats.Totals(ctx, dates)
}
