package service

import (
	"context"
	"fusion_backend/internal/model"
	"fusion_backend/internal/repository"
	"fusion_backend/internal/util"
	"time"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 100
)

type HistoryService struct {
	history *repository.HistoryRepository
	puzzles *repository.PuzzleRepository
	stats   *StatsService
	now     func() time.Time
}

func NewHistoryService(history *repository.HistoryRepository, puzzles *repository.PuzzleRepository, stats *StatsService) *HistoryService {
	return &HistoryService{history: history, puzzles: puzzles, stats: stats, now: time.Now}
}

// List 返回往期谜题和通关人数。当前谜题仍在进行中，不出现在列表里
func (s *HistoryService) List(ctx context.Context, limit int) ([]model.HistoryItem, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	before := util.PuzzleDate(s.now())
	current, err := s.puzzles.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if current != nil && current.Date < before {
		before = current.Date
	}

	records, err := s.history.ListBefore(ctx, before, limit)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(records))
	for _, r := range records {
		dates = append(dates, r.Date)
	}
	totals, err := s.stats.TotalsFor(ctx, dates)
	if err != nil {
		return nil, err
	}

	items := make([]model.HistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, model.HistoryItem{
			Date:         r.Date,
			EntityA:      r.EntityA,
			EntityB:      r.EntityB,
			Theme:        r.Theme,
			ImageURL:     r.ImageURL,
			TotalSolvers: totals[r.Date],
		})
	}
	return items, nil
}
