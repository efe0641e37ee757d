package service

import (
	"bytes"
	"context"
	"fmt"
	"fusion_backend/internal/model"
	"fusion_backend/internal/repository"
	"fusion_backend/internal/util"
	"fusion_backend/pkg/logger"

	"go.uber.org/zap"
)

type PublishService struct {
	storage *StorageService
	puzzles *repository.PuzzleRepository
	history *repository.HistoryRepository
}

func NewPublishService(storage *StorageService, puzzles *repository.PuzzleRepository, history *repository.HistoryRepository) *PublishService {
	return &PublishService{storage: storage, puzzles: puzzles, history: history}
}

// Publish 上传图片 → 构造谜题 → 写当前谜题 → 追加历史。
// 后两步与上传不在同一事务，失败时图片会残留，不做清理。
func (s *PublishService) Publish(ctx context.Context, image *GeneratedImage, date string, a, b model.Entity, theme string) (*model.Puzzle, error) {
	contentType := image.ContentType
	if contentType == "" {
		contentType = util.MimePNG
	}

	imageURL, err := s.storage.Upload(ctx, util.PuzzleImageName(date, contentType), bytes.NewReader(image.Data), int64(len(image.Data)), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	puzzle := &model.Puzzle{
		EntityA:  a.Name,
		EntityB:  b.Name,
		Theme:    theme,
		ImageURL: imageURL,
		Date:     date,
	}

	if err := s.puzzles.SetCurrent(ctx, puzzle); err != nil {
		return nil, fmt.Errorf("failed to set current puzzle: %w", err)
	}

	created, err := s.history.Append(ctx, puzzle)
	if err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}
	if !created {
		logger.Log.Warn("History record already exists, keeping the first one", zap.String("date", date))
	}

	return puzzle, nil
}
