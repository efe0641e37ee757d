package repository

import (
	"context"
	"errors"
	"fusion_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	DB *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

// Append 追加历史记录。该日期已有记录时不覆盖，返回 false
func (r *HistoryRepository) Append(ctx context.Context, puzzle *model.Puzzle) (bool, error) {
	record := model.NewPuzzleRecord(puzzle)
	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *HistoryRepository) GetByDate(ctx context.Context, date string) (*model.PuzzleRecord, error) {
	var record model.PuzzleRecord
	err := r.DB.WithContext(ctx).Where("date = ?", date).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListBefore 按日期倒序返回早于 before 的记录
func (r *HistoryRepository) ListBefore(ctx context.Context, before string, limit int) ([]model.PuzzleRecord, error) {
	var records []model.PuzzleRecord
	err := r.DB.WithContext(ctx).
		Where("date < ?", before).
		Order("date desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}
