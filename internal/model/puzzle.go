package model

import (
	"fmt"
	"time"
)

// swagger:model Puzzle
type Puzzle struct {
	EntityA  string `json:"entityA"`
	EntityB  string `json:"entityB"`
	Theme    string `json:"theme"`
	ImageURL string `json:"imageUrl"`
	Date     string `json:"date"`
}

func (p *Puzzle) Validate() error {
	if p.EntityA == "" || p.EntityB == "" {
		return fmt.Errorf("puzzle entities must not be empty")
	}
	if p.EntityA == p.EntityB {
		return fmt.Errorf("puzzle entities must differ, got %q twice", p.EntityA)
	}
	if !IsTheme(p.Theme) {
		return fmt.Errorf("unknown theme %q", p.Theme)
	}
	if p.Date == "" {
		return fmt.Errorf("puzzle date must not be empty")
	}
	return nil
}

// PublicView 不包含答案，给首页使用
func (p *Puzzle) PublicView() PublicPuzzle {
	return PublicPuzzle{ImageURL: p.ImageURL, Date: p.Date}
}

func (p *Puzzle) Solution() Solution {
	return Solution{EntityA: p.EntityA, EntityB: p.EntityB, Theme: p.Theme}
}

// swagger:model PublicPuzzle
type PublicPuzzle struct {
	ImageURL string `json:"imageUrl"`
	Date     string `json:"date"`
}

// swagger:model Solution
type Solution struct {
	EntityA string `json:"entityA"`
	EntityB string `json:"entityB"`
	Theme   string `json:"theme"`
}

// PuzzleRecord 历史谜题归档，按日期只写一次
type PuzzleRecord struct {
	Date      string    `gorm:"primaryKey;type:varchar(10)" json:"date"`
	EntityA   string    `gorm:"type:varchar(64);not null" json:"entityA"`
	EntityB   string    `gorm:"type:varchar(64);not null" json:"entityB"`
	Theme     string    `gorm:"type:varchar(64);not null" json:"theme"`
	ImageURL  string    `gorm:"type:varchar(512);not null" json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PuzzleRecord) TableName() string {
	return "puzzle_records"
}

func NewPuzzleRecord(p *Puzzle) *PuzzleRecord {
	return &PuzzleRecord{
		Date:     p.Date,
		EntityA:  p.EntityA,
		EntityB:  p.EntityB,
		Theme:    p.Theme,
		ImageURL: p.ImageURL,
	}
}

func (r *PuzzleRecord) Puzzle() *Puzzle {
	return &Puzzle{
		EntityA:  r.EntityA,
		EntityB:  r.EntityB,
		Theme:    r.Theme,
		ImageURL: r.ImageURL,
		Date:     r.Date,
	}
}

// swagger:model HistoryItem
type HistoryItem struct {
	Date         string `json:"date"`
	EntityA      string `json:"entityA"`
	EntityB      string `json:"entityB"`
	Theme        string `json:"theme"`
	ImageURL     string `json:"imageUrl"`
	TotalSolvers int64  `json:"totalSolvers"`
}

// Entity 角色池中的一个可猜对象
type Entity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
