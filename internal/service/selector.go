package service

import (
	"fusion_backend/internal/model"
	"fusion_backend/internal/util"
	"math/rand"
)

// SelectPair 均匀随机选两个不同角色和一个主题。
// 第二个角色重复时重新抽取，直到与第一个不同。
func SelectPair(rng *rand.Rand, roster []model.Entity, themes []string) (model.Entity, model.Entity, string, error) {
	if len(roster) < 2 {
		return model.Entity{}, model.Entity{}, "", util.ErrRosterTooSmall
	}
	if len(themes) == 0 {
		return model.Entity{}, model.Entity{}, "", util.ErrNoThemes
	}

	a := roster[rng.Intn(len(roster))]
	b := roster[rng.Intn(len(roster))]
	for b.ID == a.ID {
		b = roster[rng.Intn(len(roster))]
	}

	theme := themes[rng.Intn(len(themes))]
	return a, b, theme, nil
}
