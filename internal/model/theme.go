package model

import "strings"

// Themes 皮肤系列（固定枚举）
var Themes = []string{
	"Arcane",
	"Star Guardian",
	"PROJECT",
	"Pulsefire",
	"High Noon",
	"Spirit Blossom",
	"Blood Moon",
	"K/DA",
	"True Damage",
	"Battle Academia",
	"Pool Party",
	"Odyssey",
	"Dark Star",
	"Cosmic",
	"Elderwood",
	"Mecha Kingdoms",
	"Lunar Revel",
	"Snowdown",
	"Bewitching",
	"Coven",
	"Empyrean",
	"Soul Fighter",
	"Anima Squad",
	"Winterblessed",
	"Infernal",
	"Arcade",
	"Space Groove",
	"Crime City",
	"Sentinel",
	"Porcelain",
}

func IsTheme(theme string) bool {
	for _, t := range Themes {
		if t == theme {
			return true
		}
	}
	return false
}

// NormalizeGuess 小写并去掉首尾空白，答案比较两侧都要经过它
func NormalizeGuess(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
