package recipe

import (
	"recipe-importer/internal/pkg/common"
)

// ClassifyDifficulty 依總時間（分鐘）分級。邊界值歸入較低的級別（30 分鐘是 easy 不是 medium）。
func ClassifyDifficulty(totalMinutes int) common.Difficulty {
	switch {
	case totalMinutes <= 30:
		return common.DifficultyEasy
	case totalMinutes <= 60:
		return common.DifficultyMedium
	case totalMinutes <= 180:
		return common.DifficultyAdvanced
	default:
		return common.DifficultyProject
	}
}

// TechniqueLevelFor 由難度推導技巧等級，無其他輸入
func TechniqueLevelFor(d common.Difficulty) common.TechniqueLevel {
	switch d {
	case common.DifficultyEasy:
		return common.TechniqueLevelBasic
	case common.DifficultyMedium:
		return common.TechniqueLevelIntermediate
	case common.DifficultyAdvanced:
		return common.TechniqueLevelAdvanced
	case common.DifficultyProject:
		return common.TechniqueLevelExpert
	default:
		return common.TechniqueLevelBasic
	}
}
