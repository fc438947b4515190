package recipe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"recipe-importer/internal/pkg/common"
)

// 邊界值歸入較低的級別：30 是 easy、60 是 medium、180 是 advanced
func TestClassifyDifficultyBoundaries(t *testing.T) {
	cases := []struct {
		minutes  int
		expected common.Difficulty
	}{
		{0, common.DifficultyEasy},
		{15, common.DifficultyEasy},
		{30, common.DifficultyEasy},
		{31, common.DifficultyMedium},
		{60, common.DifficultyMedium},
		{61, common.DifficultyAdvanced},
		{180, common.DifficultyAdvanced},
		{181, common.DifficultyProject},
		{600, common.DifficultyProject},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_minutes", tc.minutes), func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyDifficulty(tc.minutes))
		})
	}
}

func TestTechniqueLevelFor(t *testing.T) {
	assert.Equal(t, common.TechniqueLevelBasic, TechniqueLevelFor(common.DifficultyEasy))
	assert.Equal(t, common.TechniqueLevelIntermediate, TechniqueLevelFor(common.DifficultyMedium))
	assert.Equal(t, common.TechniqueLevelAdvanced, TechniqueLevelFor(common.DifficultyAdvanced))
	assert.Equal(t, common.TechniqueLevelExpert, TechniqueLevelFor(common.DifficultyProject))
}
