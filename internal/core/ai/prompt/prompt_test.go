package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-importer/internal/pkg/common"
)

func TestRenderFreeform(t *testing.T) {
	out, err := RenderFreeform(FreeformData{
		URL:  "https://example.com/best-pancakes",
		HTML: "<html><body>pancake page</body></html>",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "https://example.com/best-pancakes")
	assert.Contains(t, out, "<html><body>pancake page</body></html>")
	// 回應契約的關鍵欄位要在提示詞裡
	assert.Contains(t, out, `"prepTime"`)
	assert.Contains(t, out, `"stepNumber"`)
	assert.Contains(t, out, "breakfast, lunch, dinner, snack, dessert")
}

func TestRenderTechnique(t *testing.T) {
	out, err := RenderTechnique(TechniqueData{
		Title:      "Beef Wellington",
		URL:        "https://www.seriouseats.com/beef-wellington",
		Text:       "Chill the pastry between folds.",
		Categories: common.TechniqueCategories,
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Beef Wellington")
	assert.Contains(t, out, "https://www.seriouseats.com/beef-wellington")
	assert.Contains(t, out, "Chill the pastry between folds.")

	// 十種固定分類全數列在提示詞中
	for _, category := range common.TechniqueCategories {
		assert.Contains(t, out, "- "+string(category))
	}
}
