package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-importer/internal/pkg/common"
)

const modelRecipeJSON = `{
	"title": "Weeknight Fried Rice",
	"description": "Fast fried rice with leftovers.",
	"author": "Test Kitchen",
	"cuisine": "Chinese",
	"course": ["dinner"],
	"tags": ["quick", "wok"],
	"prepTime": 10,
	"cookTime": 15,
	"totalTime": 25,
	"servings": 2,
	"ingredients": [
		{"name": "cooked rice", "quantity": 3, "unit": "cups", "preparation": "chilled", "optional": false},
		{"name": "scallions", "quantity": 2, "unit": "", "preparation": "sliced", "optional": true}
	],
	"steps": [
		{"stepNumber": 7, "instruction": "Heat the wok.", "duration": 2, "tip": "Get it smoking hot."},
		{"stepNumber": 8, "instruction": "Add rice and stir-fry.", "duration": null, "tip": ""}
	],
	"chefNotes": "Day-old rice works best.",
	"requiredEquipment": ["wok"]
}`

func TestFromModelJSON(t *testing.T) {
	r, err := FromModelJSON(modelRecipeJSON, "https://example.com/fried-rice")
	require.NoError(t, err)

	assert.Equal(t, "Weeknight Fried Rice", r.Title)
	assert.Equal(t, "weeknight-fried-rice", r.Slug)
	assert.Equal(t, "Test Kitchen", r.Author)
	assert.Equal(t, "Chinese", r.Cuisine)
	assert.Equal(t, []common.Course{common.CourseDinner}, r.Course)
	assert.Equal(t, []string{"quick", "wok"}, r.Tags)
	assert.Equal(t, 10, r.PrepTime)
	assert.Equal(t, 15, r.CookTime)
	assert.Equal(t, 25, r.TotalTime)
	assert.Equal(t, 2, r.Servings)
	assert.Equal(t, "Day-old rice works best.", r.ChefNotes)
	assert.Equal(t, []string{"wok"}, r.RequiredEquipment)

	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "cooked rice", r.Ingredients[0].Name)
	require.NotNil(t, r.Ingredients[0].Quantity)
	assert.Equal(t, 3.0, *r.Ingredients[0].Quantity)
	assert.Equal(t, "chilled", r.Ingredients[0].Preparation)
	assert.False(t, r.Ingredients[0].Optional)
	assert.Equal(t, common.CategoryGrain, r.Ingredients[0].Category)
	assert.True(t, r.Ingredients[1].Optional)
	assert.Equal(t, common.CategoryVegetable, r.Ingredients[1].Category)

	// 模型給的 stepNumber 一律捨棄，重新依序編號
	require.Len(t, r.Steps, 2)
	assert.Equal(t, 1, r.Steps[0].StepNumber)
	assert.Equal(t, 2, r.Steps[1].StepNumber)
	require.NotNil(t, r.Steps[0].Duration)
	assert.Equal(t, 2, *r.Steps[0].Duration)
	assert.Equal(t, "Get it smoking hot.", r.Steps[0].Tip)
	assert.Nil(t, r.Steps[1].Duration)
	assert.True(t, r.Steps[1].IsActive)

	assert.Equal(t, common.DifficultyEasy, r.Difficulty)
	assert.True(t, len(r.ID) > 0)
}

// 模型偶爾輸出未加引號的鍵，補引號後重試
func TestFromModelJSONUnquotedKeys(t *testing.T) {
	r, err := FromModelJSON(`{title: "Quick Soup", servings: 3}`, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "Quick Soup", r.Title)
	assert.Equal(t, 3, r.Servings)
}

func TestFromModelJSONInvalid(t *testing.T) {
	_, err := FromModelJSON(`this is not json at all`, "https://example.com")
	assert.Error(t, err)
}

// 模型回傳的 totalTime 大於零就信任，不跟 prep+cook 對帳
func TestFromModelJSONTotalTimeTrusted(t *testing.T) {
	r, err := FromModelJSON(`{"title": "T", "prepTime": 10, "cookTime": 20, "totalTime": 200}`, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, 200, r.TotalTime)
	assert.Equal(t, common.DifficultyProject, r.Difficulty)
}

func TestFromModelJSONTotalTimeFallback(t *testing.T) {
	r, err := FromModelJSON(`{"title": "T", "prepTime": 10, "cookTime": 20, "totalTime": 0}`, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, 30, r.TotalTime)
}

// 字串形式的食材條目沿用結構化資料的拆解規則
func TestFromModelJSONStringIngredients(t *testing.T) {
	r, err := FromModelJSON(`{"title": "T", "ingredients": ["2 cups flour", "salt"]}`, "https://example.com")
	require.NoError(t, err)

	require.Len(t, r.Ingredients, 2)
	require.NotNil(t, r.Ingredients[0].Quantity)
	assert.Equal(t, 2.0, *r.Ingredients[0].Quantity)
	assert.Equal(t, "flour", r.Ingredients[0].Name)
	assert.Equal(t, "salt", r.Ingredients[1].Name)
	assert.Nil(t, r.Ingredients[1].Quantity)
}

func TestFromModelJSONSkipsEmptyEntries(t *testing.T) {
	r, err := FromModelJSON(`{
		"title": "T",
		"ingredients": [{"name": ""}, "  ", {"name": "onion"}],
		"steps": [{"instruction": ""}, {"instruction": "Cook."}]
	}`, "https://example.com")
	require.NoError(t, err)

	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, "onion", r.Ingredients[0].Name)
	require.Len(t, r.Steps, 1)
	assert.Equal(t, "Cook.", r.Steps[0].Instruction)
	assert.Equal(t, 1, r.Steps[0].StepNumber)
}
