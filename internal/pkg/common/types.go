package common

import (
	"time"
)

// Recipe 標準化食譜記錄
// 注意：欄位名稱、型別、巢狀結構、陣列都要與前端 recipe 契約一模一樣
type Recipe struct {
	ID                  string       `json:"id"`
	Slug                string       `json:"slug"`
	Title               string       `json:"title"`
	Author              string       `json:"author,omitempty"`
	Description         string       `json:"description,omitempty"`
	Cuisine             string       `json:"cuisine,omitempty"`
	Course              []Course     `json:"course"`
	Tags                []string     `json:"tags,omitempty"`
	PrepTime            int          `json:"prepTime"`  // 分鐘
	CookTime            int          `json:"cookTime"`  // 分鐘
	TotalTime           int          `json:"totalTime"` // 分鐘
	Difficulty          Difficulty   `json:"difficulty"`
	TechniqueLevel      TechniqueLevel `json:"techniqueLevel"`
	Servings            int          `json:"servings"`
	Source              RecipeSource `json:"source"`
	SourceURL           string       `json:"sourceUrl"`
	Ingredients         []Ingredient `json:"ingredients"`
	Steps               []Step       `json:"steps"`
	ChefNotes           string       `json:"chefNotes,omitempty"`
	RequiredEquipment   []string     `json:"requiredEquipment,omitempty"`
	ExtractedTechniques []Technique  `json:"extractedTechniques,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
	Rating              int          `json:"rating"`
	TimesMade           int          `json:"timesMade"`
	IsFavorite          bool         `json:"isFavorite"`
}

// RecipeSource 食譜來源資訊
type RecipeSource struct {
	Type     string `json:"type"` // 目前固定為 website
	Name     string `json:"name"`
	Approved bool   `json:"approved"`
}

// Ingredient 食材
type Ingredient struct {
	ID             string             `json:"id"` // 1-based 位置，字串型別
	Name           string             `json:"name"`
	Quantity       *float64           `json:"quantity"` // 允許 null
	Unit           string             `json:"unit"`
	Preparation    string             `json:"preparation,omitempty"`
	Optional       bool               `json:"optional"`
	NormalizedName string             `json:"normalizedName"`
	Category       IngredientCategory `json:"category"`
}

// Step 食譜步驟
type Step struct {
	StepNumber  int    `json:"stepNumber"` // 1-based，攤平後重新編號
	Instruction string `json:"instruction"`
	Duration    *int   `json:"duration,omitempty"` // 分鐘，允許缺省
	Tip         string `json:"tip,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// Technique 烹飪技巧（僅技巧白名單來源才會附帶）
type Technique struct {
	Title              string            `json:"title"`
	Category           TechniqueCategory `json:"category"`
	Description        string            `json:"description"`
	WhyItWorks         string            `json:"whyItWorks,omitempty"`
	CommonMistakes     []string          `json:"commonMistakes,omitempty"`
	KeyTips            []string          `json:"keyTips,omitempty"`
	RelatedIngredients []string          `json:"relatedIngredients,omitempty"`
}

// IngredientCategory 食材分類
type IngredientCategory string

const (
	CategoryProtein   IngredientCategory = "protein"
	CategoryDairy     IngredientCategory = "dairy"
	CategoryVegetable IngredientCategory = "vegetable"
	CategoryFruit     IngredientCategory = "fruit"
	CategoryGrain     IngredientCategory = "grain"
	CategorySpice     IngredientCategory = "spice"
	CategoryOilFat    IngredientCategory = "oil_fat"
	CategoryCondiment IngredientCategory = "condiment"
	CategoryLiquid    IngredientCategory = "liquid"
	CategoryOther     IngredientCategory = "other"
)

// Difficulty 難度分級
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyAdvanced Difficulty = "advanced"
	DifficultyProject  Difficulty = "project"
)

// TechniqueLevel 技巧等級（由難度推導）
type TechniqueLevel string

const (
	TechniqueLevelBasic        TechniqueLevel = "basic"
	TechniqueLevelIntermediate TechniqueLevel = "intermediate"
	TechniqueLevelAdvanced     TechniqueLevel = "advanced"
	TechniqueLevelExpert       TechniqueLevel = "expert"
)

// Course 餐別
type Course string

const (
	CourseBreakfast Course = "breakfast"
	CourseLunch     Course = "lunch"
	CourseDinner    Course = "dinner"
	CourseSnack     Course = "snack"
	CourseDessert   Course = "dessert"
)

// TechniqueCategory 技巧分類
type TechniqueCategory string

const (
	TechniqueKnifeSkills    TechniqueCategory = "knife_skills"
	TechniqueHeatControl    TechniqueCategory = "heat_control"
	TechniqueSeasoning      TechniqueCategory = "seasoning"
	TechniqueSauceMaking    TechniqueCategory = "sauce_making"
	TechniqueBakingPastry   TechniqueCategory = "baking_pastry"
	TechniqueMeatPoultry    TechniqueCategory = "meat_poultry"
	TechniqueSeafood        TechniqueCategory = "seafood"
	TechniqueVegetables     TechniqueCategory = "vegetables_produce"
	TechniqueTiming         TechniqueCategory = "timing_efficiency"
	TechniqueFoodScience    TechniqueCategory = "food_science"
)

// TechniqueCategories 固定的十種技巧分類，提示詞與回應驗證共用同一份清單
var TechniqueCategories = []TechniqueCategory{
	TechniqueKnifeSkills,
	TechniqueHeatControl,
	TechniqueSeasoning,
	TechniqueSauceMaking,
	TechniqueBakingPastry,
	TechniqueMeatPoultry,
	TechniqueSeafood,
	TechniqueVegetables,
	TechniqueTiming,
	TechniqueFoodScience,
}

// IsValidTechniqueCategory 檢查分類是否在固定清單內
func IsValidTechniqueCategory(c TechniqueCategory) bool {
	for _, v := range TechniqueCategories {
		if v == c {
			return true
		}
	}
	return false
}
