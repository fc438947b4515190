package recipe

import (
	"fmt"
	"strings"

	"recipe-importer/internal/pkg/common"
)

// FromModelJSON 將模型回傳的 JSON 物件字串轉成標準化食譜記錄。
// 模型輸出不保證合法 JSON：先原樣解析，失敗時補上未加引號的鍵再試一次。
func FromModelJSON(jsonText, sourceURL string) (*common.Recipe, error) {
	var node map[string]interface{}
	if err := common.ParseJSON(jsonText, &node); err != nil {
		// 模型偶爾輸出 {title: "..."} 這種未加引號的鍵
		if retryErr := common.ParseJSON(common.QuoteJSONKeys(jsonText), &node); retryErr != nil {
			return nil, fmt.Errorf("invalid recipe JSON: %w", err)
		}
	}

	r := &common.Recipe{
		Title:             stringValue(node["title"]),
		Description:       stringValue(node["description"]),
		Author:            parseAuthor(node["author"]),
		Cuisine:           firstStringValue(node["cuisine"]),
		Course:            parseCourses(node["course"]),
		Tags:              parseKeywords(node["tags"]),
		ChefNotes:         stringValue(node["chefNotes"]),
		RequiredEquipment: parseEquipment(node["requiredEquipment"]),
		SourceURL:         sourceURL,
	}

	r.PrepTime = intValue(node["prepTime"])
	r.CookTime = intValue(node["cookTime"])
	// 模型給的 totalTime 大於零就信任，否則退回 prep+cook 相加
	if t := intValue(node["totalTime"]); t > 0 {
		r.TotalTime = t
	} else {
		r.TotalTime = r.PrepTime + r.CookTime
	}

	r.Servings = intValue(node["servings"])
	r.Ingredients = parseModelIngredients(node["ingredients"])
	r.Steps = parseModelSteps(node["steps"])

	Finish(r, sourceURL)
	return r, nil
}

// parseModelIngredients 解析模型輸出的食材陣列。物件條目逐欄取值，
// 字串條目沿用結構化資料的拆解規則。
func parseModelIngredients(v interface{}) []common.Ingredient {
	entries, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var ingredients []common.Ingredient
	for _, entry := range entries {
		switch e := entry.(type) {
		case map[string]interface{}:
			name := stringValue(e["name"])
			if name == "" {
				continue
			}
			ingredients = append(ingredients, common.Ingredient{
				Name:        name,
				Quantity:    floatPtr(e["quantity"]),
				Unit:        stringValue(e["unit"]),
				Preparation: stringValue(e["preparation"]),
				Optional:    boolValue(e["optional"]),
			})
		case string:
			if strings.TrimSpace(e) == "" {
				continue
			}
			ingredients = append(ingredients, parseIngredientString(e))
		}
	}
	return ingredients
}

// parseModelSteps 解析模型輸出的步驟陣列；編號交給 Finish 依序重排
func parseModelSteps(v interface{}) []common.Step {
	entries, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var steps []common.Step
	for _, entry := range entries {
		switch e := entry.(type) {
		case map[string]interface{}:
			instruction := stringValue(e["instruction"])
			if instruction == "" {
				continue
			}
			steps = append(steps, common.Step{
				Instruction: instruction,
				Duration:    minutesPtr(e["duration"]),
				Tip:         stringValue(e["tip"]),
			})
		case string:
			if t := strings.TrimSpace(e); t != "" {
				steps = append(steps, common.Step{Instruction: t})
			}
		}
	}
	return steps
}

// minutesPtr 取出步驟分鐘數；非正數視同未提供
func minutesPtr(v interface{}) *int {
	if n := intValue(v); n > 0 {
		return &n
	}
	return nil
}

func boolValue(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}
