package recipe

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"recipe-importer/internal/core/source"
	"recipe-importer/internal/pkg/common"
)

var (
	// ingredientSplitPattern 將食材字串一次拆成（數量, 單位, 名稱），不重試
	ingredientSplitPattern = regexp.MustCompile(`^([\d\s/.]+)?\s*(\w+)?\s+(.+)$`)

	slugPattern          = regexp.MustCompile(`[^a-z0-9]+`)
	normalizeNamePattern = regexp.MustCompile(`[^a-z0-9]+`)
	firstIntPattern      = regexp.MustCompile(`\d+`)
)

// courseSynonyms 餐別同義詞表。查不到的值一律歸到 dinner。
var courseSynonyms = map[string]common.Course{
	"breakfast":   common.CourseBreakfast,
	"brunch":      common.CourseBreakfast,
	"lunch":       common.CourseLunch,
	"dinner":      common.CourseDinner,
	"supper":      common.CourseDinner,
	"entree":      common.CourseDinner,
	"entrée":      common.CourseDinner,
	"main":        common.CourseDinner,
	"main course": common.CourseDinner,
	"main dish":   common.CourseDinner,
	"appetizer":   common.CourseSnack,
	"appetizers":  common.CourseSnack,
	"starter":     common.CourseSnack,
	"side":        common.CourseSnack,
	"side dish":   common.CourseSnack,
	"snack":       common.CourseSnack,
	"snacks":      common.CourseSnack,
	"dessert":     common.CourseDessert,
	"desserts":    common.CourseDessert,
	"sweets":      common.CourseDessert,
}

// FromJSONLD 將 Schema.org Recipe 節點轉成標準化食譜記錄。
// 各欄位容忍多種形態（字串、物件、陣列），缺漏一律以預設值補齊，不報錯。
func FromJSONLD(node map[string]interface{}, sourceURL string) (*common.Recipe, error) {
	if node == nil {
		return nil, fmt.Errorf("nil recipe node")
	}

	r := &common.Recipe{
		Title:       stringValue(node["name"]),
		Description: stringValue(node["description"]),
		Author:      parseAuthor(node["author"]),
		Cuisine:     firstStringValue(node["recipeCuisine"]),
		Course:      parseCourses(node["recipeCategory"]),
		Tags:        parseKeywords(node["keywords"]),
		SourceURL:   sourceURL,
	}

	r.PrepTime = ParseISODuration(stringValue(node["prepTime"]))
	r.CookTime = ParseISODuration(stringValue(node["cookTime"]))
	// totalTime 欄位存在就信任解析結果，不存在才用 prep+cook 相加
	if t := stringValue(node["totalTime"]); t != "" {
		r.TotalTime = ParseISODuration(t)
	} else {
		r.TotalTime = r.PrepTime + r.CookTime
	}

	r.Servings = intValue(node["recipeYield"])
	r.Ingredients = parseIngredients(node["recipeIngredient"])
	r.Steps = flattenInstructions(node["recipeInstructions"])
	r.RequiredEquipment = parseEquipment(node["tool"])

	Finish(r, sourceURL)
	return r, nil
}

// Finish 兩條擷取路徑共用的後處理：補 id/slug/分類/難度/預設值，
// 讓 JSON-LD 與 freeform 收斂成完全相同的記錄形狀。
func Finish(r *common.Recipe, sourceURL string) {
	if r.Title == "" {
		r.Title = "Untitled Recipe"
	}
	r.ID = NewRecipeID()
	r.Slug = Slugify(r.Title)
	r.SourceURL = sourceURL

	if r.Servings <= 0 {
		r.Servings = 4
	}
	if len(r.Course) == 0 {
		r.Course = []common.Course{common.CourseDinner}
	}

	r.Difficulty = ClassifyDifficulty(r.TotalTime)
	r.TechniqueLevel = TechniqueLevelFor(r.Difficulty)

	// 分類與 normalizedName 一律由名稱重新推導，不信任輸入
	if r.Ingredients == nil {
		r.Ingredients = []common.Ingredient{}
	}
	for i := range r.Ingredients {
		r.Ingredients[i].ID = strconv.Itoa(i + 1)
		r.Ingredients[i].NormalizedName = NormalizeName(r.Ingredients[i].Name)
		r.Ingredients[i].Category = Categorize(r.Ingredients[i].Name)
	}

	// 攤平後重新編號，原始巢狀編號一律捨棄
	if r.Steps == nil {
		r.Steps = []common.Step{}
	}
	for i := range r.Steps {
		r.Steps[i].StepNumber = i + 1
		r.Steps[i].IsActive = true
	}

	hostname := hostnameOf(sourceURL)
	r.Source = common.RecipeSource{
		Type:     "website",
		Name:     source.DisplayName(hostname),
		Approved: source.IsApproved(hostname),
	}

	r.CreatedAt = time.Now()
	r.Rating = 0
	r.TimesMade = 0
	r.IsFavorite = false
}

// NewRecipeID 以目前時間戳產生食譜 ID。
// 快速連續請求下可能碰撞，此為既有行為，尚未處理。
func NewRecipeID() string {
	return fmt.Sprintf("recipe_%d", time.Now().UnixMilli())
}

// Slugify 由標題產生 slug：轉小寫、非英數字元改連字號、去頭尾連字號
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// NormalizeName 標準化食材名稱：轉小寫、非英數字元改空格、去頭尾空白
func NormalizeName(name string) string {
	normalized := normalizeNamePattern.ReplaceAllString(strings.ToLower(name), " ")
	return strings.TrimSpace(normalized)
}

func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// parseIngredients 容忍 recipeIngredient 是字串陣列、物件陣列或單一字串
func parseIngredients(v interface{}) []common.Ingredient {
	var ingredients []common.Ingredient
	switch entries := v.(type) {
	case []interface{}:
		for _, entry := range entries {
			switch e := entry.(type) {
			case string:
				ingredients = append(ingredients, parseIngredientString(e))
			case map[string]interface{}:
				ingredients = append(ingredients, common.Ingredient{
					Name:        stringValue(e["name"]),
					Quantity:    floatPtr(e["quantity"]),
					Unit:        stringValue(e["unit"]),
					Preparation: stringValue(e["preparation"]),
				})
			}
		}
	case string:
		ingredients = append(ingredients, parseIngredientString(entries))
	}
	return ingredients
}

// parseIngredientString 以單一正則拆出（數量, 單位, 名稱）。
// 拆不開時整串當名稱，數量為 null、單位留空。
func parseIngredientString(s string) common.Ingredient {
	s = strings.TrimSpace(s)
	m := ingredientSplitPattern.FindStringSubmatch(s)
	if m == nil {
		return common.Ingredient{Name: s}
	}
	return common.Ingredient{
		Name:     strings.TrimSpace(m[3]),
		Quantity: parseQuantity(m[1]),
		Unit:     strings.TrimSpace(m[2]),
	}
}

// parseQuantity 解析數量字串，支援整數、小數與分數（"1/2"、"1 1/2"）
func parseQuantity(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	total := 0.0
	parsed := false
	for _, field := range strings.Fields(raw) {
		if num, den, ok := strings.Cut(field, "/"); ok {
			n, errN := strconv.ParseFloat(num, 64)
			d, errD := strconv.ParseFloat(den, 64)
			if errN != nil || errD != nil || d == 0 {
				continue
			}
			total += n / d
			parsed = true
			continue
		}
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		total += f
		parsed = true
	}
	if !parsed {
		return nil
	}
	return &total
}

// flattenInstructions 將 recipeInstructions 攤平成步驟序列。
// 條目可以是字串、HowToStep（text/name）或含 itemListElement 的 HowToSection，
// 巢狀段落依文件順序攤平，編號交給 Finish 重排。
func flattenInstructions(v interface{}) []common.Step {
	var texts []string
	collectInstructionTexts(v, &texts)

	steps := make([]common.Step, 0, len(texts))
	for i, text := range texts {
		steps = append(steps, common.Step{
			StepNumber:  i + 1,
			Instruction: text,
			IsActive:    true,
		})
	}
	return steps
}

func collectInstructionTexts(v interface{}, out *[]string) {
	switch e := v.(type) {
	case string:
		if t := strings.TrimSpace(e); t != "" {
			*out = append(*out, t)
		}
	case []interface{}:
		for _, item := range e {
			collectInstructionTexts(item, out)
		}
	case map[string]interface{}:
		// HowToSection：往 itemListElement 裡收集
		if items, ok := e["itemListElement"]; ok && items != nil {
			collectInstructionTexts(items, out)
			return
		}
		// HowToStep：text 優先，退回 name
		if t := stringValue(e["text"]); t != "" {
			*out = append(*out, t)
			return
		}
		if n := stringValue(e["name"]); n != "" {
			*out = append(*out, n)
		}
	}
}

// parseAuthor 容忍字串、帶 name 的物件、或兩者混合的陣列；陣列以 ", " 連接
func parseAuthor(v interface{}) string {
	switch e := v.(type) {
	case string:
		return strings.TrimSpace(e)
	case map[string]interface{}:
		return stringValue(e["name"])
	case []interface{}:
		var names []string
		for _, item := range e {
			switch a := item.(type) {
			case string:
				if t := strings.TrimSpace(a); t != "" {
					names = append(names, t)
				}
			case map[string]interface{}:
				if n := stringValue(a["name"]); n != "" {
					names = append(names, n)
				}
			}
		}
		return strings.Join(names, ", ")
	}
	return ""
}

// intValue 解析整數值：數字、含數字的字串（取第一段數字）、或陣列取第一個元素。
// 解析不出來回傳 0（recipeYield 的 0 由 Finish 補成預設 4 人份）。
func intValue(v interface{}) int {
	switch e := v.(type) {
	case float64:
		return int(e)
	case int:
		return e
	case int64:
		return int(e)
	case json.Number:
		if n, err := e.Int64(); err == nil {
			return int(n)
		}
		if f, err := e.Float64(); err == nil {
			return int(f)
		}
	case string:
		if m := firstIntPattern.FindString(e); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				return n
			}
		}
	case []interface{}:
		if len(e) > 0 {
			return intValue(e[0])
		}
	}
	return 0
}

// parseCourses 將 recipeCategory 對應到餐別集合：逐項查同義詞表，
// 未知值歸 dinner，去重且保留首次出現順序
func parseCourses(v interface{}) []common.Course {
	var values []string
	switch e := v.(type) {
	case string:
		values = append(values, e)
	case []interface{}:
		for _, item := range e {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
	}

	var courses []common.Course
	seen := make(map[common.Course]bool)
	for _, value := range values {
		key := strings.ToLower(strings.TrimSpace(value))
		if key == "" {
			continue
		}
		course, ok := courseSynonyms[key]
		if !ok {
			course = common.CourseDinner
		}
		if seen[course] {
			continue
		}
		seen[course] = true
		courses = append(courses, course)
	}
	return courses
}

// parseKeywords 解析 keywords：逗號分隔字串拆開修剪，陣列原樣使用
func parseKeywords(v interface{}) []string {
	switch e := v.(type) {
	case string:
		var tags []string
		for _, part := range strings.Split(e, ",") {
			if t := strings.TrimSpace(part); t != "" {
				tags = append(tags, t)
			}
		}
		return tags
	case []interface{}:
		var tags []string
		for _, item := range e {
			if s, ok := item.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	}
	return nil
}

// parseEquipment 解析 tool 欄位：字串、帶 name 的物件、或兩者混合的陣列
func parseEquipment(v interface{}) []string {
	switch e := v.(type) {
	case string:
		if t := strings.TrimSpace(e); t != "" {
			return []string{t}
		}
	case map[string]interface{}:
		if n := stringValue(e["name"]); n != "" {
			return []string{n}
		}
	case []interface{}:
		var tools []string
		for _, item := range e {
			for _, name := range parseEquipment(item) {
				tools = append(tools, name)
			}
		}
		return tools
	}
	return nil
}

// stringValue 取出字串值；數字轉成十進位字串，其他型別回傳空字串
func stringValue(v interface{}) string {
	switch e := v.(type) {
	case string:
		return strings.TrimSpace(e)
	case json.Number:
		return e.String()
	case float64:
		return strconv.FormatFloat(e, 'f', -1, 64)
	case int:
		return strconv.Itoa(e)
	case int64:
		return strconv.FormatInt(e, 10)
	}
	return ""
}

// firstStringValue 取字串本身，或陣列中第一個字串
func firstStringValue(v interface{}) string {
	switch e := v.(type) {
	case string:
		return strings.TrimSpace(e)
	case []interface{}:
		for _, item := range e {
			if s, ok := item.(string); ok {
				if t := strings.TrimSpace(s); t != "" {
					return t
				}
			}
		}
	}
	return ""
}

// floatPtr 取出可為 null 的數值欄位；字串形式沿用數量解析（支援分數）
func floatPtr(v interface{}) *float64 {
	switch e := v.(type) {
	case float64:
		f := e
		return &f
	case int:
		f := float64(e)
		return &f
	case int64:
		f := float64(e)
		return &f
	case json.Number:
		if f, err := e.Float64(); err == nil {
			return &f
		}
	case string:
		return parseQuantity(e)
	}
	return nil
}
