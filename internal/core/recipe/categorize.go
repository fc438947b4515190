package recipe

import (
	"regexp"
	"strings"

	"recipe-importer/internal/pkg/common"
)

// categoryPattern 單一分類的關鍵字規則
type categoryPattern struct {
	category common.IngredientCategory
	pattern  *regexp.Regexp
}

// categoryPatterns 依固定優先序排列的分類規則。
// 順序是對外契約：由前往後比對，第一個命中的群組勝出，即使後面群組的關鍵字也出現
// （例如 chicken broth 同時含 protein 與 liquid 關鍵字，結果是 protein）。
// 下游 UI 依賴現有的分類結果，調整順序或關鍵字都屬於破壞性變更。
var categoryPatterns = []categoryPattern{
	{common.CategoryProtein, regexp.MustCompile(
		`\b(?:chicken|beef|pork|lamb|turkey|duck|bacon|ham|sausages?|steak|veal|venison|fish|salmon|tuna|cod|halibut|trout|anchov(?:y|ies)|sardines?|shrimp|prawns?|crab|lobster|scallops?|mussels?|clams?|oysters?|tofu|tempeh|seitan|eggs?|lentils?|chickpeas?|black beans?|kidney beans?|pinto beans?|cannellini|peanuts?)\b`)},
	{common.CategoryDairy, regexp.MustCompile(
		`\b(?:milk|cream|butter|buttermilk|cheese|cheddar|mozzarella|parmesan|pecorino|gouda|brie|feta|ricotta|mascarpone|yogurt|yoghurt|ghee|custard)\b`)},
	{common.CategoryVegetable, regexp.MustCompile(
		`\b(?:onions?|garlic|carrots?|celery|broccoli|cauliflower|spinach|kale|lettuce|arugula|cabbage|zucchini|courgettes?|eggplants?|aubergines?|tomato(?:es)?|potato(?:es)?|mushrooms?|asparagus|peas?|corn|cucumbers?|leeks?|shallots?|scallions?|bell peppers?|squash|pumpkin|beets?|radish(?:es)?|turnips?|parsnips?|artichokes?|green beans?|brussels sprouts?|okra|bok choy)\b`)},
	{common.CategoryFruit, regexp.MustCompile(
		`\b(?:apples?|bananas?|oranges?|lemons?|limes?|strawberr(?:y|ies)|blueberr(?:y|ies)|raspberr(?:y|ies)|blackberr(?:y|ies)|cranberr(?:y|ies)|berr(?:y|ies)|mango(?:es)?|pineapples?|peach(?:es)?|pears?|plums?|cherr(?:y|ies)|grapes?|melons?|watermelons?|kiwis?|apricots?|figs?|dates?|pomegranates?|avocados?|coconuts?|raisins?)\b`)},
	{common.CategoryGrain, regexp.MustCompile(
		`\b(?:flour|rice|pasta|noodles?|bread|breadcrumbs?|panko|oats?|oatmeal|quinoa|barley|couscous|tortillas?|cornmeal|polenta|spaghetti|macaroni|penne|linguine|orzo|crackers?|cereal|bulgur|farro|semolina|grits)\b`)},
	{common.CategorySpice, regexp.MustCompile(
		`\b(?:salt|pepper|peppercorns?|cumin|paprika|cinnamon|nutmeg|oregano|basil|thyme|rosemary|parsley|cilantro|coriander|turmeric|ginger|chil(?:i|e|ies|is)|cayenne|cloves?|cardamom|bay lea(?:f|ves)|sage|dill|mint|vanilla|saffron|allspice|fennel seeds?|mustard seeds?|sesame seeds?|garam masala|curry|herbs?)\b`)},
	{common.CategoryOilFat, regexp.MustCompile(
		`\b(?:oils?|lard|shortening|margarine|tallow|schmaltz|fats?)\b`)},
	{common.CategoryCondiment, regexp.MustCompile(
		`\b(?:ketchup|mustard|mayonnaise|mayo|vinegar|soy sauce|tamari|hoisin|sriracha|salsa|relish|honey|syrup|molasses|jams?|jell(?:y|ies)|marmalade|pesto|tahini|miso|worcestershire|hot sauce|barbecue sauce|bbq sauce|sugar)\b`)},
	{common.CategoryLiquid, regexp.MustCompile(
		`\b(?:water|broth|stock|juice|wine|beer|ale|cider|soda|cola|coffee|espresso|tea|rum|vodka|whiskey|whisky|bourbon|brandy|sake|sherry|vermouth|champagne)\b`)},
}

// Categorize 將食材名稱對應到固定分類。
// 名稱為空時回傳 other；比對前先轉小寫，純粹由名稱決定，無外部狀態。
func Categorize(name string) common.IngredientCategory {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return common.CategoryOther
	}
	for _, cp := range categoryPatterns {
		if cp.pattern.MatchString(lower) {
			return cp.category
		}
	}
	return common.CategoryOther
}
