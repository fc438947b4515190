package jsonld

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recipe-importer/internal/pkg/common"
)

// FindRecipe 掃描 HTML 中所有 application/ld+json 區塊，回傳第一個 Schema.org Recipe 節點。
// 每個區塊獨立解析，單一區塊壞掉不中斷掃描其餘區塊；
// 找不到（含文件本身解析失敗）回傳 nil，呼叫端轉走 freeform 路徑，不是錯誤。
func FindRecipe(html string) map[string]interface{} {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		common.LogWarn("HTML 文件解析失敗", zap.Error(err))
		return nil
	}

	var recipe map[string]interface{}
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}

		var node interface{}
		if err := common.ParseJSON(raw, &node); err != nil {
			common.LogDebug("JSON-LD 區塊解析失敗，略過",
				zap.Int("block_index", i),
				zap.Error(err),
			)
			return true
		}

		if found := findRecipeNode(node); found != nil {
			recipe = found
			return false
		}
		return true
	})

	return recipe
}

// findRecipeNode 在節點本身、陣列元素與巢狀 @graph 中尋找 @type 為 Recipe 的物件
func findRecipeNode(v interface{}) map[string]interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		if isRecipeType(node["@type"]) {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			return findRecipeNode(graph)
		}
	case []interface{}:
		for _, item := range node {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	}
	return nil
}

// isRecipeType 接受 @type 為字串或字串陣列兩種寫法
func isRecipeType(t interface{}) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}
