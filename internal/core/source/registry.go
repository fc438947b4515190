package source

import (
	"strings"
)

// approvedSources 食譜來源白名單。
// 以子字串包含比對（hostname 含有清單項目即通過），不是精確比對。
var approvedSources = []string{
	"seriouseats.com",
	"cooking.nytimes.com",
	"bonappetit.com",
	"foodnetwork.com",
	"allrecipes.com",
	"epicurious.com",
	"bbcgoodfood.com",
	"smittenkitchen.com",
	"food52.com",
	"thekitchn.com",
	"budgetbytes.com",
	"simplyrecipes.com",
	"kingarthurbaking.com",
	"americastestkitchen.com",
	"delish.com",
	"tasty.co",
	"minimalistbaker.com",
	"cookieandkate.com",
	"halfbakedharvest.com",
	"thewoksoflife.com",
}

// techniqueApprovedSources 技巧擷取白名單，獨立維護。
// 目前資料上是 approvedSources 的子集，但結構上不強制。
var techniqueApprovedSources = []string{
	"seriouseats.com",
	"cooking.nytimes.com",
	"bonappetit.com",
	"americastestkitchen.com",
	"kingarthurbaking.com",
	"smittenkitchen.com",
	"thewoksoflife.com",
}

// sourceNames 精選顯示名稱，以完整 hostname 為鍵（含與不含 www. 都要列）
var sourceNames = map[string]string{
	"seriouseats.com":             "Serious Eats",
	"www.seriouseats.com":         "Serious Eats",
	"cooking.nytimes.com":         "NYT Cooking",
	"bonappetit.com":              "Bon Appétit",
	"www.bonappetit.com":          "Bon Appétit",
	"foodnetwork.com":             "Food Network",
	"www.foodnetwork.com":         "Food Network",
	"allrecipes.com":              "Allrecipes",
	"www.allrecipes.com":          "Allrecipes",
	"epicurious.com":              "Epicurious",
	"www.epicurious.com":          "Epicurious",
	"bbcgoodfood.com":             "BBC Good Food",
	"www.bbcgoodfood.com":         "BBC Good Food",
	"smittenkitchen.com":          "Smitten Kitchen",
	"www.smittenkitchen.com":      "Smitten Kitchen",
	"food52.com":                  "Food52",
	"www.food52.com":              "Food52",
	"thekitchn.com":               "The Kitchn",
	"www.thekitchn.com":           "The Kitchn",
	"budgetbytes.com":             "Budget Bytes",
	"www.budgetbytes.com":         "Budget Bytes",
	"simplyrecipes.com":           "Simply Recipes",
	"www.simplyrecipes.com":       "Simply Recipes",
	"kingarthurbaking.com":        "King Arthur Baking",
	"www.kingarthurbaking.com":    "King Arthur Baking",
	"americastestkitchen.com":     "America's Test Kitchen",
	"www.americastestkitchen.com": "America's Test Kitchen",
	"delish.com":                  "Delish",
	"www.delish.com":              "Delish",
	"tasty.co":                    "Tasty",
	"minimalistbaker.com":         "Minimalist Baker",
	"www.minimalistbaker.com":     "Minimalist Baker",
	"cookieandkate.com":           "Cookie and Kate",
	"www.cookieandkate.com":       "Cookie and Kate",
	"halfbakedharvest.com":        "Half Baked Harvest",
	"www.halfbakedharvest.com":    "Half Baked Harvest",
	"thewoksoflife.com":           "The Woks of Life",
	"www.thewoksoflife.com":       "The Woks of Life",
}

// IsApproved 檢查 hostname 是否在食譜來源白名單
func IsApproved(hostname string) bool {
	return containsAny(strings.ToLower(hostname), approvedSources)
}

// IsTechniqueApproved 檢查 hostname 是否允許技巧擷取
func IsTechniqueApproved(hostname string) bool {
	return containsAny(strings.ToLower(hostname), techniqueApprovedSources)
}

func containsAny(hostname string, entries []string) bool {
	for _, entry := range entries {
		if strings.Contains(hostname, entry) {
			return true
		}
	}
	return false
}

// DisplayName 回傳來源顯示名稱。
// 先查精選名稱表；查不到時去掉 www. 前綴，取第一段 DNS 標籤。
func DisplayName(hostname string) string {
	lower := strings.ToLower(hostname)
	if name, ok := sourceNames[lower]; ok {
		return name
	}
	lower = strings.TrimPrefix(lower, "www.")
	if i := strings.Index(lower, "."); i > 0 {
		return lower[:i]
	}
	return lower
}

// Info 來源清單項目
type Info struct {
	Hostname          string `json:"hostname"`
	Name              string `json:"name"`
	TechniqueApproved bool   `json:"techniqueApproved"`
}

// Approved 回傳白名單來源清單，順序與內部清單一致
func Approved() []Info {
	infos := make([]Info, 0, len(approvedSources))
	for _, hostname := range approvedSources {
		infos = append(infos, Info{
			Hostname:          hostname,
			Name:              DisplayName(hostname),
			TechniqueApproved: IsTechniqueApproved(hostname),
		})
	}
	return infos
}
