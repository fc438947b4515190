package recipe

import (
	"regexp"
	"strconv"
)

// isoDurationPattern 只支援 PT 子集；日/週/月/年等指定符不在比對範圍，遇到時整體視為 0
var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseISODuration 將 ISO-8601 時間長度字串轉成整數分鐘。
// 空字串或比對失敗回傳 0；缺少的組成視為 0；秒數四捨五入到最接近的分鐘（PT90S → 2）。
func ParseISODuration(s string) int {
	if s == "" {
		return 0
	}
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours := atoiOrZero(m[1])
	minutes := atoiOrZero(m[2])
	seconds := atoiOrZero(m[3])
	return hours*60 + minutes + (seconds+30)/60
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
