package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		input    string
		expected int
	}{
		{"PT1H30M", 90},
		{"PT45M", 45},
		{"PT2H", 120},
		{"PT1H", 60},
		{"PT0M", 0},
		{"PT1H5M30S", 66}, // 30 秒進位到 1 分鐘
		{"", 0},
		{"not a duration", 0},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseISODuration(tc.input))
		})
	}
}

// 秒數四捨五入到最接近的分鐘
func TestParseISODurationSecondsRounding(t *testing.T) {
	assert.Equal(t, 2, ParseISODuration("PT90S")) // 1.5 分鐘進位
	assert.Equal(t, 1, ParseISODuration("PT30S"))
	assert.Equal(t, 0, ParseISODuration("PT29S"))
	assert.Equal(t, 1, ParseISODuration("PT45S"))
	assert.Equal(t, 1, ParseISODuration("PT60S"))
}

// 不支援日/週/月/年指定符，整串比對失敗時回傳 0 而不是報錯
func TestParseISODurationUnsupportedDesignators(t *testing.T) {
	assert.Equal(t, 0, ParseISODuration("P3D"))
	assert.Equal(t, 0, ParseISODuration("P2W"))
	assert.Equal(t, 0, ParseISODuration("P1Y"))
}
