package dependencies

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentAnalyzer_Analyze(t *testing.T) {
	analyzer := NewContentAnalyzer()

	cases := []struct {
		name        string
		body        string
		wantWords   int
		wantMinutes int
	}{
		{"空正文", "", 0, 0},
		{"纯空白", "   \n\t  ", 0, 0},
		{"英文按空白分词", "hello brave new world", 4, 1},
		{"中文按单字计数", "你好世界", 4, 1},
		{"中英混排两者相加", "Go语言 is fun", 5, 1},
		{"标点不计入词数", "你好，世界！", 4, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			words, minutes := analyzer.Analyze(tc.body)
			assert.Equal(t, tc.wantWords, words)
			assert.Equal(t, tc.wantMinutes, minutes)
		})
	}
}

func TestContentAnalyzer_ReadTimeRoundsUp(t *testing.T) {
	analyzer := NewContentAnalyzer()

	// 450 词按每分钟 200 词估算，应向上取整为 3 分钟。
	body := strings.TrimSpace(strings.Repeat("word ", 450))
	words, minutes := analyzer.Analyze(body)
	assert.Equal(t, 450, words)
	assert.Equal(t, 3, minutes)

	// 刚好整除时不额外加一分钟。
	body = strings.TrimSpace(strings.Repeat("word ", 400))
	_, minutes = analyzer.Analyze(body)
	assert.Equal(t, 2, minutes)
}
