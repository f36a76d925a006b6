// dependencies/content_analyzer.go
package dependencies

import (
	"strings"
	"unicode"

	"github.com/Xushengqwer/blog_service/constant"
)

// ContentAnalyzer 定义了正文派生指标的计算接口。
// - 字数与预计阅读时长在投稿和修订提交时计算一次并持久化，
//   读路径不做实时统计。
type ContentAnalyzer interface {
	// Analyze 返回正文的词数与预计阅读分钟数。
	// - 阅读时长向上取整，非空正文至少 1 分钟。
	Analyze(body string) (wordCount int, readTimeMinutes int)
}

// contentAnalyzer 是 ContentAnalyzer 的默认实现。
// 中日韩字符按单字计数，其余按空白分隔的词计数，两者相加。
type contentAnalyzer struct {
	wordsPerMinute int
}

// NewContentAnalyzer 是 contentAnalyzer 的构造函数。
func NewContentAnalyzer() ContentAnalyzer {
	return &contentAnalyzer{wordsPerMinute: constant.ReadTimeWordsPerMinute}
}

// Analyze 实现词数统计与阅读时长估算。
func (a *contentAnalyzer) Analyze(body string) (int, int) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return 0, 0
	}

	cjkCount := 0
	var latin strings.Builder
	for _, r := range trimmed {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
			cjkCount++
			// 用空白替换，避免粘连两侧的拉丁词。
			latin.WriteRune(' ')
			continue
		}
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			// 标点与符号只做分隔，不计入词数。
			latin.WriteRune(' ')
			continue
		}
		latin.WriteRune(r)
	}
	wordCount := cjkCount + len(strings.Fields(latin.String()))

	minutes := (wordCount + a.wordsPerMinute - 1) / a.wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return wordCount, minutes
}
