package classify

import (
	"strings"
	"unicode"
)

// Quality 는 길이, 좋아요 수, 지표 구문, 문장 구조로 품질 점수를 더한다.
func (c *Classifier) Quality(text string, likeCount int) QualityResult {
	folded := Fold(text)
	lower := strings.ToLower(folded)

	score := 0.0
	length := len([]rune(folded))
	if length > 50 {
		score += 0.2
	}
	if length > 100 {
		score += 0.1
	}

	if likeCount > 0 {
		score += 0.3
	}
	if likeCount > 5 {
		score += 0.2
	}

	// 지표 구문은 고유 구문당 가산이며 최종 클램프 외 상한이 없다.
	indicators := c.lex.QualityIndicators.Matches(lower)
	score += c.lex.IndicatorWeight * float64(len(indicators))

	if len(splitSentences(folded)) > 1 {
		score += 0.1
	}
	if firstRuneUpper(folded) {
		score += 0.05
	}

	score = clamp(score, 0, 1)
	return QualityResult{IsQuality: score > 0.4, Score: score}
}

func firstRuneUpper(text string) bool {
	for _, r := range text {
		return unicode.IsUpper(r)
	}
	return false
}
