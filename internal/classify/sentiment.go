package classify

import "strings"

// Sentiment 는 등급별 키워드 가중 평균으로 감성을 판정한다.
// 키워드당 1회만 집계된다. 빈도가 아니라 존재 검사다.
func (c *Classifier) Sentiment(text string) SentimentResult {
	lower := strings.ToLower(Fold(text))

	sum := 0.0
	matches := 0
	for _, tier := range c.lex.Tiers {
		hits := tier.Phrases.Matches(lower)
		sum += tier.Weight * float64(len(hits))
		matches += len(hits)
	}

	score := 0.0
	if matches > 0 {
		score = clamp(sum/float64(matches), -1, 1)
	}

	label := SentimentNeutral
	switch {
	case score > 0.5:
		label = SentimentPositive
	case score < -0.5:
		label = SentimentNegative
	}
	return SentimentResult{Label: label, Score: score}
}
