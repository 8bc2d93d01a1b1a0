package classify

import (
	"strings"

	"github.com/park285/comment-insight-go/internal/lexicon"
)

// Category 는 카테고리별 키워드 가중 합으로 분류한다.
// 동점이면 선언 순서가 빠른 카테고리가 이기고, 전부 0점이면 general 이다.
func (c *Classifier) Category(text string) CategoryResult {
	lower := strings.ToLower(Fold(text))

	topName := ""
	topScore := 0.0
	total := 0.0
	for _, category := range c.lex.Categories {
		score := categoryScore(category, lower)
		total += score
		if score > topScore {
			topScore = score
			topName = category.Name
		}
	}

	if topScore <= 0 {
		return CategoryResult{Name: GeneralCategory, Confidence: 0.1}
	}
	return CategoryResult{Name: topName, Confidence: topScore / total}
}

func categoryScore(category lexicon.Category, lower string) float64 {
	score := lexicon.PrimaryWeight * float64(len(category.Primary.Matches(lower)))
	score += lexicon.SecondaryWeight * float64(len(category.Secondary.Matches(lower)))
	score += lexicon.NegativeWeight * float64(len(category.Negative.Matches(lower)))
	return score
}
