package classify

import (
	"sort"
	"strings"
	"unicode"
)

const (
	maxKeywords      = 8
	maxFrequentTerms = 5
)

// Keywords 는 배정된 카테고리의 키워드 일치와 고빈도 토큰을 이어 붙인다.
// 카테고리 키워드가 앞서고, 두 출처 간 중복 제거는 하지 않는다.
func (c *Classifier) Keywords(text string, categoryName string) []string {
	lower := strings.ToLower(Fold(text))

	var keywords []string
	if category, ok := c.lex.CategoryByName(categoryName); ok {
		keywords = append(keywords, category.Primary.Matches(lower)...)
		keywords = append(keywords, category.Secondary.Matches(lower)...)
	}

	keywords = append(keywords, c.frequentTokens(lower)...)
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// frequentTokens 는 불용어와 3자 이하 토큰을 버린 뒤, 빈도>1 이거나
// 길이>5 인 토큰을 빈도 내림차순(동률은 등장 순)으로 최대 5개 고른다.
func (c *Classifier) frequentTokens(lower string) []string {
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	counts := make(map[string]int)
	var order []string
	for _, token := range tokens {
		if len([]rune(token)) <= 3 || c.lex.IsStopword(token) {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	candidates := make([]string, 0, len(order))
	for _, token := range order {
		if counts[token] > 1 || len([]rune(token)) > 5 {
			candidates = append(candidates, token)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return counts[candidates[i]] > counts[candidates[j]]
	})

	if len(candidates) > maxFrequentTerms {
		candidates = candidates[:maxFrequentTerms]
	}
	return candidates
}
