package classify

import (
	"strings"
	"unicode"
)

// Readability 는 단순화된 Flesch Reading Ease 점수를 [0,1] 로 정규화해 반환한다.
// 문장이나 단어가 없으면 0 이다.
func (c *Classifier) Readability(text string) float64 {
	folded := Fold(text)

	sentences := splitSentences(folded)
	words := strings.Fields(folded)
	if len(sentences) == 0 || len(words) == 0 {
		return 0
	}

	totalSyllables := 0
	for _, word := range words {
		totalSyllables += syllables(word)
	}

	score := 206.835 -
		1.015*(float64(len(words))/float64(len(sentences))) -
		84.6*(float64(totalSyllables)/float64(len(words)))
	return clamp(score, 0, 100) / 100
}

// splitSentences 는 .!? 로 문장을 나누고 빈 조각을 버린다.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		sentences = append(sentences, part)
	}
	return sentences
}

// syllables 는 모음 연속 구간 수로 음절을 추정한다. 단어 끝 모음 구간은
// 하나 빼고, 최소 1 을 보장한다.
func syllables(word string) int {
	lower := strings.ToLower(word)

	count := 0
	inRun := false
	endsInRun := false
	for _, r := range lower {
		if !unicode.IsLetter(r) {
			inRun = false
			endsInRun = false
			continue
		}
		if isVowel(r) {
			if !inRun {
				count++
			}
			inRun = true
			endsInRun = true
		} else {
			inRun = false
			endsInRun = false
		}
	}

	if endsInRun {
		count--
	}
	if count < 1 {
		return 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
