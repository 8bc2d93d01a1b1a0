package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"
)

var urlPattern = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)

// 휴리스틱 사유 태그. 계열 사유는 팩의 계열 이름을 그대로 쓴다.
const (
	reasonShortText  = "short_text"
	reasonEmojiFlood = "emoji_flood"
	reasonCapsRatio  = "caps_ratio"
	reasonURL        = "url"
)

// Spam 은 패턴 계열 가중치와 휴리스틱의 합산 점수로 스팸을 판정한다.
// per_match 계열은 일치 구문마다, 나머지는 계열당 한 번만 가산된다.
func (c *Classifier) Spam(text string) SpamResult {
	folded := Fold(text)
	lower := strings.ToLower(folded)

	score := 0.0
	var reasons []string
	seen := make(map[string]struct{})
	addReason := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		reasons = append(reasons, tag)
	}

	for _, family := range c.lex.SpamFamilies {
		phraseHits := family.Phrases.Matches(lower)
		patternHit := false
		for _, pattern := range family.Patterns {
			if pattern.MatchString(lower) {
				patternHit = true
				break
			}
		}

		switch {
		case family.PerMatch && len(phraseHits) > 0:
			score += family.Weight * float64(len(phraseHits))
			addReason(family.Name)
		case len(phraseHits) > 0 || patternHit:
			score += family.Weight
			addReason(family.Name)
		}
	}

	runes := []rune(folded)
	if len(runes) < 10 {
		score += c.lex.SpamHeuristics.ShortText
		addReason(reasonShortText)
	}
	if len(gomoji.CollectAll(folded)) > 5 {
		score += c.lex.SpamHeuristics.EmojiFlood
		addReason(reasonEmojiFlood)
	}
	if len(runes) > 10 && upperRatio(runes) > 0.7 {
		score += c.lex.SpamHeuristics.CapsRatio
		addReason(reasonCapsRatio)
	}
	if urlPattern.MatchString(folded) {
		score += c.lex.SpamHeuristics.URL
		addReason(reasonURL)
	}

	score = clamp(score, 0, 1)
	return SpamResult{IsSpam: score > 0.5, Score: score, Reasons: reasons}
}

func upperRatio(runes []rune) float64 {
	letters := 0
	uppers := 0
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			uppers++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(uppers) / float64(letters)
}
