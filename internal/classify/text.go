// Package classify 는 정제된 텍스트에 대한 순수 분류 함수들을 제공한다.
// 모든 매칭은 Fold 로 정규화한 소문자 텍스트에 대한 부분 문자열 포함 검사다.
package classify

import (
	"strings"
	"unicode"

	"github.com/mtibben/confusables"
	"golang.org/x/text/unicode/norm"
)

// isASCIIOnly: 문자열이 ASCII만 포함하는지 확인 (Zero Allocation)
func isASCIIOnly(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// Fold 는 매칭 전 텍스트 정규화다. NFC 정규화 후 homoglyph 를 skeleton 으로
// 접고 제어 문자를 제거한다. ASCII 입력은 skeleton 변환 없이 통과한다.
func Fold(text string) string {
	if isASCIIOnly(text) {
		return stripControlChars(text)
	}

	nfcText := norm.NFC.String(text)
	skeleton := confusables.Skeleton(nfcText)
	return stripControlChars(norm.NFKC.String(skeleton))
}

// stripControlChars: 공백류는 남기고 제어/서식 문자만 제거한다.
func stripControlChars(text string) string {
	hasControl := false
	for _, r := range text {
		if isControl(r) {
			hasControl = true
			break
		}
	}
	if !hasControl {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if isControl(r) {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

func isControl(r rune) bool {
	if unicode.IsSpace(r) {
		return false
	}
	return unicode.Is(unicode.Cf, r) || unicode.Is(unicode.Cc, r)
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
