// Package tabular 은 구분자를 모르는 CSV 류 텍스트를 헤더 기반 행 맵으로 파싱한다.
package tabular

import (
	"errors"
	"strings"
)

// ErrEmptyInput 은 헤더와 데이터 행을 구성할 수 없을 때 반환된다.
var ErrEmptyInput = errors.New("tabular: input has no header and data rows")

// 후보 구분자. 동점이면 앞선 것이 이긴다.
var delimiters = []rune{',', ';', '|', '\t'}

// Table 은 파싱 결과다. Rows 의 키는 헤더 토큰 원문이다.
type Table struct {
	Delimiter rune
	Header    []string
	Rows      []map[string]string
	Dropped   int
}

// Parse 는 텍스트를 표로 파싱한다. expected 는 구분자 추정에 쓰는 기대 컬럼명들이다.
// 헤더와 필드 수가 다른 행은 버려지고 Dropped 로 집계된다.
func Parse(text string, expected []string) (*Table, error) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, ErrEmptyInput
	}

	delimiter := detectDelimiter(lines[0], expected)
	header := SplitFields(lines[0], delimiter)
	for i, column := range header {
		header[i] = strings.TrimSpace(column)
	}

	table := &Table{Delimiter: delimiter, Header: header}
	for _, line := range lines[1:] {
		fields := SplitFields(line, delimiter)
		if len(fields) != len(header) {
			table.Dropped++
			continue
		}

		row := make(map[string]string, len(header))
		for i, column := range header {
			row[column] = strings.TrimSpace(fields[i])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// detectDelimiter 는 헤더 줄을 후보 구분자마다 쪼개 보고 기대 컬럼명과
// 겹치는 헤더 토큰이 가장 많은 구분자를 고른다. 토큰 수 기준이라 잘못된
// 구분자로 쪼개져 한 덩어리가 된 헤더는 많아야 1점이다.
func detectDelimiter(headerLine string, expected []string) rune {
	best := delimiters[0]
	bestScore := -1

	for _, delimiter := range delimiters {
		tokens := SplitFields(headerLine, delimiter)
		score := headerScore(tokens, expected)
		if score > bestScore {
			best = delimiter
			bestScore = score
		}
	}
	return best
}

func headerScore(tokens []string, expected []string) int {
	score := 0
	for _, token := range tokens {
		lowered := strings.ToLower(strings.TrimSpace(token))
		for _, want := range expected {
			if strings.Contains(lowered, strings.ToLower(want)) {
				score++
				break
			}
		}
	}
	return score
}

// SplitFields 는 큰따옴표를 인식하며 한 줄을 필드로 쪼갠다.
// 따옴표 안의 구분자는 보존되고, 연속 큰따옴표("")는 이스케이프다.
func SplitFields(line string, delimiter rune) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == delimiter && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(ch)
		}
	}
	fields = append(fields, field.String())
	return fields
}
