package record

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// 허용 날짜 형식. 존이 없는 입력은 로컬 시각으로 읽는다.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate 는 날짜 문자열을 해석한다. 실제 달력 날짜로 파싱되고
// 연도가 2005 보다 커야 유효하다.
func ParseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, trimmed, time.Local)
		if err != nil {
			continue
		}
		if parsed.Year() > 2005 {
			return parsed, true
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}

// CleanComments 는 필수 식별자가 빠진 댓글을 제거하고 나머지를 타입 있는 레코드로 바꾼다.
func CleanComments(rows []RawComment) ([]Comment, CleanStats) {
	stats := newStats(len(rows))
	cleaned := make([]Comment, 0, len(rows))

	for _, row := range rows {
		reason := commentDropReason(row)
		if reason != "" {
			stats.drop(reason)
			continue
		}

		comment := Comment{
			CommentID:       strings.TrimSpace(row.CommentID),
			ChannelID:       strings.TrimSpace(row.ChannelID),
			VideoID:         strings.TrimSpace(row.VideoID),
			AuthorID:        strings.TrimSpace(row.AuthorID),
			ParentCommentID: strings.TrimSpace(row.ParentCommentID),
			TextOriginal:    strings.TrimSpace(row.TextOriginal),
			LikeCount:       clampInt(row.LikeCount),
			PublishedAt:     cleanDate(row.PublishedAt, &stats),
			UpdatedAt:       cleanDate(row.UpdatedAt, &stats),
		}
		cleaned = append(cleaned, comment)
	}

	stats.finish(len(cleaned))
	return cleaned, stats
}

// CleanVideos 는 필수 필드가 빠진 영상을 제거하고 나머지를 타입 있는 레코드로 바꾼다.
func CleanVideos(rows []RawVideo) ([]Video, CleanStats) {
	stats := newStats(len(rows))
	cleaned := make([]Video, 0, len(rows))

	for _, row := range rows {
		reason := videoDropReason(row)
		if reason != "" {
			stats.drop(reason)
			continue
		}

		video := Video{
			VideoID:         strings.TrimSpace(row.VideoID),
			ChannelID:       strings.TrimSpace(row.ChannelID),
			Title:           strings.TrimSpace(row.Title),
			Description:     strings.TrimSpace(row.Description),
			Tags:            splitList(row.Tags),
			TopicCategories: splitList(row.TopicCategories),
			ViewCount:       clampInt(row.ViewCount),
			LikeCount:       clampInt(row.LikeCount),
			FavouriteCount:  clampInt(row.FavouriteCount),
			CommentCount:    clampInt(row.CommentCount),
			PublishedAt:     cleanDate(row.PublishedAt, &stats),
			Duration:        strings.TrimSpace(row.Duration),
		}
		cleaned = append(cleaned, video)
	}

	stats.finish(len(cleaned))
	return cleaned, stats
}

// 행당 하나의 사유만 집계한다. 검사 순서가 곧 우선순위다.
func commentDropReason(row RawComment) string {
	switch {
	case strings.TrimSpace(row.VideoID) == "":
		return ReasonMissingVideoID
	case strings.TrimSpace(row.CommentID) == "":
		return ReasonMissingID
	case strings.TrimSpace(row.TextOriginal) == "":
		return ReasonMissingText
	default:
		return ""
	}
}

func videoDropReason(row RawVideo) string {
	switch {
	case strings.TrimSpace(row.VideoID) == "":
		return ReasonMissingVideoID
	case strings.TrimSpace(row.Title) == "":
		return ReasonMissingTitle
	default:
		return ""
	}
}

// cleanDate 는 유효하지 않은 날짜를 빈 문자열로 되돌리고 카운터를 올린다. 레코드는 유지된다.
func cleanDate(value string, stats *CleanStats) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if _, ok := ParseDate(trimmed); !ok {
		stats.InvalidDates++
		return ""
	}
	return trimmed
}

func clampInt(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, "|")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		list = append(list, token)
	}
	if len(list) == 0 {
		return nil
	}
	return list
}

func newStats(original int) CleanStats {
	return CleanStats{Original: original, Reasons: make(map[string]int)}
}

func (s *CleanStats) drop(reason string) {
	s.Removed++
	s.Reasons[reason]++
}

func (s *CleanStats) finish(cleaned int) {
	s.Cleaned = cleaned
	if s.Original > 0 {
		s.Rate = math.Round(float64(s.Removed)/float64(s.Original)*1000) / 10
	}
}
