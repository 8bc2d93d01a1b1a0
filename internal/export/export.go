// Package export 는 분석된 댓글을 고정 15열 CSV 아티팩트로 내보낸다.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/park285/comment-insight-go/internal/analyzer"
)

// Header 는 내보내기 고정 열이다. 순서와 이름이 계약이다.
var Header = []string{
	"Comment ID", "Text", "Sentiment", "Sentiment Score", "Category",
	"Quality Score", "Relevance Score", "Spam Score", "Is Quality", "Is Spam",
	"Engagement Level", "Readability Score", "Likes", "Keywords", "Published At",
}

// WriteComments 는 댓글 한 건당 한 행을 쓴다. 자유 텍스트 열은 큰따옴표로
// 감싸고 내부 따옴표는 두 번 써서 이스케이프한다. 점수는 소수 3자리다.
func WriteComments(w io.Writer, comments []analyzer.AnalyzedComment) error {
	if _, err := io.WriteString(w, strings.Join(Header, ",")+"\n"); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, comment := range comments {
		fields := []string{
			comment.CommentID,
			quote(comment.TextOriginal),
			string(comment.Sentiment),
			score(comment.SentimentScore),
			comment.Category,
			score(comment.QualityScore),
			score(comment.RelevanceScore),
			score(comment.SpamScore),
			strconv.FormatBool(comment.IsQuality),
			strconv.FormatBool(comment.IsSpam),
			string(comment.Engagement),
			score(comment.ReadabilityScore),
			strconv.Itoa(comment.LikeCount),
			quote(strings.Join(comment.Keywords, "|")),
			comment.PublishedAt,
		}
		if _, err := io.WriteString(w, strings.Join(fields, ",")+"\n"); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	return nil
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func score(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}
