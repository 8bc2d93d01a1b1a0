// Package analyzer 는 정제된 레코드에 분류기들을 한 번씩 돌려 파생 필드를 채운다.
package analyzer

import (
	"strconv"
	"strings"
	"time"

	"github.com/park285/comment-insight-go/internal/cache"
	"github.com/park285/comment-insight-go/internal/classify"
	"github.com/park285/comment-insight-go/internal/record"
)

// ContentQuality 는 영상 콘텐츠 품질 구간이다.
type ContentQuality string

const (
	ContentQualityHigh   ContentQuality = "high"
	ContentQualityMedium ContentQuality = "medium"
	ContentQualityLow    ContentQuality = "low"
)

// VideoContext 는 댓글에 조인된 영상 정보다. 조인이 없으면 포인터가 nil 이다.
type VideoContext struct {
	Title           string   `json:"title"`
	ViewCount       int      `json:"view_count"`
	LikeCount       int      `json:"like_count"`
	CommentCount    int      `json:"comment_count"`
	TopicCategories []string `json:"topic_categories,omitempty"`
}

// AnalyzedComment 는 원본 댓글 필드에 파생 필드를 더한 결과다.
type AnalyzedComment struct {
	record.Comment

	Sentiment        classify.SentimentLabel `json:"sentiment"`
	SentimentScore   float64                 `json:"sentiment_score"`
	Category         string                  `json:"category"`
	IsSpam           bool                    `json:"is_spam"`
	SpamScore        float64                 `json:"spam_score"`
	SpamReasons      []string                `json:"spam_reasons,omitempty"`
	IsQuality        bool                    `json:"is_quality"`
	QualityScore     float64                 `json:"quality_score"`
	RelevanceScore   float64                 `json:"relevance_score"`
	Keywords         []string                `json:"keywords"`
	Engagement       classify.EngagementTier `json:"engagement"`
	ReadabilityScore float64                 `json:"readability_score"`

	Video *VideoContext `json:"video,omitempty"`
}

// AnalyzedVideo 는 원본 영상 필드에 파생 필드를 더한 결과다.
type AnalyzedVideo struct {
	record.Video

	TitleSentiment            classify.SentimentLabel `json:"title_sentiment"`
	TitleSentimentScore       float64                 `json:"title_sentiment_score"`
	DescriptionSentiment      classify.SentimentLabel `json:"description_sentiment"`
	DescriptionSentimentScore float64                 `json:"description_sentiment_score"`
	Category                  string                  `json:"category"`
	Keywords                  []string                `json:"keywords"`
	EngagementRate            float64                 `json:"engagement_rate"`
	PopularityScore           float64                 `json:"popularity_score"`
	ContentQuality            ContentQuality          `json:"content_quality"`
}

// classification 은 텍스트만으로 결정되는 파생 필드 묶음이다. 메모이제이션 단위.
type classification struct {
	sentiment   classify.SentimentResult
	category    classify.CategoryResult
	spam        classify.SpamResult
	quality     classify.QualityResult
	readability float64
	keywords    []string
}

// Analyzer 는 분류기 묶음과 선택적 메모 캐시를 가진다.
type Analyzer struct {
	cls  *classify.Classifier
	memo *cache.TTLCache[string, classification]
}

// New 는 분석기를 만든다. cacheSize 가 0 이하이면 메모 캐시 없이 동작한다.
func New(cls *classify.Classifier, cacheSize int, cacheTTL time.Duration) *Analyzer {
	a := &Analyzer{cls: cls}
	if cacheSize > 0 {
		a.memo = cache.NewTTLCache[string, classification](cacheSize, cacheTTL)
	}
	return a
}

// AnalyzeComment 는 댓글 하나에 전 분류기를 적용한다.
// relevance = 0.4*카테고리 신뢰도 + 0.3*품질 + 0.3*(1-스팸).
func (a *Analyzer) AnalyzeComment(comment record.Comment) AnalyzedComment {
	result := a.classifyText(comment.TextOriginal, comment.LikeCount)

	return AnalyzedComment{
		Comment:          comment,
		Sentiment:        result.sentiment.Label,
		SentimentScore:   result.sentiment.Score,
		Category:         result.category.Name,
		IsSpam:           result.spam.IsSpam,
		SpamScore:        result.spam.Score,
		SpamReasons:      result.spam.Reasons,
		IsQuality:        result.quality.IsQuality,
		QualityScore:     result.quality.Score,
		RelevanceScore:   0.4*result.category.Confidence + 0.3*result.quality.Score + 0.3*(1-result.spam.Score),
		Keywords:         result.keywords,
		Engagement:       classify.Engagement(comment.LikeCount),
		ReadabilityScore: result.readability,
	}
}

// AnalyzeCommentWithVideo 는 분석 후 영상이 주어지면 조인 컨텍스트를 붙인다.
// 영상이 nil 이어도 오류가 아니며 Video 필드만 비워 둔다.
func (a *Analyzer) AnalyzeCommentWithVideo(comment record.Comment, video *record.Video) AnalyzedComment {
	analyzed := a.AnalyzeComment(comment)
	if video != nil {
		analyzed.Video = &VideoContext{
			Title:           video.Title,
			ViewCount:       video.ViewCount,
			LikeCount:       video.LikeCount,
			CommentCount:    video.CommentCount,
			TopicCategories: video.TopicCategories,
		}
	}
	return analyzed
}

// AnalyzeVideo 는 제목과 설명을 각각 감성 분석하고, 둘을 합친 텍스트로
// 카테고리와 키워드를 뽑는다.
func (a *Analyzer) AnalyzeVideo(video record.Video) AnalyzedVideo {
	titleSentiment := a.cls.Sentiment(video.Title)
	descSentiment := a.cls.Sentiment(video.Description)

	combined := strings.TrimSpace(video.Title + " " + video.Description)
	category := a.cls.Category(combined)
	keywords := a.cls.Keywords(combined, category.Name)

	engagementRate := 0.0
	if video.ViewCount > 0 {
		engagementRate = float64(video.LikeCount) / float64(video.ViewCount) * 100
	}

	popularity := float64(video.ViewCount)/10000*0.4 +
		float64(video.LikeCount)/1000*0.3 +
		float64(video.CommentCount)/100*0.3
	if popularity > 100 {
		popularity = 100
	}

	return AnalyzedVideo{
		Video:                     video,
		TitleSentiment:            titleSentiment.Label,
		TitleSentimentScore:       titleSentiment.Score,
		DescriptionSentiment:      descSentiment.Label,
		DescriptionSentimentScore: descSentiment.Score,
		Category:                  category.Name,
		Keywords:                  keywords,
		EngagementRate:            engagementRate,
		PopularityScore:           popularity,
		ContentQuality:            contentQuality(engagementRate, video.CommentCount),
	}
}

func contentQuality(engagementRate float64, commentCount int) ContentQuality {
	switch {
	case engagementRate > 5 && commentCount > 50:
		return ContentQualityHigh
	case engagementRate > 2 && commentCount > 10:
		return ContentQualityMedium
	default:
		return ContentQualityLow
	}
}

func (a *Analyzer) classifyText(text string, likeCount int) classification {
	if a.memo == nil {
		return a.runClassifiers(text, likeCount)
	}

	key := strconv.Itoa(likeCount) + "|" + text
	if cached, ok := a.memo.Get(key); ok {
		return cached
	}

	result := a.runClassifiers(text, likeCount)
	a.memo.Set(key, result)
	return result
}

func (a *Analyzer) runClassifiers(text string, likeCount int) classification {
	category := a.cls.Category(text)
	return classification{
		sentiment:   a.cls.Sentiment(text),
		category:    category,
		spam:        a.cls.Spam(text),
		quality:     a.cls.Quality(text, likeCount),
		readability: a.cls.Readability(text),
		keywords:    a.cls.Keywords(text, category.Name),
	}
}
