// Package aggregate 는 분석된 레코드 전체에서 데이터셋 단위 지표를 계산한다.
// 증분 갱신 없이 항상 전체 컬렉션에서 다시 계산하므로 호출 순서와 무관하게 결과가 같다.
package aggregate

import (
	"sort"

	"github.com/park285/comment-insight-go/internal/analyzer"
	"github.com/park285/comment-insight-go/internal/classify"
	"github.com/park285/comment-insight-go/internal/record"
)

const topKeywordLimit = 20

const topVideoLimit = 5

// SentimentDistribution 은 감성별 비율이다. 값은 count/total*100 으로, 반올림하지 않는다.
type SentimentDistribution struct {
	PositivePct float64 `json:"positive_pct"`
	NegativePct float64 `json:"negative_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
}

// KeywordStat 의 Count 는 키워드를 포함한 레코드 수다. 레코드 내 중복은 세지 않는다.
// Sentiment 는 그 키워드를 처음 가져온 레코드의 감성이다.
type KeywordStat struct {
	Keyword   string                  `json:"keyword"`
	Count     int                     `json:"count"`
	Sentiment classify.SentimentLabel `json:"sentiment"`
}

// TrendBucket 은 시각(0-23)별 댓글 수와 평균 좋아요다.
type TrendBucket struct {
	Hour     int     `json:"hour"`
	Comments int     `json:"comments"`
	AvgLikes float64 `json:"avg_likes"`
}

// QualityIndicators 는 전체 댓글에 대한 단순 평균들이다.
type QualityIndicators struct {
	AvgTextLength  float64 `json:"avg_text_length"`
	AvgLikes       float64 `json:"avg_likes"`
	AvgReadability float64 `json:"avg_readability"`
}

// CategoryPerformance 는 카테고리별 영상 평균이다.
type CategoryPerformance struct {
	AvgViews      float64 `json:"avg_views"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// VideoMetrics 는 영상이 1개 이상일 때만 채워지는 블록이다.
type VideoMetrics struct {
	TotalVideos       int                            `json:"total_videos"`
	TotalViews        int                            `json:"total_views"`
	TotalLikes        int                            `json:"total_likes"`
	TotalFavourites   int                            `json:"total_favourites"`
	TotalComments     int                            `json:"total_comments"`
	AvgViews          float64                        `json:"avg_views"`
	AvgLikes          float64                        `json:"avg_likes"`
	AvgFavourites     float64                        `json:"avg_favourites"`
	AvgComments       float64                        `json:"avg_comments"`
	AvgEngagementRate float64                        `json:"avg_engagement_rate"`
	TopPerforming     []analyzer.AnalyzedVideo       `json:"top_performing"`
	ByCategory        map[string]CategoryPerformance `json:"by_category"`
}

// Metrics 는 데이터셋 전체 지표다. VideoMetrics 는 영상이 없으면 nil 이다.
type Metrics struct {
	TotalComments         int                   `json:"total_comments"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	SpamRatio             float64               `json:"spam_ratio"`
	QualityRatio          float64               `json:"quality_ratio"`
	CategoryDistribution  map[string]int        `json:"category_distribution"`
	TopKeywords           []KeywordStat         `json:"top_keywords"`
	EngagementTrends      [24]TrendBucket       `json:"engagement_trends"`
	QualityIndicators     QualityIndicators     `json:"quality_indicators"`
	VideoMetrics          *VideoMetrics         `json:"video_metrics,omitempty"`
}

// Generate 는 전체 지표를 계산한다. 댓글이 없고 영상만 있으면 댓글 파생
// 필드는 0 으로 두고 영상 블록만 채우는 별도 경로를 탄다.
func Generate(comments []analyzer.AnalyzedComment, videos []analyzer.AnalyzedVideo) Metrics {
	metrics := Metrics{
		CategoryDistribution: make(map[string]int),
		TopKeywords:          []KeywordStat{},
	}
	initTrends(&metrics.EngagementTrends)

	if len(videos) > 0 {
		metrics.VideoMetrics = videoMetrics(videos)
	}
	if len(comments) == 0 {
		return metrics
	}

	total := len(comments)
	metrics.TotalComments = total

	positives, negatives, neutrals := 0, 0, 0
	spam, quality := 0, 0
	totalLength, totalLikes := 0, 0
	totalReadability := 0.0
	for _, comment := range comments {
		switch comment.Sentiment {
		case classify.SentimentPositive:
			positives++
		case classify.SentimentNegative:
			negatives++
		default:
			neutrals++
		}
		if comment.IsSpam {
			spam++
		}
		if comment.IsQuality {
			quality++
		}
		metrics.CategoryDistribution[comment.Category]++

		totalLength += len([]rune(comment.TextOriginal))
		totalLikes += comment.LikeCount
		totalReadability += comment.ReadabilityScore
	}

	denominator := float64(total)
	metrics.SentimentDistribution = SentimentDistribution{
		PositivePct: float64(positives) / denominator * 100,
		NegativePct: float64(negatives) / denominator * 100,
		NeutralPct:  float64(neutrals) / denominator * 100,
	}
	metrics.SpamRatio = float64(spam) / denominator * 100
	metrics.QualityRatio = float64(quality) / denominator * 100
	metrics.QualityIndicators = QualityIndicators{
		AvgTextLength:  float64(totalLength) / denominator,
		AvgLikes:       float64(totalLikes) / denominator,
		AvgReadability: totalReadability / denominator,
	}
	metrics.TopKeywords = topKeywords(comments)
	fillTrends(&metrics.EngagementTrends, comments)
	return metrics
}

func initTrends(trends *[24]TrendBucket) {
	for hour := range trends {
		trends[hour] = TrendBucket{Hour: hour}
	}
}

// fillTrends 는 publishedAt 의 시각으로 댓글을 24개 버킷에 나눈다.
// 존 없는 입력은 로컬 시각으로 읽고, 파싱 불가능한 날짜는 건너뛴다.
func fillTrends(trends *[24]TrendBucket, comments []analyzer.AnalyzedComment) {
	likeTotals := [24]int{}
	for _, comment := range comments {
		published, ok := record.ParseDate(comment.PublishedAt)
		if !ok {
			continue
		}
		hour := published.Hour()
		trends[hour].Comments++
		likeTotals[hour] += comment.LikeCount
	}
	for hour := range trends {
		if trends[hour].Comments > 0 {
			trends[hour].AvgLikes = float64(likeTotals[hour]) / float64(trends[hour].Comments)
		}
	}
}

// topKeywords 는 레코드 포함 기준으로 키워드를 세고, 감성은 처음 가져온
// 레코드의 것을 유지한 채 빈도 내림차순 상위 20개를 반환한다.
func topKeywords(comments []analyzer.AnalyzedComment) []KeywordStat {
	counts := make(map[string]int)
	firstSentiment := make(map[string]classify.SentimentLabel)
	var order []string

	for _, comment := range comments {
		seen := make(map[string]struct{}, len(comment.Keywords))
		for _, keyword := range comment.Keywords {
			if _, ok := seen[keyword]; ok {
				continue
			}
			seen[keyword] = struct{}{}

			if counts[keyword] == 0 {
				order = append(order, keyword)
				firstSentiment[keyword] = comment.Sentiment
			}
			counts[keyword]++
		}
	}

	stats := make([]KeywordStat, 0, len(order))
	for _, keyword := range order {
		stats = append(stats, KeywordStat{
			Keyword:   keyword,
			Count:     counts[keyword],
			Sentiment: firstSentiment[keyword],
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	if len(stats) > topKeywordLimit {
		stats = stats[:topKeywordLimit]
	}
	return stats
}

func videoMetrics(videos []analyzer.AnalyzedVideo) *VideoMetrics {
	vm := &VideoMetrics{
		TotalVideos: len(videos),
		ByCategory:  make(map[string]CategoryPerformance),
	}

	totalEngagement := 0.0
	type categoryAccumulator struct {
		views      int
		engagement float64
		count      int
	}
	byCategory := make(map[string]*categoryAccumulator)

	for _, video := range videos {
		vm.TotalViews += video.ViewCount
		vm.TotalLikes += video.LikeCount
		// favouriteCount 합산은 업스트림에서 0 으로 클램프된 값의 단순 합이다.
		vm.TotalFavourites += video.FavouriteCount
		vm.TotalComments += video.CommentCount
		totalEngagement += video.EngagementRate

		acc := byCategory[video.Category]
		if acc == nil {
			acc = &categoryAccumulator{}
			byCategory[video.Category] = acc
		}
		acc.views += video.ViewCount
		acc.engagement += video.EngagementRate
		acc.count++
	}

	denominator := float64(len(videos))
	vm.AvgViews = float64(vm.TotalViews) / denominator
	vm.AvgLikes = float64(vm.TotalLikes) / denominator
	vm.AvgFavourites = float64(vm.TotalFavourites) / denominator
	vm.AvgComments = float64(vm.TotalComments) / denominator
	vm.AvgEngagementRate = totalEngagement / denominator

	for name, acc := range byCategory {
		vm.ByCategory[name] = CategoryPerformance{
			AvgViews:      float64(acc.views) / float64(acc.count),
			AvgEngagement: acc.engagement / float64(acc.count),
		}
	}

	ranked := make([]analyzer.AnalyzedVideo, len(videos))
	copy(ranked, videos)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EngagementRate > ranked[j].EngagementRate
	})
	if len(ranked) > topVideoLimit {
		ranked = ranked[:topVideoLimit]
	}
	vm.TopPerforming = ranked
	return vm
}
