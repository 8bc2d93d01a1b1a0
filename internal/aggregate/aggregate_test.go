package aggregate

import (
	"math"
	"testing"

	"github.com/park285/comment-insight-go/internal/analyzer"
	"github.com/park285/comment-insight-go/internal/classify"
	"github.com/park285/comment-insight-go/internal/record"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func comment(id string, opts func(*analyzer.AnalyzedComment)) analyzer.AnalyzedComment {
	c := analyzer.AnalyzedComment{
		Comment:   record.Comment{CommentID: id, VideoID: "v1", TextOriginal: "text"},
		Sentiment: classify.SentimentNeutral,
		Category:  classify.GeneralCategory,
	}
	if opts != nil {
		opts(&c)
	}
	return c
}

func TestGenerateZeroGuard(t *testing.T) {
	metrics := Generate(nil, nil)

	if metrics.TotalComments != 0 {
		t.Fatalf("totalComments = %d", metrics.TotalComments)
	}
	if metrics.SpamRatio != 0 || metrics.QualityRatio != 0 {
		t.Fatalf("ratios = %v/%v, want 0", metrics.SpamRatio, metrics.QualityRatio)
	}
	if len(metrics.TopKeywords) != 0 {
		t.Fatalf("topKeywords = %v, want empty", metrics.TopKeywords)
	}
	if metrics.VideoMetrics != nil {
		t.Fatal("videoMetrics must be nil without videos")
	}
	for hour, bucket := range metrics.EngagementTrends {
		if bucket.Hour != hour || bucket.Comments != 0 || bucket.AvgLikes != 0 {
			t.Fatalf("bucket[%d] = %+v, want zeroed", hour, bucket)
		}
	}
}

func TestGenerateDistributions(t *testing.T) {
	comments := []analyzer.AnalyzedComment{
		comment("c1", func(c *analyzer.AnalyzedComment) {
			c.Sentiment = classify.SentimentPositive
			c.IsQuality = true
			c.Category = "skincare"
			c.LikeCount = 10
			c.TextOriginal = "ten chars!"
			c.ReadabilityScore = 0.8
		}),
		comment("c2", func(c *analyzer.AnalyzedComment) {
			c.Sentiment = classify.SentimentNegative
			c.IsSpam = true
			c.Category = "skincare"
			c.TextOriginal = "four"
			c.ReadabilityScore = 0.4
		}),
		comment("c3", func(c *analyzer.AnalyzedComment) {
			c.TextOriginal = "sixsix"
		}),
	}

	metrics := Generate(comments, nil)

	if metrics.TotalComments != 3 {
		t.Fatalf("totalComments = %d", metrics.TotalComments)
	}
	dist := metrics.SentimentDistribution
	if !almostEqual(dist.PositivePct, 100.0/3) || !almostEqual(dist.NegativePct, 100.0/3) || !almostEqual(dist.NeutralPct, 100.0/3) {
		t.Fatalf("distribution = %+v", dist)
	}
	if !almostEqual(metrics.SpamRatio, 100.0/3) {
		t.Fatalf("spamRatio = %v", metrics.SpamRatio)
	}
	if !almostEqual(metrics.QualityRatio, 100.0/3) {
		t.Fatalf("qualityRatio = %v", metrics.QualityRatio)
	}
	if metrics.CategoryDistribution["skincare"] != 2 || metrics.CategoryDistribution[classify.GeneralCategory] != 1 {
		t.Fatalf("categoryDistribution = %v", metrics.CategoryDistribution)
	}
	indicators := metrics.QualityIndicators
	if !almostEqual(indicators.AvgTextLength, 20.0/3) {
		t.Fatalf("avgTextLength = %v", indicators.AvgTextLength)
	}
	if !almostEqual(indicators.AvgLikes, 10.0/3) {
		t.Fatalf("avgLikes = %v", indicators.AvgLikes)
	}
	if !almostEqual(indicators.AvgReadability, 1.2/3) {
		t.Fatalf("avgReadability = %v", indicators.AvgReadability)
	}
}

func TestTopKeywordsFirstSeenSentiment(t *testing.T) {
	comments := []analyzer.AnalyzedComment{
		comment("c1", func(c *analyzer.AnalyzedComment) {
			c.Sentiment = classify.SentimentNegative
			// 레코드 내 중복은 한 번만 센다.
			c.Keywords = []string{"serum", "serum", "texture"}
		}),
		comment("c2", func(c *analyzer.AnalyzedComment) {
			c.Sentiment = classify.SentimentPositive
			c.Keywords = []string{"serum"}
		}),
		comment("c3", func(c *analyzer.AnalyzedComment) {
			c.Sentiment = classify.SentimentPositive
			c.Keywords = []string{"serum", "glow"}
		}),
	}

	metrics := Generate(comments, nil)

	if len(metrics.TopKeywords) != 3 {
		t.Fatalf("topKeywords = %+v", metrics.TopKeywords)
	}
	top := metrics.TopKeywords[0]
	if top.Keyword != "serum" || top.Count != 3 {
		t.Fatalf("top = %+v, want serum/3", top)
	}
	// 감성 태그는 다수결이 아니라 처음 본 레코드의 것을 유지한다.
	if top.Sentiment != classify.SentimentNegative {
		t.Fatalf("top sentiment = %q, want first-seen negative", top.Sentiment)
	}
	if metrics.TopKeywords[1].Keyword != "texture" || metrics.TopKeywords[2].Keyword != "glow" {
		t.Fatalf("tie order not stable: %+v", metrics.TopKeywords)
	}
}

func TestEngagementTrends(t *testing.T) {
	comments := []analyzer.AnalyzedComment{
		comment("c1", func(c *analyzer.AnalyzedComment) {
			c.PublishedAt = "2024-03-01T09:15:00"
			c.LikeCount = 4
		}),
		comment("c2", func(c *analyzer.AnalyzedComment) {
			c.PublishedAt = "2024-03-02T09:45:00"
			c.LikeCount = 6
		}),
		comment("c3", func(c *analyzer.AnalyzedComment) {
			c.PublishedAt = "2024-03-01T23:00:00"
			c.LikeCount = 1
		}),
		comment("c4", func(c *analyzer.AnalyzedComment) {
			c.PublishedAt = ""
		}),
	}

	metrics := Generate(comments, nil)

	nine := metrics.EngagementTrends[9]
	if nine.Comments != 2 || !almostEqual(nine.AvgLikes, 5) {
		t.Fatalf("bucket[9] = %+v", nine)
	}
	late := metrics.EngagementTrends[23]
	if late.Comments != 1 || !almostEqual(late.AvgLikes, 1) {
		t.Fatalf("bucket[23] = %+v", late)
	}
	if metrics.EngagementTrends[0].Comments != 0 {
		t.Fatalf("bucket[0] = %+v, want empty", metrics.EngagementTrends[0])
	}
}

func video(id string, views, likes, favs, comments int, rate float64, category string) analyzer.AnalyzedVideo {
	return analyzer.AnalyzedVideo{
		Video: record.Video{
			VideoID: id, Title: id,
			ViewCount: views, LikeCount: likes, FavouriteCount: favs, CommentCount: comments,
		},
		Category:       category,
		EngagementRate: rate,
	}
}

func TestVideoOnlyMode(t *testing.T) {
	videos := []analyzer.AnalyzedVideo{
		video("v1", 1000, 50, 2, 20, 5.0, "skincare"),
		video("v2", 3000, 30, 0, 10, 1.0, "makeup"),
	}

	metrics := Generate(nil, videos)

	if metrics.TotalComments != 0 || len(metrics.TopKeywords) != 0 {
		t.Fatalf("comment fields must stay zeroed: %+v", metrics)
	}
	vm := metrics.VideoMetrics
	if vm == nil {
		t.Fatal("videoMetrics missing")
	}
	if vm.TotalVideos != 2 || vm.TotalViews != 4000 || vm.TotalFavourites != 2 {
		t.Fatalf("videoMetrics = %+v", vm)
	}
	if !almostEqual(vm.AvgViews, 2000) || !almostEqual(vm.AvgEngagementRate, 3.0) {
		t.Fatalf("averages = %+v", vm)
	}
	perf, ok := vm.ByCategory["skincare"]
	if !ok || !almostEqual(perf.AvgViews, 1000) || !almostEqual(perf.AvgEngagement, 5.0) {
		t.Fatalf("byCategory = %+v", vm.ByCategory)
	}
}

func TestTopPerformingVideos(t *testing.T) {
	videos := []analyzer.AnalyzedVideo{
		video("v1", 0, 0, 0, 0, 2.0, "general"),
		video("v2", 0, 0, 0, 0, 8.0, "general"),
		video("v3", 0, 0, 0, 0, 2.0, "general"),
		video("v4", 0, 0, 0, 0, 5.0, "general"),
		video("v5", 0, 0, 0, 0, 1.0, "general"),
		video("v6", 0, 0, 0, 0, 9.0, "general"),
	}

	metrics := Generate(nil, videos)
	top := metrics.VideoMetrics.TopPerforming
	if len(top) != 5 {
		t.Fatalf("top = %d entries, want 5", len(top))
	}
	wantOrder := []string{"v6", "v2", "v4", "v1", "v3"}
	for i, want := range wantOrder {
		if top[i].VideoID != want {
			t.Fatalf("top order = %v, want %v at %d", top[i].VideoID, want, i)
		}
	}
	// 원본 슬라이스는 재정렬되지 않는다.
	if videos[0].VideoID != "v1" {
		t.Fatalf("input mutated: %v", videos[0].VideoID)
	}
}
