package classify

import "github.com/park285/comment-insight-go/internal/lexicon"

// SentimentLabel 는 감성 판정 결과다.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// SentimentResult 의 Score 는 [-1,1] 범위다.
type SentimentResult struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

// GeneralCategory 는 어떤 카테고리에도 걸리지 않은 결과다.
const GeneralCategory = "general"

// CategoryResult 의 Confidence 는 topScore/sum, general 이면 0.1 고정이다.
type CategoryResult struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// SpamResult 의 Score 는 [0,1] 범위, Reasons 는 중복 제거된 사유 태그다.
type SpamResult struct {
	IsSpam  bool     `json:"is_spam"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// QualityResult 의 Score 는 [0,1] 범위다.
type QualityResult struct {
	IsQuality bool    `json:"is_quality"`
	Score     float64 `json:"score"`
}

// EngagementTier 는 좋아요 수 구간이다.
type EngagementTier string

const (
	EngagementHigh   EngagementTier = "high"
	EngagementMedium EngagementTier = "medium"
	EngagementLow    EngagementTier = "low"
)

// Classifier 는 렉시콘을 공유하는 분류기 묶음이다. 모든 메서드는 순수 함수다.
type Classifier struct {
	lex *lexicon.Lexicon
}

// New 는 분류기를 만든다.
func New(lex *lexicon.Lexicon) *Classifier {
	return &Classifier{lex: lex}
}
