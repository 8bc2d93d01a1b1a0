// Package record 는 파싱된 행 맵을 정규화하고 정제해 타입 있는 레코드로 만든다.
package record

// Kind 는 업로드 파일의 레코드 종류다.
type Kind string

const (
	KindComments Kind = "comments"
	KindVideos   Kind = "videos"
	KindUnknown  Kind = "unknown"
)

// RawComment 는 정규화 직후의 댓글 행이다. 모든 필드가 문자열이며 정제 전이다.
type RawComment struct {
	CommentID       string `mapstructure:"commentId" json:"comment_id"`
	ChannelID       string `mapstructure:"channelId" json:"channel_id"`
	VideoID         string `mapstructure:"videoId" json:"video_id"`
	AuthorID        string `mapstructure:"authorId" json:"author_id"`
	ParentCommentID string `mapstructure:"parentCommentId" json:"parent_comment_id"`
	TextOriginal    string `mapstructure:"textOriginal" json:"text_original"`
	LikeCount       string `mapstructure:"likeCount" json:"like_count"`
	PublishedAt     string `mapstructure:"publishedAt" json:"published_at"`
	UpdatedAt       string `mapstructure:"updatedAt" json:"updated_at"`
}

// RawVideo 는 정규화 직후의 영상 행이다.
type RawVideo struct {
	VideoID         string `mapstructure:"videoId" json:"video_id"`
	ChannelID       string `mapstructure:"channelId" json:"channel_id"`
	Title           string `mapstructure:"title" json:"title"`
	Description     string `mapstructure:"description" json:"description"`
	Tags            string `mapstructure:"tags" json:"tags"`
	TopicCategories string `mapstructure:"topicCategories" json:"topic_categories"`
	ViewCount       string `mapstructure:"viewCount" json:"view_count"`
	LikeCount       string `mapstructure:"likeCount" json:"like_count"`
	FavouriteCount  string `mapstructure:"favouriteCount" json:"favourite_count"`
	CommentCount    string `mapstructure:"commentCount" json:"comment_count"`
	PublishedAt     string `mapstructure:"publishedAt" json:"published_at"`
	Duration        string `mapstructure:"duration" json:"duration"`
}

// Comment 는 정제를 통과한 댓글이다. CommentID/VideoID/TextOriginal 은 비어 있지 않다.
type Comment struct {
	CommentID       string `json:"comment_id"`
	ChannelID       string `json:"channel_id"`
	VideoID         string `json:"video_id"`
	AuthorID        string `json:"author_id"`
	ParentCommentID string `json:"parent_comment_id"`
	TextOriginal    string `json:"text_original"`
	LikeCount       int    `json:"like_count"`
	PublishedAt     string `json:"published_at"`
	UpdatedAt       string `json:"updated_at"`
}

// Video 는 정제를 통과한 영상이다. VideoID/Title 은 비어 있지 않고 카운터는 0 이상이다.
type Video struct {
	VideoID         string   `json:"video_id"`
	ChannelID       string   `json:"channel_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
	TopicCategories []string `json:"topic_categories"`
	ViewCount       int      `json:"view_count"`
	LikeCount       int      `json:"like_count"`
	FavouriteCount  int      `json:"favourite_count"`
	CommentCount    int      `json:"comment_count"`
	PublishedAt     string   `json:"published_at"`
	Duration        string   `json:"duration"`
}

// CleanStats 는 정제 단계 집계다. Cleaned+Removed == Original 을 항상 만족한다.
type CleanStats struct {
	Original     int            `json:"original"`
	Cleaned      int            `json:"cleaned"`
	Removed      int            `json:"removed"`
	Reasons      map[string]int `json:"reasons"`
	InvalidDates int            `json:"invalid_dates"`
	// Rate 는 removed/original*100, 소수 첫째 자리 반올림. original 0 이면 0.
	Rate float64 `json:"rate"`
}

// 행 제거 사유 카운터 키. 행당 하나만 집계되며 먼저 걸린 사유가 이긴다.
const (
	ReasonMissingVideoID = "missingVideoId"
	ReasonMissingID      = "missingCommentId"
	ReasonMissingText    = "missingText"
	ReasonMissingTitle   = "missingTitle"
)
