package record

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// fieldAliases 는 정식 필드명 → 허용 헤더 별칭의 순서 있는 목록이다.
// 먼저 매칭되는 별칭이 이기고, 비교는 소문자 기준이다.
type fieldAliases struct {
	field   string
	aliases []string
	// def 는 별칭이 하나도 없을 때 채우는 기본값이다. 숫자 필드는 "0" 을 쓴다.
	def string
}

var commentAliases = []fieldAliases{
	{field: "commentId", aliases: []string{"commentId", "comment_id", "id"}},
	{field: "channelId", aliases: []string{"channelId", "channel_id"}},
	{field: "videoId", aliases: []string{"videoId", "video_id"}},
	{field: "authorId", aliases: []string{"authorId", "author_id", "authorChannelId", "authorDisplayName"}},
	{field: "parentCommentId", aliases: []string{"parentCommentId", "parent_comment_id", "parentId"}},
	{field: "textOriginal", aliases: []string{"textOriginal", "text_original", "textDisplay", "text"}},
	{field: "likeCount", aliases: []string{"likeCount", "like_count", "likes"}, def: "0"},
	{field: "publishedAt", aliases: []string{"publishedAt", "published_at"}},
	{field: "updatedAt", aliases: []string{"updatedAt", "updated_at"}},
}

var videoAliases = []fieldAliases{
	{field: "videoId", aliases: []string{"videoId", "video_id", "id"}},
	{field: "channelId", aliases: []string{"channelId", "channel_id"}},
	{field: "title", aliases: []string{"title", "videoTitle", "video_title"}},
	{field: "description", aliases: []string{"description", "videoDescription"}},
	{field: "tags", aliases: []string{"tags", "videoTags"}},
	{field: "topicCategories", aliases: []string{"topicCategories", "topic_categories", "topics"}},
	{field: "viewCount", aliases: []string{"viewCount", "view_count", "views"}, def: "0"},
	{field: "likeCount", aliases: []string{"likeCount", "like_count", "likes"}, def: "0"},
	{field: "favouriteCount", aliases: []string{"favouriteCount", "favorite_count", "favoriteCount"}, def: "0"},
	{field: "commentCount", aliases: []string{"commentCount", "comment_count", "comments"}, def: "0"},
	{field: "publishedAt", aliases: []string{"publishedAt", "published_at"}},
	{field: "duration", aliases: []string{"duration", "videoDuration"}},
}

// NormalizeComment 는 행 맵을 RawComment 로 정규화한다.
func NormalizeComment(row map[string]string) (RawComment, error) {
	var raw RawComment
	if err := decodeRow(row, commentAliases, &raw); err != nil {
		return RawComment{}, fmt.Errorf("normalize comment row: %w", err)
	}
	return raw, nil
}

// NormalizeVideo 는 행 맵을 RawVideo 로 정규화한다.
func NormalizeVideo(row map[string]string) (RawVideo, error) {
	var raw RawVideo
	if err := decodeRow(row, videoAliases, &raw); err != nil {
		return RawVideo{}, fmt.Errorf("normalize video row: %w", err)
	}
	return raw, nil
}

func decodeRow(row map[string]string, aliases []fieldAliases, out any) error {
	lowered := make(map[string]string, len(row))
	for key, value := range row {
		lowered[strings.ToLower(strings.TrimSpace(key))] = value
	}

	canonical := make(map[string]any, len(aliases))
	for _, entry := range aliases {
		canonical[entry.field] = lookupAlias(lowered, entry)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(canonical)
}

func lookupAlias(lowered map[string]string, entry fieldAliases) string {
	for _, alias := range entry.aliases {
		if value, ok := lowered[strings.ToLower(alias)]; ok {
			return value
		}
	}
	return entry.def
}
