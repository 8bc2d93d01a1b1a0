package record

import "strings"

// 파일 종류 시그니처 토큰. 헤더 토큰에 부분 문자열로 3개 이상 나타나면 해당 종류다.
var (
	commentSignature = []string{"comment", "text", "author", "published"}
	videoSignature   = []string{"video", "title", "view", "duration", "channel"}
)

// DetectKind 는 헤더 목록으로 파일 종류를 추정한다.
// 두 시그니처가 동시에 충족되거나 둘 다 미달이면 KindUnknown 이다.
func DetectKind(header []string) Kind {
	lowered := make([]string, len(header))
	for i, column := range header {
		lowered[i] = strings.ToLower(column)
	}

	commentHits := signatureHits(lowered, commentSignature)
	videoHits := signatureHits(lowered, videoSignature)

	isComments := commentHits >= 3
	isVideos := videoHits >= 3
	switch {
	case isComments && !isVideos:
		return KindComments
	case isVideos && !isComments:
		return KindVideos
	default:
		return KindUnknown
	}
}

func signatureHits(lowered []string, signature []string) int {
	hits := 0
	for _, token := range signature {
		for _, column := range lowered {
			if strings.Contains(column, token) {
				hits++
				break
			}
		}
	}
	return hits
}

// ExpectedColumns 는 구분자 추정과 오류 메시지에 쓰는 종류별 기대 컬럼명이다.
func ExpectedColumns(kind Kind) []string {
	switch kind {
	case KindComments:
		return []string{"commentId", "videoId", "textOriginal", "authorId", "likeCount", "publishedAt"}
	case KindVideos:
		return []string{"videoId", "title", "viewCount", "likeCount", "commentCount", "duration", "channelId"}
	default:
		return nil
	}
}

// SniffColumns 는 종류를 모르는 상태의 구분자 추정에 쓰는 합집합 컬럼명이다.
func SniffColumns() []string {
	return append(ExpectedColumns(KindComments), ExpectedColumns(KindVideos)...)
}
