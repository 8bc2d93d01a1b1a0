package classify

// Engagement 는 좋아요 수만으로 참여도 구간을 정한다.
func Engagement(likeCount int) EngagementTier {
	switch {
	case likeCount > 10:
		return EngagementHigh
	case likeCount > 2:
		return EngagementMedium
	default:
		return EngagementLow
	}
}
