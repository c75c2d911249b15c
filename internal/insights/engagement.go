package insights

// Engagement benchmark buckets shared by both rates.
const (
	BucketBelowAverage = "Below Average"
	BucketAverage      = "Average"
	BucketAboveAverage = "Above Average"
	BucketExceptional  = "Exceptional"
)

// EngagementInsight benchmarks like and comment rates against fixed
// platform-typical thresholds. LikeRate is likes per 100 views, CommentRate
// is comments per 1000 views.
type EngagementInsight struct {
	LikeRate          float64 `json:"likeRate"`
	LikeRateBucket    string  `json:"likeRateBucket"`
	CommentRate       float64 `json:"commentRate"`
	CommentRateBucket string  `json:"commentRateBucket"`
}

// BenchmarkEngagement computes and buckets both rates independently. Zero
// views yields zero rates in the lowest bucket rather than an error.
func BenchmarkEngagement(views, likes, comments int64) EngagementInsight {
	var likeRate, commentRate float64
	if views > 0 {
		likeRate = float64(likes) / float64(views) * 100
		commentRate = float64(comments) / float64(views) * 1000
	}

	return EngagementInsight{
		LikeRate:          likeRate,
		LikeRateBucket:    bucketLikeRate(likeRate),
		CommentRate:       commentRate,
		CommentRateBucket: bucketCommentRate(commentRate),
	}
}

func bucketLikeRate(rate float64) string {
	switch {
	case rate >= 6:
		return BucketExceptional
	case rate >= 4:
		return BucketAboveAverage
	case rate >= 2:
		return BucketAverage
	default:
		return BucketBelowAverage
	}
}

func bucketCommentRate(rate float64) string {
	switch {
	case rate >= 6:
		return BucketExceptional
	case rate >= 3:
		return BucketAboveAverage
	case rate >= 1:
		return BucketAverage
	default:
		return BucketBelowAverage
	}
}
