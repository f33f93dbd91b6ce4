package dto

import "time"

// AnalyticsSummaryResponse carries the corpus-level metrics computed from a
// snapshot of stored feedback. TopicDistribution counts topic occurrences
// across all records' topic lists (multi-label), not records.
type AnalyticsSummaryResponse struct {
	TotalCount        int            `json:"total_count"`
	AverageSentiment  float64        `json:"average_sentiment"`
	AverageRating     float64        `json:"average_rating"`
	RatingCount       int            `json:"rating_count"`
	FlaggedCount      int            `json:"flagged_count"`
	TopicDistribution map[string]int `json:"topic_distribution"`
	GeneratedAt       time.Time      `json:"generated_at"`
	CacheHit          bool           `json:"cache_hit"`
}
