package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/campus-pulse-api/internal/dto"
	"github.com/noah-isme/campus-pulse-api/internal/models"
	"github.com/noah-isme/campus-pulse-api/internal/repository"
	"github.com/noah-isme/campus-pulse-api/pkg/classifier"
)

// Summarize computes corpus-level metrics from a snapshot of records. It is
// pure: the input is never mutated, empty input yields an all-zero summary,
// and no division by zero can occur.
func Summarize(records []models.Feedback) dto.AnalyticsSummaryResponse {
	distribution := make(map[string]int, 6)
	for _, label := range classifier.AllTopics() {
		distribution[string(label)] = 0
	}

	summary := dto.AnalyticsSummaryResponse{
		TotalCount:        len(records),
		TopicDistribution: distribution,
	}

	if len(records) == 0 {
		return summary
	}

	var sentimentTotal float64
	var ratingTotal int

	for _, record := range records {
		sentimentTotal += record.SentimentScore

		if record.Rating != nil && *record.Rating > 0 {
			summary.RatingCount++
			ratingTotal += *record.Rating
		}

		if record.Flagged {
			summary.FlaggedCount++
		}

		for _, topic := range record.TopicList() {
			key := string(topic.Label)
			if _, ok := distribution[key]; ok {
				distribution[key]++
			}
		}
	}

	summary.AverageSentiment = sentimentTotal / float64(len(records))
	if summary.RatingCount > 0 {
		summary.AverageRating = float64(ratingTotal) / float64(summary.RatingCount)
	}

	return summary
}

// AnalyticsService aggregates corpus metrics over the stored record set.
type AnalyticsService interface {
	GetSummary(ctx context.Context) (dto.AnalyticsSummaryResponse, error)
	Summarize(records []models.Feedback) dto.AnalyticsSummaryResponse
}

type analyticsService struct {
	gateway  *repository.FeedbackGateway
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAnalyticsService constructs the analytics service.
func NewAnalyticsService(gateway *repository.FeedbackGateway, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		gateway:  gateway,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "analytics_service").Logger(),
		now:      time.Now,
	}
}

func (s *analyticsService) Summarize(records []models.Feedback) dto.AnalyticsSummaryResponse {
	summary := Summarize(records)
	summary.GeneratedAt = s.now().UTC()
	return summary
}

// GetSummary aggregates over a snapshot taken via the gateway. The snapshot is
// eventually consistent with storage; consumers poll rather than subscribe.
func (s *analyticsService) GetSummary(ctx context.Context) (dto.AnalyticsSummaryResponse, error) {
	const cacheKey = "analytics:feedback:summary"
	tracer := otel.Tracer("github.com/noah-isme/campus-pulse-api/internal/service/analytics")
	ctx, span := tracer.Start(ctx, "analytics.summarize")
	span.SetAttributes(attribute.String("analytics.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var summary dto.AnalyticsSummaryResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &summary); unmarshalErr == nil {
				summary.CacheHit = true
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return summary, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	records, err := s.gateway.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_feedback_failed")
		return dto.AnalyticsSummaryResponse{}, err
	}

	summary := s.Summarize(records)
	span.SetAttributes(attribute.Int("analytics.record_count", len(records)))

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}
