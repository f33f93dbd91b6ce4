package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-pulse-api/internal/models"
	"github.com/noah-isme/campus-pulse-api/internal/observability"
)

// FeedbackGateway exposes a uniform store over the primary repository and the
// local fallback tier. Callers never learn which tier served a request: any
// primary failure degrades to the fallback and surfaces only through logs and
// the degraded-operation counter.
//
// The two datasets are not merged or reconciled. A read during a primary
// outage returns only the fallback dataset, which may omit records written
// while the primary was healthy, and vice versa. This divergence is a known
// gap, observable rather than hidden, and deliberately not repaired here.
type FeedbackGateway struct {
	primary  FeedbackRepository
	fallback *FallbackStore
	logger   zerolog.Logger
}

// NewFeedbackGateway constructs the dual-tier gateway.
func NewFeedbackGateway(primary FeedbackRepository, fallback *FallbackStore, logger zerolog.Logger) *FeedbackGateway {
	return &FeedbackGateway{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "feedback_gateway").Logger(),
	}
}

func (g *FeedbackGateway) degraded(op string, err error) {
	observability.DegradedOperations().WithLabelValues(op).Inc()
	g.logger.Warn().Err(err).Str("operation", op).Msg("primary store unavailable, serving from fallback tier")
}

// Save writes the record to the primary tier, degrading to the fallback blob
// when the primary is unreachable. The logical operation does not fail on a
// primary outage.
func (g *FeedbackGateway) Save(ctx context.Context, feedback *models.Feedback) error {
	if err := g.primary.Create(ctx, feedback); err != nil {
		g.degraded("save", err)
		return g.fallback.Append(*feedback)
	}

	return nil
}

// ListAll returns the stored records newest first, from whichever tier is
// reachable.
func (g *FeedbackGateway) ListAll(ctx context.Context) ([]models.Feedback, error) {
	records, err := g.primary.List(ctx)
	if err != nil {
		g.degraded("list_all", err)
		return g.fallback.Load()
	}

	return records, nil
}

// ListByStudent returns the submitter's records newest first.
func (g *FeedbackGateway) ListByStudent(ctx context.Context, studentID string) ([]models.Feedback, error) {
	records, err := g.primary.ListByStudent(ctx, studentID)
	if err != nil {
		g.degraded("list_by_student", err)

		all, loadErr := g.fallback.Load()
		if loadErr != nil {
			return nil, loadErr
		}

		matched := make([]models.Feedback, 0, len(all))
		for _, record := range all {
			if record.StudentID == studentID {
				matched = append(matched, record)
			}
		}

		return matched, nil
	}

	return records, nil
}

// Update applies mutate to the record in whichever tier currently holds it and
// persists the result as a single write. A mutate error aborts the operation
// with no partial state change.
func (g *FeedbackGateway) Update(ctx context.Context, id string, mutate func(*models.Feedback) error) (models.Feedback, error) {
	record, err := g.primary.GetByID(ctx, id)
	switch {
	case err == nil:
		if err := mutate(&record); err != nil {
			return models.Feedback{}, err
		}

		if err := g.primary.Update(ctx, &record); err != nil {
			// The mutated record is already in hand; land it whole in the
			// fallback tier even when that tier has never seen the id.
			g.degraded("update", err)
			if upsertErr := g.fallback.Upsert(record); upsertErr != nil {
				return models.Feedback{}, upsertErr
			}
			return record, nil
		}

		return record, nil

	case errors.Is(err, ErrNotFound):
		// The record may live in the fallback tier only.
		return g.fallback.Update(id, mutate)

	default:
		g.degraded("update", err)
		return g.fallback.Update(id, mutate)
	}
}

// Delete removes the record from every tier it can reach. The record being
// absent from one tier is not an error as long as some tier held it.
func (g *FeedbackGateway) Delete(ctx context.Context, id string) error {
	primaryErr := g.primary.Delete(ctx, id)
	if primaryErr != nil && !errors.Is(primaryErr, ErrNotFound) {
		g.degraded("delete", primaryErr)
	}

	fallbackErr := g.fallback.Delete(id)
	if fallbackErr != nil && !errors.Is(fallbackErr, ErrNotFound) {
		return fallbackErr
	}

	if primaryErr == nil || fallbackErr == nil {
		return nil
	}

	if errors.Is(primaryErr, ErrNotFound) && errors.Is(fallbackErr, ErrNotFound) {
		return ErrNotFound
	}

	// Primary unreachable and the fallback never held the record: the delete
	// reached every tier it could, so the operation still succeeds.
	return nil
}
