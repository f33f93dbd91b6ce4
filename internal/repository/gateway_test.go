package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-pulse-api/internal/models"
)

// failingRepo simulates a primary tier whose backend is unreachable.
type failingRepo struct {
	err error
}

func (f failingRepo) List(ctx context.Context) ([]models.Feedback, error) { return nil, f.err }
func (f failingRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Feedback, error) {
	return nil, f.err
}
func (f failingRepo) GetByID(ctx context.Context, id string) (models.Feedback, error) {
	return models.Feedback{}, f.err
}
func (f failingRepo) Create(ctx context.Context, feedback *models.Feedback) error { return f.err }
func (f failingRepo) Update(ctx context.Context, feedback *models.Feedback) error { return f.err }
func (f failingRepo) Delete(ctx context.Context, id string) error                 { return f.err }

// readOnlyRepo serves reads from the wrapped repository but rejects every
// write, like a primary demoted to a read-only replica.
type readOnlyRepo struct {
	FeedbackRepository
	writeErr error
}

func (r readOnlyRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.writeErr
}

func (r readOnlyRepo) Update(ctx context.Context, feedback *models.Feedback) error {
	return r.writeErr
}

func (r readOnlyRepo) Delete(ctx context.Context, id string) error { return r.writeErr }

func newHealthyGateway(t *testing.T) *FeedbackGateway {
	t.Helper()
	db := setupFeedbackTestDB(t)
	return NewFeedbackGateway(NewFeedbackRepository(db), newTestFallbackStore(t), zerolog.Nop())
}

func newDegradedGateway(t *testing.T) *FeedbackGateway {
	t.Helper()
	primary := failingRepo{err: errors.New("dial tcp: connection refused")}
	return NewFeedbackGateway(primary, newTestFallbackStore(t), zerolog.Nop())
}

func TestGatewaySaveAndListHealthy(t *testing.T) {
	gateway := newHealthyGateway(t)

	record := classifiedFeedback("a", "s1", "great lectures", time.Now())
	require.NoError(t, gateway.Save(context.Background(), &record))

	records, err := gateway.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "a", records[0].ID)
}

func TestGatewaySaveDegradesToFallback(t *testing.T) {
	gateway := newDegradedGateway(t)

	record := classifiedFeedback("a", "s1", "the wifi in the hostel is poor", time.Now())
	require.NoError(t, gateway.Save(context.Background(), &record), "a primary outage must not fail the save")

	records, err := gateway.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "a", records[0].ID)
}

func TestGatewayListByStudentDegraded(t *testing.T) {
	gateway := newDegradedGateway(t)

	mine := classifiedFeedback("a", "s1", "helpful", time.Now())
	other := classifiedFeedback("b", "s2", "boring", time.Now())
	require.NoError(t, gateway.Save(context.Background(), &mine))
	require.NoError(t, gateway.Save(context.Background(), &other))

	records, err := gateway.ListByStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "a", records[0].ID)
}

func TestGatewayUpdateHealthy(t *testing.T) {
	gateway := newHealthyGateway(t)

	record := classifiedFeedback("a", "s1", "before", time.Now())
	require.NoError(t, gateway.Save(context.Background(), &record))

	updated, err := gateway.Update(context.Background(), "a", func(f *models.Feedback) error {
		f.Text = "after"
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "after", updated.Text)

	records, err := gateway.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, "after", records[0].Text)
}

func TestGatewayUpdateReachesFallbackTier(t *testing.T) {
	gateway := newDegradedGateway(t)

	record := classifiedFeedback("a", "s1", "before", time.Now())
	require.NoError(t, gateway.Save(context.Background(), &record))

	updated, err := gateway.Update(context.Background(), "a", func(f *models.Feedback) error {
		f.Text = "after"
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "after", updated.Text)
}

func TestGatewayUpdateDuringPrimaryWriteFailure(t *testing.T) {
	db := setupFeedbackTestDB(t)
	primary := NewFeedbackRepository(db)
	fallback := newTestFallbackStore(t)

	record := classifiedFeedback("a", "s1", "before", time.Now())
	require.NoError(t, primary.Create(context.Background(), &record))

	// Reads still hit the primary; only writes fail. The record has never been
	// written to the fallback tier.
	gateway := NewFeedbackGateway(readOnlyRepo{
		FeedbackRepository: primary,
		writeErr:           errors.New("write timeout"),
	}, fallback, zerolog.Nop())

	updated, err := gateway.Update(context.Background(), "a", func(f *models.Feedback) error {
		f.Text = "after"
		return nil
	})
	require.NoError(t, err, "a primary write failure must degrade, not fail the update")
	require.Equal(t, "after", updated.Text)

	// The mutated record landed whole in the fallback tier.
	stored, err := fallback.Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "a", stored[0].ID)
	require.Equal(t, "after", stored[0].Text)
}

func TestGatewayUpdateMutateErrorAborts(t *testing.T) {
	gateway := newHealthyGateway(t)

	record := classifiedFeedback("a", "s1", "before", time.Now())
	require.NoError(t, gateway.Save(context.Background(), &record))

	boom := errors.New("mutate rejected")
	_, err := gateway.Update(context.Background(), "a", func(f *models.Feedback) error {
		f.Text = "after"
		return boom
	})
	require.ErrorIs(t, err, boom)

	records, err := gateway.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, "before", records[0].Text)
}

func TestGatewayUpdateUnknownID(t *testing.T) {
	gateway := newHealthyGateway(t)

	_, err := gateway.Update(context.Background(), "missing", func(f *models.Feedback) error { return nil })
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGatewayDeleteRemovesFromList(t *testing.T) {
	gateway := newHealthyGateway(t)

	keep := classifiedFeedback("a", "s1", "keep", time.Now())
	drop := classifiedFeedback("b", "s1", "drop", time.Now())
	require.NoError(t, gateway.Save(context.Background(), &keep))
	require.NoError(t, gateway.Save(context.Background(), &drop))

	require.NoError(t, gateway.Delete(context.Background(), "b"))

	records, err := gateway.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "a", records[0].ID)
}

func TestGatewayDeleteUnknownEverywhere(t *testing.T) {
	gateway := newHealthyGateway(t)

	require.ErrorIs(t, gateway.Delete(context.Background(), "missing"), ErrNotFound)
}

func TestGatewayDeleteDuringPrimaryOutage(t *testing.T) {
	gateway := newDegradedGateway(t)

	record := classifiedFeedback("a", "s1", "anything", time.Now())
	require.NoError(t, gateway.Save(context.Background(), &record))

	require.NoError(t, gateway.Delete(context.Background(), "a"))

	records, err := gateway.ListAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}
