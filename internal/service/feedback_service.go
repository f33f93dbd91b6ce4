package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-pulse-api/internal/dto"
	"github.com/noah-isme/campus-pulse-api/internal/models"
	"github.com/noah-isme/campus-pulse-api/internal/repository"
	"github.com/noah-isme/campus-pulse-api/pkg/classifier"
)

var (
	// ErrFeedbackNotFound indicates the record does not exist in any reachable tier.
	ErrFeedbackNotFound = errors.New("feedback not found")
	// ErrStudentNotFound indicates the submitter identity is unknown.
	ErrStudentNotFound = errors.New("student not found")
	// ErrBlankText indicates the feedback body is empty after sanitization.
	ErrBlankText = errors.New("feedback text must not be blank")
	// ErrReplyBeforeFaculty indicates a student reply was attempted before a faculty reply exists.
	ErrReplyBeforeFaculty = errors.New("student reply requires an existing faculty reply")
)

// FeedbackService orchestrates the submit/list/edit/delete/reply pipeline.
// Classification happens synchronously before persistence; external-dependency
// failures never fail the logical operation, only validation errors do.
type FeedbackService interface {
	Submit(ctx context.Context, payload dto.SubmitFeedbackRequest) (dto.FeedbackResponse, error)
	List(ctx context.Context) ([]dto.FeedbackResponse, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.FeedbackResponse, error)
	EditText(ctx context.Context, id string, payload dto.EditFeedbackRequest) (dto.FeedbackResponse, error)
	Delete(ctx context.Context, id string) error
	ReplyAsFaculty(ctx context.Context, id string, payload dto.ReplyRequest) error
	ReplyAsStudent(ctx context.Context, id string, payload dto.ReplyRequest) error
}

type feedbackService struct {
	gateway   *repository.FeedbackGateway
	students  repository.StudentRepository
	classify  *classifier.Facade
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// NewFeedbackService constructs a FeedbackService instance.
func NewFeedbackService(gateway *repository.FeedbackGateway, students repository.StudentRepository, facade *classifier.Facade, validate *validator.Validate, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		gateway:   gateway,
		students:  students,
		classify:  facade,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "feedback_service").Logger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// cleanText strips markup from user-supplied text and trims it.
func (s *feedbackService) cleanText(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}

func (s *feedbackService) Submit(ctx context.Context, payload dto.SubmitFeedbackRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	text := s.cleanText(payload.Text)
	if text == "" {
		return dto.FeedbackResponse{}, ErrBlankText
	}

	// Identity existence check against the primary store only. When the store
	// is unreachable the check is skipped rather than failing the submission.
	if s.students != nil {
		exists, err := s.students.Exists(ctx, payload.StudentID)
		if err != nil {
			s.logger.Warn().Err(err).Msg("student existence check unavailable, accepting submission")
		} else if !exists {
			return dto.FeedbackResponse{}, ErrStudentNotFound
		}
	}

	classification := s.classify.Classify(ctx, text)

	record := models.Feedback{
		ID:          s.newID(),
		StudentID:   payload.StudentID,
		IsAnonymous: payload.IsAnonymous,
		Text:        text,
		Rating:      payload.Rating,
		CreatedAt:   s.now().UTC(),
	}

	// Display fields are withheld for anonymous submissions; the identity
	// linkage above is kept so submitters can list their own history.
	if !payload.IsAnonymous {
		record.StudentName = payload.StudentName
		record.CourseName = payload.CourseName
		record.Instructor = payload.Instructor
		record.Department = payload.Department
		record.Semester = payload.Semester
		record.Year = payload.Year
		record.Section = payload.Section
	}

	record.ApplyClassification(classification)

	if err := s.gateway.Save(ctx, &record); err != nil {
		return dto.FeedbackResponse{}, err
	}

	s.logger.Info().
		Str("feedback_id", record.ID).
		Str("sentiment", record.Sentiment).
		Bool("flagged", record.Flagged).
		Msg("feedback submitted")

	return dto.NewFeedbackResponse(record), nil
}

func (s *feedbackService) List(ctx context.Context) ([]dto.FeedbackResponse, error) {
	records, err := s.gateway.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewFeedbackResponseSlice(records), nil
}

func (s *feedbackService) ListByStudent(ctx context.Context, studentID string) ([]dto.FeedbackResponse, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, ErrStudentNotFound
	}

	records, err := s.gateway.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewFeedbackResponseSlice(records), nil
}

func (s *feedbackService) EditText(ctx context.Context, id string, payload dto.EditFeedbackRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	text := s.cleanText(payload.Text)
	if text == "" {
		return dto.FeedbackResponse{}, ErrBlankText
	}

	// Classify before touching storage so the new text and its derived fields
	// land in a single write.
	classification := s.classify.Classify(ctx, text)

	record, err := s.gateway.Update(ctx, id, func(record *models.Feedback) error {
		record.Text = text
		record.ApplyClassification(classification)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.FeedbackResponse{}, ErrFeedbackNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	s.logger.Info().
		Str("feedback_id", id).
		Str("sentiment", record.Sentiment).
		Msg("feedback text updated and reclassified")

	return dto.NewFeedbackResponse(record), nil
}

func (s *feedbackService) Delete(ctx context.Context, id string) error {
	if err := s.gateway.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}

	s.logger.Info().Str("feedback_id", id).Msg("feedback deleted")
	return nil
}

func (s *feedbackService) ReplyAsFaculty(ctx context.Context, id string, payload dto.ReplyRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	text := s.cleanText(payload.Text)
	if text == "" {
		return ErrBlankText
	}

	repliedAt := s.now().UTC()
	_, err := s.gateway.Update(ctx, id, func(record *models.Feedback) error {
		record.FacultyReply = &text
		record.FacultyRepliedAt = &repliedAt
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}

	s.logger.Info().Str("feedback_id", id).Msg("faculty reply saved")
	return nil
}

func (s *feedbackService) ReplyAsStudent(ctx context.Context, id string, payload dto.ReplyRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	text := s.cleanText(payload.Text)
	if text == "" {
		return ErrBlankText
	}

	repliedAt := s.now().UTC()
	_, err := s.gateway.Update(ctx, id, func(record *models.Feedback) error {
		if record.FacultyReply == nil {
			return ErrReplyBeforeFaculty
		}

		record.StudentReply = &text
		record.StudentRepliedAt = &repliedAt
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}

	s.logger.Info().Str("feedback_id", id).Msg("student reply saved")
	return nil
}
