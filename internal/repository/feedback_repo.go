package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-pulse-api/internal/models"
)

// ErrNotFound indicates a feedback record does not exist in the queried tier.
var ErrNotFound = errors.New("feedback record not found")

// FeedbackRepository defines data operations for the primary feedback store.
type FeedbackRepository interface {
	List(ctx context.Context) ([]models.Feedback, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Feedback, error)
	GetByID(ctx context.Context, id string) (models.Feedback, error)
	Create(ctx context.Context, feedback *models.Feedback) error
	Update(ctx context.Context, feedback *models.Feedback) error
	Delete(ctx context.Context, id string) error
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository instantiates the primary-tier repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) List(ctx context.Context) ([]models.Feedback, error) {
	var records []models.Feedback
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *feedbackRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Feedback, error) {
	var records []models.Feedback
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, id string) (models.Feedback, error) {
	var record models.Feedback
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Feedback{}, ErrNotFound
		}
		return models.Feedback{}, err
	}

	return record, nil
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) Update(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Save(feedback).Error
}

func (r *feedbackRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Feedback{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
