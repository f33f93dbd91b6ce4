package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-pulse-api/internal/dto"
	"github.com/noah-isme/campus-pulse-api/internal/models"
	"github.com/noah-isme/campus-pulse-api/internal/repository"
)

// ErrStudentExists indicates the student id or email is already registered.
var ErrStudentExists = errors.New("student already registered")

// StudentService manages the identity records used for existence checks.
type StudentService interface {
	Register(ctx context.Context, payload dto.RegisterStudentRequest) (dto.StudentResponse, error)
	Verify(ctx context.Context, studentID string) (dto.VerifyStudentResponse, error)
}

type studentService struct {
	students  repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService constructs a StudentService instance.
func NewStudentService(students repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		students:  students,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) Register(ctx context.Context, payload dto.RegisterStudentRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	exists, err := s.students.Exists(ctx, payload.StudentID)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	if exists {
		return dto.StudentResponse{}, ErrStudentExists
	}

	student := models.Student{
		ID:       payload.StudentID,
		Email:    strings.ToLower(strings.TrimSpace(payload.Email)),
		FullName: strings.TrimSpace(payload.FullName),
	}

	if err := s.students.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Str("student_id", student.ID).Msg("student registered")

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Verify(ctx context.Context, studentID string) (dto.VerifyStudentResponse, error) {
	exists, err := s.students.Exists(ctx, studentID)
	if err != nil {
		return dto.VerifyStudentResponse{}, err
	}

	return dto.VerifyStudentResponse{StudentID: studentID, Exists: exists}, nil
}
