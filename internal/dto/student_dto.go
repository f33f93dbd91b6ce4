package dto

import (
	"time"

	"github.com/noah-isme/campus-pulse-api/internal/models"
)

// RegisterStudentRequest creates a student identity record.
type RegisterStudentRequest struct {
	StudentID string `json:"student_id" validate:"required,min=1,max=64"`
	Email     string `json:"email" validate:"required,email,max=255"`
	FullName  string `json:"full_name" validate:"required,notblank,max=255"`
}

// StudentResponse is returned after registration.
type StudentResponse struct {
	StudentID string    `json:"student_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// VerifyStudentResponse reports whether a student identity exists.
type VerifyStudentResponse struct {
	StudentID string `json:"student_id"`
	Exists    bool   `json:"exists"`
}

// NewStudentResponse converts a student model into its API representation.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		StudentID: student.ID,
		Email:     student.Email,
		FullName:  student.FullName,
		CreatedAt: student.CreatedAt,
	}
}
