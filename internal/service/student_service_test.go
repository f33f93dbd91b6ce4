package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-pulse-api/internal/dto"
	"github.com/noah-isme/campus-pulse-api/internal/models"
	"github.com/noah-isme/campus-pulse-api/internal/repository"
)

func newTestStudentService(t *testing.T) StudentService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "students.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}))

	return NewStudentService(repository.NewStudentRepository(db), NewValidator(), zerolog.Nop())
}

func TestRegisterAndVerifyStudent(t *testing.T) {
	svc := newTestStudentService(t)

	created, err := svc.Register(context.Background(), dto.RegisterStudentRequest{
		StudentID: "s1",
		Email:     "Asha.Rao@Example.edu",
		FullName:  "  Asha Rao  ",
	})
	require.NoError(t, err)

	require.Equal(t, "s1", created.StudentID)
	require.Equal(t, "asha.rao@example.edu", created.Email)
	require.Equal(t, "Asha Rao", created.FullName)

	verified, err := svc.Verify(context.Background(), "s1")
	require.NoError(t, err)
	require.True(t, verified.Exists)

	unknown, err := svc.Verify(context.Background(), "ghost")
	require.NoError(t, err)
	require.False(t, unknown.Exists)
}

func TestRegisterDuplicateStudent(t *testing.T) {
	svc := newTestStudentService(t)

	payload := dto.RegisterStudentRequest{StudentID: "s1", Email: "a@example.edu", FullName: "Asha Rao"}

	_, err := svc.Register(context.Background(), payload)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), payload)
	require.ErrorIs(t, err, ErrStudentExists)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestStudentService(t)

	cases := []dto.RegisterStudentRequest{
		{StudentID: "", Email: "a@example.edu", FullName: "Asha"},
		{StudentID: "s1", Email: "not-an-email", FullName: "Asha"},
		{StudentID: "s1", Email: "a@example.edu", FullName: "   "},
	}

	for _, payload := range cases {
		_, err := svc.Register(context.Background(), payload)

		var fieldErrs validator.ValidationErrors
		require.ErrorAs(t, err, &fieldErrs)
	}
}
