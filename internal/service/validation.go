package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds the validator used across services, with the custom
// rules the DTOs rely on.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// notblank rejects strings that are empty after trimming whitespace.
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return validate
}
