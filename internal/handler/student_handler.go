package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-pulse-api/internal/dto"
	"github.com/noah-isme/campus-pulse-api/internal/service"
	"github.com/noah-isme/campus-pulse-api/internal/utils"
)

// StudentHandler manages student identity registration and verification.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs a student handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register wires student routes onto the given router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Post("", h.register)
	router.Get("/:id/verify", h.verify)
}

func (h *StudentHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterStudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Register(c.Context(), payload)
	if err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrStudentExists):
			return utils.SendError(c, fiber.StatusConflict, service.ErrStudentExists.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to register student")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to register student")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student registered", response)
}

func (h *StudentHandler) verify(c *fiber.Ctx) error {
	response, err := h.service.Verify(c.Context(), c.Params("id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to verify student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to verify student")
	}

	return utils.SendSuccess(c, "student verified", response)
}
