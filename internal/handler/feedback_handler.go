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

// FeedbackHandler handles feedback submission, listing, editing and replies.
type FeedbackHandler struct {
	service service.FeedbackService
	logger  zerolog.Logger
}

// NewFeedbackHandler constructs a feedback handler.
func NewFeedbackHandler(service service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		logger:  logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// Register wires feedback routes onto the given router group.
func (h *FeedbackHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
	router.Get("", h.list)
	router.Get("/student/:studentId", h.listByStudent)
	router.Patch("/:id", h.editText)
	router.Delete("/:id", h.remove)
	router.Post("/:id/faculty-reply", h.replyAsFaculty)
	router.Post("/:id/student-reply", h.replyAsStudent)
}

func (h *FeedbackHandler) submit(c *fiber.Ctx) error {
	var payload dto.SubmitFeedbackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		return h.mapError(c, err, "failed to submit feedback")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "feedback submitted", response)
}

func (h *FeedbackHandler) list(c *fiber.Ctx) error {
	responses, err := h.service.List(c.Context())
	if err != nil {
		return h.mapError(c, err, "failed to list feedback")
	}

	return utils.SendSuccess(c, "feedback listed", responses)
}

func (h *FeedbackHandler) listByStudent(c *fiber.Ctx) error {
	responses, err := h.service.ListByStudent(c.Context(), c.Params("studentId"))
	if err != nil {
		return h.mapError(c, err, "failed to list feedback")
	}

	return utils.SendSuccess(c, "feedback listed", responses)
}

func (h *FeedbackHandler) editText(c *fiber.Ctx) error {
	var payload dto.EditFeedbackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.EditText(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.mapError(c, err, "failed to update feedback")
	}

	return utils.SendSuccess(c, "feedback updated", response)
}

func (h *FeedbackHandler) remove(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return h.mapError(c, err, "failed to delete feedback")
	}

	return utils.SendSuccess(c, "feedback deleted", nil)
}

func (h *FeedbackHandler) replyAsFaculty(c *fiber.Ctx) error {
	var payload dto.ReplyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ReplyAsFaculty(c.Context(), c.Params("id"), payload); err != nil {
		return h.mapError(c, err, "failed to save reply")
	}

	return utils.SendSuccess(c, "reply saved", nil)
}

func (h *FeedbackHandler) replyAsStudent(c *fiber.Ctx) error {
	var payload dto.ReplyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ReplyAsStudent(c.Context(), c.Params("id"), payload); err != nil {
		return h.mapError(c, err, "failed to save reply")
	}

	return utils.SendSuccess(c, "reply saved", nil)
}

func (h *FeedbackHandler) mapError(c *fiber.Ctx, err error, fallbackMessage string) error {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validationErrs):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	case errors.Is(err, service.ErrBlankText):
		return utils.SendError(c, fiber.StatusBadRequest, service.ErrBlankText.Error())
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, service.ErrStudentNotFound.Error())
	case errors.Is(err, service.ErrFeedbackNotFound):
		return utils.SendError(c, fiber.StatusNotFound, service.ErrFeedbackNotFound.Error())
	case errors.Is(err, service.ErrReplyBeforeFaculty):
		return utils.SendError(c, fiber.StatusConflict, service.ErrReplyBeforeFaculty.Error())
	default:
		h.logger.Error().Err(err).Msg(fallbackMessage)
		return utils.SendError(c, fiber.StatusInternalServerError, fallbackMessage)
	}
}
