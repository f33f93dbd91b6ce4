package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-pulse-api/internal/service"
	"github.com/noah-isme/campus-pulse-api/internal/utils"
)

// AnalyticsHandler serves the aggregated feedback summary.
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler constructs an analytics handler.
func NewAnalyticsHandler(service service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// Register wires analytics routes onto the given router group.
func (h *AnalyticsHandler) Register(router fiber.Router) {
	router.Get("/summary", h.summary)
}

func (h *AnalyticsHandler) summary(c *fiber.Ctx) error {
	summary, err := h.service.GetSummary(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute analytics summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute analytics summary")
	}

	return utils.SendSuccess(c, "analytics summary", summary)
}
