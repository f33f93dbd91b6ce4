package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/campus-pulse-api/internal/config"
	"github.com/noah-isme/campus-pulse-api/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	FeedbackHandler  *handler.FeedbackHandler
	AnalyticsHandler *handler.AnalyticsHandler
	StudentHandler   *handler.StudentHandler
	JWTMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students"))
	}

	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(api.Group("/feedback", jwtMiddleware))
	}

	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.Register(api.Group("/analytics", jwtMiddleware))
	}
}
