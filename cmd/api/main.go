package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-pulse-api/internal/config"
	"github.com/noah-isme/campus-pulse-api/internal/database"
	"github.com/noah-isme/campus-pulse-api/internal/handler"
	"github.com/noah-isme/campus-pulse-api/internal/middleware"
	"github.com/noah-isme/campus-pulse-api/internal/models"
	"github.com/noah-isme/campus-pulse-api/internal/repository"
	"github.com/noah-isme/campus-pulse-api/internal/router"
	"github.com/noah-isme/campus-pulse-api/internal/service"
	"github.com/noah-isme/campus-pulse-api/pkg/classifier"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Feedback{}, &models.Student{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, analytics caching disabled")
	}

	remote := buildRemoteClassifier(cfg, logger)
	facade := classifier.NewFacade(remote, cfg.ClassifyTimeout, logger)

	validate := service.NewValidator()

	feedbackRepo := repository.NewFeedbackRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	fallbackStore := repository.NewFallbackStore(cfg.FallbackStorePath, logger)
	gateway := repository.NewFeedbackGateway(feedbackRepo, fallbackStore, logger)

	feedbackService := service.NewFeedbackService(gateway, studentRepo, facade, validate, logger)
	analyticsService := service.NewAnalyticsService(gateway, redisClient, cfg.AnalyticsCacheTTL, logger)
	studentService := service.NewStudentService(studentRepo, validate, logger)

	feedbackHandler := handler.NewFeedbackHandler(feedbackService, logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, logger)
	studentHandler := handler.NewStudentHandler(studentService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		FeedbackHandler:  feedbackHandler,
		AnalyticsHandler: analyticsHandler,
		StudentHandler:   studentHandler,
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildRemoteClassifier selects the configured provider. Returning nil routes
// every classification through the offline classifier.
func buildRemoteClassifier(cfg config.Config, logger zerolog.Logger) classifier.Classifier {
	switch cfg.AIProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn().Msg("openai api key not configured, classification runs offline")
			return nil
		}

		remote, err := classifier.NewOpenAIClassifier(classifier.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("openai classifier unavailable, classification runs offline")
			return nil
		}

		return remote

	case "anthropic":
		remote, err := classifier.NewAnthropicClassifier(classifier.AnthropicConfig{APIKey: cfg.AnthropicAPIKey})
		if err != nil {
			logger.Warn().Err(err).Msg("anthropic classifier unavailable, classification runs offline")
			return nil
		}

		return remote

	default:
		logger.Warn().Str("provider", cfg.AIProvider).Msg("unknown ai provider, classification runs offline")
		return nil
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
