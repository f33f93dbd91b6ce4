package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-pulse-api/internal/config"
	"github.com/noah-isme/campus-pulse-api/internal/handler"
	"github.com/noah-isme/campus-pulse-api/internal/models"
	"github.com/noah-isme/campus-pulse-api/internal/repository"
	"github.com/noah-isme/campus-pulse-api/internal/router"
	"github.com/noah-isme/campus-pulse-api/internal/service"
	"github.com/noah-isme/campus-pulse-api/pkg/classifier"
)

const feedbackEnvelopeSchema = `{
	"type": "object",
	"required": ["success", "message", "data"],
	"properties": {
		"success": {"type": "boolean"},
		"message": {"type": "string"},
		"data": {
			"type": "object",
			"required": ["id", "student_id", "text", "sentiment", "topics", "flagged", "created_at"],
			"properties": {
				"id": {"type": "string", "minLength": 1},
				"student_id": {"type": "string", "minLength": 1},
				"text": {"type": "string", "minLength": 1},
				"is_anonymous": {"type": "boolean"},
				"flagged": {"type": "boolean"},
				"sentiment": {
					"type": "object",
					"required": ["label", "score", "confidence"],
					"properties": {
						"label": {"type": "string", "enum": ["positive", "neutral", "negative"]},
						"score": {"type": "number", "minimum": -1, "maximum": 1},
						"confidence": {"type": "number", "minimum": 0, "maximum": 1}
					}
				},
				"topics": {
					"type": "array",
					"minItems": 1,
					"items": {
						"type": "object",
						"required": ["topic", "confidence", "keywords"],
						"properties": {
							"topic": {
								"type": "string",
								"enum": ["teaching_style", "course_content", "infrastructure", "assessment_methods", "classroom_environment", "support_services"]
							},
							"confidence": {"type": "number", "minimum": 0, "maximum": 1},
							"keywords": {"type": "array", "items": {"type": "string"}}
						}
					}
				}
			}
		}
	}
}`

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Feedback{}, &models.Student{}))

	logger := zerolog.Nop()
	fallback := repository.NewFallbackStore(filepath.Join(t.TempDir(), "fallback.json"), logger)
	gateway := repository.NewFeedbackGateway(repository.NewFeedbackRepository(db), fallback, logger)
	students := repository.NewStudentRepository(db)

	facade := classifier.NewFacade(nil, 0, logger)
	validate := service.NewValidator()

	feedbackService := service.NewFeedbackService(gateway, students, facade, validate, logger)
	analyticsService := service.NewAnalyticsService(gateway, nil, 0, logger)
	studentService := service.NewStudentService(students, validate, logger)

	cfg := config.Config{AppName: "campus-pulse-test", AppEnv: "test"}

	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		FeedbackHandler:  handler.NewFeedbackHandler(feedbackService, logger),
		AnalyticsHandler: handler.NewAnalyticsHandler(analyticsService, logger),
		StudentHandler:   handler.NewStudentHandler(studentService, logger),
	})

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return resp, decoded
}

func registerStudent(t *testing.T, app *fiber.App, id string) {
	t.Helper()
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/students", map[string]any{
		"student_id": id,
		"email":      id + "@example.edu",
		"full_name":  "Asha Rao",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func submitFeedback(t *testing.T, app *fiber.App, studentID, text string) map[string]any {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/feedback", map[string]any{
		"student_id": studentID,
		"text":       text,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return body
}

func TestSubmitFeedbackContract(t *testing.T) {
	app := setupTestApp(t)
	registerStudent(t, app, "s1")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/feedback", map[string]any{
		"student_id": "s1",
		"text":       "great explanation but confusing projector",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	schema, err := jsonschema.CompileString("feedback_envelope.json", feedbackEnvelopeSchema)
	require.NoError(t, err)
	require.NoError(t, schema.Validate(body))

	data := body["data"].(map[string]any)
	sentiment := data["sentiment"].(map[string]any)
	require.Equal(t, "neutral", sentiment["label"])
	require.InDelta(t, 0.7, sentiment["confidence"].(float64), 1e-9)
}

func TestSubmitFeedbackValidationErrors(t *testing.T) {
	app := setupTestApp(t)
	registerStudent(t, app, "s1")

	cases := []map[string]any{
		{"student_id": "s1"},
		{"student_id": "s1", "text": "   "},
		{"student_id": "", "text": "fine"},
		{"student_id": "s1", "text": "fine", "rating": 11},
	}

	for _, payload := range cases {
		resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/feedback", payload)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Equal(t, false, body["success"])
	}
}

func TestSubmitFeedbackUnknownStudent(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/feedback", map[string]any{
		"student_id": "ghost",
		"text":       "fine course",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListFeedbackEndpoints(t *testing.T) {
	app := setupTestApp(t)
	registerStudent(t, app, "s1")
	registerStudent(t, app, "s2")

	submitFeedback(t, app, "s1", "great lectures")
	submitFeedback(t, app, "s2", "the wifi is poor")

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/v1/feedback", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, body["data"].([]any), 2)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/v1/feedback/student/s1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, body["data"].([]any), 1)
}

func TestEditFeedbackEndpoint(t *testing.T) {
	app := setupTestApp(t)
	registerStudent(t, app, "s1")

	created := submitFeedback(t, app, "s1", "great lectures")
	id := created["data"].(map[string]any)["id"].(string)

	resp, body := doJSON(t, app, fiber.MethodPatch, "/api/v1/feedback/"+id, map[string]any{
		"text": "terrible and boring lectures",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	sentiment := body["data"].(map[string]any)["sentiment"].(map[string]any)
	require.Equal(t, "negative", sentiment["label"])

	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/v1/feedback/missing", map[string]any{"text": "anything"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteFeedbackEndpoint(t *testing.T) {
	app := setupTestApp(t)
	registerStudent(t, app, "s1")

	created := submitFeedback(t, app, "s1", "drop me")
	id := created["data"].(map[string]any)["id"].(string)

	resp, _ := doJSON(t, app, fiber.MethodDelete, "/api/v1/feedback/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/v1/feedback/"+id, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/v1/feedback", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Empty(t, body["data"])
}

func TestReplyEndpoints(t *testing.T) {
	app := setupTestApp(t)
	registerStudent(t, app, "s1")

	created := submitFeedback(t, app, "s1", "the projector is broken")
	id := created["data"].(map[string]any)["id"].(string)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/feedback/"+id+"/student-reply", map[string]any{"text": "any update?"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/feedback/"+id+"/faculty-reply", map[string]any{"text": "replacement ordered"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/feedback/"+id+"/student-reply", map[string]any{"text": "thanks"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, body := doJSON(t, app, fiber.MethodGet, "/api/v1/feedback", nil)
	record := body["data"].([]any)[0].(map[string]any)
	require.Equal(t, "replacement ordered", record["faculty_reply"])
	require.Equal(t, "thanks", record["student_reply"])
}

func TestAnalyticsSummaryEndpoint(t *testing.T) {
	app := setupTestApp(t)
	registerStudent(t, app, "s1")

	submitFeedback(t, app, "s1", "great lectures")
	submitFeedback(t, app, "s1", "terrible and boring, the worst")

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/v1/analytics/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	require.EqualValues(t, 2, data["total_count"])
	require.EqualValues(t, 1, data["flagged_count"])
	require.Contains(t, data["topic_distribution"], "course_content")
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/v1/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	require.Equal(t, "ok", data["status"])
	require.Equal(t, "campus-pulse-test", data["service"])
}
