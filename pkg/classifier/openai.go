package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	remoteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pulse",
		Subsystem: "classifier",
		Name:      "remote_duration_seconds",
		Help:      "Duration of remote classification requests",
	}, []string{"model"})

	remoteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulse",
		Subsystem: "classifier",
		Name:      "remote_failures_total",
		Help:      "Number of remote classification failures",
	}, []string{"model"})
)

// classificationSchema is the contract the remote service must satisfy. Any
// deviation routes the request to the offline classifier.
const classificationSchema = `{
  "type": "object",
  "required": ["sentiment", "sentimentScore", "topics"],
  "properties": {
    "sentiment": {"type": "string", "enum": ["positive", "negative", "neutral"]},
    "sentimentScore": {"type": "number"},
    "topics": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["topic", "confidence"],
        "properties": {
          "topic": {"type": "string"},
          "confidence": {"type": "number"},
          "keywords": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schemaCompiled, schemaErr = jsonschema.CompileString("classification.schema.json", classificationSchema)
	})
	return schemaCompiled, schemaErr
}

// OpenAIConfig defines configuration options for the OpenAI classifier.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIClassifier implements Classifier against the OpenAI chat completion API.
type OpenAIClassifier struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIClassifier builds a new remote classifier using the provided configuration.
func NewOpenAIClassifier(cfg OpenAIConfig) (*OpenAIClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}

	tracer := otel.Tracer("github.com/noah-isme/campus-pulse-api/pkg/classifier/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIClassifier{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Classify sends the feedback text to OpenAI and parses the structured response.
func (c *OpenAIClassifier) Classify(parent context.Context, text string) (Classification, error) {
	ctx, span := c.tracer.Start(parent, "openai.classify", trace.WithAttributes(
		attribute.String("model", c.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: classifierSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildClassificationPrompt(text),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	duration := time.Since(start)
	remoteDuration.WithLabelValues(c.cfg.Model).Observe(duration.Seconds())
	if err != nil {
		remoteFailures.WithLabelValues(c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Classification{}, fmt.Errorf("openai classify: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		remoteFailures.WithLabelValues(c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Classification{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	result, err := parseClassificationResponse(content)
	if err != nil {
		remoteFailures.WithLabelValues(c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Classification{}, err
	}

	return result, nil
}

func classifierSystemPrompt() string {
	return "You are a student feedback analyst. Respond ONLY with a JSON object containing sentiment " +
		"(positive, negative or neutral), sentimentScore (-1 to 1) and topics, a list of objects with topic, " +
		"confidence (0 to 1) and keywords found in the text. Valid topics: teaching_style, course_content, " +
		"infrastructure, assessment_methods, classroom_environment, support_services. " +
		"Return multiple topics when applicable, higher confidence for more relevant ones."
}

func buildClassificationPrompt(text string) string {
	builder := strings.Builder{}
	builder.WriteString("Analyze the following student feedback and classify it.\n\n")
	builder.WriteString("Feedback: \"")
	builder.WriteString(text)
	builder.WriteString("\"\n\nCategories:\n")
	builder.WriteString("- teaching_style: teaching methods, professor behavior, explanation quality, communication\n")
	builder.WriteString("- course_content: course material, syllabus, curriculum, relevance, topics covered\n")
	builder.WriteString("- infrastructure: facilities, classrooms, labs, equipment, wifi, furniture, buildings\n")
	builder.WriteString("- assessment_methods: exams, tests, grading, assignments, evaluation methods\n")
	builder.WriteString("- classroom_environment: class atmosphere, student interactions, discipline, behavior\n")
	builder.WriteString("- support_services: library, counseling, placement, medical, hostel, administrative support\n")
	builder.WriteString("\nReturn JSON.")
	return builder.String()
}

// parseClassificationResponse validates the remote payload against the
// classification schema, then decodes it. Numeric fields outside their legal
// range are clamped; topics with unknown labels are dropped.
func parseClassificationResponse(content string) (Classification, error) {
	content = stripCodeFences(content)

	schema, err := compiledSchema()
	if err != nil {
		return Classification{}, fmt.Errorf("compile classification schema: %w", err)
	}

	var document interface{}
	if err := json.Unmarshal([]byte(content), &document); err != nil {
		return Classification{}, fmt.Errorf("parse classification json: %w", err)
	}

	if err := schema.Validate(document); err != nil {
		return Classification{}, fmt.Errorf("classification payload rejected: %w", err)
	}

	type topicPayload struct {
		Topic      string   `json:"topic"`
		Confidence float64  `json:"confidence"`
		Keywords   []string `json:"keywords"`
	}

	type payload struct {
		Sentiment      string         `json:"sentiment"`
		SentimentScore float64        `json:"sentimentScore"`
		Confidence     *float64       `json:"sentimentConfidence"`
		Topics         []topicPayload `json:"topics"`
	}

	var data payload
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return Classification{}, fmt.Errorf("decode classification json: %w", err)
	}

	score := clamp(data.SentimentScore, -1, 1)
	confidence := clamp(abs(score), 0, 1)
	if data.Confidence != nil {
		confidence = clamp(*data.Confidence, 0, 1)
	}

	result := Classification{
		Sentiment: Sentiment{
			Label:      SentimentLabel(data.Sentiment),
			Score:      score,
			Confidence: confidence,
		},
	}

	for _, item := range data.Topics {
		label := TopicLabel(item.Topic)
		if !ValidTopic(label) {
			continue
		}

		keywords := item.Keywords
		if keywords == nil {
			keywords = []string{}
		}

		result.Topics = append(result.Topics, Topic{
			Label:      label,
			Confidence: clamp(item.Confidence, 0, 1),
			Evidence:   keywords,
		})
	}

	return result, nil
}

// stripCodeFences removes markdown fences some models wrap around JSON output.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func abs(value float64) float64 {
	if value < 0 {
		return -value
	}
	return value
}
