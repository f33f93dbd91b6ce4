package classifier

import "context"

// SentimentLabel is the overall polarity of a piece of feedback.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// TopicLabel identifies one of the fixed feedback categories.
type TopicLabel string

const (
	TopicTeachingStyle        TopicLabel = "teaching_style"
	TopicCourseContent        TopicLabel = "course_content"
	TopicInfrastructure       TopicLabel = "infrastructure"
	TopicAssessmentMethods    TopicLabel = "assessment_methods"
	TopicClassroomEnvironment TopicLabel = "classroom_environment"
	TopicSupportServices      TopicLabel = "support_services"
)

// AllTopics returns the fixed category set in evaluation order.
func AllTopics() []TopicLabel {
	return []TopicLabel{
		TopicTeachingStyle,
		TopicCourseContent,
		TopicInfrastructure,
		TopicAssessmentMethods,
		TopicClassroomEnvironment,
		TopicSupportServices,
	}
}

// ValidTopic reports whether label is one of the fixed categories.
func ValidTopic(label TopicLabel) bool {
	switch label {
	case TopicTeachingStyle, TopicCourseContent, TopicInfrastructure,
		TopicAssessmentMethods, TopicClassroomEnvironment, TopicSupportServices:
		return true
	default:
		return false
	}
}

// ValidSentiment reports whether label is one of the three polarity values.
func ValidSentiment(label SentimentLabel) bool {
	switch label {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	default:
		return false
	}
}

// Sentiment carries a polarity label with its signed strength and certainty.
type Sentiment struct {
	Label      SentimentLabel `json:"label"`
	Score      float64        `json:"score"`
	Confidence float64        `json:"confidence"`
}

// Topic is a single category judgment with supporting keyword evidence.
type Topic struct {
	Label      TopicLabel `json:"topic"`
	Confidence float64    `json:"confidence"`
	Evidence   []string   `json:"keywords"`
}

// Classification is the structured result produced for a piece of feedback text.
type Classification struct {
	Sentiment Sentiment `json:"sentiment"`
	Topics    []Topic   `json:"topics"`
}

// Flagged reports whether the classification marks strongly negative feedback
// that requires downstream attention.
func (c Classification) Flagged() bool {
	return c.Sentiment.Label == SentimentNegative && c.Sentiment.Score < -0.5
}

// Classifier describes a model capable of classifying feedback text.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}
