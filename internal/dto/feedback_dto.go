package dto

import (
	"time"

	"github.com/noah-isme/campus-pulse-api/internal/models"
)

// SubmitFeedbackRequest is the payload for creating a feedback record.
// Course metadata is only stored when the submission is not anonymous.
type SubmitFeedbackRequest struct {
	StudentID   string `json:"student_id" validate:"required,min=1,max=64"`
	StudentName string `json:"student_name" validate:"omitempty,max=255"`
	Text        string `json:"text" validate:"required,notblank"`
	IsAnonymous bool   `json:"is_anonymous"`
	Rating      *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`

	CourseName string `json:"course_name" validate:"omitempty,max=255"`
	Instructor string `json:"instructor" validate:"omitempty,max=255"`
	Department string `json:"department" validate:"omitempty,max=255"`
	Semester   string `json:"semester" validate:"omitempty,max=64"`
	Year       *int   `json:"year" validate:"omitempty,gte=1900,lte=2200"`
	Section    string `json:"section" validate:"omitempty,max=64"`
}

// EditFeedbackRequest updates the text of an existing record; the new text is
// reclassified before it is persisted.
type EditFeedbackRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}

// ReplyRequest carries a single-slot reply body.
type ReplyRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}

// SentimentResponse mirrors the stored sentiment judgment.
type SentimentResponse struct {
	Label      string  `json:"label"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// TopicResponse mirrors one stored topic judgment.
type TopicResponse struct {
	Topic      string   `json:"topic"`
	Confidence float64  `json:"confidence"`
	Keywords   []string `json:"keywords"`
}

// FeedbackResponse is returned to API clients when viewing feedback.
type FeedbackResponse struct {
	ID          string `json:"id"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
	IsAnonymous bool   `json:"is_anonymous"`

	CourseName string `json:"course_name,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	Department string `json:"department,omitempty"`
	Semester   string `json:"semester,omitempty"`
	Year       *int   `json:"year,omitempty"`
	Section    string `json:"section,omitempty"`

	Text   string `json:"text"`
	Rating *int   `json:"rating,omitempty"`

	Sentiment SentimentResponse `json:"sentiment"`
	Topics    []TopicResponse   `json:"topics"`
	Flagged   bool              `json:"flagged"`

	FacultyReply     *string    `json:"faculty_reply,omitempty"`
	FacultyRepliedAt *time.Time `json:"faculty_replied_at,omitempty"`
	StudentReply     *string    `json:"student_reply,omitempty"`
	StudentRepliedAt *time.Time `json:"student_replied_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFeedbackResponse converts a stored record into its API representation.
func NewFeedbackResponse(record models.Feedback) FeedbackResponse {
	topics := record.TopicList()
	topicResponses := make([]TopicResponse, 0, len(topics))
	for _, topic := range topics {
		keywords := topic.Evidence
		if keywords == nil {
			keywords = []string{}
		}

		topicResponses = append(topicResponses, TopicResponse{
			Topic:      string(topic.Label),
			Confidence: topic.Confidence,
			Keywords:   keywords,
		})
	}

	return FeedbackResponse{
		ID:               record.ID,
		StudentID:        record.StudentID,
		StudentName:      record.StudentName,
		IsAnonymous:      record.IsAnonymous,
		CourseName:       record.CourseName,
		Instructor:       record.Instructor,
		Department:       record.Department,
		Semester:         record.Semester,
		Year:             record.Year,
		Section:          record.Section,
		Text:             record.Text,
		Rating:           record.Rating,
		Sentiment: SentimentResponse{
			Label:      record.Sentiment,
			Score:      record.SentimentScore,
			Confidence: record.SentimentConfidence,
		},
		Topics:           topicResponses,
		Flagged:          record.Flagged,
		FacultyReply:     record.FacultyReply,
		FacultyRepliedAt: record.FacultyRepliedAt,
		StudentReply:     record.StudentReply,
		StudentRepliedAt: record.StudentRepliedAt,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}

// NewFeedbackResponseSlice converts a record list preserving order.
func NewFeedbackResponseSlice(records []models.Feedback) []FeedbackResponse {
	responses := make([]FeedbackResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewFeedbackResponse(record))
	}

	return responses
}
