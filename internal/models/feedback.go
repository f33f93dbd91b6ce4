package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/campus-pulse-api/pkg/classifier"
)

// Feedback is a classified feedback submission. Sentiment, topics and the
// flagged marker are derived fields and are overwritten together whenever the
// text is reclassified.
type Feedback struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	StudentID   string `gorm:"size:64;index;not null" json:"student_id"`
	StudentName string `gorm:"size:255" json:"student_name,omitempty"`
	IsAnonymous bool   `json:"is_anonymous"`

	// Course metadata is withheld for anonymous submissions.
	CourseName string `gorm:"size:255" json:"course_name,omitempty"`
	Instructor string `gorm:"size:255" json:"instructor,omitempty"`
	Department string `gorm:"size:255" json:"department,omitempty"`
	Semester   string `gorm:"size:64" json:"semester,omitempty"`
	Year       *int   `json:"year,omitempty"`
	Section    string `gorm:"size:64" json:"section,omitempty"`

	Text   string `gorm:"type:text;not null" json:"text"`
	Rating *int   `json:"rating,omitempty"`

	Sentiment           string                                `gorm:"size:16;not null" json:"sentiment"`
	SentimentScore      float64                               `json:"sentiment_score"`
	SentimentConfidence float64                               `json:"sentiment_confidence"`
	Topics              datatypes.JSONSlice[classifier.Topic] `gorm:"type:json" json:"topics"`
	Flagged             bool                                  `json:"flagged"`

	FacultyReply     *string    `gorm:"type:text" json:"faculty_reply,omitempty"`
	FacultyRepliedAt *time.Time `json:"faculty_replied_at,omitempty"`
	StudentReply     *string    `gorm:"type:text" json:"student_reply,omitempty"`
	StudentRepliedAt *time.Time `json:"student_replied_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplyClassification overwrites all derived fields from a classification
// result. Text and classification must always be written in the same
// operation so a record never carries stale derived fields.
func (f *Feedback) ApplyClassification(c classifier.Classification) {
	f.Sentiment = string(c.Sentiment.Label)
	f.SentimentScore = c.Sentiment.Score
	f.SentimentConfidence = c.Sentiment.Confidence
	f.Topics = datatypes.NewJSONSlice(c.Topics)
	f.Flagged = c.Flagged()
}

// TopicList returns the topic judgments attached to the record.
func (f Feedback) TopicList() []classifier.Topic {
	return []classifier.Topic(f.Topics)
}
