package models

import "time"

// Student is an identity record used only for existence checks when feedback
// is submitted or listed per submitter. It is not an authorization mechanism.
type Student struct {
	ID        string    `gorm:"primaryKey;size:64" json:"student_id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}
