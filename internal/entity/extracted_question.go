package entity

import (
	"time"
)

// ExtractedQuestion - hasil ekstraksi satu soal dari satu halaman dokumen.
// Rows are immutable after creation except the Promoted flag; unpromoted rows
// form the pending-promotion queue for the question bank.
type ExtractedQuestion struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	QuestionID   string    `gorm:"uniqueIndex;size:100;not null" json:"question_id"`
	SessionID    string    `gorm:"size:100;not null;index" json:"session_id"`
	PageNumber   int       `gorm:"not null" json:"page_number"`
	QuestionText string    `gorm:"type:text;not null" json:"question_text"`
	Options      string    `gorm:"type:text;not null" json:"options"` // JSON array: ["A...","B..."]
	CorrectIndex *int      `json:"correct_index,omitempty"`
	ImageRef     string    `gorm:"size:255" json:"image_ref,omitempty"`
	Promoted     bool      `gorm:"not null;default:false;index" json:"promoted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ExtractedQuestion) TableName() string {
	return "extracted_questions"
}
