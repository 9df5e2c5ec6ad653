package entity

import (
	"time"
)

// Session lifecycle status. Transitions only move forward:
// pending -> processing -> completed | failed.
const (
	SessionStatusPending    = "pending"
	SessionStatusProcessing = "processing"
	SessionStatusCompleted  = "completed"
	SessionStatusFailed     = "failed"
)

// UploadSession - satu job ekstraksi untuk satu rentang halaman dokumen
type UploadSession struct {
	ID                      uint      `gorm:"primarykey" json:"id"`
	SessionID               string    `gorm:"uniqueIndex;size:100;not null" json:"session_id"`
	FileName                string    `gorm:"size:255;not null" json:"file_name"`
	Subject                 string    `gorm:"size:100;not null;index" json:"subject"`
	StartPage               int       `gorm:"not null" json:"start_page"`
	NumPages                int       `gorm:"not null" json:"num_pages"`
	Status                  string    `gorm:"size:20;not null;index;default:pending" json:"status"`
	TotalQuestionsExtracted int       `gorm:"not null;default:0" json:"total_questions_extracted"`
	ErrorMessage            string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func (UploadSession) TableName() string {
	return "upload_sessions"
}
