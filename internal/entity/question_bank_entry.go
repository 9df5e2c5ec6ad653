package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// QuestionBankEntry - soal yang sudah dipromosikan ke bank soal dan terindeks
// di vector index. Identity and VectorID never change after creation; only
// chapter/topics/tags/difficulty may be edited.
type QuestionBankEntry struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	EntryID         string         `gorm:"uniqueIndex;size:100;not null" json:"entry_id"`
	QuestionText    string         `gorm:"type:text;not null" json:"question_text"`
	Options         string         `gorm:"type:text;not null" json:"options"` // JSON array
	CorrectIndex    int            `gorm:"not null" json:"correct_index"`
	Subject         string         `gorm:"size:100;not null;index" json:"subject"`
	Chapter         string         `gorm:"size:100;index" json:"chapter"`
	Topics          string         `gorm:"type:text" json:"topics"` // JSON array
	Tags            string         `gorm:"type:text" json:"tags"`   // JSON array
	Difficulty      string         `gorm:"size:20;not null;index" json:"difficulty"`
	VectorID        string         `gorm:"size:100;not null" json:"vector_id"`
	SourceSessionID string         `gorm:"size:100;index" json:"source_session_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (QuestionBankEntry) TableName() string {
	return "question_bank_entries"
}
