package mapper

import (
	"encoding/json"
	"time"

	httpEntity "github.com/fahrizm/soalgen-be/internal/delivery/http/entity"
	dbEntity "github.com/fahrizm/soalgen-be/internal/entity"
)

// ConvertToSessionSummary - Convert DB entity to response DTO
func ConvertToSessionSummary(s *dbEntity.UploadSession) httpEntity.SessionSummary {
	return httpEntity.SessionSummary{
		SessionID:               s.SessionID,
		FileName:                s.FileName,
		Subject:                 s.Subject,
		StartPage:               s.StartPage,
		NumPages:                s.NumPages,
		Status:                  s.Status,
		TotalQuestionsExtracted: s.TotalQuestionsExtracted,
		ErrorMessage:            s.ErrorMessage,
		CreatedAt:               s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               s.UpdatedAt.Format(time.RFC3339),
	}
}

func ConvertToExtractedQuestionItem(q *dbEntity.ExtractedQuestion) (httpEntity.ExtractedQuestionItem, error) {
	var options []string
	if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
		return httpEntity.ExtractedQuestionItem{}, err
	}

	return httpEntity.ExtractedQuestionItem{
		QuestionID:   q.QuestionID,
		SessionID:    q.SessionID,
		PageNumber:   q.PageNumber,
		QuestionText: q.QuestionText,
		Options:      options,
		CorrectIndex: q.CorrectIndex,
		ImageRef:     q.ImageRef,
		Promoted:     q.Promoted,
		CreatedAt:    q.CreatedAt.Format(time.RFC3339),
	}, nil
}

func ConvertToBankEntryItem(e *dbEntity.QuestionBankEntry) (httpEntity.BankEntryItem, error) {
	var options []string
	if err := json.Unmarshal([]byte(e.Options), &options); err != nil {
		return httpEntity.BankEntryItem{}, err
	}

	return httpEntity.BankEntryItem{
		EntryID:      e.EntryID,
		QuestionText: e.QuestionText,
		Options:      options,
		CorrectIndex: e.CorrectIndex,
		Subject:      e.Subject,
		Chapter:      e.Chapter,
		Topics:       DecodeStringList(e.Topics),
		Tags:         DecodeStringList(e.Tags),
		Difficulty:   e.Difficulty,
		SourceID:     e.SourceSessionID,
	}, nil
}

func ConvertToPaperItem(e *dbEntity.QuestionBankEntry) (httpEntity.PaperItem, error) {
	var options []string
	if err := json.Unmarshal([]byte(e.Options), &options); err != nil {
		return httpEntity.PaperItem{}, err
	}

	return httpEntity.PaperItem{
		EntryID:      e.EntryID,
		QuestionText: e.QuestionText,
		Options:      options,
		CorrectIndex: e.CorrectIndex,
		Difficulty:   e.Difficulty,
		Chapter:      e.Chapter,
		Topics:       DecodeStringList(e.Topics),
		Tags:         DecodeStringList(e.Tags),
	}, nil
}

// DecodeStringList tolerates an empty column; a corrupt list maps to nil
// because topics/tags are advisory metadata, not identity.
func DecodeStringList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func EncodeStringList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
