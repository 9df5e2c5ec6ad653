package entity

// Request untuk memulai sesi ekstraksi
type StartSessionRequest struct {
	FileName  string `json:"file_name" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	StartPage int    `json:"start_page" validate:"required,min=1"`
	NumPages  int    `json:"num_pages" validate:"required,min=1"`
}

type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// Session summary untuk riwayat
type SessionSummary struct {
	SessionID               string `json:"session_id"`
	FileName                string `json:"file_name"`
	Subject                 string `json:"subject"`
	StartPage               int    `json:"start_page"`
	NumPages                int    `json:"num_pages"`
	Status                  string `json:"status"`
	TotalQuestionsExtracted int    `json:"total_questions_extracted"`
	ErrorMessage            string `json:"error_message,omitempty"`
	CreatedAt               string `json:"created_at"`
	UpdatedAt               string `json:"updated_at"`
}

type ExtractedQuestionItem struct {
	QuestionID   string   `json:"question_id"`
	SessionID    string   `json:"session_id"`
	PageNumber   int      `json:"page_number"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correct_index,omitempty"`
	ImageRef     string   `json:"image_ref,omitempty"`
	Promoted     bool     `json:"promoted"`
	CreatedAt    string   `json:"created_at"`
}

// Request untuk promosi soal hasil ekstraksi ke bank soal
type PromoteRequest struct {
	QuestionIDs []string `json:"question_ids" validate:"required,min=1,dive,required"`
	Subject     string   `json:"subject" validate:"required"`
	Chapter     string   `json:"chapter"`
	Topics      []string `json:"topics"`
	Tags        []string `json:"tags"`
	Difficulty  string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

type PromoteResponse struct {
	EntryIDs      []string `json:"entry_ids"`
	PromotedCount int      `json:"promoted_count"`
}

// Request untuk edit metadata entri bank soal (identity/vector tidak berubah)
type UpdateEntryMetadataRequest struct {
	Chapter    string   `json:"chapter"`
	Topics     []string `json:"topics"`
	Tags       []string `json:"tags"`
	Difficulty string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type BankEntryItem struct {
	EntryID      string   `json:"entry_id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Subject      string   `json:"subject"`
	Chapter      string   `json:"chapter,omitempty"`
	Topics       []string `json:"topics,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Difficulty   string   `json:"difficulty"`
	SourceID     string   `json:"source_session_id,omitempty"`
}
