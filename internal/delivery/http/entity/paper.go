package entity

// PaperRequest - permintaan perakitan paket soal. Kuota per tingkat kesulitan
// boleh nol tapi minimal satu kuota harus > 0.
type PaperRequest struct {
	Subject       string   `json:"subject" validate:"required"`
	Chapter       string   `json:"chapter"`
	EasyCount     int      `json:"easy_count" validate:"min=0"`
	MediumCount   int      `json:"medium_count" validate:"min=0"`
	HardCount     int      `json:"hard_count" validate:"min=0"`
	Topics        []string `json:"topics"`
	Tags          []string `json:"tags"`
	Description   string   `json:"description"`
	MaxIterations int      `json:"max_iterations" validate:"omitempty,min=1"`
}

type PaperItem struct {
	EntryID      string   `json:"entry_id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Difficulty   string   `json:"difficulty"`
	Chapter      string   `json:"chapter,omitempty"`
	Topics       []string `json:"topics,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

type DifficultyCounts struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

func (c DifficultyCounts) Total() int {
	return c.Easy + c.Medium + c.Hard
}

type EvaluationReport struct {
	CoverageScore          float64  `json:"coverage_score"`
	DiversityScore         float64  `json:"diversity_score"`
	DifficultyBalanceScore float64  `json:"difficulty_balance_score"`
	OverallScore           float64  `json:"overall_score"`
	WeakAreas              []string `json:"weak_areas,omitempty"`
	MissingTopics          []string `json:"missing_topics,omitempty"`
	Suggestions            []string `json:"suggestions,omitempty"`
}

// GeneratedPaper - hasil perakitan. Kuota yang tidak terpenuhi tetap sukses;
// pemanggil wajib membandingkan Generated dengan Requested.
type GeneratedPaper struct {
	Items      []PaperItem      `json:"items"`
	Requested  DifficultyCounts `json:"requested"`
	Generated  DifficultyCounts `json:"generated"`
	Iterations int              `json:"iterations"`
	Strategy   string           `json:"strategy"`
	QuotaMet   bool             `json:"quota_met"`

	// Strategy v1.5 diversification signals
	PermutationsAvailable int `json:"permutations_available,omitempty"`
	PermutationsUsed      int `json:"permutations_used,omitempty"`
	TopicsDiscovered      int `json:"topics_discovered,omitempty"`
	TagsDiscovered        int `json:"tags_discovered,omitempty"`

	// Strategy v2 signals
	KeywordsUsed []string          `json:"keywords_used,omitempty"`
	Evaluation   *EvaluationReport `json:"evaluation,omitempty"`
}
