package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Candidate is one structured question extracted from a document page. The
// schema is strict: question_text and at least two options are required, and
// correct_index (when present) must point into options. Payloads that do not
// match are rejected, not coerced.
type Candidate struct {
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correct_index,omitempty"`
	ImageRef     string   `json:"image_ref,omitempty"`
}

// ExtractionClient turns one document page into zero or more candidates.
// A failed call is page-scoped; the caller decides whether to continue.
type ExtractionClient interface {
	ExtractPage(ctx context.Context, page []byte, mimeType string) ([]Candidate, error)
}

type GeminiClient struct {
	Model          string
	PromptTemplate string
	client         *genai.Client
}

const defaultExtractionPrompt = `Kamu adalah asisten ekstraksi bank soal. Halaman dokumen terlampir berisi soal ujian.
Ekstrak semua soal pilihan ganda dari halaman ini.
Balas HANYA dengan JSON berbentuk:
{"questions":[{"question_text":"...","options":["...","..."],"correct_index":0}]}
Aturan:
- "options" minimal 2 pilihan; lewati soal isian yang tidak punya pilihan.
- "correct_index" hanya diisi jika kunci jawaban terlihat jelas di halaman; jika tidak, hilangkan field tersebut.
- Jangan mengarang soal yang tidak ada di halaman. Jika tidak ada soal, balas {"questions":[]}.`

func NewGeminiClient(ctx context.Context, apiKey string, model string, promptTemplate string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("missing gemini api key")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if promptTemplate == "" {
		promptTemplate = defaultExtractionPrompt
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client init: %w", err)
	}

	return &GeminiClient{
		Model:          model,
		PromptTemplate: promptTemplate,
		client:         client,
	}, nil
}

func (c *GeminiClient) ExtractPage(ctx context.Context, page []byte, mimeType string) ([]Candidate, error) {
	if c.client == nil {
		return nil, fmt.Errorf("client not initialized")
	}
	if len(page) == 0 {
		return nil, fmt.Errorf("empty page payload")
	}
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(page, mimeType),
		genai.NewPartFromText(c.PromptTemplate),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.Model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(0.2)),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini extract error: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("gemini returned empty response")
	}

	return ParseCandidates(raw)
}

type extractionPayload struct {
	Questions []Candidate `json:"questions"`
}

// ParseCandidates validates the model's JSON payload against the strict
// candidate schema. The only accepted shape is {"questions":[...]}; code
// fences around the JSON are stripped first, nothing else is normalized.
func ParseCandidates(raw string) ([]Candidate, error) {
	raw = stripCodeFence(raw)

	var payload extractionPayload
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("malformed extraction payload: %w", err)
	}

	for i, q := range payload.Questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			return nil, fmt.Errorf("candidate %d: missing question_text", i)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("candidate %d: need at least 2 options, got %d", i, len(q.Options))
		}
		if q.CorrectIndex != nil && (*q.CorrectIndex < 0 || *q.CorrectIndex >= len(q.Options)) {
			return nil, fmt.Errorf("candidate %d: correct_index %d out of range", i, *q.CorrectIndex)
		}
	}

	return payload.Questions, nil
}

func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
