package usecase

import (
	"context"
	"fmt"

	httpEntity "github.com/fahrizm/soalgen-be/internal/delivery/http/entity"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/repository"
	internalEntity "github.com/fahrizm/soalgen-be/internal/entity"
	"github.com/fahrizm/soalgen-be/internal/pkg/llm"
	"github.com/fahrizm/soalgen-be/internal/pkg/mapper"
	"github.com/fahrizm/soalgen-be/internal/pkg/vecindex"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type QuestionBankUsecase interface {
	Promote(ctx context.Context, req httpEntity.PromoteRequest) (*httpEntity.PromoteResponse, error)
	PendingPromotion(ctx context.Context, sessionID string) ([]httpEntity.ExtractedQuestionItem, error)
	UpdateEntryMetadata(ctx context.Context, entryID string, req httpEntity.UpdateEntryMetadataRequest) (*httpEntity.BankEntryItem, error)
}

type QuestionBankConfig struct {
	Log         *logrus.Logger
	SessionRepo repository.SessionRepository
	BankRepo    repository.QuestionBankRepository
	Index       vecindex.QuestionBankIndex
	Embedder    llm.Embedder
}

type questionBankUsecase struct {
	cfg QuestionBankConfig
}

func NewQuestionBankUsecase(cfg QuestionBankConfig) QuestionBankUsecase {
	return &questionBankUsecase{cfg: cfg}
}

// Promote moves extracted questions into the bank: embed, index, persist,
// then flag the source questions as promoted. Questions without a known
// correct answer are rejected up front; the bank only holds answerable items.
func (u *questionBankUsecase) Promote(ctx context.Context, req httpEntity.PromoteRequest) (*httpEntity.PromoteResponse, error) {
	questions, err := u.cfg.SessionRepo.FindQuestionsByQuestionIDs(nil, req.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	if len(questions) != len(req.QuestionIDs) {
		return nil, fmt.Errorf("unknown question ids: requested %d, found %d", len(req.QuestionIDs), len(questions))
	}
	for i := range questions {
		if questions[i].CorrectIndex == nil {
			return nil, fmt.Errorf("question %s has no correct answer; set one before promoting", questions[i].QuestionID)
		}
	}

	topicsJSON := mapper.EncodeStringList(req.Topics)
	tagsJSON := mapper.EncodeStringList(req.Tags)

	entryIDs := make([]string, 0, len(questions))

	for i := range questions {
		q := &questions[i]
		if q.Promoted {
			// Already in the bank; skip without failing the batch.
			u.cfg.Log.Warnf("question %s already promoted, skipping", q.QuestionID)
			continue
		}

		vector, err := u.cfg.Embedder.Embed(ctx, q.QuestionText)
		if err != nil {
			return nil, fmt.Errorf("failed to embed question %s: %w", q.QuestionID, err)
		}

		entry := &internalEntity.QuestionBankEntry{
			EntryID:         uuid.NewString(),
			QuestionText:    q.QuestionText,
			Options:         q.Options,
			CorrectIndex:    *q.CorrectIndex,
			Subject:         req.Subject,
			Chapter:         req.Chapter,
			Topics:          topicsJSON,
			Tags:            tagsJSON,
			Difficulty:      req.Difficulty,
			SourceSessionID: q.SessionID,
		}
		entry.VectorID = entry.EntryID

		metadata := map[string]any{
			"subject":    entry.Subject,
			"difficulty": entry.Difficulty,
		}
		if entry.Chapter != "" {
			metadata["chapter"] = entry.Chapter
		}
		if len(req.Topics) > 0 {
			metadata["topics"] = req.Topics
		}
		if len(req.Tags) > 0 {
			metadata["tags"] = req.Tags
		}

		if err := u.cfg.Index.Upsert(ctx, entry.VectorID, vector, metadata); err != nil {
			return nil, fmt.Errorf("failed to index question %s: %w", q.QuestionID, err)
		}
		if err := u.cfg.BankRepo.CreateEntry(nil, entry); err != nil {
			return nil, fmt.Errorf("failed to persist entry for %s: %w", q.QuestionID, err)
		}

		// Flag the source row right away. A later failure in the batch then
		// leaves every persisted entry marked, so a retry skips it instead
		// of duplicating it.
		if err := u.cfg.SessionRepo.MarkPromoted(nil, []string{q.QuestionID}); err != nil {
			return nil, fmt.Errorf("failed to mark question %s promoted: %w", q.QuestionID, err)
		}

		entryIDs = append(entryIDs, entry.EntryID)
	}

	return &httpEntity.PromoteResponse{
		EntryIDs:      entryIDs,
		PromotedCount: len(entryIDs),
	}, nil
}

func (u *questionBankUsecase) PendingPromotion(_ context.Context, sessionID string) ([]httpEntity.ExtractedQuestionItem, error) {
	questions, err := u.cfg.SessionRepo.FindPendingPromotion(nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending questions: %w", err)
	}
	items := make([]httpEntity.ExtractedQuestionItem, 0, len(questions))
	for i := range questions {
		item, err := mapper.ConvertToExtractedQuestionItem(&questions[i])
		if err != nil {
			u.cfg.Log.Warnf("skipping question %s: bad options payload: %v", questions[i].QuestionID, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// UpdateEntryMetadata edits the mutable metadata of a bank entry and refreshes
// the index-side metadata. The vector reference and embedding stay the same
// because the question text never changes here.
func (u *questionBankUsecase) UpdateEntryMetadata(ctx context.Context, entryID string, req httpEntity.UpdateEntryMetadataRequest) (*httpEntity.BankEntryItem, error) {
	if _, err := u.cfg.BankRepo.FindByEntryID(nil, entryID); err != nil {
		return nil, fmt.Errorf("entry not found: %w", err)
	}

	topicsJSON := ""
	if req.Topics != nil {
		topicsJSON = mapper.EncodeStringList(req.Topics)
	}
	tagsJSON := ""
	if req.Tags != nil {
		tagsJSON = mapper.EncodeStringList(req.Tags)
	}

	if err := u.cfg.BankRepo.UpdateMetadata(nil, entryID, req.Chapter, topicsJSON, tagsJSON, req.Difficulty); err != nil {
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	updated, err := u.cfg.BankRepo.FindByEntryID(nil, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload entry: %w", err)
	}

	vector, err := u.cfg.Embedder.Embed(ctx, updated.QuestionText)
	if err != nil {
		return nil, fmt.Errorf("failed to re-embed entry: %w", err)
	}
	metadata := map[string]any{
		"subject":    updated.Subject,
		"difficulty": updated.Difficulty,
	}
	if updated.Chapter != "" {
		metadata["chapter"] = updated.Chapter
	}
	if topics := mapper.DecodeStringList(updated.Topics); len(topics) > 0 {
		metadata["topics"] = topics
	}
	if tags := mapper.DecodeStringList(updated.Tags); len(tags) > 0 {
		metadata["tags"] = tags
	}
	if err := u.cfg.Index.Upsert(ctx, updated.VectorID, vector, metadata); err != nil {
		return nil, fmt.Errorf("failed to refresh index metadata: %w", err)
	}

	item, err := mapper.ConvertToBankEntryItem(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to map entry: %w", err)
	}
	return &item, nil
}
