package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	httpEntity "github.com/fahrizm/soalgen-be/internal/delivery/http/entity"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/repository"
	internalEntity "github.com/fahrizm/soalgen-be/internal/entity"
	"github.com/fahrizm/soalgen-be/internal/pkg/document"
	"github.com/fahrizm/soalgen-be/internal/pkg/llm"
	"github.com/fahrizm/soalgen-be/internal/pkg/mapper"
	"github.com/fahrizm/soalgen-be/internal/pkg/stream"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ExtractionUsecase interface {
	StartSession(ctx context.Context, req httpEntity.StartSessionRequest) (*httpEntity.StartSessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*httpEntity.SessionSummary, error)
	ListSessions(ctx context.Context, status string, page, limit int) ([]httpEntity.SessionSummary, int64, error)
	SessionQuestions(ctx context.Context, sessionID string) ([]httpEntity.ExtractedQuestionItem, error)
}

type ExtractionConfig struct {
	Log       *logrus.Logger
	Repo      repository.SessionRepository
	Pages     document.PageSource
	Extractor llm.ExtractionClient
	Streams   *stream.Registry

	// BaseCtx bounds every running session; cancelling it (shutdown) stops
	// sessions cooperatively between pages.
	BaseCtx context.Context

	// StreamLinger keeps a closed stream attachable for late consumers
	// before it is removed from the registry.
	StreamLinger time.Duration
}

type extractionUsecase struct {
	cfg ExtractionConfig
}

func NewExtractionUsecase(cfg ExtractionConfig) ExtractionUsecase {
	if cfg.BaseCtx == nil {
		cfg.BaseCtx = context.Background()
	}
	if cfg.StreamLinger <= 0 {
		cfg.StreamLinger = 5 * time.Minute
	}
	return &extractionUsecase{cfg: cfg}
}

func (u *extractionUsecase) StartSession(_ context.Context, req httpEntity.StartSessionRequest) (*httpEntity.StartSessionResponse, error) {
	if req.StartPage < 1 || req.NumPages < 1 {
		return nil, fmt.Errorf("start_page and num_pages must be at least 1")
	}

	session := &internalEntity.UploadSession{
		SessionID: uuid.NewString(),
		FileName:  req.FileName,
		Subject:   req.Subject,
		StartPage: req.StartPage,
		NumPages:  req.NumPages,
		Status:    internalEntity.SessionStatusPending,
	}
	if err := u.cfg.Repo.Create(nil, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	st := u.cfg.Streams.Create(session.SessionID)
	go u.runSession(u.cfg.BaseCtx, session, st)

	return &httpEntity.StartSessionResponse{
		SessionID: session.SessionID,
		Status:    session.Status,
	}, nil
}

// runSession drives one session page by page, strictly sequential. Page
// results are committed before their events are emitted, so a consumer
// disconnect never loses a completed page.
func (u *extractionUsecase) runSession(ctx context.Context, session *internalEntity.UploadSession, st *stream.Stream) {
	log := u.cfg.Log.WithField("session_id", session.SessionID)

	streamBroken := false
	publish := func(ev stream.Event) {
		if streamBroken {
			return
		}
		if err := st.Publish(ev); err != nil {
			// Stream-level only; the session keeps running and committing.
			streamBroken = true
			log.Warnf("event stream dropped: %v", err)
		}
	}
	finish := func() {
		st.Close()
		time.AfterFunc(u.cfg.StreamLinger, func() {
			u.cfg.Streams.Remove(session.SessionID)
		})
	}
	fatal := func(msg string, err error) {
		log.Errorf("%s: %v", msg, err)
		if dbErr := u.cfg.Repo.MarkFailed(nil, session.SessionID, msg); dbErr != nil {
			log.Errorf("failed to mark session failed: %v", dbErr)
		}
		publish(stream.Event{Type: stream.EventError, Data: stream.ErrorData{
			Message: msg,
			Details: err.Error(),
		}})
		finish()
	}

	// session_started opens the stream unconditionally; every later failure
	// then terminates with a well-formed error event.
	publish(stream.Event{Type: stream.EventSessionStarted, Data: stream.SessionStartedData{
		SessionID:  session.SessionID,
		FileName:   session.FileName,
		Subject:    session.Subject,
		TotalPages: session.NumPages,
	}})

	if err := u.cfg.Repo.UpdateStatus(nil, session.SessionID, internalEntity.SessionStatusProcessing); err != nil {
		fatal("failed to update session status", err)
		return
	}
	publish(stream.Event{Type: stream.EventProgress, Data: stream.ProgressData{Phase: "membuka dokumen"}})

	doc, err := u.cfg.Pages.Open(ctx, session.FileName)
	if err != nil {
		fatal("failed to open document", err)
		return
	}
	defer doc.Close()

	if session.StartPage > doc.PageCount() {
		fatal("invalid page range", fmt.Errorf("start page %d beyond document (%d pages)", session.StartPage, doc.PageCount()))
		return
	}

	totalPages := session.NumPages
	if remaining := doc.PageCount() - session.StartPage + 1; totalPages > remaining {
		totalPages = remaining
	}

	publish(stream.Event{Type: stream.EventProgress, Data: stream.ProgressData{Phase: "mengekstrak soal"}})

	globalIndex := 0
	totalSoFar := 0

	for i := 0; i < totalPages; i++ {
		// Cooperative cancellation, checked between pages only.
		if ctx.Err() != nil {
			fatal("session cancelled", ctx.Err())
			return
		}

		pageNum := session.StartPage + i
		publish(stream.Event{Type: stream.EventPageStart, Data: stream.PageStartData{
			PageNumber:  pageNum,
			CurrentPage: i + 1,
			TotalPages:  totalPages,
		}})

		pageBytes, err := doc.PageBytes(pageNum)
		if err != nil {
			fatal("document storage unavailable", err)
			return
		}

		candidates, err := u.cfg.Extractor.ExtractPage(ctx, pageBytes, doc.MIMEType())
		if err != nil {
			// Non-fatal: skip the page and keep going.
			log.Warnf("page %d extraction failed: %v", pageNum, err)
			publish(stream.Event{Type: stream.EventPageError, Data: stream.PageErrorData{
				PageNumber: pageNum,
				Error:      err.Error(),
			}})
			continue
		}

		rows := make([]*internalEntity.ExtractedQuestion, 0, len(candidates))
		for _, c := range candidates {
			optionsJSON, err := json.Marshal(c.Options)
			if err != nil {
				fatal("failed to encode options", err)
				return
			}
			rows = append(rows, &internalEntity.ExtractedQuestion{
				QuestionID:   uuid.NewString(),
				SessionID:    session.SessionID,
				PageNumber:   pageNum,
				QuestionText: c.QuestionText,
				Options:      string(optionsJSON),
				CorrectIndex: c.CorrectIndex,
				ImageRef:     c.ImageRef,
			})
		}

		// Commit before emitting, so emitted questions are always durable.
		if err := u.cfg.Repo.CommitPage(nil, session.SessionID, rows); err != nil {
			fatal("failed to persist page results", err)
			return
		}

		for idx, row := range rows {
			globalIndex++
			publish(stream.Event{Type: stream.EventQuestion, Data: stream.QuestionData{
				QuestionID:   row.QuestionID,
				QuestionText: row.QuestionText,
				Options:      candidates[idx].Options,
				CorrectIndex: row.CorrectIndex,
				ImageRef:     row.ImageRef,
				GlobalIndex:  globalIndex,
			}})
		}

		totalSoFar += len(rows)
		publish(stream.Event{Type: stream.EventPageComplete, Data: stream.PageCompleteData{
			PageNumber: pageNum,
			TotalSoFar: totalSoFar,
		}})
	}

	if err := u.cfg.Repo.UpdateStatus(nil, session.SessionID, internalEntity.SessionStatusCompleted); err != nil {
		fatal("failed to complete session", err)
		return
	}

	log.Infof("session completed with %d questions", totalSoFar)
	publish(stream.Event{Type: stream.EventComplete, Data: stream.CompleteData{
		TotalQuestions: totalSoFar,
	}})
	finish()
}

func (u *extractionUsecase) GetSession(_ context.Context, sessionID string) (*httpEntity.SessionSummary, error) {
	session, err := u.cfg.Repo.FindBySessionID(nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	summary := mapper.ConvertToSessionSummary(session)
	return &summary, nil
}

func (u *extractionUsecase) ListSessions(_ context.Context, status string, page, limit int) ([]httpEntity.SessionSummary, int64, error) {
	sessions, total, err := u.cfg.Repo.FindAll(nil, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	summaries := make([]httpEntity.SessionSummary, 0, len(sessions))
	for i := range sessions {
		summaries = append(summaries, mapper.ConvertToSessionSummary(&sessions[i]))
	}
	return summaries, total, nil
}

func (u *extractionUsecase) SessionQuestions(_ context.Context, sessionID string) ([]httpEntity.ExtractedQuestionItem, error) {
	if _, err := u.cfg.Repo.FindBySessionID(nil, sessionID); err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	questions, err := u.cfg.Repo.FindQuestionsBySessionID(nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
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
