package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	httpEntity "github.com/fahrizm/soalgen-be/internal/delivery/http/entity"
	internalEntity "github.com/fahrizm/soalgen-be/internal/entity"
	"github.com/fahrizm/soalgen-be/internal/pkg/document"
	"github.com/fahrizm/soalgen-be/internal/pkg/llm"
	"github.com/fahrizm/soalgen-be/internal/pkg/stream"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// fakeSessionRepo keeps sessions and questions in memory. Methods are
// mutex-guarded because the orchestrator writes from its own goroutine.
type fakeSessionRepo struct {
	mu        sync.Mutex
	sessions  map[string]*internalEntity.UploadSession
	created   []string
	questions []internalEntity.ExtractedQuestion
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*internalEntity.UploadSession{}}
}

func (r *fakeSessionRepo) Create(_ *gorm.DB, session *internalEntity.UploadSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	r.sessions[session.SessionID] = &cp
	r.created = append(r.created, session.SessionID)
	return nil
}

func (r *fakeSessionRepo) FindBySessionID(_ *gorm.DB, sessionID string) (*internalEntity.UploadSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	cp := *s
	return &cp, nil
}

// FindAll mimics the repository: newest first, filtered total, offset/limit.
func (r *fakeSessionRepo) FindAll(_ *gorm.DB, status string, page, limit int) ([]internalEntity.UploadSession, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var matched []internalEntity.UploadSession
	for i := len(r.created) - 1; i >= 0; i-- {
		s := r.sessions[r.created[i]]
		if status == "" || s.Status == status {
			matched = append(matched, *s)
		}
	}

	total := int64(len(matched))
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeSessionRepo) UpdateStatus(_ *gorm.DB, sessionID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return fmt.Errorf("record not found")
	}
	s.Status = status
	return nil
}

func (r *fakeSessionRepo) MarkFailed(_ *gorm.DB, sessionID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return fmt.Errorf("record not found")
	}
	s.Status = internalEntity.SessionStatusFailed
	s.ErrorMessage = message
	return nil
}

func (r *fakeSessionRepo) CommitPage(_ *gorm.DB, sessionID string, questions []*internalEntity.ExtractedQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return fmt.Errorf("record not found")
	}
	for _, q := range questions {
		r.questions = append(r.questions, *q)
	}
	s.TotalQuestionsExtracted += len(questions)
	return nil
}

func (r *fakeSessionRepo) FindQuestionsBySessionID(_ *gorm.DB, sessionID string) ([]internalEntity.ExtractedQuestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []internalEntity.ExtractedQuestion
	for _, q := range r.questions {
		if q.SessionID == sessionID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) FindQuestionsByQuestionIDs(_ *gorm.DB, questionIDs []string) ([]internalEntity.ExtractedQuestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := map[string]bool{}
	for _, id := range questionIDs {
		ids[id] = true
	}
	var out []internalEntity.ExtractedQuestion
	for _, q := range r.questions {
		if ids[q.QuestionID] {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) FindPendingPromotion(_ *gorm.DB, sessionID string) ([]internalEntity.ExtractedQuestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []internalEntity.ExtractedQuestion
	for _, q := range r.questions {
		if q.Promoted {
			continue
		}
		if sessionID != "" && q.SessionID != sessionID {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeSessionRepo) MarkPromoted(_ *gorm.DB, questionIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := map[string]bool{}
	for _, id := range questionIDs {
		ids[id] = true
	}
	for i := range r.questions {
		if ids[r.questions[i].QuestionID] {
			r.questions[i].Promoted = true
		}
	}
	return nil
}

func (r *fakeSessionRepo) sessionStatus(sessionID string) (string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.sessions[sessionID]
	return s.Status, s.TotalQuestionsExtracted
}

// fakeDocument serves synthetic pages; PageBytes encodes the page number so
// the fake extractor can key on it.
type fakeDocument struct {
	pageCount int
}

func (d *fakeDocument) PageCount() int   { return d.pageCount }
func (d *fakeDocument) MIMEType() string { return "application/pdf" }
func (d *fakeDocument) Close() error     { return nil }

func (d *fakeDocument) PageBytes(pageNum int) ([]byte, error) {
	if pageNum < 1 || pageNum > d.pageCount {
		return nil, fmt.Errorf("page %d out of range", pageNum)
	}
	return []byte(fmt.Sprintf("page-%d", pageNum)), nil
}

type fakePageSource struct {
	doc     *fakeDocument
	openErr error
}

func (s *fakePageSource) Open(_ context.Context, _ string) (document.Document, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return s.doc, nil
}

// fakeExtractor yields a configured number of candidates per page, or an
// error for pages listed in failPages.
type fakeExtractor struct {
	perPage   map[string]int
	failPages map[string]bool
}

func (e *fakeExtractor) ExtractPage(_ context.Context, page []byte, _ string) ([]llm.Candidate, error) {
	key := string(page)
	if e.failPages[key] {
		return nil, fmt.Errorf("upstream timeout")
	}
	n := e.perPage[key]
	out := make([]llm.Candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, llm.Candidate{
			QuestionText: fmt.Sprintf("%s soal %d", key, i+1),
			Options:      []string{"a", "b", "c", "d"},
		})
	}
	return out, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func startTestSession(t *testing.T, cfg ExtractionConfig, req httpEntity.StartSessionRequest) (ExtractionUsecase, *stream.Stream, string) {
	t.Helper()
	uc := NewExtractionUsecase(cfg)
	resp, err := uc.StartSession(context.Background(), req)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	st, err := cfg.Streams.Attach(resp.SessionID)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	return uc, st, resp.SessionID
}

// drainStream reads until the channel closes, with a watchdog so a stuck
// session fails the test instead of hanging it.
func drainStream(t *testing.T, st *stream.Stream) []stream.Event {
	t.Helper()
	var events []stream.Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-st.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("stream did not close, got %d events so far", len(events))
		}
	}
}

func eventTypes(events []stream.Event) []stream.EventType {
	out := make([]stream.EventType, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Type)
	}
	return out
}

func countType(events []stream.Event, typ stream.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestSessionHappyPath(t *testing.T) {
	repo := newFakeSessionRepo()
	streams := stream.NewRegistry(testLogger())
	cfg := ExtractionConfig{
		Log:   testLogger(),
		Repo:  repo,
		Pages: &fakePageSource{doc: &fakeDocument{pageCount: 5}},
		Extractor: &fakeExtractor{perPage: map[string]int{
			"page-2": 4, "page-3": 3, "page-4": 5,
		}},
		Streams: streams,
	}

	_, st, sessionID := startTestSession(t, cfg, httpEntity.StartSessionRequest{
		FileName:  "uts-matematika.pdf",
		Subject:   "Matematika",
		StartPage: 2,
		NumPages:  3,
	})
	events := drainStream(t, st)

	if events[0].Type != stream.EventSessionStarted {
		t.Fatalf("expected session_started first, got %s", events[0].Type)
	}
	last := events[len(events)-1]
	if last.Type != stream.EventComplete {
		t.Fatalf("expected complete last, got %v", eventTypes(events))
	}
	if data := last.Data.(stream.CompleteData); data.TotalQuestions != 12 {
		t.Fatalf("expected 12 total questions, got %d", data.TotalQuestions)
	}
	if n := countType(events, stream.EventQuestion); n != 12 {
		t.Fatalf("expected 12 question events, got %d", n)
	}
	if n := countType(events, stream.EventPageComplete); n != 3 {
		t.Fatalf("expected 3 page_complete events, got %d", n)
	}

	// Question events carry a strictly increasing global index.
	idx := 0
	for _, ev := range events {
		if ev.Type != stream.EventQuestion {
			continue
		}
		idx++
		if got := ev.Data.(stream.QuestionData).GlobalIndex; got != idx {
			t.Fatalf("expected global index %d, got %d", idx, got)
		}
	}

	status, total := repo.sessionStatus(sessionID)
	if status != internalEntity.SessionStatusCompleted {
		t.Fatalf("expected completed session, got %s", status)
	}
	if total != 12 {
		t.Fatalf("expected 12 committed questions, got %d", total)
	}
}

func TestSessionSkipsFailedPage(t *testing.T) {
	repo := newFakeSessionRepo()
	streams := stream.NewRegistry(testLogger())
	cfg := ExtractionConfig{
		Log:   testLogger(),
		Repo:  repo,
		Pages: &fakePageSource{doc: &fakeDocument{pageCount: 3}},
		Extractor: &fakeExtractor{
			perPage:   map[string]int{"page-1": 4, "page-3": 5},
			failPages: map[string]bool{"page-2": true},
		},
		Streams: streams,
	}

	_, st, sessionID := startTestSession(t, cfg, httpEntity.StartSessionRequest{
		FileName:  "uas-fisika.pdf",
		Subject:   "Fisika",
		StartPage: 1,
		NumPages:  3,
	})
	events := drainStream(t, st)

	if n := countType(events, stream.EventPageError); n != 1 {
		t.Fatalf("expected 1 page_error, got %d", n)
	}
	last := events[len(events)-1]
	if last.Type != stream.EventComplete {
		t.Fatalf("expected complete last, got %v", eventTypes(events))
	}
	if data := last.Data.(stream.CompleteData); data.TotalQuestions != 9 {
		t.Fatalf("expected 9 total questions, got %d", data.TotalQuestions)
	}

	// A per-page failure must not fail the session.
	status, total := repo.sessionStatus(sessionID)
	if status != internalEntity.SessionStatusCompleted {
		t.Fatalf("expected completed session, got %s", status)
	}
	if total != 9 {
		t.Fatalf("expected 9 committed questions, got %d", total)
	}
}

func TestSessionClampsPageRange(t *testing.T) {
	repo := newFakeSessionRepo()
	streams := stream.NewRegistry(testLogger())
	cfg := ExtractionConfig{
		Log:   testLogger(),
		Repo:  repo,
		Pages: &fakePageSource{doc: &fakeDocument{pageCount: 3}},
		Extractor: &fakeExtractor{perPage: map[string]int{
			"page-2": 2, "page-3": 2,
		}},
		Streams: streams,
	}

	// Requests 10 pages from page 2 of a 3-page document.
	_, st, _ := startTestSession(t, cfg, httpEntity.StartSessionRequest{
		FileName:  "latihan.pdf",
		Subject:   "Biologi",
		StartPage: 2,
		NumPages:  10,
	})
	events := drainStream(t, st)

	if n := countType(events, stream.EventPageStart); n != 2 {
		t.Fatalf("expected 2 page_start events, got %d", n)
	}
	last := events[len(events)-1]
	if last.Type != stream.EventComplete {
		t.Fatalf("expected complete last, got %v", eventTypes(events))
	}
}

func TestSessionFailsWhenDocumentMissing(t *testing.T) {
	repo := newFakeSessionRepo()
	streams := stream.NewRegistry(testLogger())
	cfg := ExtractionConfig{
		Log:       testLogger(),
		Repo:      repo,
		Pages:     &fakePageSource{openErr: fmt.Errorf("no such file")},
		Extractor: &fakeExtractor{},
		Streams:   streams,
	}

	_, st, sessionID := startTestSession(t, cfg, httpEntity.StartSessionRequest{
		FileName:  "hilang.pdf",
		Subject:   "Kimia",
		StartPage: 1,
		NumPages:  1,
	})
	events := drainStream(t, st)

	last := events[len(events)-1]
	if last.Type != stream.EventError {
		t.Fatalf("expected error last, got %v", eventTypes(events))
	}
	status, _ := repo.sessionStatus(sessionID)
	if status != internalEntity.SessionStatusFailed {
		t.Fatalf("expected failed session, got %s", status)
	}
}

func TestSessionStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := newFakeSessionRepo()
	streams := stream.NewRegistry(testLogger())
	cfg := ExtractionConfig{
		Log:       testLogger(),
		Repo:      repo,
		Pages:     &fakePageSource{doc: &fakeDocument{pageCount: 3}},
		Extractor: &fakeExtractor{perPage: map[string]int{"page-1": 2}},
		Streams:   streams,
		BaseCtx:   ctx,
	}

	_, st, sessionID := startTestSession(t, cfg, httpEntity.StartSessionRequest{
		FileName:  "batal.pdf",
		Subject:   "Sejarah",
		StartPage: 1,
		NumPages:  3,
	})
	events := drainStream(t, st)

	last := events[len(events)-1]
	if last.Type != stream.EventError {
		t.Fatalf("expected error last, got %v", eventTypes(events))
	}
	if n := countType(events, stream.EventQuestion); n != 0 {
		t.Fatalf("expected no question events, got %d", n)
	}
	status, _ := repo.sessionStatus(sessionID)
	if status != internalEntity.SessionStatusFailed {
		t.Fatalf("expected failed session, got %s", status)
	}
}

func TestSessionSurvivesDroppedStream(t *testing.T) {
	repo := newFakeSessionRepo()
	streams := stream.NewRegistry(testLogger())
	cfg := ExtractionConfig{
		Log:  testLogger(),
		Repo: repo,
		// One page with more questions than the stream buffer holds; no
		// consumer drains, so the stream drops mid-session.
		Pages:     &fakePageSource{doc: &fakeDocument{pageCount: 1}},
		Extractor: &fakeExtractor{perPage: map[string]int{"page-1": 400}},
		Streams:   streams,
	}

	uc := NewExtractionUsecase(cfg)
	resp, err := uc.StartSession(context.Background(), httpEntity.StartSessionRequest{
		FileName:  "besar.pdf",
		Subject:   "Matematika",
		StartPage: 1,
		NumPages:  1,
	})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		status, total := repo.sessionStatus(resp.SessionID)
		if status == internalEntity.SessionStatusCompleted {
			if total != 400 {
				t.Fatalf("expected 400 committed questions, got %d", total)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("session stuck in %s", status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// scriptedExtractor returns fixed candidates per page payload.
type scriptedExtractor struct {
	pages map[string][]llm.Candidate
}

func (e *scriptedExtractor) ExtractPage(_ context.Context, page []byte, _ string) ([]llm.Candidate, error) {
	return e.pages[string(page)], nil
}

func TestSessionQuestionsMatchEmittedEvents(t *testing.T) {
	repo := newFakeSessionRepo()
	streams := stream.NewRegistry(testLogger())
	cfg := ExtractionConfig{
		Log:   testLogger(),
		Repo:  repo,
		Pages: &fakePageSource{doc: &fakeDocument{pageCount: 2}},
		Extractor: &scriptedExtractor{pages: map[string][]llm.Candidate{
			"page-1": {
				{QuestionText: "Berapakah 2+2?", Options: []string{"3", "4", "5"}, CorrectIndex: intPtr(1)},
				{QuestionText: "Ibu kota Indonesia?", Options: []string{"Jakarta", "Bandung"}},
			},
			"page-2": {
				{QuestionText: "Soal bergambar", Options: []string{"a", "b"}, CorrectIndex: intPtr(0), ImageRef: "hal2-gambar1.png"},
			},
		}},
		Streams: streams,
	}

	uc, st, sessionID := startTestSession(t, cfg, httpEntity.StartSessionRequest{
		FileName:  "uts.pdf",
		Subject:   "Matematika",
		StartPage: 1,
		NumPages:  2,
	})
	events := drainStream(t, st)

	var emitted []stream.QuestionData
	for _, ev := range events {
		if ev.Type == stream.EventQuestion {
			emitted = append(emitted, ev.Data.(stream.QuestionData))
		}
	}
	if len(emitted) != 3 {
		t.Fatalf("expected 3 question events, got %d", len(emitted))
	}

	// Everything announced on the stream reads back identically.
	stored, err := uc.SessionQuestions(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("SessionQuestions: %v", err)
	}
	if len(stored) != len(emitted) {
		t.Fatalf("expected %d stored questions, got %d", len(emitted), len(stored))
	}
	for i, ev := range emitted {
		q := stored[i]
		if q.QuestionID != ev.QuestionID {
			t.Fatalf("question %d: id %s vs %s", i, q.QuestionID, ev.QuestionID)
		}
		if q.QuestionText != ev.QuestionText {
			t.Fatalf("question %d: text %q vs %q", i, q.QuestionText, ev.QuestionText)
		}
		if len(q.Options) != len(ev.Options) {
			t.Fatalf("question %d: %d options vs %d", i, len(q.Options), len(ev.Options))
		}
		for j := range q.Options {
			if q.Options[j] != ev.Options[j] {
				t.Fatalf("question %d option %d: %q vs %q", i, j, q.Options[j], ev.Options[j])
			}
		}
		switch {
		case q.CorrectIndex == nil && ev.CorrectIndex == nil:
		case q.CorrectIndex != nil && ev.CorrectIndex != nil && *q.CorrectIndex == *ev.CorrectIndex:
		default:
			t.Fatalf("question %d: correct index %v vs %v", i, q.CorrectIndex, ev.CorrectIndex)
		}
		if q.ImageRef != ev.ImageRef {
			t.Fatalf("question %d: image ref %q vs %q", i, q.ImageRef, ev.ImageRef)
		}
	}

	summary, err := uc.GetSession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if summary.Status != internalEntity.SessionStatusCompleted {
		t.Fatalf("expected completed session, got %s", summary.Status)
	}
	if summary.TotalQuestionsExtracted != 3 {
		t.Fatalf("expected 3 extracted in summary, got %d", summary.TotalQuestionsExtracted)
	}
}

func TestListSessionsFiltersAndPaginates(t *testing.T) {
	repo := newFakeSessionRepo()
	seed := []struct {
		id     string
		status string
	}{
		{"sess-1", internalEntity.SessionStatusCompleted},
		{"sess-2", internalEntity.SessionStatusFailed},
		{"sess-3", internalEntity.SessionStatusCompleted},
		{"sess-4", internalEntity.SessionStatusCompleted},
	}
	for _, s := range seed {
		if err := repo.Create(nil, &internalEntity.UploadSession{
			SessionID: s.id, FileName: s.id + ".pdf", Subject: "Matematika",
			StartPage: 1, NumPages: 1, Status: s.status,
		}); err != nil {
			t.Fatalf("seed %s: %v", s.id, err)
		}
	}
	uc := NewExtractionUsecase(ExtractionConfig{
		Log: testLogger(), Repo: repo, Streams: stream.NewRegistry(testLogger()),
	})

	completed, total, err := uc.ListSessions(context.Background(), internalEntity.SessionStatusCompleted, 1, 10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if total != 3 || len(completed) != 3 {
		t.Fatalf("expected 3 completed sessions, got total %d len %d", total, len(completed))
	}
	// Newest first.
	if completed[0].SessionID != "sess-4" {
		t.Fatalf("expected sess-4 first, got %s", completed[0].SessionID)
	}

	// Second page of two-per-page over the filtered set.
	pageTwo, total, err := uc.ListSessions(context.Background(), internalEntity.SessionStatusCompleted, 2, 2)
	if err != nil {
		t.Fatalf("ListSessions page 2: %v", err)
	}
	if total != 3 || len(pageTwo) != 1 {
		t.Fatalf("expected 1 of 3 on page 2, got total %d len %d", total, len(pageTwo))
	}
	if pageTwo[0].SessionID != "sess-1" {
		t.Fatalf("expected sess-1 on page 2, got %s", pageTwo[0].SessionID)
	}

	if _, err := uc.GetSession(context.Background(), "tidak-ada"); err == nil {
		t.Fatal("expected error for unknown session")
	}
	if _, err := uc.SessionQuestions(context.Background(), "tidak-ada"); err == nil {
		t.Fatal("expected error for unknown session questions")
	}
}

// stuckStatusRepo rejects the transition to processing.
type stuckStatusRepo struct {
	*fakeSessionRepo
}

func (r *stuckStatusRepo) UpdateStatus(db *gorm.DB, sessionID, status string) error {
	if status == internalEntity.SessionStatusProcessing {
		return fmt.Errorf("connection reset")
	}
	return r.fakeSessionRepo.UpdateStatus(db, sessionID, status)
}

func TestSessionStartedPrecedesEarlyFailure(t *testing.T) {
	repo := newFakeSessionRepo()
	streams := stream.NewRegistry(testLogger())
	cfg := ExtractionConfig{
		Log:       testLogger(),
		Repo:      &stuckStatusRepo{fakeSessionRepo: repo},
		Pages:     &fakePageSource{doc: &fakeDocument{pageCount: 3}},
		Extractor: &fakeExtractor{perPage: map[string]int{"page-1": 2}},
		Streams:   streams,
	}

	_, st, sessionID := startTestSession(t, cfg, httpEntity.StartSessionRequest{
		FileName:  "korup.pdf",
		Subject:   "Matematika",
		StartPage: 1,
		NumPages:  1,
	})
	events := drainStream(t, st)

	if len(events) < 2 {
		t.Fatalf("expected at least 2 events, got %v", eventTypes(events))
	}
	if events[0].Type != stream.EventSessionStarted {
		t.Fatalf("expected session_started first, got %s", events[0].Type)
	}
	if last := events[len(events)-1]; last.Type != stream.EventError {
		t.Fatalf("expected error last, got %v", eventTypes(events))
	}

	status, _ := repo.sessionStatus(sessionID)
	if status != internalEntity.SessionStatusFailed {
		t.Fatalf("expected failed session, got %s", status)
	}
}

func TestStartSessionRejectsBadRange(t *testing.T) {
	cfg := ExtractionConfig{
		Log:     testLogger(),
		Repo:    newFakeSessionRepo(),
		Streams: stream.NewRegistry(testLogger()),
	}
	uc := NewExtractionUsecase(cfg)

	if _, err := uc.StartSession(context.Background(), httpEntity.StartSessionRequest{
		FileName: "x.pdf", Subject: "IPA", StartPage: 0, NumPages: 1,
	}); err == nil {
		t.Fatal("expected error for start_page 0")
	}
	if _, err := uc.StartSession(context.Background(), httpEntity.StartSessionRequest{
		FileName: "x.pdf", Subject: "IPA", StartPage: 1, NumPages: 0,
	}); err == nil {
		t.Fatal("expected error for num_pages 0")
	}
}
