package stream

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

type EventType string

const (
	EventSessionStarted EventType = "session_started"
	EventProgress       EventType = "progress"
	EventPageStart      EventType = "page_start"
	EventQuestion       EventType = "question"
	EventPageComplete   EventType = "page_complete"
	EventPageError      EventType = "page_error"
	EventComplete       EventType = "complete"
	EventError          EventType = "error"
)

// Event is one element of a session's ordered stream. Data holds exactly one
// of the payload types below, matching Type.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

type SessionStartedData struct {
	SessionID  string `json:"session_id"`
	FileName   string `json:"file_name"`
	Subject    string `json:"subject"`
	TotalPages int    `json:"total_pages"`
}

type ProgressData struct {
	Phase string `json:"phase"`
}

type PageStartData struct {
	PageNumber  int `json:"page_number"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

type QuestionData struct {
	QuestionID   string   `json:"question_id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correct_index,omitempty"`
	ImageRef     string   `json:"image_ref,omitempty"`
	GlobalIndex  int      `json:"global_index"`
}

type PageCompleteData struct {
	PageNumber int `json:"page_number"`
	TotalSoFar int `json:"total_so_far"`
}

type PageErrorData struct {
	PageNumber int    `json:"page_number"`
	Error      string `json:"error"`
}

type CompleteData struct {
	TotalQuestions int `json:"total_questions"`
}

type ErrorData struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

var (
	ErrStreamNotFound = errors.New("stream not found")
	ErrStreamBusy     = errors.New("stream already has a consumer")
	ErrSlowConsumer   = errors.New("consumer cannot keep up, stream dropped")
	ErrStreamClosed   = errors.New("stream closed")
)

// Stream is a single-producer, single-consumer ordered event feed for one
// extraction session. Publishing never blocks: if the buffer fills because the
// consumer is too slow, the stream is dropped (channel closed without a
// terminal event) and the session keeps running without it.
type Stream struct {
	SessionID string

	mu      sync.Mutex
	events  chan Event
	closed  bool
	dropped bool
}

func newStream(sessionID string, buffer int) *Stream {
	return &Stream{
		SessionID: sessionID,
		events:    make(chan Event, buffer),
	}
}

// Events is the consumer side of the stream. A channel close after a terminal
// complete/error event is a normal end of stream; a close without one means
// the stream was dropped.
func (s *Stream) Events() <-chan Event {
	return s.events
}

func (s *Stream) Publish(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		if s.dropped {
			return ErrSlowConsumer
		}
		return ErrStreamClosed
	}

	select {
	case s.events <- ev:
		return nil
	default:
		s.dropped = true
		s.closed = true
		close(s.events)
		return ErrSlowConsumer
	}
}

// Close ends the stream after the terminal event has been published.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}

func (s *Stream) Dropped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Registry owns the live streams, keyed by session id. One stream per session,
// at most one attached consumer per stream.
type Registry struct {
	mu       sync.RWMutex
	log      *logrus.Logger
	buffer   int
	streams  map[string]*Stream
	attached map[string]bool
}

const defaultBuffer = 256

func NewRegistry(log *logrus.Logger) *Registry {
	return &Registry{
		log:      log,
		buffer:   defaultBuffer,
		streams:  make(map[string]*Stream),
		attached: make(map[string]bool),
	}
}

// Create registers a fresh stream for a session. The orchestrator calls this
// before emitting any event, so a consumer attaching right after session start
// sees the stream from its first event.
func (r *Registry) Create(sessionID string) *Stream {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := newStream(sessionID, r.buffer)
	r.streams[sessionID] = s
	r.attached[sessionID] = false
	return s
}

// Attach claims the stream for a consumer. Point-to-point: a second consumer
// is rejected while the first one holds the stream.
func (r *Registry) Attach(sessionID string) (*Stream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.streams[sessionID]
	if !ok {
		return nil, ErrStreamNotFound
	}
	if r.attached[sessionID] {
		return nil, ErrStreamBusy
	}
	r.attached[sessionID] = true
	return s, nil
}

// Detach releases a consumer's claim without removing the stream.
func (r *Registry) Detach(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.streams[sessionID]; ok {
		r.attached[sessionID] = false
	}
}

// Remove drops the stream after the session reached a terminal state and the
// stream has been closed.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.streams, sessionID)
	delete(r.attached, sessionID)
}
