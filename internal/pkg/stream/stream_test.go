package stream

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewRegistry(log)
}

func TestPublishPreservesOrder(t *testing.T) {
	r := newTestRegistry(t)
	s := r.Create("sess-1")

	events := []Event{
		{Type: EventSessionStarted, Data: SessionStartedData{SessionID: "sess-1", TotalPages: 2}},
		{Type: EventPageStart, Data: PageStartData{PageNumber: 1, CurrentPage: 1, TotalPages: 2}},
		{Type: EventQuestion, Data: QuestionData{QuestionID: "q-1", GlobalIndex: 1}},
		{Type: EventPageComplete, Data: PageCompleteData{PageNumber: 1, TotalSoFar: 1}},
		{Type: EventComplete, Data: CompleteData{TotalQuestions: 1}},
	}
	for _, ev := range events {
		if err := s.Publish(ev); err != nil {
			t.Fatalf("Publish(%s): %v", ev.Type, err)
		}
	}
	s.Close()

	var got []EventType
	for ev := range s.Events() {
		got = append(got, ev.Type)
	}
	if len(got) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(got))
	}
	for i, ev := range events {
		if got[i] != ev.Type {
			t.Fatalf("event %d: expected %s, got %s", i, ev.Type, got[i])
		}
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	r := newTestRegistry(t)
	s := r.Create("sess-1")

	// Fill the buffer without a consumer.
	var err error
	for i := 0; i <= defaultBuffer; i++ {
		err = s.Publish(Event{Type: EventProgress, Data: ProgressData{Phase: "extracting"}})
		if err != nil {
			break
		}
	}
	if err != ErrSlowConsumer {
		t.Fatalf("expected ErrSlowConsumer, got %v", err)
	}
	if !s.Dropped() {
		t.Fatal("expected stream to be marked dropped")
	}

	// Later publishes keep reporting the drop instead of panicking on a
	// closed channel.
	if err := s.Publish(Event{Type: EventComplete}); err != ErrSlowConsumer {
		t.Fatalf("expected ErrSlowConsumer after drop, got %v", err)
	}

	// The buffered prefix is still readable, then the channel closes.
	n := 0
	for range s.Events() {
		n++
	}
	if n != defaultBuffer {
		t.Fatalf("expected %d buffered events, got %d", defaultBuffer, n)
	}
}

func TestPublishAfterClose(t *testing.T) {
	r := newTestRegistry(t)
	s := r.Create("sess-1")
	s.Close()

	if err := s.Publish(Event{Type: EventProgress}); err != ErrStreamClosed {
		t.Fatalf("expected ErrStreamClosed, got %v", err)
	}
	if s.Dropped() {
		t.Fatal("clean close must not count as dropped")
	}
}

func TestAttachUnknownSession(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Attach("missing"); err != ErrStreamNotFound {
		t.Fatalf("expected ErrStreamNotFound, got %v", err)
	}
}

func TestAttachSingleConsumer(t *testing.T) {
	r := newTestRegistry(t)
	r.Create("sess-1")

	if _, err := r.Attach("sess-1"); err != nil {
		t.Fatalf("first Attach: %v", err)
	}
	if _, err := r.Attach("sess-1"); err != ErrStreamBusy {
		t.Fatalf("expected ErrStreamBusy, got %v", err)
	}

	// Detach frees the slot for a reattach.
	r.Detach("sess-1")
	if _, err := r.Attach("sess-1"); err != nil {
		t.Fatalf("Attach after Detach: %v", err)
	}
}

func TestRemoveForgetsSession(t *testing.T) {
	r := newTestRegistry(t)
	r.Create("sess-1")
	r.Remove("sess-1")

	if _, err := r.Attach("sess-1"); err != ErrStreamNotFound {
		t.Fatalf("expected ErrStreamNotFound after Remove, got %v", err)
	}
}
