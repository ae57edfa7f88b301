package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestSessionLifecycle(t *testing.T) {
	s := newSession(time.Now)
	if s.State() != StateIdle {
		t.Fatalf("initial state = %s", s.State())
	}
	if err := s.Begin("add an item"); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateAwaiting {
		t.Fatalf("state = %s, want awaiting", s.State())
	}
	if err := s.Begin("again"); !errors.Is(err, ErrBusy) {
		t.Fatalf("resubmission error = %v, want ErrBusy", err)
	}

	if got := s.Resolve(Result{Fields: []string{"items"}}, nil); got != StateMerged {
		t.Fatalf("outcome = %s", got)
	}
	if s.State() != StateIdle || s.Outcome() != StateMerged {
		t.Fatalf("state=%s outcome=%s", s.State(), s.Outcome())
	}

	if err := s.Begin("break it"); err != nil {
		t.Fatal(err)
	}
	if got := s.Resolve(Result{}, errors.New("boom")); got != StateFailed {
		t.Fatalf("outcome = %s", got)
	}

	msgs := s.Messages()
	if len(msgs) != 4 || msgs[0].Role != "user" || msgs[1].Text != replyMerged || msgs[3].Text != replyFailed {
		t.Fatalf("messages = %+v", msgs)
	}
}

func TestSessionTranscriptIsCapped(t *testing.T) {
	s := newSession(time.Now)
	for i := 0; i < maxMessages; i++ {
		_ = s.Begin("x")
		s.Resolve(Result{}, nil)
	}
	if n := len(s.Messages()); n != maxMessages {
		t.Fatalf("transcript length = %d, want %d", n, maxMessages)
	}
}

func TestSessionsGuardResubmission(t *testing.T) {
	release := make(chan struct{})
	gen := &fakeGenerator{text: `{"notes":"done"}`, block: release}
	r := NewSessions(New(gen))
	doc := sampleDoc()

	done := make(chan error, 1)
	go func() {
		_, err := r.Modify(context.Background(), doc, "first")
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for r.Get(doc.ID).State() != StateAwaiting {
		if time.Now().After(deadline) {
			t.Fatal("session never entered awaiting state")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := r.Modify(context.Background(), doc, "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("second request error = %v, want ErrBusy", err)
	}

	other := sampleDoc()
	gen.mu.Lock()
	gen.block = nil
	gen.mu.Unlock()
	if _, err := r.Modify(context.Background(), other, "independent"); err != nil {
		t.Fatalf("other document should not be blocked: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first request error = %v", err)
	}
	if r.Get(doc.ID).State() != StateIdle || r.Get(doc.ID).Outcome() != StateMerged {
		t.Fatal("session did not settle after the response")
	}
}

func TestSessionsRegistryIsBounded(t *testing.T) {
	r := NewSessions(New(&fakeGenerator{text: `{}`}))
	tick := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	busy := r.Get("busy")
	if err := busy.Begin("pending"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < maxSessions+10; i++ {
		r.Get(fmt.Sprintf("doc-%d", i))
	}
	if n := r.Len(); n != maxSessions {
		t.Fatalf("registry holds %d sessions, want %d", n, maxSessions)
	}
	if r.Get("busy") != busy {
		t.Fatal("a session awaiting a response must not be evicted")
	}

	r.Drop("busy")
	if r.Get("busy") == busy {
		t.Fatal("Drop must forget the session")
	}
}
