package assistant

import (
	"context"
	"sync"
	"time"

	"smartinvoice/internal/model"
)

// State is a position in the merge protocol state machine.
type State string

const (
	StateIdle     State = "idle"
	StateAwaiting State = "awaiting_response"
	StateMerged   State = "merged"
	StateFailed   State = "failed"
)

const maxMessages = 50

// maxSessions bounds the registry; the least recently used idle session is evicted first.
const maxSessions = 256

// Replies appended to the session transcript.
const (
	replyMerged = "I've updated the invoice based on your request. Is there anything else you'd like to adjust?"
	replyNoop   = "I couldn't find anything to change for that request."
	replyFailed = "Sorry, I encountered an error processing that request."
)

// Message is one transcript entry.
type Message struct {
	Role string    `json:"role"` // "user" or "assistant"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Session tracks the protocol state of one document:
// Idle -> AwaitingResponse -> (Merged | Failed) -> Idle.
type Session struct {
	mu       sync.Mutex
	state    State
	outcome  State
	messages []Message
	now      func() time.Time

	lastUsed time.Time // guarded by Sessions.mu
}

func newSession(now func() time.Time) *Session {
	return &Session{state: StateIdle, outcome: StateIdle, now: now}
}

// Begin moves Idle to AwaitingResponse. A session already awaiting returns ErrBusy.
func (s *Session) Begin(instruction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAwaiting {
		return ErrBusy
	}
	s.state = StateAwaiting
	s.appendLocked("user", instruction)
	return nil
}

// Resolve records the outcome of the pending request and returns the session to Idle.
func (s *Session) Resolve(res Result, err error) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err != nil:
		s.outcome = StateFailed
		s.appendLocked("assistant", replyFailed)
	case len(res.Fields) == 0:
		s.outcome = StateMerged
		s.appendLocked("assistant", replyNoop)
	default:
		s.outcome = StateMerged
		s.appendLocked("assistant", replyMerged)
	}
	s.state = StateIdle
	return s.outcome
}

// State reports the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Outcome reports how the most recent request ended, or Idle if none completed yet.
func (s *Session) Outcome() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) appendLocked(role, text string) {
	s.messages = append(s.messages, Message{Role: role, Text: text, At: s.now()})
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
}

// Sessions holds one Session per document id.
type Sessions struct {
	mu   sync.Mutex
	m    map[string]*Session
	now  func() time.Time
	core *Assistant
}

// NewSessions returns a registry that runs requests through a.
func NewSessions(a *Assistant) *Sessions {
	return &Sessions{m: make(map[string]*Session), now: time.Now, core: a}
}

// Get returns the session of a document, creating it on first use.
func (r *Sessions) Get(docID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.m[docID]
	if !ok {
		if len(r.m) >= maxSessions {
			r.evictLocked()
		}
		s = newSession(r.now)
		r.m[docID] = s
	}
	s.lastUsed = r.now()
	return s
}

// Drop forgets the session of a document.
func (r *Sessions) Drop(docID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, docID)
}

// Len reports the number of tracked sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}

// evictLocked removes the least recently used session that is not awaiting a response.
func (r *Sessions) evictLocked() {
	var (
		oldestID string
		oldest   *Session
	)
	for id, s := range r.m {
		if s.State() == StateAwaiting {
			continue
		}
		if oldest == nil || s.lastUsed.Before(oldest.lastUsed) {
			oldestID, oldest = id, s
		}
	}
	if oldest != nil {
		delete(r.m, oldestID)
	}
}

// Modify runs one guarded protocol round for doc. Resubmitting while the document's session
// is awaiting a response fails with ErrBusy.
func (r *Sessions) Modify(ctx context.Context, doc model.Invoice, instruction string) (Result, error) {
	if err := validInstruction(instruction); err != nil {
		return Result{}, err
	}
	s := r.Get(doc.ID)
	if err := s.Begin(instruction); err != nil {
		return Result{}, err
	}
	res, err := r.core.Modify(ctx, doc, instruction)
	s.Resolve(res, err)
	return res, err
}
