package service

import (
	"context"

	"smartinvoice/internal/assistant"
	"smartinvoice/internal/model"
	"smartinvoice/internal/websocket"
)

// --- DTOs ---

type AssistantRequest struct {
	Invoice     model.Invoice `json:"invoice"`
	Instruction string        `json:"instruction" binding:"required"`
}

type AssistantResponse struct {
	Invoice model.Invoice   `json:"invoice"`
	Fields  []string        `json:"fields"`
	Reply   string          `json:"reply"`
	State   assistant.State `json:"state"`
}

// --- Interface ---

type AssistantService interface {
	Modify(ctx context.Context, req AssistantRequest) (AssistantResponse, error)
	Conversation(docID string) []assistant.Message
}

type assistantService struct {
	sessions *assistant.Sessions
	events   EventPublisher
}

func NewAssistantService(sessions *assistant.Sessions, events EventPublisher) AssistantService {
	return &assistantService{sessions: sessions, events: publisherOrDiscard(events)}
}

// --- Implementation ---

// Modify runs one merge round. On failure the returned error is an *assistant.Failure (or
// ErrBusy / ErrEmptyInstruction) and the caller keeps its current document.
func (s *assistantService) Modify(ctx context.Context, req AssistantRequest) (AssistantResponse, error) {
	req.Invoice.Normalize()
	if err := req.Invoice.Validate(); err != nil {
		return AssistantResponse{}, err
	}

	res, err := s.sessions.Modify(ctx, req.Invoice, req.Instruction)
	session := s.sessions.Get(req.Invoice.ID)
	if err != nil {
		return AssistantResponse{}, err
	}

	if len(res.Fields) > 0 {
		s.events.Publish(websocket.Event{
			Type:    websocket.EventAssistantMerged,
			Payload: map[string]any{"id": res.Invoice.ID, "fields": res.Fields},
		})
	}
	return AssistantResponse{
		Invoice: res.Invoice,
		Fields:  nonNil(res.Fields),
		Reply:   lastReply(session.Messages()),
		State:   session.Outcome(),
	}, nil
}

func (s *assistantService) Conversation(docID string) []assistant.Message {
	return s.sessions.Get(docID).Messages()
}

func lastReply(msgs []assistant.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "assistant" {
			return msgs[i].Text
		}
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
