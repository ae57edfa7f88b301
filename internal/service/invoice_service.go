package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartinvoice/internal/model"
	"smartinvoice/internal/repository"
	"smartinvoice/internal/totals"
	"smartinvoice/internal/websocket"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

// HistoryFilter selects a page of saved invoices. Query matches invoice number or client
// name, case-insensitively.
type HistoryFilter struct {
	Query string
	Page  int
	Limit int
}

// HistoryEntry is the summary row shown in the history list.
type HistoryEntry struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          string          `json:"date"`
	ClientName    string          `json:"clientName"`
	Currency      string          `json:"currency"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"itemCount"`
}

type HistoryPage struct {
	Items []HistoryEntry `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// --- Interface ---

type InvoiceService interface {
	CurrentDraft(ctx context.Context) (model.Invoice, error)
	SaveDraft(ctx context.Context, inv model.Invoice) (model.Invoice, error)
	NewInvoice(ctx context.Context) (model.Invoice, error)
	ListHistory(ctx context.Context, filter HistoryFilter) (HistoryPage, error)
	GetInvoice(ctx context.Context, id string) (model.Invoice, error)
	LoadInvoice(ctx context.Context, id string) (model.Invoice, error)
	SaveInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
}

type invoiceService struct {
	store    repository.InvoiceStore
	seqRepo  repository.SequenceRepository
	autosave *Autosaver
	events   EventPublisher
	sessions SessionDropper
	now      func() time.Time
}

// SessionDropper forgets per-document assistant state.
type SessionDropper interface {
	Drop(docID string)
}

type InvoiceOption func(*invoiceService)

// WithSessionCleanup drops a document's assistant session when the invoice is deleted.
func WithSessionCleanup(sessions SessionDropper) InvoiceOption {
	return func(s *invoiceService) { s.sessions = sessions }
}

func NewInvoiceService(
	store repository.InvoiceStore,
	seqRepo repository.SequenceRepository,
	autosave *Autosaver,
	events EventPublisher,
	opts ...InvoiceOption,
) InvoiceService {
	s := &invoiceService{
		store:    store,
		seqRepo:  seqRepo,
		autosave: autosave,
		events:   publisherOrDiscard(events),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- Implementation ---

func (s *invoiceService) CurrentDraft(ctx context.Context) (model.Invoice, error) {
	draft, err := s.store.Draft(ctx)
	if err != nil {
		return model.Invoice{}, err
	}
	if draft != nil {
		return *draft, nil
	}

	number, err := s.nextNumber(ctx)
	if err != nil {
		return model.Invoice{}, err
	}
	inv := model.NewDefaultInvoice(s.now())
	inv.InvoiceNumber = number
	if err := s.store.SaveDraft(ctx, inv); err != nil {
		return model.Invoice{}, err
	}
	return inv, nil
}

func (s *invoiceService) SaveDraft(ctx context.Context, inv model.Invoice) (model.Invoice, error) {
	inv.Normalize()
	if err := inv.Validate(); err != nil {
		return model.Invoice{}, err
	}
	if err := s.store.SaveDraft(ctx, inv); err != nil {
		return model.Invoice{}, err
	}
	s.events.Publish(websocket.Event{Type: websocket.EventDraftSaved, Payload: summarize(inv)})
	s.autosave.Schedule(inv)
	return inv, nil
}

// NewInvoice starts the next document from the current draft's seller profile.
func (s *invoiceService) NewInvoice(ctx context.Context) (model.Invoice, error) {
	if err := s.autosave.Flush(ctx); err != nil {
		return model.Invoice{}, fmt.Errorf("failed to save pending invoice: %w", err)
	}
	current, err := s.CurrentDraft(ctx)
	if err != nil {
		return model.Invoice{}, err
	}
	number, err := s.nextNumber(ctx)
	if err != nil {
		return model.Invoice{}, err
	}

	next := current.NextFrom(number, s.now())
	if err := s.store.SaveDraft(ctx, next); err != nil {
		return model.Invoice{}, err
	}
	s.events.Publish(websocket.Event{Type: websocket.EventDraftSaved, Payload: summarize(next)})
	return next, nil
}

func (s *invoiceService) ListHistory(ctx context.Context, filter HistoryFilter) (HistoryPage, error) {
	list, err := s.store.History(ctx)
	if err != nil {
		return HistoryPage{}, err
	}

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	matched := make([]model.Invoice, 0, len(list))
	for _, inv := range list {
		if q == "" ||
			strings.Contains(strings.ToLower(inv.InvoiceNumber), q) ||
			strings.Contains(strings.ToLower(inv.ClientName), q) {
			matched = append(matched, inv)
		}
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = max(len(matched), 1)
	}
	// Compare page counts before multiplying so a huge page cannot overflow the offset.
	start := len(matched)
	if page-1 < (len(matched)+limit-1)/limit {
		start = (page - 1) * limit
	}
	end := min(start+limit, len(matched))

	items := make([]HistoryEntry, 0, end-start)
	for _, inv := range matched[start:end] {
		items = append(items, summarize(inv))
	}
	return HistoryPage{Items: items, Total: int64(len(matched)), Page: page, Limit: limit}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (model.Invoice, error) {
	inv, err := s.store.Find(ctx, id)
	if err != nil {
		return model.Invoice{}, err
	}
	return *inv, nil
}

// LoadInvoice makes a saved invoice the working draft.
func (s *invoiceService) LoadInvoice(ctx context.Context, id string) (model.Invoice, error) {
	if err := s.autosave.Flush(ctx); err != nil {
		return model.Invoice{}, fmt.Errorf("failed to save pending invoice: %w", err)
	}
	inv, err := s.GetInvoice(ctx, id)
	if err != nil {
		return model.Invoice{}, err
	}
	if err := s.store.SaveDraft(ctx, inv); err != nil {
		return model.Invoice{}, err
	}
	s.events.Publish(websocket.Event{Type: websocket.EventDraftSaved, Payload: summarize(inv)})
	return inv, nil
}

// SaveInvoice upserts into history immediately, bypassing the autosave delay.
func (s *invoiceService) SaveInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, error) {
	inv.Normalize()
	if err := inv.Validate(); err != nil {
		return model.Invoice{}, err
	}
	s.autosave.Cancel(inv.ID)
	if _, err := s.store.Upsert(ctx, inv); err != nil {
		return model.Invoice{}, err
	}
	s.events.Publish(websocket.Event{Type: websocket.EventHistoryUpdated, Payload: summarize(inv)})
	return inv, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	s.autosave.Cancel(id)
	if _, err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", id, err)
	}
	if s.sessions != nil {
		s.sessions.Drop(id)
	}
	s.events.Publish(websocket.Event{Type: websocket.EventHistoryDeleted, Payload: map[string]string{"id": id}})
	return nil
}

func (s *invoiceService) nextNumber(ctx context.Context) (string, error) {
	seq, err := s.seqRepo.Next(ctx, model.SequenceInvoiceNumber)
	if err != nil {
		return "", fmt.Errorf("failed to generate invoice number: %w", err)
	}
	return model.FormatInvoiceNumber(seq), nil
}

func summarize(inv model.Invoice) HistoryEntry {
	sums := totals.ForInvoice(inv)
	return HistoryEntry{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.Date,
		ClientName:    inv.ClientName,
		Currency:      inv.Currency,
		Subtotal:      sums.Subtotal,
		Total:         sums.Total,
		ItemCount:     len(inv.Items),
	}
}
