package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"smartinvoice/internal/model"
)

// InvoiceStore keeps the working draft and the saved-invoice history as JSON documents in the
// key-value table. Unreadable documents are treated as absent.
type InvoiceStore interface {
	Draft(ctx context.Context) (*model.Invoice, error)
	SaveDraft(ctx context.Context, inv model.Invoice) error
	History(ctx context.Context) ([]model.Invoice, error)
	Find(ctx context.Context, id string) (*model.Invoice, error)
	Upsert(ctx context.Context, inv model.Invoice) ([]model.Invoice, error)
	Delete(ctx context.Context, id string) ([]model.Invoice, error)
}

type invoiceStore struct {
	kv KeyValueRepository
	tx TransactionManager

	// mu serialises read-modify-write of the history document.
	mu sync.Mutex
}

func NewInvoiceStore(kv KeyValueRepository, tx TransactionManager) InvoiceStore {
	return &invoiceStore{kv: kv, tx: tx}
}

func (s *invoiceStore) Draft(ctx context.Context) (*model.Invoice, error) {
	raw, err := s.kv.Get(ctx, model.KeyDraft)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	// Fields missing from an older stored draft keep their default values.
	defaults := model.NewDefaultInvoice(time.Now())
	inv := defaults
	inv.Items = nil
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		log.Printf("Discarding unreadable draft: %v", err)
		return nil, nil
	}
	if inv.Items == nil {
		inv.Items = defaults.Items
	}
	inv.Normalize()
	return &inv, nil
}

func (s *invoiceStore) SaveDraft(ctx context.Context, inv model.Invoice) error {
	b, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.kv.Put(ctx, model.KeyDraft, string(b)); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *invoiceStore) History(ctx context.Context) ([]model.Invoice, error) {
	raw, err := s.kv.Get(ctx, model.KeyHistory)
	if errors.Is(err, ErrNotFound) {
		return []model.Invoice{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var list []model.Invoice
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Printf("Discarding unreadable invoice history: %v", err)
		return []model.Invoice{}, nil
	}
	if list == nil {
		list = []model.Invoice{}
	}
	for i := range list {
		list[i].Normalize()
	}
	return list, nil
}

func (s *invoiceStore) Find(ctx context.Context, id string) (*model.Invoice, error) {
	list, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, ErrNotFound
}

// Upsert replaces the entry with the same id in place, or prepends a new one.
func (s *invoiceStore) Upsert(ctx context.Context, inv model.Invoice) ([]model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Invoice
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		list, err := s.History(txCtx)
		if err != nil {
			return err
		}
		replaced := false
		for i := range list {
			if list[i].ID == inv.ID {
				list[i] = inv.Clone()
				replaced = true
				break
			}
		}
		if !replaced {
			list = append([]model.Invoice{inv.Clone()}, list...)
		}
		out = list
		return s.writeHistory(txCtx, list)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes exactly the entry with id.
func (s *invoiceStore) Delete(ctx context.Context, id string) ([]model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Invoice
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		list, err := s.History(txCtx)
		if err != nil {
			return err
		}
		idx := -1
		for i := range list {
			if list[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		out = append(list[:idx:idx], list[idx+1:]...)
		return s.writeHistory(txCtx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *invoiceStore) writeHistory(ctx context.Context, list []model.Invoice) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.kv.Put(ctx, model.KeyHistory, string(b)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}
