package service

import (
	"context"
	"log"
	"sync"
	"time"

	"smartinvoice/internal/model"
	"smartinvoice/internal/repository"
	"smartinvoice/internal/websocket"
)

// Autosaver debounces history writes per document. Every Schedule restarts the document's
// quiet period; only the newest version is written when it elapses.
type Autosaver struct {
	store  repository.InvoiceStore
	events EventPublisher
	delay  time.Duration

	// writeMu is held across the pending check and the write, so a cancelled document is
	// never written after Cancel returns. Lock order: writeMu, then mu.
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]*pendingSave
}

type pendingSave struct {
	timer *time.Timer
	doc   model.Invoice
}

func NewAutosaver(store repository.InvoiceStore, events EventPublisher, delay time.Duration) *Autosaver {
	return &Autosaver{
		store:   store,
		events:  publisherOrDiscard(events),
		delay:   delay,
		pending: make(map[string]*pendingSave),
	}
}

// Schedule queues doc for a history upsert after the quiet period.
func (a *Autosaver) Schedule(doc model.Invoice) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.pending[doc.ID]; ok {
		p.timer.Stop()
	}
	p := &pendingSave{doc: doc.Clone()}
	p.timer = time.AfterFunc(a.delay, func() { a.fire(doc.ID, p) })
	a.pending[doc.ID] = p
}

// Cancel drops a pending write, e.g. when the document is deleted.
func (a *Autosaver) Cancel(id string) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pending[id]; ok {
		p.timer.Stop()
		delete(a.pending, id)
	}
}

// Pending reports how many documents are waiting for their quiet period.
func (a *Autosaver) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// Flush writes every pending document now. Used before shutdown and before starting a new
// invoice.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	docs := make([]model.Invoice, 0, len(a.pending))
	for id, p := range a.pending {
		p.timer.Stop()
		docs = append(docs, p.doc)
		delete(a.pending, id)
	}
	a.mu.Unlock()

	var firstErr error
	for _, doc := range docs {
		if err := a.write(ctx, doc); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (a *Autosaver) fire(id string, p *pendingSave) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	if a.pending[id] != p {
		// Superseded, cancelled or flushed.
		a.mu.Unlock()
		return
	}
	delete(a.pending, id)
	a.mu.Unlock()

	if err := a.write(context.Background(), p.doc); err != nil {
		log.Printf("autosave: failed to save invoice %s to history: %v", id, err)
	}
}

// write requires writeMu.
func (a *Autosaver) write(ctx context.Context, doc model.Invoice) error {
	if _, err := a.store.Upsert(ctx, doc); err != nil {
		return err
	}
	a.events.Publish(websocket.Event{Type: websocket.EventHistoryUpdated, Payload: summarize(doc)})
	return nil
}
