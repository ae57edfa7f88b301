// Package assistant turns a free-text instruction into a validated partial update of an
// invoice and merges it with whole-field replacement semantics.
package assistant

import (
	"context"
	"log"
	"strings"
	"time"

	"smartinvoice/internal/model"
)

// Result is the outcome of a successful merge. Fields is empty for a no-op response.
type Result struct {
	Invoice model.Invoice `json:"invoice"`
	Fields  []string      `json:"fields"`
}

// Assistant runs one request/validate/repair/merge cycle per call. Calls are independent;
// concurrent calls on the same document resolve separately and the caller applies them in
// arrival order.
type Assistant struct {
	gen     Generator
	newID   func() string
	timeout time.Duration
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithTimeout bounds each model call.
func WithTimeout(d time.Duration) Option {
	return func(a *Assistant) { a.timeout = d }
}

// WithIDGenerator replaces the line item id source used by the repair pass.
func WithIDGenerator(fn func() string) Option {
	return func(a *Assistant) { a.newID = fn }
}

// New returns an Assistant backed by gen.
func New(gen Generator, opts ...Option) *Assistant {
	a := &Assistant{gen: gen, newID: model.NewItemID}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Modify asks the model to apply instruction to doc. Model and validation failures are
// returned as *Failure and doc is left as it was. Empty or non-JSON responses succeed with
// no applied fields.
func (a *Assistant) Modify(ctx context.Context, doc model.Invoice, instruction string) (Result, error) {
	if err := validInstruction(instruction); err != nil {
		return Result{}, err
	}

	prompt, err := BuildPrompt(doc, instruction)
	if err != nil {
		return Result{}, err
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.gen.Generate(ctx, Request{Prompt: prompt, Schema: Schema()})
	if err != nil {
		log.Printf("assistant: model call failed: %v", err)
		return Result{}, transportFailure(err)
	}

	patch, err := Parse(text)
	if err != nil {
		log.Printf("assistant: rejected response: %v", err)
		return Result{}, err
	}
	Repair(&patch, a.newID)

	return Result{
		Invoice: Apply(doc, patch),
		Fields:  patch.Fields(),
	}, nil
}

func validInstruction(instruction string) error {
	if strings.TrimSpace(instruction) == "" {
		return ErrEmptyInstruction
	}
	return nil
}
