package assistant

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a model response that failed the partial-update schema.
	ErrValidation = errors.New("assistant response failed validation")
	// ErrTransport marks a model or network failure.
	ErrTransport = errors.New("assistant unavailable")
	// ErrBusy is returned while a session is still awaiting a response.
	ErrBusy = errors.New("assistant request already in progress")
	// ErrEmptyInstruction rejects a blank user instruction before any request is made.
	ErrEmptyInstruction = errors.New("instruction is empty")
	// ErrMissingAPIKey means no generative model credentials were configured.
	ErrMissingAPIKey = errors.New("API key is missing")
)

// Failure is the typed error of a failed merge attempt. The document is never mutated
// when a Failure is returned.
type Failure struct {
	Kind error // ErrValidation or ErrTransport
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Kind.Error(), f.Err)
}

func (f *Failure) Unwrap() []error {
	return []error{f.Kind, f.Err}
}

func validationFailure(err error) error {
	return &Failure{Kind: ErrValidation, Err: err}
}

func transportFailure(err error) error {
	return &Failure{Kind: ErrTransport, Err: err}
}
