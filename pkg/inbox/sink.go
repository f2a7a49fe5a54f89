package inbox

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when an inquiry id is unknown to a store.
var ErrNotFound = errors.New("inbox: inquiry not found")

// ErrClosed is returned by sinks that have been closed.
var ErrClosed = errors.New("inbox: sink closed")

// Sink receives prepared inquiries.
// Implementations must be safe for concurrent use.
type Sink interface {
	Deliver(ctx context.Context, inq *Inquiry) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, inq *Inquiry) error

// Deliver implements Sink.
func (f SinkFunc) Deliver(ctx context.Context, inq *Inquiry) error {
	return f(ctx, inq)
}

// Lister is implemented by sinks that can read back what they stored.
// Results are ordered oldest first.
type Lister interface {
	List(ctx context.Context) ([]*Inquiry, error)
}

// PermanentError marks a delivery failure that retrying cannot fix.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("permanent delivery failure: %v", e.Err)
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent wraps err so Retrying gives up on it immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err was wrapped with Permanent.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

func validate(inq *Inquiry) error {
	if inq == nil {
		return Permanent(errors.New("inbox: nil inquiry"))
	}
	if inq.ID == "" {
		return Permanent(errors.New("inbox: inquiry has no id"))
	}
	return nil
}
