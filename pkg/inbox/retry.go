package inbox

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

type retrying struct {
	next       Sink
	maxRetries uint64
	base       time.Duration
}

// Retrying wraps next so failed deliveries are retried up to maxRetries
// times with exponential backoff starting at base. Permanent errors and
// context cancellation end the loop immediately.
func Retrying(next Sink, maxRetries uint64, base time.Duration) Sink {
	if maxRetries == 0 {
		return next
	}
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	return &retrying{next: next, maxRetries: maxRetries, base: base}
}

func (r *retrying) Deliver(ctx context.Context, inq *Inquiry) error {
	backoff := retry.WithMaxRetries(r.maxRetries, retry.NewExponential(r.base))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := r.next.Deliver(ctx, inq)
		if err == nil {
			return nil
		}
		if IsPermanent(err) || ctx.Err() != nil {
			return err
		}
		return retry.RetryableError(err)
	})
}

// Unwrap returns the wrapped sink.
func (r *retrying) Unwrap() Sink {
	return r.next
}
