package resilience

import (
	"context"
	"time"
)

// RetryPolicy defines retry behavior for transient failures. IsRetryable,
// when set, limits retries to errors it accepts; nil retries everything.
type RetryPolicy struct {
	MaxRetries  int
	Backoff     time.Duration
	IsRetryable func(error) bool
}

func NewRetryPolicy(maxRetries int, backoff time.Duration) RetryPolicy {
	if maxRetries <= 0 {
		maxRetries = 2
	}
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	return RetryPolicy{MaxRetries: maxRetries, Backoff: backoff}
}

// Do runs fn until it succeeds, the retry budget is spent, or ctx is done.
// The last attempt's error is returned; cancellation during backoff returns
// it without another attempt.
func (r RetryPolicy) Do(ctx context.Context, fn func() error) error {
	var err error
	for i := 0; ; i++ {
		err = fn()
		if err == nil || i >= r.MaxRetries {
			return err
		}
		if r.IsRetryable != nil && !r.IsRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(r.Backoff):
		}
	}
}
