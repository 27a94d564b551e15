package llm

import (
	"context"
	"time"

	"github.com/kiranalabs/kirana/pkg/resilience"
)

// CircuitBreakerAdapter wraps an Adapter with rate-limit circuit breaking.
type CircuitBreakerAdapter struct {
	inner   Adapter
	breaker *resilience.CircuitBreaker
}

func NewCircuitBreakerAdapter(inner Adapter, breaker *resilience.CircuitBreaker) *CircuitBreakerAdapter {
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(3, 30*time.Second)
	}
	return &CircuitBreakerAdapter{inner: inner, breaker: breaker}
}

func (a *CircuitBreakerAdapter) Name() string { return a.inner.Name() }

func (a *CircuitBreakerAdapter) Generate(ctx context.Context, req Request) (Response, error) {
	if !a.breaker.Allow() {
		return Response{}, resilience.RateLimitError{Provider: a.Name(), Message: "degraded"}
	}
	resp, err := a.inner.Generate(ctx, req)
	if err != nil {
		a.breaker.OnError(err)
		return Response{}, err
	}
	a.breaker.OnSuccess()
	return resp, nil
}

// RetryAdapter wraps an Adapter with backoff retries for transient transport
// failures.
type RetryAdapter struct {
	inner Adapter
	cfg   RetryConfig
}

func NewRetryAdapter(inner Adapter, cfg RetryConfig) *RetryAdapter {
	return &RetryAdapter{inner: inner, cfg: cfg}
}

func (a *RetryAdapter) Name() string { return a.inner.Name() }

func (a *RetryAdapter) Generate(ctx context.Context, req Request) (Response, error) {
	return Retry(ctx, a.cfg, func(ctx context.Context) (Response, error) {
		return a.inner.Generate(ctx, req)
	})
}

var _ Adapter = (*CircuitBreakerAdapter)(nil)
var _ Adapter = (*RetryAdapter)(nil)
