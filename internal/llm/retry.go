package llm

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Retry calls fn up to attempts times, waiting backoff*(i+1) between tries.
// It stops early when ctx is done.
func Retry[T any](ctx context.Context, attempts int, backoff time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, errors.Wrapf(ctx.Err(), "after %d attempts, last error: %v", i+1, lastErr)
		case <-time.After(backoff * time.Duration(i+1)):
		}
	}
	return zero, errors.Wrapf(lastErr, "after %d attempts", attempts)
}

// Retrying retries a Generator on any error.
type Retrying struct {
	Next     Generator
	Attempts int
	Backoff  time.Duration
}

func (r Retrying) Generate(ctx context.Context, prompt string) (string, error) {
	return Retry(ctx, r.Attempts, r.Backoff, func() (string, error) {
		return r.Next.Generate(ctx, prompt)
	})
}
