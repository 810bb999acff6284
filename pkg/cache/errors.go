package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when a remote resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork marks transport failures, timeouts and 5xx/429 responses.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error that may succeed on a later attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a [RetryableError]. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err wraps a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryPolicy bounds [Retry].
type RetryPolicy struct {
	Attempts int           // total attempts, at least 1
	Delay    time.Duration // first backoff, doubled after each failure
}

// DefaultRetryPolicy makes three attempts starting with a one second delay.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: time.Second}

// Retry calls fn until it succeeds, returns an error that is not retryable,
// or the attempts are used up. Waiting honors ctx.
func Retry(ctx context.Context, p RetryPolicy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
