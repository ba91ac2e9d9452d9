package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRetriesExhausted is joined with the last error once MaxRetries is spent.
var ErrRetriesExhausted = errors.New("max retries reached")

// Backoff waits InitialDelay*Multiplier^n before retry n, at most MaxRetries
// times. A nil IsRetryable retries everything.
type Backoff struct {
	MaxRetries   int
	InitialDelay time.Duration
	Multiplier   float64
	IsRetryable  func(error) bool

	// OnRetry runs before each wait. retry counts from 1.
	OnRetry func(retry int, delay time.Duration, err error)
	// Sleep waits d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewBackoff(base time.Duration, maxRetries int) Backoff {
	return Backoff{MaxRetries: maxRetries, InitialDelay: base, Multiplier: 2}
}

// Do calls fn with attempt counting from 0.
func (b Backoff) Do(ctx context.Context, fn func(attempt int) error) error {
	sleep := b.Sleep
	if sleep == nil {
		sleep = SleepContext
	}
	mult := b.Multiplier
	if mult < 1 {
		mult = 1
	}
	delay := b.InitialDelay

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn(attempt)
		if err == nil {
			return nil
		}
		if b.IsRetryable != nil && !b.IsRetryable(err) {
			return err
		}
		if attempt >= b.MaxRetries {
			return fmt.Errorf("%w: %w", ErrRetriesExhausted, err)
		}
		if b.OnRetry != nil {
			b.OnRetry(attempt+1, delay, err)
		}
		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}
		delay = time.Duration(float64(delay) * mult)
	}
}

func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
