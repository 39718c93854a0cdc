// Package retry re-runs an operation that lost a lock race. Only errors
// classified as resource contention are retried; everything else returns
// immediately.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"lab-inventory/internal/domain/apperr"
)

type Policy struct {
	Attempts int
	Base     time.Duration
	Max      time.Duration
}

var Default = Policy{Attempts: 3, Base: 50 * time.Millisecond, Max: time.Second}

// OnContention calls fn until it succeeds, fails with a non-contention error,
// runs out of attempts, or ctx is done.
func OnContention(ctx context.Context, p Policy, fn func() error) error {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	var err error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		if err = fn(); err == nil || !errors.Is(err, apperr.ErrContention) {
			return err
		}
		if attempt == p.Attempts-1 {
			break
		}
		t := time.NewTimer(p.backoff(attempt))
		select {
		case <-ctx.Done():
			t.Stop()
			return errors.Join(err, ctx.Err())
		case <-t.C:
		}
	}
	return err
}

// backoff is exponential with full jitter.
func (p Policy) backoff(attempt int) time.Duration {
	d := p.Base << attempt
	if p.Max > 0 && (d > p.Max || d <= 0) {
		d = p.Max
	}
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(d)) + 1)
}
