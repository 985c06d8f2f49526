// Package latency simulates network round trips for the mock data service.
package latency

import (
	"context"
	"math/rand/v2"
	"time"
)

type Delayer interface {
	Delay(ctx context.Context) error
}

// Random waits a uniformly distributed duration in [Min, Max).
type Random struct {
	Min time.Duration
	Max time.Duration
}

func NewRandom(minDelay, maxDelay time.Duration) Random {
	return Random{Min: minDelay, Max: maxDelay}
}

func (r Random) Next() time.Duration {
	span := r.Max - r.Min
	if span <= 0 {
		return r.Min
	}
	return r.Min + time.Duration(rand.Int64N(int64(span)))
}

func (r Random) Delay(ctx context.Context) error {
	d := r.Next()
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// None returns immediately unless ctx is already done.
type None struct{}

func (None) Delay(ctx context.Context) error {
	return ctx.Err()
}
