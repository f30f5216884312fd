// Package retry implements the exponential-backoff retry policy used
// by the price client (C6) and the nutrition resolver's external
// lookups (C5). Grounded on the resilience/retry backoff strategies
// used by the teacher's AI-agent HTTP collaborators.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Condition decides whether an error should be retried.
type Condition func(error) bool

// Policy executes a function with bounded exponential backoff and
// jitter, honoring ctx cancellation between attempts.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
	Jitter      float64
	Condition   Condition
	OnRetry     func(attempt int, err error, delay time.Duration)
}

// NewExponential builds a Policy with the given bounds. maxAttempts
// counts retries beyond the first attempt (maxAttempts=3 means up to
// 4 total calls), matching §4.6's "up to 3 attempts" wording where the
// first try is attempt zero.
func NewExponential(maxAttempts int, base, max time.Duration) *Policy {
	return &Policy{
		MaxAttempts: maxAttempts,
		BaseDelay:   base,
		MaxDelay:    max,
		Multiplier:  2.0,
		Jitter:      0.2,
		Condition:   func(error) bool { return true },
	}
}

func (p *Policy) delay(attempt int) time.Duration {
	d := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt))
	if d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	if p.Jitter > 0 {
		span := d * p.Jitter
		d += (rand.Float64() - 0.5) * 2 * span
		if d < 0 {
			d = float64(p.BaseDelay)
		}
	}
	return time.Duration(d)
}

// Execute runs fn, retrying on errors the Condition accepts, up to
// MaxAttempts extra attempts.
func (p *Policy) Execute(ctx context.Context, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 0; attempt <= p.MaxAttempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt == p.MaxAttempts {
			break
		}
		if p.Condition != nil && !p.Condition(err) {
			break
		}
		d := p.delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, err, d)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	return lastErr
}
