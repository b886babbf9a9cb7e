package generator

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

type retrier struct {
	next Provider
	cfg  RetryConfig
}

// WithRetry wraps a Provider so transient failures are retried with
// exponential backoff and jitter. Truncated responses and context
// errors fail immediately; a response that fails schema validation
// gets exactly one more try.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{next: p, cfg: cfg}
}

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := r.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	invalidSeen := false
	for attempt := 0; ; attempt++ {
		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt == attempts-1 || !retryable(err, &invalidSeen) {
			return nil, err
		}

		if wait := r.delay(attempt, err); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
}

func (r *retrier) ModelID() string {
	return r.next.ModelID()
}

// retryable decides whether another attempt can help. invalidSeen
// tracks the single retry budget for schema validation failures.
func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// A truncated response will truncate again at the same MaxTokens.
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
		return true
	}

	// Rate limits, outages, and plain network errors are transient.
	return true
}

func (r *retrier) delay(attempt int, err error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))

	// Spread retries out with up to 20% jitter either way.
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	if wait < 0 {
		return 0
	}
	return time.Duration(wait)
}
