package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with capped exponential backoff.
type RetryProvider struct {
	inner  Provider
	config RetryConfig

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg, sleep: sleepCtx}
}

type retryDecision int

const (
	giveUp retryDecision = iota
	retryOnce
	retryAlways
)

// classify decides whether err is worth another attempt. Schema failures
// are retried once since a second sample is often valid; truncation and
// rejected requests would fail the same way again.
func classify(err error) retryDecision {
	var (
		truncated *ErrMaxTokensExceeded
		rejected  *ErrRequestRejected
		invalid   *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return giveUp
	case errors.As(err, &truncated), errors.As(err, &rejected):
		return giveUp
	case errors.As(err, &invalid):
		return retryOnce
	}
	return retryAlways
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err         error
		invalidSeen bool
	)
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		if attempt > 0 {
			if serr := r.sleep(ctx, r.wait(attempt-1, err)); serr != nil {
				return nil, serr
			}
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case giveUp:
			return nil, err
		case retryOnce:
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// wait is the pause before retry number attempt+1. A vendor RetryAfter
// wins over the computed backoff but is still capped at MaxWait.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return min(rl.RetryAfter, r.config.MaxWait)
	}

	d := float64(r.config.InitialWait)
	for range attempt {
		d *= r.config.Multiplier
	}
	if ceiling := float64(r.config.MaxWait); d > ceiling {
		d = ceiling
	}
	// Equal jitter: half fixed, half random.
	half := d / 2
	return time.Duration(half + rand.Float64()*half)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
