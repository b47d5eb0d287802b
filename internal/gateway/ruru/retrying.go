package ruru

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"ruru-backoffice/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig bounds the attempts and backoff of RetryingDoer.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingDoer retries idempotent reads on transport errors and on
// 429/502/503/504. Other methods go through exactly once.
type RetryingDoer struct {
	next    Doer
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingDoer returns nil when next is nil.
func NewRetryingDoer(next Doer, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingDoer {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingDoer{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Do sends req, retrying GET and HEAD requests on transient failures.
func (d *RetryingDoer) Do(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return d.next.Do(req)
	}

	ctx := req.Context()
	var (
		resp *http.Response
		err  error
	)
	// attempt loop
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		resp, err = d.next.Do(req)
		if !isRetryable(resp, err) {
			return resp, err
		}
		if ctx.Err() != nil || attempt == d.cfg.MaxAttempts {
			break
		}
		status := 0
		if resp != nil {
			status = resp.StatusCode
			drain(resp)
		}

		delay := backoff(d.cfg.BaseDelay, d.cfg.MaxDelay, attempt)
		if d.retries != nil {
			d.retries.Inc()
		}
		d.logger.Warn("ruru api retry",
			logx.String("method", req.Method),
			logx.String("path", req.URL.Path),
			logx.Int("attempt", attempt),
			logx.Int("status", status),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			if resp != nil {
				// body already drained; report the context error
				return nil, ctx.Err()
			}
			break
		}
	}
	return resp, err
}

// isRetryable reports whether a failed attempt may be repeated.
func isRetryable(resp *http.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if resp == nil {
		return false
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
}

// backoff returns the capped exponential delay before attempt.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
