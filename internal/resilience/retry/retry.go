// Package retry runs an operation until it succeeds or the attempt
// budget is spent, with configurable spacing between attempts. The
// delivery pipeline uses it for the per-item summarize-deliver loop;
// harvest and sync use the backoff variant for transient HTTP failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config shapes the attempt loop.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration

	// Multiplier grows the delay after each failed attempt; 1.0 keeps
	// the spacing fixed.
	Multiplier float64

	// JitterFraction (0.0 to 1.0) randomizes each delay upward to keep
	// parallel clients from retrying in lockstep.
	JitterFraction float64

	// RetryAll treats every error as retryable. Use this where failure
	// classification lives in the caller, not in IsRetryable.
	RetryAll bool
}

// DefaultConfig is tuned for transient HTTP failures: three attempts,
// exponential backoff from 1s capped at 30s, 10% jitter.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// DeliveryConfig returns configuration for the per-item summarize-deliver
// loop. Fixed spacing between attempts, no jitter, and every failure is
// retried because the caller decides what counts as failure (a summary
// below the quality floor is not a network error).
func DeliveryConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   30 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     1.0,
		JitterFraction: 0,
		RetryAll:       true,
	}
}

// next computes the delay following cur, applying the multiplier, cap,
// and jitter.
func (c Config) next(cur time.Duration) time.Duration {
	d := time.Duration(float64(cur) * c.Multiplier)
	if d > c.MaxDelay {
		d = c.MaxDelay
	}
	return addJitter(d, c.JitterFraction)
}

// WithBackoff runs fn until it returns nil, a non-retryable error, or
// MaxAttempts is exhausted. Waiting between attempts respects ctx.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !cfg.RetryAll && !IsRetryable(lastErr) {
			slog.Warn("non-retryable error, aborting",
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
			return lastErr
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		delay = cfg.next(delay)
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

var retryableSyscalls = []error{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ETIMEDOUT,
	syscall.ENETUNREACH,
}

// IsRetryable reports whether err looks transient: network timeouts,
// connection-level syscall failures, and HTTP 5xx/429/408 responses.
// Context cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	for _, sysErr := range retryableSyscalls {
		if errors.Is(err, sysErr) {
			return true
		}
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode >= 500 && httpErr.StatusCode < 600:
			return true
		case httpErr.StatusCode == http.StatusTooManyRequests:
			return true
		case httpErr.StatusCode == http.StatusRequestTimeout:
			return true
		}
	}

	return false
}

// HTTPError carries an HTTP status code so IsRetryable can classify it.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func addJitter(duration time.Duration, jitterFraction float64) time.Duration {
	if jitterFraction <= 0 {
		return duration
	}
	if jitterFraction > 1.0 {
		jitterFraction = 1.0
	}
	// #nosec G404 -- backoff jitter does not need crypto randomness
	jitter := time.Duration(rand.Float64() * float64(duration) * jitterFraction)
	return duration + jitter
}
