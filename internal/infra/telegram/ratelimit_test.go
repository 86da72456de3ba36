package telegram

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	limiter := NewRateLimiter(1, 3)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := limiter.Allow(ctx); err != nil {
			t.Fatalf("burst request %d blocked: %v", i, err)
		}
	}
}

func TestRateLimiter_BlocksBeyondBurst(t *testing.T) {
	limiter := NewRateLimiter(0.1, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Allow(ctx); err != nil {
		t.Fatalf("first request blocked: %v", err)
	}

	// Second token refills in 10 seconds, the context expires first.
	if err := limiter.Allow(ctx); err == nil {
		t.Fatal("expected context deadline while waiting for token")
	}
}

func TestRateLimiter_CanceledContext(t *testing.T) {
	limiter := NewRateLimiter(0.1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_ = limiter.Allow(context.Background())

	if err := limiter.Allow(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
