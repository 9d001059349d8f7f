package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_WaitPerHost(t *testing.T) {
	limiter := NewLimiter(100, 5)
	ctx := context.Background()

	// Independent hosts draw from independent buckets
	for _, u := range []string{"https://a.example/pricing", "https://b.example/pricing"} {
		if err := limiter.Wait(ctx, u); err != nil {
			t.Fatalf("Wait(%q): %v", u, err)
		}
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("https://slow.example/") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("https://slow.example/") {
		t.Error("second immediate request should be throttled")
	}
	if !limiter.Allow("https://other.example/") {
		t.Error("a different host has its own bucket")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(100, 10)
	limiter.SetHostRate("slow.example", 0.1, 1)

	if !limiter.Allow("https://slow.example/") {
		t.Fatal("burst of one should admit the first request")
	}
	if limiter.Allow("https://slow.example/") {
		t.Error("overridden host should throttle immediately")
	}
	if !limiter.Allow("https://fast.example/") {
		t.Error("other hosts keep the default rate")
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 5)

	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "https://a.example/", 30*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("delay not honored, elapsed %v", elapsed)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// Drain the single token, then the next wait must fail on the deadline
	_ = limiter.Allow("https://a.example/")
	if err := limiter.Wait(ctx, "https://a.example/"); err == nil {
		t.Error("expected a context error once the bucket is empty")
	}
}

func TestLimiter_BadURL(t *testing.T) {
	limiter := NewLimiter(1, 1)
	if err := limiter.Wait(context.Background(), "http://bad url\x7f"); err == nil {
		t.Error("expected an error for an unparseable URL")
	}
	if limiter.Allow("http://bad url\x7f") {
		t.Error("unparseable URL should not be allowed")
	}
}
