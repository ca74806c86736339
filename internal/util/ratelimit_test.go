package util

import (
	"context"
	"testing"
	"time"
)

func TestHostLimiterSeparatesHosts(t *testing.T) {
	l := NewHostLimiter(1, 1)

	// First request per host is within burst.
	if !l.Allow("https://a.example.com/page") {
		t.Error("first request to a.example.com should be allowed")
	}
	if !l.Allow("https://b.example.com/page") {
		t.Error("first request to b.example.com should be allowed")
	}

	// Second immediate request to the same host exceeds the burst.
	if l.Allow("https://a.example.com/other") {
		t.Error("second immediate request to a.example.com should be limited")
	}
}

func TestHostLimiterWaitRespectsContext(t *testing.T) {
	l := NewHostLimiter(0.001, 1)

	// Consume the burst.
	if err := l.Wait(context.Background(), "https://slow.example.com/1"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, "https://slow.example.com/2")
	if err == nil {
		t.Fatal("expected context deadline error while rate limited")
	}
}

func TestHostLimiterBadURL(t *testing.T) {
	l := NewHostLimiter(1, 1)
	if l.Allow("://not-a-url") {
		t.Error("malformed URL should not be allowed")
	}
}
