package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowWithinCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("fred", 3, 1) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("fred", 3, 1) {
		t.Fatalf("expected bucket exhausted")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("fred", 1, 0.001) {
		t.Fatalf("first fred request should pass")
	}
	if l.Allow("fred", 1, 0.001) {
		t.Fatalf("fred bucket should be empty")
	}
	if !l.Allow("yahoo", 1, 0.001) {
		t.Fatalf("yahoo bucket must be unaffected")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 0.001) {
		t.Fatalf("first request should pass")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "k", 1, 0.001); err == nil {
		t.Fatalf("expected context deadline error")
	}
}
