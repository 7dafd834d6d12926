package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestGetMemoizesWithinTTL(t *testing.T) {
	sp := defaultSpec(40)
	macro := &stubMacro{spec: sp}
	market := &stubMarket{spec: sp}
	p := newTestProvider(t, macro, market, time.Hour, time.Hour)

	ctx := context.Background()
	first, stale, err := p.Get(ctx)
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	if stale {
		t.Fatal("fresh snapshot reported stale")
	}
	second, _, err := p.Get(ctx)
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if first != second {
		t.Error("expected the memoized snapshot on the second Get")
	}
	if got := macro.calls.Load(); got != 6 {
		t.Errorf("macro fetched %d times, want 6 (one pass)", got)
	}
	if got := market.calls.Load(); got != 3 {
		t.Errorf("market fetched %d times, want 3 (one pass)", got)
	}
}

func TestGetSingleFlight(t *testing.T) {
	sp := defaultSpec(40)
	macro := &stubMacro{spec: sp, delay: 20 * time.Millisecond}
	market := &stubMarket{spec: sp}
	p := newTestProvider(t, macro, market, time.Hour, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := p.Get(context.Background()); err != nil {
				t.Errorf("Get: %v", err)
			}
		}()
	}
	wg.Wait()

	// One rebuild pass across all callers: six macro series, three symbols.
	if got := macro.calls.Load(); got != 6 {
		t.Errorf("macro fetched %d times, want 6", got)
	}
	if got := market.calls.Load(); got != 3 {
		t.Errorf("market fetched %d times, want 3", got)
	}
}

func TestFetchFailuresAreUniform(t *testing.T) {
	sp := defaultSpec(40)
	boom := errors.New("upstream down")

	t.Run("macro", func(t *testing.T) {
		p := newTestProvider(t, &stubMacro{spec: sp, err: boom}, &stubMarket{spec: sp}, time.Hour, time.Hour)
		_, _, err := p.Get(context.Background())
		if !errors.Is(err, ErrFetch) {
			t.Fatalf("expected ErrFetch, got %v", err)
		}
		if !errors.Is(err, boom) {
			t.Fatalf("expected cause preserved, got %v", err)
		}
	})

	t.Run("market", func(t *testing.T) {
		p := newTestProvider(t, &stubMacro{spec: sp}, &stubMarket{spec: sp, err: boom}, time.Hour, time.Hour)
		_, _, err := p.Get(context.Background())
		if !errors.Is(err, ErrFetch) {
			t.Fatalf("expected ErrFetch, got %v", err)
		}
	})
}

func TestStaleGraceServing(t *testing.T) {
	sp := defaultSpec(40)
	macro := &stubMacro{spec: sp}
	market := &stubMarket{spec: sp}
	p := newTestProvider(t, macro, market, 10*time.Millisecond, time.Hour)

	ctx := context.Background()
	first, _, err := p.Get(ctx)
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}

	time.Sleep(25 * time.Millisecond)
	macro.err = errors.New("upstream down")

	snap, stale, err := p.Get(ctx)
	if err != nil {
		t.Fatalf("expected stale serving, got error %v", err)
	}
	if !stale {
		t.Fatal("expected stale=true after failed refresh")
	}
	if snap != first {
		t.Error("expected the prior snapshot served under grace")
	}
}

func TestGraceExpired(t *testing.T) {
	sp := defaultSpec(40)
	macro := &stubMacro{spec: sp}
	p := newTestProvider(t, macro, &stubMarket{spec: sp}, 5*time.Millisecond, 5*time.Millisecond)

	ctx := context.Background()
	if _, _, err := p.Get(ctx); err != nil {
		t.Fatalf("first Get: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	macro.err = errors.New("upstream down")

	if _, _, err := p.Get(ctx); !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch once grace lapsed, got %v", err)
	}
}

func TestRefreshForcesRebuild(t *testing.T) {
	sp := defaultSpec(40)
	macro := &stubMacro{spec: sp}
	market := &stubMarket{spec: sp}
	p := newTestProvider(t, macro, market, time.Hour, time.Hour)

	ctx := context.Background()
	first, _, err := p.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := p.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if first == second {
		t.Error("Refresh returned the memoized snapshot")
	}
	if got := macro.calls.Load(); got != 12 {
		t.Errorf("macro fetched %d times, want 12 (two passes)", got)
	}

	// The forced snapshot replaces the held one wholesale.
	cur, ok := p.Current()
	if !ok || cur != second {
		t.Error("Refresh did not install the new snapshot")
	}
}
