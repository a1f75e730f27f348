package app

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_SerializesSingleSlot(t *testing.T) {
	l := NewLimiter(1)

	ctx := context.Background()
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !l.Busy() {
		t.Fatalf("expected limiter to be busy")
	}

	acquired := make(chan struct{})
	go func() {
		_ = l.Acquire(ctx)
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatalf("second acquire should block")
	case <-time.After(50 * time.Millisecond):
	}

	l.Release()
	select {
	case <-acquired:
	case <-time.After(250 * time.Millisecond):
		t.Fatalf("second acquire should have proceeded")
	}

	l.Release()
	if l.InFlight() != 0 {
		t.Fatalf("expected 0 in flight, got %d", l.InFlight())
	}
}

func TestLimiter_AcquireHonorsContext(t *testing.T) {
	l := NewLimiter(1)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	if err := l.Acquire(ctx); err == nil {
		t.Fatalf("expected error")
	}
	if time.Since(start) < 40*time.Millisecond {
		t.Fatalf("expected acquire to wait for context timeout")
	}

	l.Release()
}

func TestLimiter_ReleaseWithoutAcquireIsHarmless(t *testing.T) {
	l := NewLimiter(0)
	l.Release()
	if l.InFlight() != 0 {
		t.Fatalf("expected 0 in flight, got %d", l.InFlight())
	}
}
