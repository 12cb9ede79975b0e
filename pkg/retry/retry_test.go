package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"listing-slideshow/pkg/clock"
)

func TestLinear(t *testing.T) {
	backoff := Linear(time.Second)
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 0},
		{2, time.Second},
		{3, 2 * time.Second},
		{4, 3 * time.Second},
	}
	for _, tt := range tests {
		if got := backoff(tt.attempt); got != tt.want {
			t.Errorf("Linear(1s)(%d) = %v; want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	p := Policy{MaxAttempts: 3, Backoff: Linear(time.Second), Clock: fake}

	calls := 0
	err := p.Do(context.Background(), "op", func(ctx context.Context, attempt int) error {
		calls++
		if attempt < 3 {
			return errors.New("boom")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if got := fake.Slept(); got != 3*time.Second {
		t.Errorf("expected 3s of backoff, got %v", got)
	}
}

func TestDoExhaustedWrapsLastError(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	p := Policy{MaxAttempts: 3, Backoff: Linear(time.Second), Clock: fake}
	sentinel := errors.New("last failure")

	calls := 0
	err := p.Do(context.Background(), "op", func(ctx context.Context, attempt int) error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected error wrapping sentinel, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	sleeps := fake.Sleeps()
	if len(sleeps) != 2 || sleeps[0] != time.Second || sleeps[1] != 2*time.Second {
		t.Errorf("expected sleeps [1s 2s], got %v", sleeps)
	}
}

func TestDoStopsOnCancel(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	p := Policy{MaxAttempts: 5, Backoff: Linear(time.Second), Clock: fake}
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := p.Do(ctx, "op", func(ctx context.Context, attempt int) error {
		calls++
		cancel()
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error after cancel")
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", calls)
	}
}
