package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSweeperService_SweepPassesCurrentTime(t *testing.T) {
	mock := &mockItemRepo{
		DeleteExpiredFn: func(ctx context.Context, now time.Time) (int64, error) {
			return 2, nil
		},
	}
	s := NewSweeperService(mock, nil)

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)
	s.sweep(context.Background(), now)

	if len(mock.sweepCalls) != 1 {
		t.Fatalf("expected 1 DeleteExpired call, got %d", len(mock.sweepCalls))
	}
	if !mock.sweepCalls[0].Equal(now) {
		t.Fatalf("expected cutoff %v, got %v", now, mock.sweepCalls[0])
	}
}

func TestSweeperService_SweepSwallowsStoreErrors(t *testing.T) {
	mock := &mockItemRepo{
		DeleteExpiredFn: func(ctx context.Context, now time.Time) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	s := NewSweeperService(mock, nil)

	// must not panic or propagate; the next scheduled run retries
	s.sweep(context.Background(), time.Now().UTC())
	s.sweep(context.Background(), time.Now().UTC())

	if len(mock.sweepCalls) != 2 {
		t.Fatalf("expected 2 DeleteExpired calls, got %d", len(mock.sweepCalls))
	}
}

func TestSweeperService_RunSweepsImmediatelyOnStart(t *testing.T) {
	var calls atomic.Int64
	mock := &mockItemRepo{
		DeleteExpiredFn: func(ctx context.Context, now time.Time) (int64, error) {
			calls.Add(1)
			return 1, nil
		},
	}
	s := NewSweeperService(mock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		// interval far beyond the test's lifetime: only the startup pass
		// can account for any call
		s.Run(ctx, time.Hour)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected a sweep at startup, before the first tick")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}

func TestSweeperService_RunTicksUntilCanceled(t *testing.T) {
	var calls atomic.Int64
	mock := &mockItemRepo{
		DeleteExpiredFn: func(ctx context.Context, now time.Time) (int64, error) {
			calls.Add(1)
			return 0, nil
		},
	}
	s := NewSweeperService(mock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	// wait for at least one tick, then stop
	deadline := time.After(2 * time.Second)
	for calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("sweeper never ticked")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
