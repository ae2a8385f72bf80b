package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      2,
	}
}

func TestDoSucceedsAfterRetries(t *testing.T) {
	calls := 0

	err := Do(context.Background(), fastConfig(3), nil, "ping", func(context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}

		return nil
	}, nil)
	if err != nil {
		t.Fatalf("Do() unexpected error: %v", err)
	}

	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoReturnsLastErrorWhenAttemptsRunOut(t *testing.T) {
	calls := 0

	err := Do(context.Background(), fastConfig(2), nil, "ping", func(context.Context) error {
		calls++

		return errTransient
	}, nil)
	if !errors.Is(err, errTransient) {
		t.Fatalf("Do() error = %v, want %v", err, errTransient)
	}

	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	errFatal := errors.New("fatal")
	calls := 0

	err := Do(context.Background(), fastConfig(5), nil, "ping", func(context.Context) error {
		calls++

		return errFatal
	}, func(err error) bool { return !errors.Is(err, errFatal) })
	if !errors.Is(err, errFatal) {
		t.Fatalf("Do() error = %v, want %v", err, errFatal)
	}

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastConfig(3)
	cfg.InitialInterval = time.Hour

	err := Do(ctx, cfg, nil, "ping", func(context.Context) error { return errTransient }, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want %v", err, context.Canceled)
	}
}

func TestDoZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0

	_ = Do(context.Background(), Config{}, nil, "ping", func(context.Context) error {
		calls++

		return errTransient
	}, nil)

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
