// Package retry repeats an operation with exponential backoff.
package retry

import (
	"context"
	"log/slog"
	"time"
)

type Config struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:     5,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     3 * time.Second,
		Multiplier:      2.0,
	}
}

// Do runs op until it succeeds, returns an error retryable rejects, or the
// attempts run out. A nil retryable treats every error as retryable.
func Do(ctx context.Context, cfg Config, logger *slog.Logger, name string, op func(context.Context) error, retryable func(error) bool) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	if logger == nil {
		logger = slog.Default()
	}

	var lastErr error

	interval := cfg.InitialInterval

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		lastErr = err

		if retryable != nil && !retryable(err) {
			logger.Debug("non-retryable error encountered, stopping retry",
				slog.String("operation", name),
				slog.String("error", err.Error()),
				slog.Int("attempt", attempt))

			return err
		}

		if attempt == cfg.MaxAttempts {
			logger.Warn("max retry attempts reached",
				slog.String("operation", name),
				slog.String("error", err.Error()),
				slog.Int("attempts", attempt))

			break
		}

		logger.Debug("retrying",
			slog.String("operation", name),
			slog.Int("attempt", attempt),
			slog.Duration("next_interval", interval),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		interval = time.Duration(float64(interval) * cfg.Multiplier)
		if cfg.MaxInterval > 0 && interval > cfg.MaxInterval {
			interval = cfg.MaxInterval
		}
	}

	return lastErr
}
