package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KasumiMercury/primind-tasktracker/internal/config"
	"github.com/KasumiMercury/primind-tasktracker/internal/observability/logging"
	"github.com/KasumiMercury/primind-tasktracker/internal/task"
	domaintask "github.com/KasumiMercury/primind-tasktracker/internal/task/domain/task"
)

var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.Init(logging.Config{
		ServiceInfo:   logging.ServiceInfo{Name: cfg.ServiceName, Version: Version},
		Environment:   cfg.Environment,
		Level:         cfg.LogLevel,
		DefaultModule: logging.Module("tasktracker"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("tasktracker failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, err := newRepositories(ctx, cfg.Persistence, logger)
	if err != nil {
		return err
	}

	m, err := task.Open(ctx, repos)
	if err != nil {
		_ = repos.Close()

		return err
	}

	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("failed to close repositories", slog.String("error", err.Error()))
		}
	}()

	s := m.Store()

	attrs := []any{
		slog.String("backend", string(cfg.Persistence.Backend)),
		slog.Int("total", s.Len()),
		slog.Int("open", len(s.FilterByCompletion(false))),
		slog.Int("overdue", len(s.Overdue())),
	}

	for _, p := range domaintask.Priorities() {
		attrs = append(attrs, slog.Int(string(p), len(s.FilterByPriority(p))))
	}

	logger.Info("task store summary", attrs...)

	return m.Flush(ctx)
}
