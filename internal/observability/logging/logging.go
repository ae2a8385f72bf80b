package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Module names the component a log record comes from.
type Module string

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Config struct {
	ServiceInfo   ServiceInfo
	Environment   Environment
	Level         slog.Level
	DefaultModule Module
	// Output defaults to os.Stderr.
	Output io.Writer
}

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to slog levels.
// An empty string means INFO.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}

// NewLogger builds a JSON logger in production and a text logger otherwise,
// tagged with the service identity.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Environment == EnvProd {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	attrs := []any{
		slog.Group("service",
			slog.String("name", cfg.ServiceInfo.Name),
			slog.String("version", cfg.ServiceInfo.Version),
		),
		slog.String("env", string(cfg.Environment)),
	}

	if cfg.ServiceInfo.Revision != "" {
		attrs = append(attrs, slog.String("revision", cfg.ServiceInfo.Revision))
	}

	if cfg.DefaultModule != "" {
		attrs = append(attrs, slog.String("module", string(cfg.DefaultModule)))
	}

	return slog.New(handler).With(attrs...)
}

// Init installs the logger built from cfg as the slog default.
func Init(cfg Config) *slog.Logger {
	logger := NewLogger(cfg)
	slog.SetDefault(logger)

	return logger
}

// For returns the default logger scoped to module.
func For(module Module) *slog.Logger {
	return slog.Default().With(slog.String("module", string(module)))
}
