package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/KasumiMercury/primind-tasktracker/internal/config/persistence"
	"github.com/KasumiMercury/primind-tasktracker/internal/observability/logging"
)

const (
	serviceNameEnv = "SERVICE_NAME"
	envEnv         = "ENV"
	logLevelEnv    = "LOG_LEVEL"

	defaultServiceName = "tasktracker"
)

type Config struct {
	ServiceName string
	Environment logging.Environment
	LogLevel    slog.Level
	Persistence *persistence.Config
}

func Load() (*Config, error) {
	level, err := logging.ParseLevel(os.Getenv(logLevelEnv))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoggingLoad, err)
	}

	persistenceCfg, err := persistence.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceLoad, err)
	}

	env := logging.EnvDev
	if e := strings.TrimSpace(os.Getenv(envEnv)); e != "" {
		env = logging.Environment(strings.ToLower(e))
	}

	serviceName := strings.TrimSpace(os.Getenv(serviceNameEnv))
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	return &Config{
		ServiceName: serviceName,
		Environment: env,
		LogLevel:    level,
		Persistence: persistenceCfg,
	}, nil
}
