package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-tasktracker/internal/config/persistence"
	"github.com/KasumiMercury/primind-tasktracker/internal/task"
	"github.com/KasumiMercury/primind-tasktracker/internal/task/infra/graphstore"
	"github.com/KasumiMercury/primind-tasktracker/internal/task/infra/jsonfile"
	"github.com/KasumiMercury/primind-tasktracker/internal/task/infra/redisstore"
	"github.com/KasumiMercury/primind-tasktracker/internal/task/infra/repository"
	"github.com/KasumiMercury/primind-tasktracker/internal/task/infra/retry"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func newRepositories(ctx context.Context, cfg *persistence.Config, logger *slog.Logger) (task.Repositories, error) {
	switch cfg.Backend {
	case persistence.BackendMemory:
		return task.Repositories{Snapshots: repository.NewInMemorySnapshotRepository()}, nil
	case persistence.BackendJSONFile:
		return task.Repositories{Snapshots: jsonfile.NewSnapshotRepository(cfg.TasksFile)}, nil
	case persistence.BackendPostgres:
		db, err := repository.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return task.Repositories{}, fmt.Errorf("connect to postgres: %w", err)
		}

		return newGormRepositories(ctx, db, logger)
	case persistence.BackendMySQL:
		db, err := repository.OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			return task.Repositories{}, fmt.Errorf("connect to mysql: %w", err)
		}

		return newGormRepositories(ctx, db, logger)
	case persistence.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }

		if err := retry.Do(ctx, retry.DefaultConfig(), logger, "redis ping", ping, nil); err != nil {
			_ = client.Close()

			return task.Repositories{}, fmt.Errorf("connect to redis: %w", err)
		}

		return task.Repositories{
			Snapshots: redisstore.NewSnapshotRepository(client),
			Cleanup:   client.Close,
		}, nil
	case persistence.BackendNeo4j:
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
		if err != nil {
			return task.Repositories{}, fmt.Errorf("create neo4j driver: %w", err)
		}

		if err := retry.Do(ctx, retry.DefaultConfig(), logger, "neo4j connectivity", driver.VerifyConnectivity, nil); err != nil {
			_ = driver.Close(ctx)

			return task.Repositories{}, fmt.Errorf("connect to neo4j: %w", err)
		}

		return task.Repositories{
			Snapshots: graphstore.NewSnapshotRepository(driver, graphstore.WithDatabase(cfg.Neo4jDatabase)),
			Cleanup: func() error {
				return driver.Close(context.Background())
			},
		}, nil
	default:
		return task.Repositories{}, fmt.Errorf("%w: %q", persistence.ErrUnknownBackend, cfg.Backend)
	}
}

func newGormRepositories(ctx context.Context, db *gorm.DB, logger *slog.Logger) (task.Repositories, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return task.Repositories{}, err
	}

	if err := retry.Do(ctx, retry.DefaultConfig(), logger, "database ping", sqlDB.PingContext, nil); err != nil {
		_ = sqlDB.Close()

		return task.Repositories{}, fmt.Errorf("ping database: %w", err)
	}

	if err := repository.Migrate(db); err != nil {
		_ = sqlDB.Close()

		return task.Repositories{}, fmt.Errorf("migrate task tables: %w", err)
	}

	return task.Repositories{
		Snapshots: repository.NewTaskSnapshotRepository(db),
		Cleanup:   sqlDB.Close,
	}, nil
}
