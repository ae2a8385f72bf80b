package testutil

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	neo4jmodule "github.com/testcontainers/testcontainers-go/modules/neo4j"
	postgresmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const neo4jTestPassword = "tasktracker-test"

func terminate(t *testing.T, name string, container testcontainers.Container) {
	t.Helper()

	if err := testcontainers.TerminateContainer(container); err != nil {
		t.Logf("failed to terminate %s container: %v", name, err)
	}
}

func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start redis container (docker unavailable?): %v", r)
		}
	}()

	container, err := redismodule.Run(ctx, "redis:8-alpine")
	if err != nil {
		t.Skipf("failed to start redis container (docker unavailable?): %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}

		terminate(t, "redis", container)
	}

	return client, cleanup
}

func SetupPostgresContainer(ctx context.Context, t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start postgres container (docker unavailable?): %v", r)
		}
	}()

	container, err := postgresmodule.Run(ctx,
		"postgres:18-alpine",
		postgresmodule.WithDatabase("testdb"),
		postgresmodule.WithUsername("testuser"),
		postgresmodule.WithPassword("testpass"),
		postgresmodule.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("failed to start postgres container (docker unavailable?): %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Skipf("failed to get postgres connection string: %v", err)
	}

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		t.Skipf("failed to connect to postgres: %v", err)
	}

	cleanup := func() {
		terminate(t, "postgres", container)
	}

	return db, cleanup
}

func SetupNeo4jContainer(ctx context.Context, t *testing.T) (neo4j.DriverWithContext, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start neo4j container (docker unavailable?): %v", r)
		}
	}()

	container, err := neo4jmodule.Run(ctx,
		"neo4j:5-community",
		neo4jmodule.WithAdminPassword(neo4jTestPassword),
	)
	if err != nil {
		t.Skipf("failed to start neo4j container (docker unavailable?): %v", err)
	}

	boltURL, err := container.BoltUrl(ctx)
	if err != nil {
		t.Skipf("failed to get neo4j bolt url: %v", err)
	}

	driver, err := neo4j.NewDriverWithContext(boltURL, neo4j.BasicAuth("neo4j", neo4jTestPassword, ""))
	if err != nil {
		t.Skipf("failed to create neo4j driver: %v", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		t.Skipf("failed to connect to neo4j: %v", err)
	}

	cleanup := func() {
		if err := driver.Close(ctx); err != nil {
			t.Logf("failed to close neo4j driver: %v", err)
		}

		terminate(t, "neo4j", container)
	}

	return driver, cleanup
}
