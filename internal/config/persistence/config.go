package persistence

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
)

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendJSONFile Backend = "jsonfile"
	BackendPostgres Backend = "postgres"
	BackendMySQL    Backend = "mysql"
	BackendRedis    Backend = "redis"
	BackendNeo4j    Backend = "neo4j"
)

const (
	backendEnv       = "TASK_BACKEND"
	tasksFileEnv     = "TASKS_FILE"
	postgresDSNEnv   = "POSTGRES_DSN"
	mysqlDSNEnv      = "MYSQL_DSN"
	redisAddrEnv     = "REDIS_ADDR"
	redisPasswordEnv = "REDIS_PASSWORD"
	redisDBEnv       = "REDIS_DB"
	neo4jURIEnv      = "NEO4J_URI"
	neo4jUserEnv     = "NEO4J_USER"
	neo4jPasswordEnv = "NEO4J_PASSWORD"
	neo4jDatabaseEnv = "NEO4J_DATABASE"

	defaultTasksFile = "tasks.json"
	defaultRedisAddr = "localhost:6379"
	defaultRedisDB   = 0
	defaultNeo4jUser = "neo4j"
)

type Config struct {
	Backend       Backend
	TasksFile     string
	PostgresDSN   string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	// Neo4jDatabase selects a named database; empty means the server default.
	Neo4jDatabase string
}

func Load() (*Config, error) {
	backend := Backend(strings.ToLower(getEnv(backendEnv, string(BackendMemory))))

	redisDB := defaultRedisDB

	if raw := os.Getenv(redisDBEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRedisDB, raw)
		}

		redisDB = parsed
	}

	cfg := &Config{
		Backend:       backend,
		TasksFile:     getEnv(tasksFileEnv, defaultTasksFile),
		PostgresDSN:   os.Getenv(postgresDSNEnv),
		MySQLDSN:      os.Getenv(mysqlDSNEnv),
		RedisAddr:     getEnv(redisAddrEnv, defaultRedisAddr),
		RedisPassword: os.Getenv(redisPasswordEnv),
		RedisDB:       redisDB,
		Neo4jURI:      os.Getenv(neo4jURIEnv),
		Neo4jUser:     getEnv(neo4jUserEnv, defaultNeo4jUser),
		Neo4jPassword: os.Getenv(neo4jPasswordEnv),
		Neo4jDatabase: os.Getenv(neo4jDatabaseEnv),
	}

	return cfg, cfg.Validate()
}

// Validate checks only the settings the selected backend needs.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrUnknownBackend)
	}

	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendJSONFile:
		if c.TasksFile == "" {
			return ErrTasksFileMissing
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w: %s", ErrPostgresDSNMissing, postgresDSNEnv)
		}
	case BackendMySQL:
		return c.validateMySQLDSN()
	case BackendRedis:
		if c.RedisAddr == "" {
			return ErrRedisAddrMissing
		}

		if c.RedisDB < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidRedisDB, c.RedisDB)
		}
	case BackendNeo4j:
		return c.validateNeo4jURI()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}

	return nil
}

func (c *Config) validateMySQLDSN() error {
	if c.MySQLDSN == "" {
		return fmt.Errorf("%w: %s", ErrMySQLDSNMissing, mysqlDSNEnv)
	}

	if _, err := mysql.ParseDSN(c.MySQLDSN); err != nil {
		return fmt.Errorf("%w: %v", ErrMySQLDSNInvalid, err)
	}

	return nil
}

func (c *Config) validateNeo4jURI() error {
	if c.Neo4jURI == "" {
		return fmt.Errorf("%w: %s", ErrNeo4jURIMissing, neo4jURIEnv)
	}

	parsed, err := url.Parse(c.Neo4jURI)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNeo4jURIInvalid, err)
	}

	switch parsed.Scheme {
	case "neo4j", "neo4j+s", "neo4j+ssc", "bolt", "bolt+s", "bolt+ssc":
	default:
		return fmt.Errorf("%w: unsupported scheme %q", ErrNeo4jURIInvalid, parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("%w: host is empty", ErrNeo4jURIInvalid)
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return strings.TrimSpace(val)
	}

	return defaultVal
}
