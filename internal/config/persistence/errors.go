package persistence

import "errors"

var (
	ErrUnknownBackend     = errors.New("unknown persistence backend")
	ErrTasksFileMissing   = errors.New("tasks file path is required")
	ErrPostgresDSNMissing = errors.New("postgres dsn is required")
	ErrMySQLDSNMissing    = errors.New("mysql dsn is required")
	ErrMySQLDSNInvalid    = errors.New("mysql dsn is invalid")
	ErrRedisAddrMissing   = errors.New("redis address is required")
	ErrInvalidRedisDB     = errors.New("invalid redis db value")
	ErrNeo4jURIMissing    = errors.New("neo4j uri is required")
	ErrNeo4jURIInvalid    = errors.New("neo4j uri is invalid")
)
