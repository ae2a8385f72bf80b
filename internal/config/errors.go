package config

import "errors"

var (
	ErrPersistenceLoad = errors.New("failed to load persistence config")
	ErrLoggingLoad     = errors.New("failed to load logging config")
)
