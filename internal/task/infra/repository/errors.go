package repository

import "errors"

var (
	ErrTaskRequired    = errors.New("task is required")
	ErrMySQLDSNInvalid = errors.New("mysql dsn is invalid")
)
