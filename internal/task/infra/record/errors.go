package record

import "errors"

var (
	ErrTaskRequired    = errors.New("task is required")
	ErrMalformedRecord = errors.New("malformed task record")
)
