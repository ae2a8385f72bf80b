package redisstore

import "errors"

var ErrCorruptedSnapshot = errors.New("redis snapshot is not valid JSON")
