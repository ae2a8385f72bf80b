package graphstore

import "errors"

var ErrUnexpectedResult = errors.New("unexpected neo4j result")
