package dbconn

import "errors"

var (
	ErrUnsupportedAdapter  = errors.New("unsupported database adapter")
	ErrMissingDatabaseName = errors.New("database name is not set")
)
