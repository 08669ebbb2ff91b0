package settings

import "errors"

var (
	// ErrSourceNotFound indicates that none of the candidate settings files
	// exist. The wrapping error lists every path that was tried.
	ErrSourceNotFound = errors.New("no settings file found")
	// ErrEnvironmentUnknown indicates that the runtime environment could
	// not be determined when an environment-bound view was requested.
	ErrEnvironmentUnknown = errors.New("runtime environment is not determined")
)
