package validate

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel matched by errors.Is for every *Error
// produced by a Validator.
var ErrValidation = errors.New("settings validation failed")

// Error is a single violated assertion. Path is the dotted key path, Env the
// environment the tree was validated for (empty in early mode), and Problem
// the human-readable constraint description.
type Error struct {
	Path    string
	Env     string
	Problem string
}

func (e *Error) Error() string {
	if e.Env == "" {
		return fmt.Sprintf("Key: '%s' in early configuration %s", e.Path, e.Problem)
	}
	return fmt.Sprintf("Key: '%s' in '%s' environment %s", e.Path, e.Env, e.Problem)
}

func (e *Error) Is(target error) bool {
	return target == ErrValidation
}
