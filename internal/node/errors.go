package node

import "errors"

var (
	// ErrNotFound indicates a read of a key that is not defined in the node.
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKeyType indicates a mapping whose keys are not symbolic
	// (string-typed), e.g. an integer-keyed YAML mapping.
	ErrInvalidKeyType = errors.New("invalid key type")
	// ErrInvalidStructure indicates conversion input that is not a mapping
	// where a mapping is required.
	ErrInvalidStructure = errors.New("invalid structure")
)
