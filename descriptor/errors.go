package descriptor

import "errors"

var (
	ErrEmptyDocument     = errors.New("empty interface document")
	ErrMalformed         = errors.New("malformed interface document")
	ErrMissingInterface  = errors.New("interface name is required")
	ErrMissingComponents = errors.New("components key is required")
	ErrInvalidDisplay    = errors.New("display must be default or grid")
	ErrIncompleteGrid    = errors.New("grid display requires rows and columns")
	ErrNotDirectory      = errors.New("not a directory")
)
