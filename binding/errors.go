package binding

import "errors"

var (
	ErrDangling         = errors.New("binding references a detached component")
	ErrCoerce           = errors.New("cannot coerce value")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrReadOnly         = errors.New("attribute is read-only")
)
