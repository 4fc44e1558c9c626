package fileaccess

import "errors"

// Sentinel errors for resolver construction and dispatch.
var (
	ErrMissingConsumer    = errors.New("missing spec consumer")
	ErrMissingPathList    = errors.New("missing path list")
	ErrUnknownAttribute   = errors.New("unknown attribute")
	ErrUnknownPatternKind = errors.New("unknown pattern kind")
)
