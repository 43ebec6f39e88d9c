package core

import "errors"

// errors
var (
	ErrNilCore   = errors.New("core is nil")
	ErrNilLogger = errors.New("logger is nil")
)
