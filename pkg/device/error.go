package device

import "github.com/pkg/errors"

var (
	ErrNilDevice        = errors.New("device is nil")
	ErrNilManager       = errors.New("device manager is nil")
	ErrNilStore         = errors.New("device store is nil")
	ErrNilDatabase      = errors.New("database is nil")
	ErrEmptyDeviceID    = errors.New("device id is empty")
	ErrInvalidHomepage  = errors.New("homepage is not a valid url")
	ErrInvalidGUID      = errors.New("guid is not a valid uuid")
	ErrDeviceNotFound   = errors.New("device is not found")
	ErrDuplicateDevice  = errors.New("duplicate device")
	ErrNothingChanged   = errors.New("nothing changed")
)
