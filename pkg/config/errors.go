package config

import "errors"

var (
	// ErrParseFailed is returned when environment variables cannot be parsed
	// into the target struct.
	ErrParseFailed = errors.New("config: failed to parse environment")

	// ErrNilConfig is returned when a nil pointer is passed to Load.
	ErrNilConfig = errors.New("config: nil config pointer")
)
