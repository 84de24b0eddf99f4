package search

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user declines the replace
// confirmation prompt.
var ErrCancelled = errors.New("cancelled")

// ConfigError is a fatal argument-validation error, reported before any
// traversal begins. It maps to a distinct exit code in main.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// Configf builds a ConfigError from a format string.
func Configf(format string, args ...any) error {
	return &ConfigError{Err: fmt.Errorf(format, args...)}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
