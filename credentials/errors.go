/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package credentials

import (
	"errors"
)

// ResolutionError is the base error type for all credential resolution
// failures. Every specific error sub-type embeds this struct, so consumers
// can use errors.As(err, &resErr) to reach the message and usage text
// regardless of the kind of failure.
type ResolutionError struct {
	// Message describes what went wrong.
	Message string

	// Usage is the full help text of the entry point that failed.
	Usage string

	// Err is an optional wrapped error for errors.Unwrap support.
	Err error
}

// Error implements the error interface. The usage text is always appended.
func (e *ResolutionError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Usage != "" {
		msg += "\n\n" + e.Usage
	}
	return msg
}

// Unwrap returns the wrapped error, if any.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// --- Specific error sub-types ---

// ValidationError is returned when explicit arguments are only partially given.
type ValidationError struct {
	*ResolutionError
}

// Unwrap returns the underlying ResolutionError for errors.As traversal.
func (e *ValidationError) Unwrap() error { return e.ResolutionError }

// EnvironmentConfigError is returned when environment variables (or the
// dashboard fallback state) are only partially set.
type EnvironmentConfigError struct {
	*ResolutionError
}

// Unwrap returns the underlying ResolutionError for errors.As traversal.
func (e *EnvironmentConfigError) Unwrap() error { return e.ResolutionError }

// FileNotFoundError is returned when BANDWIDTH_CONFIG_FILE names a file
// that does not exist. It also matches fs.ErrNotExist through errors.Is.
type FileNotFoundError struct {
	*ResolutionError

	// Path is the config file path that could not be found.
	Path string
}

// Unwrap returns the underlying ResolutionError for errors.As traversal.
func (e *FileNotFoundError) Unwrap() error { return e.ResolutionError }

// ConfigFormatError is returned when a config file cannot be parsed or is
// missing the catapult section or one of its keys.
type ConfigFormatError struct {
	*ResolutionError

	// Path is the config file that failed to parse.
	Path string
}

// Unwrap returns the underlying ResolutionError for errors.As traversal.
func (e *ConfigFormatError) Unwrap() error { return e.ResolutionError }

// NoConfigurationError is returned when no resolution source matched.
type NoConfigurationError struct {
	*ResolutionError
}

// Unwrap returns the underlying ResolutionError for errors.As traversal.
func (e *NoConfigurationError) Unwrap() error { return e.ResolutionError }

// --- Convenience functions ---

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsEnvironmentConfig reports whether err is an EnvironmentConfigError.
func IsEnvironmentConfig(err error) bool {
	var e *EnvironmentConfigError
	return errors.As(err, &e)
}

// IsFileNotFound reports whether err is a FileNotFoundError.
func IsFileNotFound(err error) bool {
	var e *FileNotFoundError
	return errors.As(err, &e)
}

// IsConfigFormat reports whether err is a ConfigFormatError.
func IsConfigFormat(err error) bool {
	var e *ConfigFormatError
	return errors.As(err, &e)
}

// IsNoConfiguration reports whether err is a NoConfigurationError.
func IsNoConfiguration(err error) bool {
	var e *NoConfigurationError
	return errors.As(err, &e)
}
