/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package events

import (
	"errors"
	"fmt"
)

// UnknownEventError is returned when a payload's event type has no
// registered event.
type UnknownEventError struct {
	Type    string
	Payload map[string]any
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("unknown event %q: %v", e.Type, e.Payload)
}

// DecodeError is returned when a payload is not a JSON object.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding event: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsUnknownEvent reports whether err is an UnknownEventError.
func IsUnknownEvent(err error) bool {
	var target *UnknownEventError
	return errors.As(err, &target)
}

// IsDecode reports whether err is a DecodeError.
func IsDecode(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}
