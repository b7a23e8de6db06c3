/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package style

import (
	"errors"
	"fmt"
)

// Sentinel errors for stylesheet parsing.
var (
	// errEmptyAttributes indicates an \Attributes line with no names.
	errEmptyAttributes = errors.New("empty attribute specification")

	// errRequiredAfterOptional indicates a required attribute declared
	// after an optional one.
	errRequiredAfterOptional = errors.New("required attribute follows optional attribute")
)

// Error is a line-numbered stylesheet parse error.
type Error struct {
	// Line is the 1-based line number the error was detected on.
	Line int

	// Message describes what's wrong.
	Message string
}

// Error implements the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func lineError(line int, format string, args ...any) Error {
	return Error{Line: line, Message: fmt.Sprintf(format, args...)}
}
