// errors.go - descriptive errors for fsx
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package fsx

import (
	"errors"
	"fmt"
)

// errShortRead is returned when copy_file_range(2) reports success
// but transfers zero bytes for a non-empty request, which otherwise
// would look like a silent no-op to the caller's byte-accounting loop.
var errShortRead = errors.New("fsx: short transfer")

// errAny returns true if 'err' matches any of 'errs' via errors.Is.
func errAny(err error, errs ...error) bool {
	for _, e := range errs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// Error represents the errors returned by the facade operations.
type Error struct {
	Op  string
	Src string
	Dst string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fsx: %s '%s' '%s': %s", e.Op, e.Src, e.Dst, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

var _ error = &Error{}
