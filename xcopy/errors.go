// errors.go - the closed error taxonomy for the copy engine (spec §7)
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

package xcopy

import (
	"errors"
	"fmt"
)

// errShortTransfer is wrapped into a KindCopyError when CopyBytes
// returns zero bytes before the requested range is fully transferred.
var errShortTransfer = errors.New("xcopy: short transfer before completion")

// Kind names one of the closed set of failure categories the engine
// can report. It is not an exhaustive replacement for the wrapped
// error — Err still carries the underlying OS error where one exists.
type Kind int

const (
	// KindInvalidSource: a source path has no last component or
	// cannot be resolved.
	KindInvalidSource Kind = iota
	// KindInvalidArguments: caller misuse, e.g. a directory passed to
	// CopySingle.
	KindInvalidArguments
	// KindDestinationExists: destination exists and NoClobber is set.
	KindDestinationExists
	// KindUnknownFileType: entry is a block device or unclassifiable
	// kind.
	KindUnknownFileType
	// KindReflinkFailed: ReflinkMode is Always and the filesystem
	// declined the clone.
	KindReflinkFailed
	// KindCopyError: I/O failure during byte copy.
	KindCopyError
	// KindEarlyShutdown: the walker terminated the run deliberately.
	KindEarlyShutdown
)

func (k Kind) String() string {
	switch k {
	case KindInvalidSource:
		return "invalid_source"
	case KindInvalidArguments:
		return "invalid_arguments"
	case KindDestinationExists:
		return "destination_exists"
	case KindUnknownFileType:
		return "unknown_file_type"
	case KindReflinkFailed:
		return "reflink_failed"
	case KindCopyError:
		return "copy_error"
	case KindEarlyShutdown:
		return "early_shutdown"
	default:
		return "unknown"
	}
}

// Error is the single error type every xcopy-surfaced failure is
// wrapped in, carrying enough context for both the progress channel's
// Error update and the aggregate Driver result.
type Error struct {
	Kind   Kind
	Op     string
	Path   string
	Err    error
	Worker int // -1 if not attributable to a specific worker
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("xcp: %s: %s %q: %s", e.Kind, e.Op, e.Path, e.Err.Error())
	}
	return fmt.Sprintf("xcp: %s: %s %q", e.Kind, e.Op, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var _ error = &Error{}
