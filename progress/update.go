// update.go - the byte-granular progress event emitted by copy workers
// (spec §4.B)
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

// Package progress carries byte- and error-level status from copy
// workers to whatever is watching the operation — a terminal renderer,
// a log, a test assertion. Workers never block on a slow observer.
package progress

// Kind classifies an Update.
type Kind int

const (
	// Size announces a source's total byte count as it is discovered
	// by the walker, before any bytes of it have been copied.
	Size Kind = iota
	// Copied reports additional bytes written to a destination.
	Copied
	// ErrorUpdate reports a per-entry copy error. The driver also
	// returns the same error, so it fails the copy as a whole.
	ErrorUpdate
)

func (k Kind) String() string {
	switch k {
	case Size:
		return "size"
	case Copied:
		return "copied"
	case ErrorUpdate:
		return "error"
	default:
		return "unknown"
	}
}

// Update is one unit of progress information. Bytes is meaningful for
// Size and Copied; Err is meaningful for ErrorUpdate.
type Update struct {
	Kind  Kind
	Bytes uint64
	Err   error
}

// Sink receives Updates. Implementations must not block the caller for
// long; Send is called from hot copy-worker loops.
type Sink interface {
	Send(Update) error
}

// NullSink discards every update. The zero value is ready to use and
// is the default when a caller doesn't want progress tracking at all.
type NullSink struct{}

// Send implements Sink.
func (NullSink) Send(Update) error { return nil }

var (
	_ Sink = NullSink{}
	_ Sink = (*BufferingSink)(nil)
)
