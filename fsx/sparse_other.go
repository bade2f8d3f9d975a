// sparse_other.go - no sparse-file support outside Linux
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

//go:build !linux

package fsx

import (
	"io"
	"os"
)

// ProbablySparse always reports false; SEEK_DATA/SEEK_HOLE support
// varies too much across the BSDs and darwin to rely on portably, so
// these platforms always take the dense-copy path.
func (Default) ProbablySparse(f *os.File) (bool, error) {
	return false, nil
}

// NextSparseSegments is never called when ProbablySparse is false, but
// is implemented for interface completeness: the whole remaining file
// is reported as a single data run, with dst seeked to its start.
func (Default) NextSparseSegments(src, dst *os.File, pos int64) (int64, int64, error) {
	fi, err := src.Stat()
	if err != nil {
		return 0, 0, &Error{"stat", src.Name(), dst.Name(), err}
	}
	size := fi.Size()
	if pos >= size {
		return size, size, nil
	}
	if _, err := dst.Seek(pos, io.SeekStart); err != nil {
		return 0, 0, &Error{"seek-dst", src.Name(), dst.Name(), err}
	}
	return pos, size, nil
}
