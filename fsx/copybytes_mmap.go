// copybytes_mmap.go - bounded byte transfer via memory-mapped reads
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

//go:build unix

package fsx

import (
	"io"
	"os"

	"github.com/opencoff/go-mmap"
)

// copyBytesMmap transfers at most max bytes from src's current offset
// to dst's current offset using a memory-mapped read. This is the
// fallback used whenever copy_file_range(2) is unavailable (non-Linux)
// or declines (cross-device pairs on Linux).
//
// mmap.Reader windows are keyed to the file's start, not the
// descriptor's current read cursor, so every call has to walk from
// offset zero and skip bytes already consumed by earlier calls. That
// makes this a correct but not cheap fallback — the expected
// trade-off on the paths that need it (see copy_mmap.go in the
// teacher repo, which takes the same whole-file-from-zero approach).
func copyBytesMmap(dst, src *os.File, max int64) (int64, error) {
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, &Error{"seek-src", src.Name(), dst.Name(), err}
	}

	var (
		seen    int64
		written int64
		werr    error
	)

	_, rerr := mmap.Reader(src, func(b []byte) error {
		if written >= max {
			return io.EOF
		}

		winStart := seen
		seen += int64(len(b))
		if seen <= start {
			return nil
		}
		if winStart < start {
			b = b[start-winStart:]
		}
		if int64(len(b)) > max-written {
			b = b[:max-written]
		}

		n, e := fullWrite(dst, b)
		written += int64(n)
		if e != nil {
			werr = e
			return e
		}
		if written >= max {
			return io.EOF
		}
		return nil
	})

	if werr != nil {
		return written, &Error{"mmap-write", src.Name(), dst.Name(), werr}
	}
	if rerr != nil && rerr != io.EOF {
		return written, &Error{"mmap-read", src.Name(), dst.Name(), rerr}
	}

	if _, err := src.Seek(start+written, io.SeekStart); err != nil {
		return written, &Error{"seek-src", src.Name(), dst.Name(), err}
	}
	return written, nil
}

func fullWrite(d *os.File, b []byte) (int, error) {
	var z int
	for len(b) > 0 {
		m, err := d.Write(b)
		if err != nil {
			return z, err
		}
		b = b[m:]
		z += m
	}
	return z, nil
}
