// copybytes_other.go - bounded byte transfer on platforms without
// copy_file_range(2)
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

import "os"

// CopyBytes transfers at most max bytes from src to dst via a
// memory-mapped read. Darwin and the BSDs have their own clone and
// copy primitives, but none of them fit the bounded, descriptor-based
// contract this facade needs, so every non-Linux platform shares the
// same fallback Linux uses for cross-device pairs.
func (Default) CopyBytes(dst, src *os.File, max int64) (int64, error) {
	return copyBytesMmap(dst, src, max)
}
