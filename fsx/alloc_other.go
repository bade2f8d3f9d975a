// alloc_other.go - best-effort pre-allocation outside Linux
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

// Allocate is a no-op outside Linux. posix_fallocate exists on some
// BSDs but behaves inconsistently across them; skipping it only costs
// a little extent fragmentation, never correctness.
func (Default) Allocate(dst *os.File, length int64) error {
	return nil
}
