// alloc_linux.go - destination pre-allocation via fallocate(2)
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

//go:build linux

package fsx

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Allocate pre-allocates length bytes for dst via fallocate(2), giving
// the filesystem a chance to lay out contiguous extents up front
// instead of growing the file one write at a time. Best-effort: a
// filesystem that doesn't support fallocate is not a copy failure.
func (Default) Allocate(dst *os.File, length int64) error {
	if length <= 0 {
		return nil
	}
	err := unix.Fallocate(int(dst.Fd()), 0, 0, length)
	if err == nil || errAny(err, syscall.ENOSYS, syscall.EOPNOTSUPP, syscall.ENOTSUP) {
		return nil
	}
	return &Error{"fallocate", dst.Name(), dst.Name(), err}
}
