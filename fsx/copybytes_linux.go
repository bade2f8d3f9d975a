// copybytes_linux.go - bounded byte transfer via copy_file_range(2)
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

// CopyBytes transfers at most max bytes from src to dst using
// copy_file_range(2), which lets the kernel move data without a
// round-trip through userspace and, on CoW filesystems, shares
// extents the same way a reflink would for the covered range. Falls
// back to a memory-mapped read (copyBytesMmap) when the kernel declines
// (cross-device, no copy_file_range support, or tmpfs/overlay
// combinations that reject it).
func (d Default) CopyBytes(dst, src *os.File, max int64) (int64, error) {
	n, err := unix.CopyFileRange(int(src.Fd()), nil, int(dst.Fd()), nil, int(max), 0)
	if err == nil {
		if n == 0 && max > 0 {
			return 0, &Error{"copy_file_range", src.Name(), dst.Name(), errShortRead}
		}
		return int64(n), nil
	}

	if !errAny(err, syscall.ENOSYS, syscall.EXDEV, syscall.EOPNOTSUPP, syscall.EINVAL) {
		return 0, &Error{"copy_file_range", src.Name(), dst.Name(), err}
	}

	return copyBytesMmap(dst, src, max)
}
