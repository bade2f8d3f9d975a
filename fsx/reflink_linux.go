// reflink_linux.go - copy-on-write clone via the FICLONE ioctl
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

// Reflink attempts whole-file copy-on-write cloning via the FICLONE
// ioctl, the same primitive used by `cp --reflink`.
func (Default) Reflink(dst, src *os.File) (bool, error) {
	err := unix.IoctlFileClone(int(dst.Fd()), int(src.Fd()))
	if err == nil {
		return true, nil
	}
	if errAny(err, syscall.ENOTSUP, syscall.ENOSYS, syscall.EXDEV, syscall.EOPNOTSUPP, syscall.EINVAL) {
		return false, nil
	}
	return false, &Error{"reflink", src.Name(), dst.Name(), err}
}
