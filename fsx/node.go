// node.go - replication of non-regular filesystem entries
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
	"io/fs"

	"golang.org/x/sys/unix"
)

// CopyNode recreates a FIFO, Unix domain socket, character device or
// block device at dstPath with the same type and permission bits as
// the source described by fi. Regular files, directories and symlinks
// are handled by their own dedicated paths and never reach here.
func (Default) CopyNode(dstPath, srcPath string, fi *Info) error {
	mode := uint32(fi.Mod.Perm())

	switch {
	case fi.Mod&fs.ModeNamedPipe != 0:
		mode |= unix.S_IFIFO
	case fi.Mod&fs.ModeSocket != 0:
		mode |= unix.S_IFSOCK
	case fi.Mod&fs.ModeCharDevice != 0:
		mode |= unix.S_IFCHR
	case fi.Mod&fs.ModeDevice != 0:
		mode |= unix.S_IFBLK
	default:
		return &Error{"mknod", srcPath, dstPath, fs.ErrInvalid}
	}

	dev := int(fi.Rdev)
	if err := unix.Mknod(dstPath, mode, dev); err != nil {
		return &Error{"mknod", srcPath, dstPath, err}
	}
	return nil
}
