// perm.go - metadata replication (permissions, ownership, times, xattrs)
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
	"os"
	"syscall"

	"github.com/pkg/xattr"
)

// CopyPermissions replicates src's mode bits, ownership, mtime and
// extended attributes onto dst. Callers that want to skip this (the
// no_perms configuration knob) simply don't call it; the facade
// itself doesn't know about that policy.
func (Default) CopyPermissions(dst, src *os.File) error {
	var st syscall.Stat_t
	if err := syscall.Fstat(int(src.Fd()), &st); err != nil {
		return &Error{"fstat", src.Name(), dst.Name(), err}
	}

	if err := dst.Chmod(unixModeToFs(uint32(st.Mode)).Perm()); err != nil {
		return &Error{"chmod", src.Name(), dst.Name(), err}
	}

	if err := dst.Chown(int(st.Uid), int(st.Gid)); err != nil {
		if !errAny(err, syscall.EPERM) {
			return &Error{"chown", src.Name(), dst.Name(), err}
		}
	}

	atim := ts2time(atimespec(&st))
	mtim := ts2time(mtimespec(&st))
	if err := os.Chtimes(dst.Name(), atim, mtim); err != nil {
		return &Error{"chtimes", src.Name(), dst.Name(), err}
	}

	if err := copyXattrs(dst.Name(), src.Name()); err != nil {
		return &Error{"xattr", src.Name(), dst.Name(), err}
	}

	return nil
}

func copyXattrs(dstPath, srcPath string) error {
	names, err := xattr.LList(srcPath)
	if err != nil {
		if errAny(err, syscall.ENOTSUP, syscall.EOPNOTSUPP) {
			return nil
		}
		return err
	}
	for _, name := range names {
		val, err := xattr.LGet(srcPath, name)
		if err != nil {
			continue
		}
		if err := xattr.LSet(dstPath, name, val); err != nil {
			if errAny(err, syscall.ENOTSUP, syscall.EOPNOTSUPP, syscall.EPERM) {
				continue
			}
			return err
		}
	}
	return nil
}
