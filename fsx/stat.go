// stat.go - a normalized stat(2) view used across the copy engine
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
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// Info is a normalized, platform independent view of a filesystem
// entry's metadata. It captures just enough of stat(2) for the copy
// engine to pick a copy strategy and detect same-filesystem moves.
type Info struct {
	Ino  uint64
	Dev  uint64
	Rdev uint64
	Siz  int64

	Mod   fs.FileMode
	Uid   uint32
	Gid   uint32
	Nlink uint32

	Atim time.Time
	Mtim time.Time

	path string
}

var _ fs.FileInfo = &Info{}

// Lstat is like os.Lstat but returns the engine's normalized Info and
// does not follow a final symlink component.
func Lstat(nm string) (*Info, error) {
	var st syscall.Stat_t
	if err := syscall.Lstat(nm, &st); err != nil {
		return nil, err
	}
	return makeInfo(nm, &st), nil
}

// Stat is like os.Stat but returns the engine's normalized Info.
func Stat(nm string) (*Info, error) {
	var st syscall.Stat_t
	if err := syscall.Stat(nm, &st); err != nil {
		return nil, err
	}
	return makeInfo(nm, &st), nil
}

// Fstat returns normalized Info for an already open file.
func Fstat(fd *os.File) (*Info, error) {
	var st syscall.Stat_t
	if err := syscall.Fstat(int(fd.Fd()), &st); err != nil {
		return nil, err
	}
	return makeInfo(fd.Name(), &st), nil
}

func makeInfo(nm string, st *syscall.Stat_t) *Info {
	return &Info{
		Ino:   st.Ino,
		Dev:   uint64(st.Dev),
		Rdev:  uint64(st.Rdev),
		Siz:   st.Size,
		Mod:   unixModeToFs(uint32(st.Mode)),
		Uid:   st.Uid,
		Gid:   st.Gid,
		Nlink: uint32(st.Nlink),
		Atim:  ts2time(atimespec(st)),
		Mtim:  ts2time(mtimespec(st)),
		path:  nm,
	}
}

// unixModeToFs translates a raw st_mode (S_IFMT type bits + permission
// bits) into the equivalent fs.FileMode, the way os.fileStat does
// internally for the platforms we support.
func unixModeToFs(raw uint32) fs.FileMode {
	m := fs.FileMode(raw & 0777)
	switch raw & syscall.S_IFMT {
	case syscall.S_IFDIR:
		m |= fs.ModeDir
	case syscall.S_IFLNK:
		m |= fs.ModeSymlink
	case syscall.S_IFIFO:
		m |= fs.ModeNamedPipe
	case syscall.S_IFSOCK:
		m |= fs.ModeSocket
	case syscall.S_IFCHR:
		m |= fs.ModeCharDevice | fs.ModeDevice
	case syscall.S_IFBLK:
		m |= fs.ModeDevice
	}
	if raw&syscall.S_ISUID != 0 {
		m |= fs.ModeSetuid
	}
	if raw&syscall.S_ISGID != 0 {
		m |= fs.ModeSetgid
	}
	if raw&syscall.S_ISVTX != 0 {
		m |= fs.ModeSticky
	}
	return m
}

func ts2time(ts syscall.Timespec) time.Time {
	return time.Unix(ts.Sec, ts.Nsec)
}

// Path returns the path this Info was derived from.
func (ii *Info) Path() string { return ii.path }

// Name satisfies fs.FileInfo.
func (ii *Info) Name() string { return filepath.Base(ii.path) }

// Size satisfies fs.FileInfo.
func (ii *Info) Size() int64 { return ii.Siz }

// Mode satisfies fs.FileInfo, returning both type and permission bits.
func (ii *Info) Mode() fs.FileMode { return ii.Mod }

// ModTime satisfies fs.FileInfo.
func (ii *Info) ModTime() time.Time { return ii.Mtim }

// IsDir satisfies fs.FileInfo.
func (ii *Info) IsDir() bool { return ii.Mod.IsDir() }

// Sys satisfies fs.FileInfo.
func (ii *Info) Sys() any { return ii }

// IsSameFS returns true if a and b live on the same filesystem/device.
func (a *Info) IsSameFS(b *Info) bool {
	return a.Dev == b.Dev
}
