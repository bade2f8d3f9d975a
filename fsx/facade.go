// facade.go - the narrow filesystem capability surface the copy engine
// depends on (spec §4.A).
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

// Package fsx is a thin facade over the platform-specific syscalls the
// copy engine needs: reflink, fallocate, sparse-segment probing, byte
// copy, permission replication and special-file node creation. The
// rest of the engine never calls into golang.org/x/sys/unix directly;
// it only talks to this interface, so the seek-hole/seek-data and
// ioctl arithmetic never leaks upward.
package fsx

import "os"

// Facade is the capability set the copy engine consumes. Default is
// the production implementation; tests may substitute a fake.
type Facade interface {
	// Allocate pre-allocates length bytes on dst. Best effort: a
	// failure here is only fatal if the caller can't fall back to
	// a dense copy.
	Allocate(dst *os.File, length int64) error

	// CopyBytes transfers at most max bytes from src to dst,
	// starting at each descriptor's current position, and returns
	// the number of bytes actually transferred. Both descriptors'
	// positions advance by the returned count.
	CopyBytes(dst, src *os.File, max int64) (int64, error)

	// Reflink attempts a copy-on-write clone of src covering dst in
	// its entirety. Returns true on success, false if the
	// filesystem declines (cross-device, unsupported fs). A
	// non-nil error indicates a real failure (permission, I/O).
	Reflink(dst, src *os.File) (bool, error)

	// ProbablySparse is a cheap heuristic for "this file likely has
	// holes".
	ProbablySparse(f *os.File) (bool, error)

	// NextSparseSegments returns the next data run in src after
	// pos, seeking dst to dataStart so the hole preceding it is
	// never materialized as zero bytes. When no more data exists,
	// dataStart == holeStart == the file length.
	NextSparseSegments(src, dst *os.File, pos int64) (dataStart, holeStart int64, err error)

	// CopyPermissions replicates dst's metadata from src: at
	// minimum the permission bits; the default implementation also
	// replicates ownership, xattrs and mtime.
	CopyPermissions(dst, src *os.File) error

	// Sync durably flushes f to disk.
	Sync(f *os.File) error

	// CopyNode creates a FIFO, socket or character-device node at
	// dstPath replicating src's type and permission bits.
	CopyNode(dstPath, srcPath string, fi *Info) error

	// SameFS reports whether a and b live on the same filesystem
	// device, the condition a reflink or copy_file_range attempt
	// requires.
	SameFS(a, b *Info) bool
}

// Default is the zero-size, stateless production Facade.
type Default struct{}

var _ Facade = Default{}

// SameFS implements Facade.
func (Default) SameFS(a, b *Info) bool {
	return a.IsSameFS(b)
}

// Sync implements Facade.
func (Default) Sync(f *os.File) error {
	if err := f.Sync(); err != nil {
		return &Error{"sync", f.Name(), f.Name(), err}
	}
	return nil
}
