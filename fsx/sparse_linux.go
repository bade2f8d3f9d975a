// sparse_linux.go - sparse file detection via SEEK_DATA/SEEK_HOLE
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
	"io"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// ProbablySparse reports whether f looks like it has unallocated
// regions, using the classic heuristic of comparing the block count
// the kernel actually allocated against the logical file size. A file
// can pass this check and still have no actual holes (for example when
// the filesystem stores its data compressed) — callers use it only to decide
// whether it is worth probing with SEEK_DATA/SEEK_HOLE at all.
func (Default) ProbablySparse(f *os.File) (bool, error) {
	var st syscall.Stat_t
	if err := syscall.Fstat(int(f.Fd()), &st); err != nil {
		return false, &Error{"fstat", f.Name(), f.Name(), err}
	}
	allocated := int64(st.Blocks) * 512
	return allocated < st.Size, nil
}

// NextSparseSegments locates the next populated ("data") region at or
// after pos in src, and the hole that follows it, using the kernel's
// SEEK_DATA/SEEK_HOLE lseek whence values. dataStart is the offset of
// the next non-hole byte (or src's size if none remains); holeStart is
// the offset where the following hole begins (or src's size). The
// returned offsets describe [dataStart, holeStart) as the next run of
// allocated bytes that must actually be copied. When such a run exists,
// dst is seeked to dataStart so the hole before it stays a hole.
func (Default) NextSparseSegments(src, dst *os.File, pos int64) (int64, int64, error) {
	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, 0, &Error{"seek", src.Name(), dst.Name(), err}
	}
	if pos >= size {
		return size, size, nil
	}

	dataStart, err := unix.Seek(int(src.Fd()), pos, unix.SEEK_DATA)
	if err != nil {
		if errAny(err, syscall.ENXIO) {
			return size, size, nil
		}
		return 0, 0, &Error{"seek_data", src.Name(), dst.Name(), err}
	}

	holeStart, err := unix.Seek(int(src.Fd()), dataStart, unix.SEEK_HOLE)
	if err != nil {
		if !errAny(err, syscall.ENXIO) {
			return 0, 0, &Error{"seek_hole", src.Name(), dst.Name(), err}
		}
		holeStart = size
	}

	if _, err := dst.Seek(dataStart, io.SeekStart); err != nil {
		return 0, 0, &Error{"seek-dst", src.Name(), dst.Name(), err}
	}
	return dataStart, holeStart, nil
}
