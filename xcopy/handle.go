// handle.go - per-file copy state machine (spec §4.C)
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

package xcopy

import (
	"io"
	"os"

	"github.com/xcpkit/xcp/fsx"
	"github.com/xcpkit/xcp/progress"
)

// CopyHandle owns one source descriptor and one destination
// descriptor for the lifetime of a single file copy. It is never
// shared across goroutines.
type CopyHandle struct {
	cfg     *Config
	facade  fsx.Facade
	src     *os.File
	dst     *os.File
	srcInfo *fsx.Info
	worker  int

	// FinalizeErr records the last error from permission copy or
	// fsync when CopyFile returns. Go has no destructor to silently swallow
	// this in, so it's surfaced here for callers that want it
	// (logged, not propagated) instead of discarded outright.
	FinalizeErr error
}

// NewCopyHandle opens src read-only, creates (or truncates) dst, and
// pre-allocates the destination to the source's length. Construction
// failure is fatal for this file; NoClobber conflicts are expected to
// have already been rejected by the caller before dst is opened.
func NewCopyHandle(cfg *Config, worker int, srcPath, dstPath string) (*CopyHandle, error) {
	facade := cfg.facade()

	src, err := os.Open(srcPath)
	if err != nil {
		return nil, &Error{KindCopyError, "open-src", srcPath, err, worker}
	}

	info, err := fsx.Fstat(src)
	if err != nil {
		src.Close()
		return nil, &Error{KindCopyError, "fstat-src", srcPath, err, worker}
	}

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		src.Close()
		return nil, &Error{KindCopyError, "create-dst", dstPath, err, worker}
	}

	if err := facade.Allocate(dst, info.Size()); err != nil {
		src.Close()
		dst.Close()
		os.Remove(dstPath)
		return nil, &Error{KindCopyError, "allocate", dstPath, err, worker}
	}

	return &CopyHandle{
		cfg:     cfg,
		facade:  facade,
		src:     src,
		dst:     dst,
		srcInfo: info,
		worker:  worker,
	}, nil
}

// CopyFile drives the reflink -> sparse -> dense decision tree to
// completion, sending Copied progress updates for every byte actually
// moved. Finalization (permission copy, fsync) always runs on return,
// but only when the primary copy succeeded — running it against a
// truncated destination after a failed copy would misreport success
// (spec §9's "likely bug" to fix, not preserve).
func (h *CopyHandle) CopyFile(sink progress.Sink) error {
	var primaryErr error
	defer h.src.Close()
	defer h.dst.Close()
	defer func() { h.finalize(primaryErr == nil) }()

	if h.cfg.ReflinkMode != ReflinkNever {
		ok, err := h.facade.Reflink(h.dst, h.src)
		if err != nil {
			primaryErr = &Error{KindCopyError, "reflink", h.src.Name(), err, h.worker}
			return primaryErr
		}
		if ok {
			return nil
		}
		if h.cfg.ReflinkMode == ReflinkAlways {
			primaryErr = &Error{KindReflinkFailed, "reflink", h.src.Name(), nil, h.worker}
			return primaryErr
		}
	}

	primaryErr = h.copyDenseOrSparse(sink)
	return primaryErr
}

func (h *CopyHandle) copyDenseOrSparse(sink progress.Sink) error {
	sparse, err := h.facade.ProbablySparse(h.src)
	if err != nil {
		return &Error{KindCopyError, "probably_sparse", h.src.Name(), err, h.worker}
	}
	if sparse {
		return h.copySparse(sink)
	}
	return h.copyRange(sink, 0, h.srcInfo.Size())
}

func (h *CopyHandle) copySparse(sink progress.Sink) error {
	size := h.srcInfo.Size()
	pos := int64(0)
	for pos < size {
		dataStart, holeStart, err := h.facade.NextSparseSegments(h.src, h.dst, pos)
		if err != nil {
			return &Error{KindCopyError, "next_sparse_segments", h.src.Name(), err, h.worker}
		}
		if dataStart >= size {
			break
		}
		if err := h.copyRange(sink, dataStart, holeStart); err != nil {
			return err
		}
		pos = holeStart
	}
	return nil
}

// copyRange transfers [start, end) from src to dst in blockSize
// chunks, emitting one Copied update per chunk actually transferred.
func (h *CopyHandle) copyRange(sink progress.Sink, start, end int64) error {
	length := end - start
	if length <= 0 {
		return nil
	}
	if _, err := h.src.Seek(start, io.SeekStart); err != nil {
		return &Error{KindCopyError, "seek-src", h.src.Name(), err, h.worker}
	}
	if _, err := h.dst.Seek(start, io.SeekStart); err != nil {
		return &Error{KindCopyError, "seek-dst", h.dst.Name(), err, h.worker}
	}

	block := h.cfg.blockSize()
	var written int64
	for written < length {
		max := length - written
		if max > block {
			max = block
		}
		n, err := h.facade.CopyBytes(h.dst, h.src, max)
		if err != nil {
			return &Error{KindCopyError, "copy_bytes", h.src.Name(), err, h.worker}
		}
		if n == 0 {
			return &Error{KindCopyError, "copy_bytes", h.src.Name(), errShortTransfer, h.worker}
		}
		written += n

		if sink != nil {
			if err := sink.Send(progress.Update{Kind: progress.Copied, Bytes: uint64(n)}); err != nil {
				return &Error{KindCopyError, "progress", h.dst.Name(), err, h.worker}
			}
		}
	}
	return nil
}

func (h *CopyHandle) finalize(primaryOK bool) {
	if !primaryOK {
		return
	}
	if !h.cfg.NoPerms {
		if err := h.facade.CopyPermissions(h.dst, h.src); err != nil {
			h.FinalizeErr = err
		}
	}
	if h.cfg.Fsync {
		if err := h.facade.Sync(h.dst); err != nil {
			h.FinalizeErr = err
		}
	}
}
