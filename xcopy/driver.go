// driver.go - walker, worker dispatch, and the public CopyAll/CopySingle
// entry points (spec §4.D, §6)
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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xcpkit/xcp/fsx"
	"github.com/xcpkit/xcp/ignore"
	"github.com/xcpkit/xcp/progress"
)

// Driver is the entry point collaborators use: CopyAll for whole-tree
// copies through the walker/pool pipeline, CopySingle for a one-shot
// non-directory copy that bypasses both.
type Driver struct {
	cfg Config
}

// NewDriver returns a Driver bound to cfg. cfg is not mutated after
// this call; the same Config may be shared by multiple Drivers.
func NewDriver(cfg Config) *Driver {
	return &Driver{cfg: cfg}
}

// CopyAll copies every entry under each of sources into dest, using a
// single walker goroutine and cfg.NumWorkers copy workers. It returns
// nil only if the walk completed without error and every worker
// succeeded.
func (d *Driver) CopyAll(sources []string, dest string, sink progress.Sink) error {
	if sink == nil {
		sink = progress.NullSink{}
	}

	pool := NewPool[Operation](d.cfg.numWorkers(), func(worker int, op Operation) error {
		return d.runOperation(worker, op, sink)
	})

	dirs := newDirSet()
	walkDone := make(chan error, 1)
	go func() {
		var walkErr error
		for _, src := range sources {
			if err := d.walkOne(src, dest, pool, dirs, sink); err != nil {
				walkErr = err
				break
			}
		}
		walkDone <- walkErr
	}()

	walkErr := <-walkDone
	pool.Close()
	poolErr := pool.Wait()

	if walkErr != nil {
		return walkErr
	}
	return poolErr
}

// CopySingle copies a single non-directory source directly, without a
// walker or worker pool. It is the fast path for a one-file
// invocation; passing a directory fails with KindInvalidArguments.
func (d *Driver) CopySingle(source, dest string, sink progress.Sink) error {
	if sink == nil {
		sink = progress.NullSink{}
	}

	srcClean := filepath.Clean(source)
	info, err := fsx.Lstat(srcClean)
	if err != nil {
		return &Error{KindInvalidSource, "lstat", srcClean, err, -1}
	}
	if info.IsDir() {
		return &Error{KindInvalidArguments, "copy_single", srcClean, nil, -1}
	}

	target := dest
	if fi, err := os.Stat(dest); err == nil && fi.IsDir() && !d.cfg.NoTargetDir {
		target = filepath.Join(dest, filepath.Base(srcClean))
	}

	if d.cfg.NoClobber {
		if _, err := os.Lstat(target); err == nil {
			return &Error{KindDestinationExists, "copy_single", target, nil, -1}
		}
	}

	switch classify(info.Mode()) {
	case KindFile:
		sink.Send(progress.Update{Kind: progress.Size, Bytes: uint64(info.Size())})
		h, err := NewCopyHandle(&d.cfg, 0, srcClean, target)
		if err != nil {
			return err
		}
		return h.CopyFile(sink)
	case KindSymlink:
		linkTarget, err := os.Readlink(srcClean)
		if err != nil {
			return &Error{KindCopyError, "readlink", srcClean, err, -1}
		}
		if err := os.Symlink(linkTarget, target); err != nil {
			return &Error{KindCopyError, "symlink", target, err, -1}
		}
		return nil
	case KindFifo, KindSocket, KindChar:
		return d.copySpecial(0, srcClean, target)
	default:
		return &Error{KindUnknownFileType, "copy_single", srcClean, nil, -1}
	}
}

// walkOne traverses a single source root, eagerly creating destination
// directories and enqueueing an Operation for every non-directory
// entry the ignore predicate accepts.
func (d *Driver) walkOne(src, dest string, pool *Pool[Operation], dirs *dirSet, sink progress.Sink) error {
	srcAbs := filepath.Clean(src)
	base := filepath.Base(srcAbs)
	if base == "." || base == string(filepath.Separator) {
		return &Error{KindInvalidSource, "walk", src, nil, -1}
	}

	rootInfo, err := fsx.Lstat(srcAbs)
	if err != nil {
		return &Error{KindInvalidSource, "lstat", srcAbs, err, -1}
	}

	targetBase := dest
	if !d.cfg.NoTargetDir {
		if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
			targetBase = filepath.Join(dest, base)
		}
	}

	if !rootInfo.IsDir() {
		return d.dispatchEntry(srcAbs, targetBase, pool, dirs, sink)
	}

	pred, err := d.cfg.ignoreFactory()(srcAbs, d.cfg.ExcludePatterns)
	if err != nil {
		return &Error{KindInvalidArguments, "ignore", srcAbs, err, -1}
	}

	if err := ensureDir(dirs, targetBase, rootInfo.Mode()); err != nil {
		return &Error{KindCopyError, "mkdir", targetBase, err, -1}
	}

	return filepath.WalkDir(srcAbs, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return &Error{KindCopyError, "walk", path, err, -1}
		}
		if path == srcAbs {
			return nil
		}
		rel, err := filepath.Rel(srcAbs, path)
		if err != nil {
			return &Error{KindInvalidSource, "rel", path, err, -1}
		}

		decision := pred.Test(rel, de.IsDir())
		if decision == ignore.Prune {
			if de.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		target := filepath.Join(targetBase, rel)
		return d.dispatchEntry(path, target, pool, dirs, sink)
	})
}

// dispatchEntry classifies a single already-discovered entry and
// either materializes a directory immediately or enqueues an
// Operation for a worker.
func (d *Driver) dispatchEntry(path, target string, pool *Pool[Operation], dirs *dirSet, sink progress.Sink) error {
	info, err := fsx.Lstat(path)
	if err != nil {
		return &Error{KindCopyError, "lstat", path, err, -1}
	}

	if d.cfg.NoClobber {
		if _, err := os.Lstat(target); err == nil {
			sink.Send(progress.Update{
				Kind: progress.ErrorUpdate,
				Err:  &Error{KindDestinationExists, "stat", target, nil, -1},
			})
			return &Error{KindEarlyShutdown, "no_clobber", target, nil, -1}
		}
	}

	switch classify(info.Mode()) {
	case KindDir:
		if err := ensureDir(dirs, target, info.Mode()); err != nil {
			return &Error{KindCopyError, "mkdir", target, err, -1}
		}
		return nil

	case KindFile:
		sink.Send(progress.Update{Kind: progress.Size, Bytes: uint64(info.Size())})
		pool.Submit(Operation{Kind: OpCopy, Src: path, Dst: target})
		return nil

	case KindSymlink:
		linkTarget, err := os.Readlink(path)
		if err != nil {
			return &Error{KindCopyError, "readlink", path, err, -1}
		}
		pool.Submit(Operation{Kind: OpLink, Src: linkTarget, Dst: target})
		return nil

	case KindFifo, KindSocket, KindChar:
		pool.Submit(Operation{Kind: OpSpecial, Src: path, Dst: target})
		return nil

	default:
		return &Error{KindUnknownFileType, "classify", path, nil, -1}
	}
}

// runOperation is the worker-pool callback: it dispatches a single
// Operation to completion and reports/propagates any failure.
func (d *Driver) runOperation(worker int, op Operation, sink progress.Sink) error {
	switch op.Kind {
	case OpCopy:
		h, err := NewCopyHandle(&d.cfg, worker, op.Src, op.Dst)
		if err != nil {
			sink.Send(progress.Update{Kind: progress.ErrorUpdate, Err: err})
			return err
		}
		if err := h.CopyFile(sink); err != nil {
			sink.Send(progress.Update{Kind: progress.ErrorUpdate, Err: err})
			return err
		}
		return nil

	case OpLink:
		if err := os.Symlink(op.Src, op.Dst); err != nil {
			wrapped := &Error{KindCopyError, "symlink", op.Dst, err, worker}
			sink.Send(progress.Update{Kind: progress.ErrorUpdate, Err: wrapped})
			return wrapped
		}
		return nil

	case OpSpecial:
		if err := d.copySpecial(worker, op.Src, op.Dst); err != nil {
			sink.Send(progress.Update{Kind: progress.ErrorUpdate, Err: err})
			return err
		}
		return nil

	default:
		return &Error{KindInvalidArguments, "operation", op.Dst, nil, worker}
	}
}

// copySpecial recreates a FIFO, socket or character device at dst,
// removing a pre-existing non-NoClobber destination first.
func (d *Driver) copySpecial(worker int, src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		if d.cfg.NoClobber {
			return &Error{KindDestinationExists, "special", dst, nil, worker}
		}
		if err := os.Remove(dst); err != nil {
			return &Error{KindCopyError, "remove", dst, err, worker}
		}
	}

	info, err := fsx.Lstat(src)
	if err != nil {
		return &Error{KindCopyError, "lstat", src, err, worker}
	}
	if err := d.cfg.facade().CopyNode(dst, src, info); err != nil {
		return &Error{KindCopyError, "copy_node", dst, err, worker}
	}
	return nil
}
