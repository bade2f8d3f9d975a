// driver_test.go
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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xcpkit/xcp/progress"
)

func mustWriteFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCopyAllReplicatesTreeUnderSourceBasename(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "srctree")
	dest := filepath.Join(root, "dest")
	mustWriteFile(t, filepath.Join(src, "a.txt"), []byte("aaa"))
	mustWriteFile(t, filepath.Join(src, "nested", "b.txt"), []byte("bb"))
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatalf("mkdir dest: %v", err)
	}

	cfg := DefaultConfig()
	cfg.NumWorkers = 2
	d := NewDriver(cfg)

	if err := d.CopyAll([]string{src}, dest, progress.NullSink{}); err != nil {
		t.Fatalf("CopyAll: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "srctree", "a.txt"))
	if err != nil {
		t.Fatalf("read copied a.txt: %v", err)
	}
	if string(got) != "aaa" {
		t.Fatalf("a.txt content = %q", got)
	}
	got, err = os.ReadFile(filepath.Join(dest, "srctree", "nested", "b.txt"))
	if err != nil {
		t.Fatalf("read copied nested/b.txt: %v", err)
	}
	if string(got) != "bb" {
		t.Fatalf("nested/b.txt content = %q", got)
	}
}

func TestCopyAllHonorsNoTargetDir(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "srctree")
	dest := filepath.Join(root, "dest")
	mustWriteFile(t, filepath.Join(src, "a.txt"), []byte("aaa"))

	cfg := DefaultConfig()
	cfg.NoTargetDir = true
	d := NewDriver(cfg)

	if err := d.CopyAll([]string{src}, dest, progress.NullSink{}); err != nil {
		t.Fatalf("CopyAll: %v", err)
	}

	if _, err := os.ReadFile(filepath.Join(dest, "a.txt")); err != nil {
		t.Fatalf("expected dest to BE srctree's contents, not a child dir: %v", err)
	}
}

func TestCopyAllPreservesSymlinks(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "srctree")
	dest := filepath.Join(root, "dest")
	mustWriteFile(t, filepath.Join(src, "real.txt"), []byte("real"))
	if err := os.Symlink("real.txt", filepath.Join(src, "link.txt")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatalf("mkdir dest: %v", err)
	}

	d := NewDriver(DefaultConfig())
	if err := d.CopyAll([]string{src}, dest, progress.NullSink{}); err != nil {
		t.Fatalf("CopyAll: %v", err)
	}

	target, err := os.Readlink(filepath.Join(dest, "srctree", "link.txt"))
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if target != "real.txt" {
		t.Fatalf("link target = %q, want real.txt", target)
	}
}

func TestCopyAllNoClobberStopsOnExistingDestination(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "srctree")
	dest := filepath.Join(root, "dest", "srctree")
	mustWriteFile(t, filepath.Join(src, "a.txt"), []byte("new"))
	mustWriteFile(t, filepath.Join(dest, "a.txt"), []byte("old"))

	cfg := DefaultConfig()
	cfg.NoClobber = true
	d := NewDriver(cfg)

	err := d.CopyAll([]string{src}, filepath.Join(root, "dest"), progress.NullSink{})
	if err == nil {
		t.Fatalf("expected NoClobber conflict to stop the copy")
	}
	var xerr *Error
	if !errors.As(err, &xerr) {
		t.Fatalf("expected *xcopy.Error, got %T", err)
	}
	if xerr.Kind != KindEarlyShutdown {
		t.Fatalf("kind = %v, want KindEarlyShutdown", xerr.Kind)
	}

	got, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	if err != nil {
		t.Fatalf("read dest a.txt: %v", err)
	}
	if string(got) != "old" {
		t.Fatalf("NoClobber should have left the existing file untouched, got %q", got)
	}
}

func TestCopyAllExcludesMatchingPatterns(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "srctree")
	dest := filepath.Join(root, "dest")
	mustWriteFile(t, filepath.Join(src, "keep.txt"), []byte("keep"))
	mustWriteFile(t, filepath.Join(src, "skip.log"), []byte("skip"))
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatalf("mkdir dest: %v", err)
	}

	cfg := DefaultConfig()
	cfg.ExcludePatterns = []string{"*.log"}
	d := NewDriver(cfg)

	if err := d.CopyAll([]string{src}, dest, progress.NullSink{}); err != nil {
		t.Fatalf("CopyAll: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "srctree", "keep.txt")); err != nil {
		t.Fatalf("expected keep.txt to be copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "srctree", "skip.log")); !os.IsNotExist(err) {
		t.Fatalf("expected skip.log to be excluded, stat err = %v", err)
	}
}

func TestCopySingleCopiesOneFile(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "one.txt")
	dest := filepath.Join(root, "dest")
	mustWriteFile(t, src, []byte("single"))
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	d := NewDriver(DefaultConfig())
	if err := d.CopySingle(src, dest, progress.NullSink{}); err != nil {
		t.Fatalf("CopySingle: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "one.txt"))
	if err != nil {
		t.Fatalf("read copied file: %v", err)
	}
	if string(got) != "single" {
		t.Fatalf("content = %q, want single", got)
	}
}

func TestCopySingleRejectsDirectory(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "adir")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	d := NewDriver(DefaultConfig())
	err := d.CopySingle(src, filepath.Join(root, "dest"), progress.NullSink{})
	if err == nil {
		t.Fatalf("expected directory source to be rejected")
	}
	var xerr *Error
	if !errors.As(err, &xerr) {
		t.Fatalf("expected *xcopy.Error, got %T", err)
	}
	if xerr.Kind != KindInvalidArguments {
		t.Fatalf("kind = %v, want KindInvalidArguments", xerr.Kind)
	}
}
