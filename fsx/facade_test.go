// facade_test.go - exercises the Default facade against the real
// filesystem; these are integration-style tests, not syscall mocks.
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
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func openPair(t *testing.T, content []byte) (src, dst *os.File, dir string) {
	t.Helper()
	dir = t.TempDir()
	srcPath := filepath.Join(dir, "src")
	if err := os.WriteFile(srcPath, content, 0644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	src, err := os.Open(srcPath)
	if err != nil {
		t.Fatalf("open src: %v", err)
	}
	dst, err = os.Create(filepath.Join(dir, "dst"))
	if err != nil {
		t.Fatalf("create dst: %v", err)
	}
	return src, dst, dir
}

func TestCopyBytesWholeFile(t *testing.T) {
	content := bytes.Repeat([]byte("abcdefgh"), 4096)
	src, dst, _ := openPair(t, content)
	defer src.Close()
	defer dst.Close()

	var d Default
	var written int64
	for written < int64(len(content)) {
		n, err := d.CopyBytes(dst, src, int64(len(content))-written)
		if err != nil {
			t.Fatalf("CopyBytes: %v", err)
		}
		if n == 0 {
			t.Fatalf("CopyBytes returned 0 bytes before completion")
		}
		written += n
	}

	got, err := os.ReadFile(dst.Name())
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("dst content mismatch: got %d bytes, want %d", len(got), len(content))
	}
}

func TestCopyBytesBounded(t *testing.T) {
	content := []byte("0123456789")
	src, dst, _ := openPair(t, content)
	defer src.Close()
	defer dst.Close()

	var d Default
	n, err := d.CopyBytes(dst, src, 4)
	if err != nil {
		t.Fatalf("CopyBytes: %v", err)
	}
	if n != 4 {
		t.Fatalf("CopyBytes bounded: got %d bytes, want 4", n)
	}
}

func TestAllocateIsBestEffort(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "alloc"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	var d Default
	if err := d.Allocate(f, 1<<20); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if err := d.Allocate(f, 0); err != nil {
		t.Fatalf("Allocate(0): %v", err)
	}
}

func TestCopyPermissionsReplicatesMode(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src")
	dstPath := filepath.Join(dir, "dst")
	if err := os.WriteFile(srcPath, []byte("x"), 0640); err != nil {
		t.Fatalf("write src: %v", err)
	}
	if err := os.WriteFile(dstPath, []byte("x"), 0600); err != nil {
		t.Fatalf("write dst: %v", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		t.Fatalf("open src: %v", err)
	}
	defer src.Close()
	dst, err := os.OpenFile(dstPath, os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open dst: %v", err)
	}
	defer dst.Close()

	var d Default
	if err := d.CopyPermissions(dst, src); err != nil {
		t.Fatalf("CopyPermissions: %v", err)
	}

	fi, err := os.Stat(dstPath)
	if err != nil {
		t.Fatalf("stat dst: %v", err)
	}
	if fi.Mode().Perm() != 0640 {
		t.Fatalf("dst perm = %o, want 0640", fi.Mode().Perm())
	}
}

func TestLstatAndIsSameFS(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	if err := os.WriteFile(a, []byte("a"), 0644); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, []byte("b"), 0644); err != nil {
		t.Fatalf("write b: %v", err)
	}

	ia, err := Lstat(a)
	if err != nil {
		t.Fatalf("Lstat a: %v", err)
	}
	ib, err := Lstat(b)
	if err != nil {
		t.Fatalf("Lstat b: %v", err)
	}
	if !ia.IsSameFS(ib) {
		t.Fatalf("expected a and b to share a device, same tmp dir")
	}
	if ia.IsDir() {
		t.Fatalf("regular file reported as directory")
	}
	if ia.Size() != 1 {
		t.Fatalf("size = %d, want 1", ia.Size())
	}
}

func TestReflinkDeclineIsNotAnError(t *testing.T) {
	content := []byte("reflink me")
	src, dst, _ := openPair(t, content)
	defer src.Close()
	defer dst.Close()

	var d Default
	ok, err := d.Reflink(dst, src)
	if err != nil {
		t.Fatalf("Reflink returned a hard error on a plain tmpfile pair: %v", err)
	}
	_ = ok
}
