// dirset_test.go
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
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestEnsureDirCreatesNested(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "a", "b", "c")
	set := newDirSet()

	if err := ensureDir(set, target, 0755); err != nil {
		t.Fatalf("ensureDir: %v", err)
	}
	fi, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !fi.IsDir() {
		t.Fatalf("target is not a directory")
	}
}

func TestEnsureDirConcurrentCallersDontRace(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "shared")
	set := newDirSet()

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ensureDir(set, target, 0755); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("ensureDir: %v", err)
	}
}
