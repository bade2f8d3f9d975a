// dirset.go - concurrency-safe set of directories already created
// (spec §4.D step 1's "create eagerly" requirement, generalized across
// multiple source roots processed in one CopyAll call)
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

	"github.com/puzpuzpuz/xsync/v3"
)

// dirSet tracks which destination directories have already been
// created by some walker, so copying several source roots that share
// an ancestor destination directory doesn't race on MkdirAll.
type dirSet = xsync.MapOf[string, struct{}]

func newDirSet() *dirSet {
	return xsync.NewMapOf[string, struct{}]()
}

// ensureDir creates dir and all missing ancestors, skipping MkdirAll
// for a dir already recorded in set. Concurrent calls for the same path
// are safe, but each of them may call MkdirAll before one records it.
func ensureDir(set *dirSet, dir string, mode os.FileMode) error {
	if _, ok := set.Load(dir); ok {
		return nil
	}
	if err := os.MkdirAll(dir, mode); err != nil {
		return err
	}
	set.Store(dir, struct{}{})
	return nil
}
