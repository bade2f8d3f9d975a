// reflink_darwin.go - reflink declines on darwin under this facade
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

//go:build darwin

package fsx

import "os"

// Reflink always declines on darwin.
//
// clonefile(2) takes paths (not file descriptors) and requires the
// destination to not yet exist. This facade is handed an already
// open, already created destination descriptor (CopyHandle opens
// both descriptors before attempting a clone), so darwin's clone
// primitive can't be applied here without reordering construction.
// Declining is a true "filesystem capability absent for this code
// path", not a fabricated success.
func (Default) Reflink(dst, src *os.File) (bool, error) {
	return false, nil
}
