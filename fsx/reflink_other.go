// reflink_other.go - reflink declines on platforms with no clone syscall
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

//go:build !linux && !darwin

package fsx

import "os"

// Reflink always declines; no portable clone syscall on this platform.
func (Default) Reflink(dst, src *os.File) (bool, error) {
	return false, nil
}
