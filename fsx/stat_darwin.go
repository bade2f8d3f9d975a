// stat_darwin.go - timestamp field accessors for darwin's Stat_t layout
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

import "syscall"

func atimespec(st *syscall.Stat_t) syscall.Timespec { return st.Atimespec }
func mtimespec(st *syscall.Stat_t) syscall.Timespec { return st.Mtimespec }
