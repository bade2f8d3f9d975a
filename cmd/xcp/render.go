// render.go - single-line terminal progress renderer
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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/docker/go-units"
	"golang.org/x/term"

	"github.com/xcpkit/xcp/progress"
)

// renderer draws a single, repeatedly-overwritten progress line and
// prints every Error update on its own line, out of the way of the
// progress line.
type renderer struct {
	out         io.Writer
	quiet       bool
	width       int
	total       uint64
	copied      uint64
	lastLineLen int
}

func newRenderer(out *os.File, quiet bool) *renderer {
	width := 80
	if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
		width = w
	}
	return &renderer{out: out, quiet: quiet, width: width}
}

func (r *renderer) update(u progress.Update) {
	switch u.Kind {
	case progress.Size:
		r.total += u.Bytes
	case progress.Copied:
		r.copied += u.Bytes
	case progress.ErrorUpdate:
		r.clearLine()
		fmt.Fprintf(r.out, "xcp: %s\n", u.Err)
	}
	if !r.quiet {
		r.draw()
	}
}

func (r *renderer) draw() {
	line := fmt.Sprintf("%s / %s copied", units.HumanSize(float64(r.copied)), units.HumanSize(float64(r.total)))
	if len(line) > r.width {
		line = line[:r.width]
	}
	r.clearLine()
	fmt.Fprint(r.out, line)
	r.lastLineLen = len(line)
}

func (r *renderer) clearLine() {
	if r.lastLineLen > 0 {
		fmt.Fprintf(r.out, "\r%s\r", spaces(r.lastLineLen))
		r.lastLineLen = 0
	}
}

func (r *renderer) finish() {
	if r.quiet {
		return
	}
	r.clearLine()
	fmt.Fprintf(r.out, "%s copied\n", units.HumanSize(float64(r.copied)))
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
