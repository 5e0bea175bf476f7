// Package emit renders a built Dfa as a Graphviz dot graph or as a
// self-contained C scanner header, per spec.md §6's "C code emission"
// and "Dot emission" sections.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/coregx/derivlex/dfa"
)

// buffer is a small indent-tracking line writer, mirroring the
// original emitter's own Buffer helper (indent/line/skip) rather than
// reaching for text/template for what is a few dozen fixed shapes.
type buffer struct {
	w      *bufio.Writer
	indent string
	level  int
}

func newBuffer(w io.Writer, indent int) *buffer {
	return &buffer{w: bufio.NewWriter(w), indent: strings.Repeat(" ", indent)}
}

func (b *buffer) push()   { b.level++ }
func (b *buffer) pop()    { b.level-- }
func (b *buffer) skip()   { b.w.WriteByte('\n') }
func (b *buffer) line(format string, args ...interface{}) {
	b.w.WriteString(strings.Repeat(b.indent, b.level))
	fmt.Fprintf(b.w, format, args...)
	b.w.WriteByte('\n')
}
func (b *buffer) unindented(format string, args ...interface{}) {
	fmt.Fprintf(b.w, format, args...)
	b.w.WriteByte('\n')
}
func (b *buffer) flush() error { return b.w.Flush() }

// escapeChar formats a code unit as a dot-label-safe character: the
// four characters dot and our own range notation treat specially are
// backslash-escaped, everything else goes through Go's quoting and has
// its surrounding quotes stripped.
func escapeChar(code int) string {
	c := rune(code)
	if strings.ContainsRune(`\-[]`, c) {
		return "\\" + string(c)
	}
	q := fmt.Sprintf("%q", string(c))
	return q[1 : len(q)-1]
}

type transition struct {
	lo, hi int
	target int
	tag    int
	atExit bool
}

// compressedTransitions walks a State's already-compressed Edge list
// and turns it into inclusive [lo, hi] bands with their own -1
// sentinels preserved, for callers that want to group by (target, tag).
func compressedTransitions(s *dfa.State) []transition {
	out := make([]transition, 0, len(s.Transitions))
	lo := 0
	for _, e := range s.Transitions {
		out = append(out, transition{lo: lo, hi: e.Upper - 1, target: e.Target, tag: e.Tag, atExit: e.AtExit})
		lo = e.Upper
	}
	return out
}

// Names maps a tag id to its pattern name, in the order the caller's
// make_lexer call assigned them; index i holds the name for tag id i.
type Names []string

func (n Names) nameOf(tag int) string {
	if tag < 0 || tag >= len(n) {
		return ""
	}
	return n[tag]
}
