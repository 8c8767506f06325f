// Package source holds the byte-accurate position machinery shared by every
// later stage of the pipeline: spans on tokens and AST nodes, and the
// offset-to-line/column map used to report them to a human or an editor.
package source

import "fmt"

// Span is a half-open byte range [Lo, Hi) into a single source document.
// It never escapes the document it was computed against.
type Span struct {
	Lo int
	Hi int
}

// NewSpan builds a span, panicking if the range is inverted. Callers always
// know lo <= hi by construction (token boundaries, or a child's first
// through a child's last token), so this is a programmer error, not a
// recoverable one.
func NewSpan(lo, hi int) Span {
	if hi < lo {
		panic(fmt.Sprintf("source: invalid span [%d, %d)", lo, hi))
	}
	return Span{Lo: lo, Hi: hi}
}

// Cover returns the smallest span containing both a and b.
func Cover(a, b Span) Span {
	lo := a.Lo
	if b.Lo < lo {
		lo = b.Lo
	}
	hi := a.Hi
	if b.Hi > hi {
		hi = b.Hi
	}
	return Span{Lo: lo, Hi: hi}
}

// Contains reports whether s fully contains other.
func (s Span) Contains(other Span) bool {
	return s.Lo <= other.Lo && other.Hi <= s.Hi
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Lo, s.Hi)
}
