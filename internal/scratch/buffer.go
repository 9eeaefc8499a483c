// Package scratch provides the growable byte buffers the dispatch engine
// reuses across shader compilations, per Design Note "string-heavy shader
// source assembly": "A growable byte buffer with append-formatted writes
// suffices; 4 such scratch buffers (preamble, fragment body, vertex head,
// vertex body) are reused across compilations."
package scratch

import (
	"bytes"
	"fmt"
)

// Buffer is a reusable append-only text buffer.
type Buffer struct {
	buf bytes.Buffer
}

// Reset empties the buffer for reuse, retaining its backing array.
func (b *Buffer) Reset() { b.buf.Reset() }

// WriteString appends s verbatim.
func (b *Buffer) WriteString(s string) { b.buf.WriteString(s) }

// Writef appends a formatted line, adding a trailing newline.
func (b *Buffer) Writef(format string, args ...any) {
	fmt.Fprintf(&b.buf, format, args...)
	b.buf.WriteByte('\n')
}

// String returns the accumulated text.
func (b *Buffer) String() string { return b.buf.String() }

// Len returns the number of accumulated bytes.
func (b *Buffer) Len() int { return b.buf.Len() }

// Set of four scratch buffers the dispatch engine reuses: preamble, the
// fragment/compute body, the vertex shader's declaration head, and the
// vertex shader's main body.
type Set struct {
	Preamble   Buffer
	Body       Buffer
	VertexHead Buffer
	VertexBody Buffer
}

// Reset clears all four buffers for the next compilation.
func (s *Set) Reset() {
	s.Preamble.Reset()
	s.Body.Reset()
	s.VertexHead.Reset()
	s.VertexBody.Reset()
}
