// Package sink adapts byte consumers to io.Writer and counts what is written
// through it.
package sink

import "io"

// Writer is an io.Writer that hands every byte to an io.ByteWriter.
type Writer struct {
	w io.ByteWriter
	n int64
}

// New returns a Writer feeding w.
func New(w io.ByteWriter) *Writer {
	return &Writer{w: w}
}

// Write passes each byte of p to the io.ByteWriter in turn, stopping at the
// first error.
func (s *Writer) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := s.w.WriteByte(c); err != nil {
			return i, err
		}
		s.n++
	}
	return len(p), nil
}

// Count returns the number of bytes accepted so far.
func (s *Writer) Count() int64 {
	return s.n
}

// Counter is an io.Writer that keeps nothing, but counts the bytes and lines
// written to it.
type Counter struct {
	bytes  int64
	breaks int
	open   bool
}

// Write counts p.
func (c *Counter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			c.breaks++
			c.open = false
		} else {
			c.open = true
		}
	}
	c.bytes += int64(len(p))
	return len(p), nil
}

// Bytes returns the number of bytes written.
func (c *Counter) Bytes() int64 {
	return c.bytes
}

// Lines returns the number of lines written. A final line without a line
// break counts.
func (c *Counter) Lines() int {
	if c.open {
		return c.breaks + 1
	}
	return c.breaks
}
