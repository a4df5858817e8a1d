// Package scanner provides the line sources the message parser runs over.
// Every source hands out one line at a time with its line terminator still
// attached, so the bytes handed out can always be put back together exactly.
package scanner

import (
	"bufio"
	"bytes"
	"io"
)

// LineReader produces the lines of some input, in order. Every line keeps its
// terminator except possibly the last one. Once no bytes remain, Line returns
// io.EOF and no line. Any other error is a failure of the underlying input.
type LineReader interface {
	Line() ([]byte, error)
}

// Source is a LineReader over an io.Reader. It only ever reads forward.
type Source struct {
	br     *bufio.Reader
	offset int64
}

// NewSource returns a Source reading from r with a buffer of at least the
// given size.
func NewSource(r io.Reader, size int) *Source {
	if br, isBufio := r.(*bufio.Reader); isBufio && br.Size() >= size {
		return &Source{br: br}
	}
	return &Source{br: bufio.NewReaderSize(r, size)}
}

// Line returns the next line.
func (s *Source) Line() ([]byte, error) {
	line, err := s.br.ReadBytes('\n')
	s.offset += int64(len(line))
	if err == io.EOF && len(line) > 0 {
		return line, nil
	}
	return line, err
}

// Offset returns the number of bytes handed out so far.
func (s *Source) Offset() int64 {
	return s.offset
}

// Remainder returns a reader over everything not yet handed out.
func (s *Source) Remainder() io.Reader {
	return s.br
}

// Slice is a LineReader over a byte slice. The lines it returns share memory
// with the slice.
type Slice struct {
	b      []byte
	offset int
}

// NewSlice returns a LineReader over b.
func NewSlice(b []byte) *Slice {
	return &Slice{b: b}
}

// Line returns the next line.
func (s *Slice) Line() ([]byte, error) {
	rest := s.b[s.offset:]
	if len(rest) == 0 {
		return nil, io.EOF
	}

	n := bytes.IndexByte(rest, '\n') + 1
	if n == 0 {
		n = len(rest)
	}

	s.offset += n
	return rest[:n:n], nil
}

// Offset returns the number of bytes handed out so far.
func (s *Slice) Offset() int64 {
	return int64(s.offset)
}

// Remainder returns a reader over everything not yet handed out.
func (s *Slice) Remainder() io.Reader {
	return bytes.NewReader(s.b[s.offset:])
}

// Counter passes lines through from another LineReader while counting the
// bytes and lines that go by.
type Counter struct {
	LineReader

	Bytes int64
	Lines int
}

// Line returns the next line of the nested LineReader.
func (c *Counter) Line() ([]byte, error) {
	line, err := c.LineReader.Line()
	if len(line) > 0 {
		c.Bytes += int64(len(line))
		c.Lines++
	}
	return line, err
}

// reader turns a LineReader back into an io.Reader.
type reader struct {
	lr   LineReader
	line []byte
	err  error
}

// NewReader returns an io.Reader over the remaining lines of the given
// LineReader.
func NewReader(lr LineReader) io.Reader {
	return &reader{lr: lr}
}

func (r *reader) Read(p []byte) (int, error) {
	for len(r.line) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.line, r.err = r.lr.Line()
	}

	n := copy(p, r.line)
	r.line = r.line[n:]
	return n, nil
}
