package scanner

import (
	"bytes"
	"io"
)

// Delimiter identifies a line of a multipart body.
type Delimiter int

const (
	NotDelimiter Delimiter = iota // an ordinary line
	Opening                       // --boundary
	Closing                       // --boundary--
)

// TrimBreak returns the line without its terminating CRLF or LF.
func TrimBreak(line []byte) []byte {
	if bytes.HasSuffix(line, []byte("\r\n")) {
		return line[:len(line)-2]
	}
	if bytes.HasSuffix(line, []byte{'\n'}) {
		return line[:len(line)-1]
	}
	return line
}

// MatchDelimiter reports whether the line is a delimiter for the given
// boundary. The line terminator and any spaces or tabs before it are ignored.
// What is left must be exactly "--" and the boundary, with a final "--" for a
// closing delimiter. A line that merely starts with the delimiter is not one.
func MatchDelimiter(line []byte, boundary string) Delimiter {
	body := bytes.TrimRight(TrimBreak(line), " \t")
	if len(body) < 2+len(boundary) ||
		body[0] != '-' || body[1] != '-' ||
		string(body[2:2+len(boundary)]) != boundary {
		return NotDelimiter
	}

	switch string(body[2+len(boundary):]) {
	case "":
		return Opening
	case "--":
		return Closing
	}
	return NotDelimiter
}

// Section is a LineReader that returns the lines of another LineReader up to
// the next delimiter line of a boundary. The delimiter itself is not returned.
// The line break just before a delimiter belongs to the delimiter, so it is
// removed from the last line returned and kept with the delimiter instead.
//
// Once the section ends, Delimiter returns the bytes that ended it and Kind
// says what sort of delimiter that was. A section ended by the end of input
// has no delimiter.
type Section struct {
	src      LineReader
	boundary string

	next    []byte
	nextErr error
	hasNext bool

	done  bool
	err   error
	delim []byte
	kind  Delimiter
}

// NewSection starts a section reading from src and stopping at the next
// delimiter for boundary.
func NewSection(src LineReader, boundary string) *Section {
	return &Section{src: src, boundary: boundary}
}

func (s *Section) read() ([]byte, error) {
	if s.hasNext {
		s.hasNext = false
		return s.next, s.nextErr
	}
	return s.src.Line()
}

func (s *Section) end(delim []byte, kind Delimiter) {
	s.done = true
	s.err = io.EOF
	s.delim = delim
	s.kind = kind
}

// Line returns the next line of the section. It returns io.EOF when the
// section has ended.
func (s *Section) Line() ([]byte, error) {
	if s.done {
		return nil, s.err
	}

	line, err := s.read()
	if err != nil {
		s.done = true
		s.err = err
		return line, err
	}

	if kind := MatchDelimiter(line, s.boundary); kind != NotDelimiter {
		s.end(append([]byte(nil), line...), kind)
		return nil, io.EOF
	}

	next, err := s.src.Line()
	if err == nil {
		if kind := MatchDelimiter(next, s.boundary); kind != NotDelimiter {
			body := TrimBreak(line)
			delim := make([]byte, 0, len(line)-len(body)+len(next))
			delim = append(delim, line[len(body):]...)
			delim = append(delim, next...)
			s.end(delim, kind)

			if len(body) == 0 {
				return nil, io.EOF
			}
			return body, nil
		}
	}

	s.next, s.nextErr, s.hasNext = next, err, true
	return line, nil
}

// Drain reads and discards whatever is left of the section. It returns an
// error only if the underlying input fails.
func (s *Section) Drain() error {
	for {
		_, err := s.Line()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

// Done returns true once the section has ended.
func (s *Section) Done() bool {
	return s.done
}

// Delimiter returns the exact bytes of the delimiter that ended the section,
// including the line break that preceded it. It is nil if the section has not
// ended or ended without a delimiter.
func (s *Section) Delimiter() []byte {
	return s.delim
}

// Kind returns the kind of delimiter that ended the section.
func (s *Section) Kind() Delimiter {
	return s.kind
}

// Err returns the input failure that ended the section, if any.
func (s *Section) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}
