package field

import (
	"bytes"
)

// BadStartError is returned when the header begins with junk text that does not
// appear to be a header. This text is preserved in the error object.
type BadStartError struct {
	BadStart []byte // the text skipped at the start of header
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header"
}

// Line represents the unparsed content for a complete header field line,
// including all continuation lines and line breaks.
type Line []byte

// Lines represents the unparsed content for zero or more header field
// lines.
type Lines []Line

// ParseLines splits the given header block into logical field lines. Every
// line of input is kept with its line break, so joining the result (and the
// bytes of any BadStartError) gives back the input exactly. Lines are ended by
// LF, which also covers CRLF.
//
// A line that starts with a space or tab is a continuation of the previous
// field. A line without a colon is treated the same way, since that cannot
// start a field. If the first line (or lines) of input look like
// continuations, they are skipped and returned inside a BadStartError, which
// the caller may choose to treat as recoverable.
func ParseLines(m []byte) (Lines, error) {
	h := make(Lines, 0, len(m)/80+1)
	var err *BadStartError
	for _, line := range bytes.SplitAfter(m, []byte{'\n'}) {
		if len(line) == 0 {
			break
		}

		if line[0] == '\t' || line[0] == ' ' || bytes.IndexByte(line, ':') < 0 {
			if len(h) == 0 {
				if err != nil {
					err.BadStart = append(err.BadStart, line...)
				} else {
					err = &BadStartError{append([]byte(nil), line...)}
				}
				continue
			}

			h[len(h)-1] = append(h[len(h)-1], line...)
		} else {
			h = append(h, Line(append([]byte(nil), line...)))
		}
	}

	if err != nil {
		return h, err
	}
	return h, nil
}

// trimBreak returns the index at which the trailing line break of line
// starts.
func trimBreak(line []byte) int {
	end := len(line)
	if end > 0 && line[end-1] == '\n' {
		end--
	}
	if end > 0 && line[end-1] == '\r' {
		end--
	}
	return end
}

// Parse takes a single logical header field line, including any folded
// continuation lines and its line break, and builds a Field from it. The name
// is everything before the first colon. The body is the rest, unfolded and
// trimmed. A line without a colon becomes a field whose name is the whole
// line and whose body is empty.
func Parse(f Line) *Field {
	end := trimBreak(f)
	content := f[:end]

	ix := bytes.IndexByte(content, ':')
	off := 1
	if ix < 0 {
		ix = len(content)
		off = 0
	}

	name := string(bytes.TrimSpace(Unfold(content[:ix])))
	body := string(bytes.TrimSpace(Unfold(content[ix+off:])))

	colon := ix
	if off == 0 {
		colon = len(f)
	}

	return &Field{
		Base: Base{name, body},
		Raw:  &Raw{f, colon, end},
	}
}
