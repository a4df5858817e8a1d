package header

import (
	"bytes"
	"errors"

	"github.com/zostay/go-mime/header/field"
)

// Parse will parse the given slice of bytes into a header using the given line
// break for any fields added later. It will assume the entire slice given
// represents the header to be parsed, including the blank line that ends it, if
// there is one. If the input does not end with a blank line, the header is
// treated as unterminated and will be written back out that way.
//
// If the header starts with text that cannot be a field, that text is kept
// and a *field.BadStartError is returned along with the header. The error is
// recoverable.
//
// The parsed message will have field.DoNotFoldEncoding. This allows us the code
// to round-trip without modifying the original. Use SetFoldEncoding() if this
// is something you would like to change.
func Parse(m []byte, lb Break) (*Header, error) {
	block, end := splitTerminator(m)

	lines, err := field.ParseLines(block)

	var badStartErr *field.BadStartError
	var finalErr error
	var badStart []byte
	if errors.As(err, &badStartErr) {
		finalErr = badStartErr
		badStart = badStartErr.BadStart
	} else if err != nil {
		return nil, err
	}

	fields := make([]*field.Field, len(lines))
	for i, line := range lines {
		fields[i] = field.Parse(line)
	}

	h := &Header{
		Base: Base{
			lbr:      lb,
			vf:       field.DoNotFoldEncoding,
			fields:   fields,
			badStart: badStart,
			end:      end,
			parsed:   true,
		},
	}

	return h, finalErr
}

// Verbatim returns a header that holds the given header block without making
// any fields out of it. The block is written back out as-is. This is used when
// the caller does not want the header structured at all.
func Verbatim(m []byte, lb Break) *Header {
	block, end := splitTerminator(m)
	return &Header{
		Base: Base{
			lbr:      lb,
			vf:       field.DoNotFoldEncoding,
			fields:   []*field.Field{},
			badStart: append([]byte(nil), block...),
			end:      end,
			parsed:   true,
		},
	}
}

// splitTerminator separates the blank line at the end of a header block from
// the fields before it. The terminator is empty if there is no blank line.
func splitTerminator(m []byte) ([]byte, []byte) {
	if !bytes.HasSuffix(m, []byte{'\n'}) {
		return m, []byte{}
	}

	start := bytes.LastIndexByte(m[:len(m)-1], '\n') + 1
	if IsBlankLine(m[start:]) {
		return m[:start], append([]byte(nil), m[start:]...)
	}

	return m, []byte{}
}
