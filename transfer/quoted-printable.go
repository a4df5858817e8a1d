package transfer

import (
	"bufio"
	"bytes"
	"io"
)

const hexDigits = "0123456789ABCDEF"

// qpEncoder writes quoted-printable. Whitespace and carriage returns are held
// back until the next byte shows whether they end a line.
type qpEncoder struct {
	w   io.Writer
	lbr []byte
	max int
	col int

	ws        []byte
	pendingCR bool
}

// NewQuotedPrintableEncoder will transform all bytes written to the returned
// io.WriteCloser into quoted-printable form and write them to the given
// io.Writer.
//
// Line breaks in the data, either CRLF or LF, are written as they are. A bare
// CR is escaped. Soft line breaks use the configured break and keep lines
// within the configured length.
func NewQuotedPrintableEncoder(w io.Writer, o EncodeOptions) io.WriteCloser {
	return &qpEncoder{
		w:   w,
		lbr: o.lineBreak(),
		max: o.lineLength(),
	}
}

func (e *qpEncoder) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := e.encodeByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

func (e *qpEncoder) encodeByte(c byte) error {
	if e.pendingCR {
		e.pendingCR = false
		if c == '\n' {
			return e.hardBreak([]byte("\r\n"))
		}

		if err := e.flushSpace(false); err != nil {
			return err
		}
		if err := e.escape('\r'); err != nil {
			return err
		}
	}

	switch {
	case c == '\r':
		e.pendingCR = true
		return nil
	case c == '\n':
		return e.hardBreak([]byte{'\n'})
	case c == ' ' || c == '\t':
		e.ws = append(e.ws, c)
		return nil
	}

	if err := e.flushSpace(false); err != nil {
		return err
	}

	if c == '=' || c < ' ' || c > '~' {
		return e.escape(c)
	}
	return e.emit([]byte{c})
}

// emit writes one literal or escaped character, adding a soft break first if
// the line would grow too long to hold the '=' of a soft break.
func (e *qpEncoder) emit(tok []byte) error {
	if e.col+len(tok) > e.max-1 {
		if _, err := e.w.Write([]byte{'='}); err != nil {
			return err
		}
		if _, err := e.w.Write(e.lbr); err != nil {
			return err
		}
		e.col = 0
	}

	_, err := e.w.Write(tok)
	e.col += len(tok)
	return err
}

func (e *qpEncoder) escape(c byte) error {
	return e.emit([]byte{'=', hexDigits[c>>4], hexDigits[c&0x0f]})
}

// flushSpace writes held whitespace, escaped when it would end a line.
func (e *qpEncoder) flushSpace(atEnd bool) error {
	for _, c := range e.ws {
		var err error
		if atEnd {
			err = e.escape(c)
		} else {
			err = e.emit([]byte{c})
		}
		if err != nil {
			return err
		}
	}
	e.ws = e.ws[:0]
	return nil
}

func (e *qpEncoder) hardBreak(lbr []byte) error {
	if err := e.flushSpace(true); err != nil {
		return err
	}
	_, err := e.w.Write(lbr)
	e.col = 0
	return err
}

// Close writes anything held back. It does not close the underlying writer.
func (e *qpEncoder) Close() error {
	if e.pendingCR {
		e.pendingCR = false
		if err := e.flushSpace(false); err != nil {
			return err
		}
		if err := e.escape('\r'); err != nil {
			return err
		}
	}
	return e.flushSpace(true)
}

// qpDecoder decodes quoted-printable a line at a time.
type qpDecoder struct {
	br  *bufio.Reader
	out []byte
	err error
}

// NewQuotedPrintableDecoder will read bytes from the given io.Reader and return
// them in the returned io.Reader after decoding them from quoted-printable
// format.
//
// Trailing whitespace is removed from each line. A '=' at the end of a line
// joins it to the next. Line breaks are otherwise kept exactly. Escapes may
// use either case and a malformed escape is passed through as it is.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return &qpDecoder{br: bufio.NewReader(r)}
}

func (d *qpDecoder) Read(p []byte) (int, error) {
	for len(d.out) == 0 {
		if d.err != nil {
			return 0, d.err
		}

		line, err := d.br.ReadBytes('\n')
		if err != nil {
			d.err = err
		}
		if len(line) > 0 {
			d.out = decodeQPLine(line)
		}
	}

	n := copy(p, d.out)
	d.out = d.out[n:]
	return n, nil
}

func decodeQPLine(line []byte) []byte {
	body, lbr := splitBreak(line)
	body = bytes.TrimRight(body, " \t")
	if bytes.HasSuffix(body, []byte{'='}) {
		body = body[:len(body)-1]
		lbr = nil
	}

	out := make([]byte, 0, len(body)+len(lbr))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '=' && i+2 < len(body) && isHex(body[i+1]) && isHex(body[i+2]) {
			out = append(out, unhex(body[i+1])<<4|unhex(body[i+2]))
			i += 2
			continue
		}
		out = append(out, c)
	}

	return append(out, lbr...)
}

// splitBreak separates the trailing CRLF or LF from a line.
func splitBreak(line []byte) ([]byte, []byte) {
	if bytes.HasSuffix(line, []byte("\r\n")) {
		return line[:len(line)-2], line[len(line)-2:]
	}
	if bytes.HasSuffix(line, []byte{'\n'}) {
		return line[:len(line)-1], line[len(line)-1:]
	}
	return line, nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}
