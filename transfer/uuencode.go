package transfer

import (
	"bufio"
	"bytes"
	"io"
)

// uuLineBytes is the number of bytes carried by a full uuencoded line.
const uuLineBytes = 45

func uuChar(v byte) byte {
	v &= 0x3f
	if v == 0 {
		return '`'
	}
	return v + ' '
}

func uuValue(c byte) byte {
	return (c - ' ') & 0x3f
}

// uuEncoder writes the begin line, full data lines as they fill, and the
// final short line with the terminator on Close.
type uuEncoder struct {
	w       io.Writer
	lbr     []byte
	name    string
	started bool
	buf     [uuLineBytes]byte
	n       int
}

// NewUUEncoder will transform all bytes written to the returned io.WriteCloser
// into x-uuencode form and write them to the given io.Writer. The file name
// on the begin line comes from the options.
func NewUUEncoder(w io.Writer, o EncodeOptions) io.WriteCloser {
	name := o.Filename
	if name == "" {
		name = DefaultFilename
	}
	return &uuEncoder{w: w, lbr: o.lineBreak(), name: name}
}

func (e *uuEncoder) start() error {
	if e.started {
		return nil
	}
	e.started = true
	_, err := io.WriteString(e.w, "begin 644 "+e.name)
	if err == nil {
		_, err = e.w.Write(e.lbr)
	}
	return err
}

func (e *uuEncoder) Write(p []byte) (int, error) {
	if err := e.start(); err != nil {
		return 0, err
	}

	total := 0
	for len(p) > 0 {
		c := copy(e.buf[e.n:], p)
		e.n += c
		total += c
		p = p[c:]

		if e.n == uuLineBytes {
			if err := e.writeLine(); err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

func (e *uuEncoder) writeLine() error {
	line := make([]byte, 0, 2+(e.n+2)/3*4)
	line = append(line, uuChar(byte(e.n)))
	for i := 0; i < e.n; i += 3 {
		var g [3]byte
		copy(g[:], e.buf[i:e.n])
		line = append(line,
			uuChar(g[0]>>2),
			uuChar(g[0]<<4|g[1]>>4),
			uuChar(g[1]<<2|g[2]>>6),
			uuChar(g[2]),
		)
	}
	line = append(line, e.lbr...)
	e.n = 0

	_, err := e.w.Write(line)
	return err
}

// Close writes the final data line, the empty line and the end line. No
// break is written after the end line.
func (e *uuEncoder) Close() error {
	if err := e.start(); err != nil {
		return err
	}

	if e.n > 0 {
		if err := e.writeLine(); err != nil {
			return err
		}
	}

	tail := append([]byte{'`'}, e.lbr...)
	tail = append(tail, "end"...)
	_, err := e.w.Write(tail)
	return err
}

// uuDecoder decodes x-uuencode data a line at a time.
type uuDecoder struct {
	br    *bufio.Reader
	begun bool
	ended bool
	out   []byte
	err   error
}

// NewUUDecoder will read x-uuencode data from the given io.Reader and return
// the decoded bytes from the returned io.Reader. Everything before the begin
// line and after the end line is ignored. A line shorter than its length
// character promises is padded with zeros.
func NewUUDecoder(r io.Reader) io.Reader {
	return &uuDecoder{br: bufio.NewReader(r)}
}

func (d *uuDecoder) Read(p []byte) (int, error) {
	for len(d.out) == 0 {
		if d.err != nil {
			return 0, d.err
		}

		line, err := d.br.ReadBytes('\n')
		if err != nil {
			d.err = err
		}

		body, _ := splitBreak(line)
		body = bytes.TrimRight(body, " \t\r")
		switch {
		case d.ended || len(body) == 0:
		case !d.begun:
			d.begun = bytes.HasPrefix(body, []byte("begin "))
		case string(body) == "end":
			d.ended = true
		default:
			d.out = decodeUULine(body)
			if uuValue(body[0]) == 0 {
				d.ended = true
			}
		}
	}

	n := copy(p, d.out)
	d.out = d.out[n:]
	return n, nil
}

func decodeUULine(body []byte) []byte {
	n := int(uuValue(body[0]))
	data := body[1:]

	out := make([]byte, 0, (len(data)+3)/4*3)
	for i := 0; len(out) < n; i += 4 {
		var g [4]byte
		for j := range g {
			if i+j < len(data) {
				g[j] = uuValue(data[i+j])
			}
		}
		out = append(out,
			g[0]<<2|g[1]>>4,
			g[1]<<4|g[2]>>2,
			g[2]<<6|g[3],
		)
	}

	return out[:n]
}
