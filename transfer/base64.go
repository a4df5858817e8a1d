package transfer

import (
	"encoding/base64"
	"io"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// base64Values maps each byte to its 6-bit value, or 0xff for bytes that are
// not part of the alphabet.
var base64Values = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 0xff
	}
	for i := 0; i < len(base64Alphabet); i++ {
		t[base64Alphabet[i]] = byte(i)
	}
	return t
}()

// NewBase64Encoder will translate all bytes written to the returned
// io.WriteCloser into base64 encoding and write those to the given io.Writer.
// Lines are wrapped at the configured length with the configured break between
// them. No break is written after the last line.
func NewBase64Encoder(w io.Writer, o EncodeOptions) io.WriteCloser {
	enc := base64.NewEncoder(base64.StdEncoding, &lineWrapper{
		every: o.lineLength() / 4 * 4,
		lbr:   o.lineBreak(),
		w:     w,
	})
	return &writer{enc, enc}
}

// base64Decoder decodes base64 while skipping every byte outside the
// alphabet. Padding is optional: a partial group is decoded at a '=' or at the
// end of input, and extra '=' are ignored.
type base64Decoder struct {
	r    io.Reader
	in   [1024]byte
	out  []byte
	quad [4]byte
	nq   int
	err  error
}

// NewBase64Decoder will translate all bytes read from the given io.Reader as
// base64 and return the binary data to the returned io.Reader. Line breaks,
// whitespace and other junk in the input are ignored.
func NewBase64Decoder(r io.Reader) io.Reader {
	return &base64Decoder{r: r}
}

func (d *base64Decoder) Read(p []byte) (int, error) {
	for len(d.out) == 0 {
		if d.err != nil {
			return 0, d.err
		}

		n, err := d.r.Read(d.in[:])
		out := make([]byte, 0, n/4*3+3)
		for _, c := range d.in[:n] {
			if c == '=' {
				out = d.flush(out)
				continue
			}

			v := base64Values[c]
			if v == 0xff {
				continue
			}

			d.quad[d.nq] = v
			d.nq++
			if d.nq == 4 {
				out = d.flush(out)
			}
		}

		if err != nil {
			if err == io.EOF {
				out = d.flush(out)
			}
			d.err = err
		}

		d.out = out
	}

	n := copy(p, d.out)
	d.out = d.out[n:]
	return n, nil
}

// flush decodes the group collected so far. A lone character carries less
// than a byte and is dropped.
func (d *base64Decoder) flush(out []byte) []byte {
	q := d.quad
	v := uint(q[0])<<18 | uint(q[1])<<12 | uint(q[2])<<6 | uint(q[3])
	switch d.nq {
	case 4:
		out = append(out, byte(v>>16), byte(v>>8), byte(v))
	case 3:
		out = append(out, byte(v>>16), byte(v>>8))
	case 2:
		out = append(out, byte(v>>16))
	}
	d.nq = 0
	d.quad = [4]byte{}
	return out
}
