package transfer

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/zostay/go-mime/header"
)

const (
	None            = ""                 // same as 7bit
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes will be transformed between quoted-printable and binary data
	Base64          = "base64"           // bytes will be transformed between base64 and binary data
	UUEncode        = "x-uuencode"       // bytes will be transformed between uuencoded data and binary data
)

// DefaultLineLength is the longest line written by the encoders that wrap.
const DefaultLineLength = 76

// DefaultFilename is written on the begin line of x-uuencode data when no
// file name is known.
const DefaultFilename = "noname"

// ErrUnsupportedEncoding is returned when a transfer encoding token has no
// codec.
var ErrUnsupportedEncoding = errors.New("unsupported transfer encoding")

// EncodeOptions adjusts the output of an encoder.
type EncodeOptions struct {
	// Break is the line break to put between lines. CRLF is used when it is
	// empty.
	Break []byte

	// LineLength is the longest line to write. DefaultLineLength is used when
	// it is zero.
	LineLength int

	// Filename is placed on the begin line of x-uuencode data.
	Filename string
}

func (o EncodeOptions) lineBreak() []byte {
	if len(o.Break) == 0 {
		return header.CRLF.Bytes()
	}
	return o.Break
}

func (o EncodeOptions) lineLength() int {
	if o.LineLength <= 0 {
		return DefaultLineLength
	}
	return o.LineLength
}

// Codec is a pair of functions that can be used to transform to and from a
// transfer encoding.
type Codec struct {
	// Encoder returns an io.WriteCloser, which will encode binary data and
	// write the encoded form to the given io.Writer. You must call Close() on
	// the returned io.WriteCloser when you are finished. Closing it does not
	// close the given io.Writer.
	Encoder func(io.Writer, EncodeOptions) io.WriteCloser

	// Decoder returns an io.Reader, which will read from the given io.Reader
	// when read and decode the encoded data back into binary form.
	Decoder func(io.Reader) io.Reader

	// DropsWhitespace is true for codecs whose decoder ignores whitespace
	// at the end of the encoded data, so the encoder never writes any.
	DropsWhitespace bool
}

// AsIs is just a shortcut to a no-op encoder/decoder.
var AsIs = Codec{NewAsIsEncoder, NewAsIsDecoder, false}

// Registry maps transfer encoding tokens to codecs. A Registry cannot be
// changed once made, so one may be shared by any number of goroutines.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry returns a registry serving the given codecs. Tokens are matched
// without regard to case or surrounding whitespace.
func NewRegistry(codecs map[string]Codec) *Registry {
	r := &Registry{codecs: make(map[string]Codec, len(codecs))}
	for token, c := range codecs {
		r.codecs[Normalize(token)] = c
	}
	return r
}

// DefaultRegistry holds the codecs for every encoding this package provides.
var DefaultRegistry = NewRegistry(map[string]Codec{
	Bit7:            AsIs,
	Bit8:            AsIs,
	Binary:          AsIs,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder, false},
	Base64:          {NewBase64Encoder, NewBase64Decoder, true},
	UUEncode:        {NewUUEncoder, NewUUDecoder, true},
	"x-uue":         {NewUUEncoder, NewUUDecoder, true},
	"uuencode":      {NewUUEncoder, NewUUDecoder, true},
})

// Normalize trims and lowercases a transfer encoding token. The empty token
// becomes 7bit.
func Normalize(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == None {
		return Bit7
	}
	return token
}

// Lookup returns the codec for the given token. It fails with
// ErrUnsupportedEncoding if there is none.
func (r *Registry) Lookup(token string) (Codec, error) {
	c, found := r.codecs[Normalize(token)]
	if !found {
		return Codec{}, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, strings.TrimSpace(token))
	}
	return c, nil
}

// Tokens lists the tokens served, sorted.
func (r *Registry) Tokens() []string {
	ts := make([]string, 0, len(r.codecs))
	for t := range r.codecs {
		ts = append(ts, t)
	}
	sort.Strings(ts)
	return ts
}

// Lookup returns the codec for the given token from the DefaultRegistry.
func Lookup(token string) (Codec, error) {
	return DefaultRegistry.Lookup(token)
}

// OptionsFor returns the EncodeOptions matching the given header: the header's
// line break and a file name from the Content-Disposition or Content-Type
// header.
func OptionsFor(h *header.Header) EncodeOptions {
	name, err := h.GetFilename()
	if err != nil || name == "" {
		if ct, _ := h.GetContentType(); ct != nil {
			name = ct.Name()
		}
	}
	if name == "" {
		name = DefaultFilename
	}

	return EncodeOptions{
		Break:    h.Break().Bytes(),
		Filename: name,
	}
}

// isMultipart returns true if the header declares a multipart type, which is
// never transfer encoded.
func isMultipart(h *header.Header) bool {
	ct, _ := h.GetContentType()
	return ct != nil && ct.Type() == "multipart"
}

// ApplyTransferEncoding is a helper that will check the given header to see if
// transfer encoding ought to be performed. It will return an io.WriteCloser that
// will write the encoding (or just pass data through if no encoding is
// necessary).
//
// If the encoding is not supported, the data is passed through and
// ErrUnsupportedEncoding is returned alongside the io.WriteCloser.
//
// You must call Close() on the returned io.WriteCloser when you are finished
// writing.
func (r *Registry) ApplyTransferEncoding(h *header.Header, w io.Writer) (io.WriteCloser, error) {
	if isMultipart(h) {
		return &writer{w, nil}, nil
	}

	c, err := r.Lookup(h.TransferEncoding())
	if err != nil {
		return &writer{w, nil}, err
	}

	return c.Encoder(w, OptionsFor(h)), nil
}

// ApplyTransferDecoding returns an io.Reader that will modify incoming bytes
// according to the transfer encoding detected from the given header. (Or the
// io.Reader will leave the bytes as is if there's no transfer encoding or the
// transfer encoding is one that is interpreted as-is).
//
// If the encoding is not supported, the bytes are left as-is and
// ErrUnsupportedEncoding is returned alongside the io.Reader.
func (r *Registry) ApplyTransferDecoding(h *header.Header, rd io.Reader) (io.Reader, error) {
	if isMultipart(h) {
		return rd, nil
	}

	c, err := r.Lookup(h.TransferEncoding())
	if err != nil {
		return rd, err
	}

	return c.Decoder(rd), nil
}

// ApplyTransferEncoding calls ApplyTransferEncoding on the DefaultRegistry.
func ApplyTransferEncoding(h *header.Header, w io.Writer) (io.WriteCloser, error) {
	return DefaultRegistry.ApplyTransferEncoding(h, w)
}

// ApplyTransferDecoding calls ApplyTransferDecoding on the DefaultRegistry.
func ApplyTransferDecoding(h *header.Header, r io.Reader) (io.Reader, error) {
	return DefaultRegistry.ApplyTransferDecoding(h, r)
}
