package message

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/zostay/go-mime/header"
	"github.com/zostay/go-mime/header/param"
	"github.com/zostay/go-mime/internal/sink"
	"github.com/zostay/go-mime/transfer"
)

// Leaf is a body holding content bytes.
//
// Normally the bytes are the decoded content and the transfer encoding named
// by the entity header is applied when the entity is written. When the parse
// skipped decoding or the transfer encoding is not supported, the bytes are
// kept in wire form instead and written back exactly as they are. IsEncoded
// tells the two apart.
type Leaf struct {
	content  []byte
	encoding string
	encoded  bool

	// tail is whitespace after the encoded data that the encoder would not
	// write back.
	tail []byte

	// opts are the encoding options matching the input.
	opts transfer.EncodeOptions

	reg *transfer.Registry
}

func (l *Leaf) registry() *transfer.Registry {
	if l.reg == nil {
		return transfer.DefaultRegistry
	}
	return l.reg
}

// Encoding returns the transfer encoding the content was decoded from, or
// that it is still encoded with.
func (l *Leaf) Encoding() string {
	return l.encoding
}

// IsEncoded returns true if the bytes held are still in wire form.
func (l *Leaf) IsEncoded() bool {
	return l.encoded
}

// Content returns the decoded content. If the content is held in wire form,
// it is decoded now. If the transfer encoding is not supported, this fails
// with ErrUnsupportedEncoding and the bytes are only available from Raw.
func (l *Leaf) Content() ([]byte, error) {
	if !l.encoded {
		return l.content, nil
	}

	c, err := l.registry().Lookup(l.encoding)
	if err != nil {
		return nil, err
	}

	return io.ReadAll(c.Decoder(bytes.NewReader(l.content)))
}

// Raw returns the content in wire form, encoding it now if needed.
func (l *Leaf) Raw() ([]byte, error) {
	if l.encoded {
		return l.content, nil
	}

	buf := &bytes.Buffer{}
	if _, err := l.encodeTo(buf, l.encoding, l.opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Reader returns a reader over the decoded content. If the transfer encoding
// is not supported, the reader returns the raw bytes.
func (l *Leaf) Reader() io.Reader {
	if content, err := l.Content(); err == nil {
		return bytes.NewReader(content)
	}
	return bytes.NewReader(l.content)
}

// SetContent replaces the content with the given decoded bytes. They are
// encoded with the transfer encoding of the entity when written.
func (l *Leaf) SetContent(content []byte) {
	l.content = content
	l.encoded = false
	l.tail = nil
}

// SetRaw replaces the content with bytes that are already in wire form.
// They are written exactly as given.
func (l *Leaf) SetRaw(raw []byte) {
	l.content = raw
	l.encoded = true
	l.tail = nil
}

func (l *Leaf) encodeTo(w io.Writer, token string, opts transfer.EncodeOptions) (int64, error) {
	c, err := l.registry().Lookup(token)
	if err != nil {
		return 0, err
	}

	count := &sink.Counter{}
	enc := c.Encoder(io.MultiWriter(w, count), opts)
	if _, err := enc.Write(l.content); err != nil {
		return count.Bytes(), err
	}
	if err := enc.Close(); err != nil {
		return count.Bytes(), err
	}

	if transfer.Normalize(token) == transfer.Normalize(l.encoding) {
		n, err := w.Write(l.tail)
		return count.Bytes() + int64(n), err
	}

	return count.Bytes(), nil
}

func (l *Leaf) writeTo(w io.Writer, h *header.Header) (int64, error) {
	if l.encoded {
		n, err := w.Write(l.content)
		return int64(n), err
	}

	opts := transfer.OptionsFor(h)
	if len(l.opts.Break) > 0 {
		opts.Break = l.opts.Break
	}

	n, err := l.encodeTo(w, h.TransferEncoding(), opts)
	if err != nil {
		return n, fmt.Errorf("unable to encode body: %w", err)
	}
	return n, nil
}

func (l *Leaf) isEmpty() bool {
	return l.encoded && len(l.content) == 0
}

// NewLeaf returns an entity with the given header and a body holding the given
// decoded content. The content is encoded according to the
// Content-Transfer-Encoding of the header when written. The entity gets its
// own copy of the header, so later changes to h do not reach it. A nil header
// gets an empty one.
func NewLeaf(h *header.Header, content []byte) *Entity {
	return newLeaf(h, content, false)
}

// NewEncodedLeaf works just like NewLeaf, but the content given is already
// in wire form and is written as it is.
func NewEncodedLeaf(h *header.Header, raw []byte) *Entity {
	return newLeaf(h, raw, true)
}

func newLeaf(h *header.Header, content []byte, encoded bool) *Entity {
	if h == nil {
		h = &header.Header{}
	}
	h = h.Clone()

	e := &Entity{
		Header: *h,
		body: &Leaf{
			content:  content,
			encoding: h.TransferEncoding(),
			encoded:  encoded,
			opts:     transfer.OptionsFor(h),
		},
	}
	_ = e.Measure()
	return e
}

// AttachmentFile is a constructor that will create an Entity from the given
// filename and MIME type. This will read the given file path from the disk,
// make that filename the name of an attachment, and return it. It will return
// an error if there's a problem reading the file from the disk.
//
// If the MIME type is empty, it is detected from the content of the file.
//
// The last argument is the transfer encoding to use. Use transfer.None if you
// do not want to set a transfer encoding.
func AttachmentFile(fn, mt, te string) (*Entity, error) {
	content, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}

	h := &header.Header{}
	if mt == "" {
		h.SetContentType(param.Parse(mimetype.Detect(content).String()))
	} else {
		h.SetMediaType(mt)
	}

	h.SetPresentation("attachment")
	_ = h.SetFilename(filepath.Base(fn))

	if te != transfer.None {
		h.SetTransferEncoding(te)
	}

	return NewLeaf(h, content), nil
}
