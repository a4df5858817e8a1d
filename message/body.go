package message

import (
	"bytes"
	"io"

	"github.com/zostay/go-mime/header"
	"github.com/zostay/go-mime/internal/scanner"
)

// Body is the content of an Entity. It is always one of three types:
//
// * *Leaf holds content bytes.
//
// * *Container holds the child entities of a multipart body.
//
// * *Empty holds nothing, or content that has not been read yet.
//
// No other type may implement Body, so a type switch over these three is
// always complete.
type Body interface {
	// writeTo writes the wire form of the body. The header of the entity is
	// needed to pick transfer encodings and boundaries.
	writeTo(w io.Writer, h *header.Header) (int64, error)

	// isEmpty returns true if writeTo would write nothing at all.
	isEmpty() bool
}

// Empty is the body of an entity with no content. When an entity is parsed
// with the SkipBody mask, its Empty body also holds the input that has not
// been read yet, which Load on the entity will parse. Writing the entity
// copies that input out without parsing it; it stays pending.
type Empty struct {
	src   scanner.LineReader
	pr    *parser
	depth int

	// counter tallies the whole entity, header included.
	counter *scanner.Counter
}

// Pending returns true if the body still holds input that has not been
// read.
func (b *Empty) Pending() bool {
	return b.src != nil
}

// Reader returns the input that has not been read, exactly as it is. Reading
// it uses it up, after which the body is truly empty and Load does nothing.
func (b *Empty) Reader() io.Reader {
	if b.src == nil {
		return bytes.NewReader(nil)
	}
	src := b.src
	b.src = nil
	return scanner.NewReader(src)
}

// writeTo copies the unread input to w. The input is kept, so the body can
// be written again or loaded afterward.
func (b *Empty) writeTo(w io.Writer, _ *header.Header) (int64, error) {
	if b.src == nil {
		return 0, nil
	}

	rest, err := io.ReadAll(scanner.NewReader(b.src))
	b.src = scanner.NewSlice(rest)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(rest)
	return int64(n), err
}

func (b *Empty) isEmpty() bool {
	return b.src == nil
}
