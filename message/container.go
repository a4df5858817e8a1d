package message

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/zostay/go-mime/header"
)

// DefaultMultipartContentType is the Content-Type to use with a multipart
// entity when no explicit Content-Type header has been set.
const DefaultMultipartContentType = "multipart/mixed"

// ErrIndexOutOfRange is returned when a part index is too large or too small.
var ErrIndexOutOfRange = errors.New("part index is out of range")

// Container is the body of a multipart entity: an ordered list of child
// entities separated by delimiters built from a boundary.
//
// The bytes before the first delimiter (the preamble) and after the closing
// delimiter (the epilogue) are kept exactly. So are the delimiters of a parsed
// body, including the line break before each one and any padding after it.
// Together these let an unmodified body be written back exactly as it was
// read. Parts added later get delimiters made from the boundary and the line
// break of the header.
//
// Each child belongs to this container alone. Adding an entity that is
// already a part of another container shares it between the two, which is
// not supported.
type Container struct {
	boundary string
	preamble []byte
	parts    []*Entity

	// delims[i] is the delimiter written before parts[i]. A nil delimiter is
	// generated.
	delims [][]byte

	// closing is the closing delimiter. It is generated when nil unless open
	// is set, in which case no closing delimiter is written at all.
	closing []byte
	open    bool

	epilogue []byte
}

// Boundary returns the boundary this body was parsed or built with.
func (c *Container) Boundary() string {
	return c.boundary
}

// Parts returns the child entities. The returned slice must not be modified.
func (c *Container) Parts() []*Entity {
	return c.parts
}

// Len returns the number of child entities.
func (c *Container) Len() int {
	return len(c.parts)
}

// Part returns the nth child entity, counting from 0.
func (c *Container) Part(n int) (*Entity, error) {
	if n < 0 || n >= len(c.parts) {
		return nil, ErrIndexOutOfRange
	}
	return c.parts[n], nil
}

// Add appends child entities.
func (c *Container) Add(parts ...*Entity) {
	for _, p := range parts {
		c.parts = append(c.parts, p)
		c.delims = append(c.delims, nil)
	}
}

// Insert puts a child entity before the nth one. Inserting at Len() appends.
func (c *Container) Insert(n int, part *Entity) error {
	if n < 0 || n > len(c.parts) {
		return ErrIndexOutOfRange
	}

	c.parts = append(c.parts, nil)
	copy(c.parts[n+1:], c.parts[n:])
	c.parts[n] = part

	c.delims = append(c.delims, nil)
	copy(c.delims[n+1:], c.delims[n:])
	c.delims[n] = nil

	// the delimiter that followed the old part n may have depended on what came
	// before it
	if n+1 < len(c.delims) {
		c.delims[n+1] = nil
	}

	return nil
}

// Remove detaches the nth child entity and returns it.
func (c *Container) Remove(n int) (*Entity, error) {
	if n < 0 || n >= len(c.parts) {
		return nil, ErrIndexOutOfRange
	}

	part := c.parts[n]
	c.parts = append(c.parts[:n], c.parts[n+1:]...)
	c.delims = append(c.delims[:n], c.delims[n+1:]...)
	if n < len(c.delims) {
		c.delims[n] = nil
	}

	return part, nil
}

// Preamble returns the bytes before the first delimiter.
func (c *Container) Preamble() []byte {
	return c.preamble
}

// SetPreamble replaces the bytes before the first delimiter.
func (c *Container) SetPreamble(p []byte) {
	c.preamble = p
	if len(c.delims) > 0 {
		c.delims[0] = nil
	}
}

// Epilogue returns the bytes after the closing delimiter.
func (c *Container) Epilogue() []byte {
	return c.epilogue
}

// SetEpilogue replaces the bytes after the closing delimiter.
func (c *Container) SetEpilogue(e []byte) {
	c.epilogue = e
}

// IsClosed returns false if the body was parsed from input that ended before
// the closing delimiter. Such a body is written back without one.
func (c *Container) IsClosed() bool {
	return !c.open
}

// Close makes sure a closing delimiter is written.
func (c *Container) Close() {
	c.open = false
}

func (c *Container) writeTo(w io.Writer, h *header.Header) (int64, error) {
	boundary := c.boundary
	reuse := true
	if b, err := h.GetBoundary(); err == nil && b != "" && b != boundary {
		boundary = b
		reuse = false
	}

	lb := h.Break().Bytes()
	total := int64(0)
	write := func(p []byte) error {
		n, err := w.Write(p)
		total += int64(n)
		return err
	}

	if err := write(c.preamble); err != nil {
		return total, err
	}

	for i, part := range c.parts {
		var delim []byte
		if reuse && i < len(c.delims) {
			delim = c.delims[i]
		}
		if delim == nil {
			delim = c.delimiter(boundary, lb, i > 0 || len(c.preamble) > 0, false)
		}

		if err := write(delim); err != nil {
			return total, err
		}

		n, err := part.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}

	if !c.open {
		closing := c.closing
		if !reuse || closing == nil {
			closing = c.delimiter(boundary, lb, len(c.parts) > 0 || len(c.preamble) > 0, true)
		}

		if err := write(closing); err != nil {
			return total, err
		}
	}

	err := write(c.epilogue)
	return total, err
}

// delimiter makes a new delimiter. A line break is put before it when
// something was written before it. Opening delimiters end with a line break,
// the closing delimiter does not.
func (c *Container) delimiter(boundary string, lb []byte, after, closing bool) []byte {
	buf := &bytes.Buffer{}
	if after {
		buf.Write(lb)
	}
	buf.WriteString("--")
	buf.WriteString(boundary)
	if closing {
		buf.WriteString("--")
	} else {
		buf.Write(lb)
	}
	return buf.Bytes()
}

func (c *Container) isEmpty() bool {
	return false
}

// NewContainer returns a multipart entity with a copy of the given header and
// the given parts. If the header has no Content-Type, it is set to
// DefaultMultipartContentType. If the Content-Type has no boundary, one is
// generated with GenerateSafeBoundary so that it appears in none of the
// parts. The caller's header is never changed. A nil header gets an empty
// one.
func NewContainer(h *header.Header, parts ...*Entity) *Entity {
	if h == nil {
		h = &header.Header{}
	}
	h = h.Clone()

	if _, err := h.GetMediaType(); errors.Is(err, header.ErrNoSuchField) {
		h.SetMediaType(DefaultMultipartContentType)
	}

	boundary, err := h.GetBoundary()
	if err != nil || boundary == "" {
		boundary = GenerateSafeBoundary(joinParts(parts))
		_ = h.SetBoundary(boundary)
	}

	c := &Container{boundary: boundary}
	c.Add(parts...)

	e := &Entity{Header: *h, body: c}
	_ = e.Measure()
	return e
}

// joinParts returns the wire form of all the parts run together.
func joinParts(parts []*Entity) string {
	var sb strings.Builder
	for _, p := range parts {
		_, _ = p.WriteTo(&sb)
	}
	return sb.String()
}

func newContainer(mt string, parts []*Entity) *Entity {
	h := &header.Header{}
	h.SetMediaType(mt)
	return NewContainer(h, parts...)
}

// MultipartMixed returns a multipart/mixed entity with the given parts.
func MultipartMixed(parts ...*Entity) *Entity {
	return newContainer("multipart/mixed", parts)
}

// MultipartAlternative returns a multipart/alternative entity with the given
// parts.
func MultipartAlternative(parts ...*Entity) *Entity {
	return newContainer("multipart/alternative", parts)
}
