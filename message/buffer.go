package message

import (
	"bytes"
	"errors"

	"github.com/zostay/go-mime/header"
)

// BufferMode reports what kind of entity a Buffer is building.
type BufferMode int

const (
	ModeUnset     BufferMode = iota // nothing written or added yet
	ModeSingle                      // content written, a leaf will be built
	ModeMultipart                   // parts added, a container will be built
)

// Panic values of Buffer.
var (
	ErrPartsBuffer  = errors.New("message buffer is in parts mode")
	ErrSingleBuffer = errors.New("message buffer is in single mode")
	ErrModeUnset    = errors.New("no message has been built")
)

// Buffer assembles a new Entity. Set header fields on it directly, then
// either write content to it or add parts to it, and finally call Entity.
//
// The first Write or SetSingle fixes the Buffer in ModeSingle, and the first
// Add or SetMultipart fixes it in ModeMultipart. Crossing over afterward
// panics with ErrSingleBuffer or ErrPartsBuffer.
type Buffer struct {
	header.Header

	mode    BufferMode
	content bytes.Buffer
	parts   []*Entity
}

func (b *Buffer) Mode() BufferMode {
	return b.mode
}

// enter switches to the given mode, panicking if the other mode was chosen
// already.
func (b *Buffer) enter(m BufferMode) {
	switch {
	case b.mode == m:
	case b.mode == ModeUnset:
		b.mode = m
	case m == ModeSingle:
		panic(ErrPartsBuffer)
	default:
		panic(ErrSingleBuffer)
	}
}

// SetMultipart enters ModeMultipart without adding a part, reserving room
// for capacity parts. This allows a container with no parts.
func (b *Buffer) SetMultipart(capacity int) {
	b.enter(ModeMultipart)
	if b.parts == nil && capacity > 0 {
		b.parts = make([]*Entity, 0, capacity)
	}
}

// SetSingle enters ModeSingle without writing anything, for empty content.
func (b *Buffer) SetSingle() {
	b.enter(ModeSingle)
}

// Add appends parts to the container being built.
func (b *Buffer) Add(parts ...*Entity) {
	b.enter(ModeMultipart)
	b.parts = append(b.parts, parts...)
}

// Write appends decoded content to the leaf being built.
func (b *Buffer) Write(p []byte) (int, error) {
	b.enter(ModeSingle)
	return b.content.Write(p)
}

// Entity builds the entity. The Buffer must not be used afterward.
//
// In ModeSingle the content becomes a leaf and is transfer encoded according
// to the header when written. In ModeMultipart the parts become a container;
// Content-Type is set to DefaultMultipartContentType if missing and a
// boundary is generated if it has none. In ModeUnset, Entity panics with
// ErrModeUnset.
func (b *Buffer) Entity() *Entity {
	switch b.mode {
	case ModeSingle:
		return NewLeaf(&b.Header, b.content.Bytes())
	case ModeMultipart:
		return NewContainer(&b.Header, b.parts...)
	default:
		panic(ErrModeUnset)
	}
}

// EntityAlreadyEncoded is Entity for content that was written already in the
// form named by Content-Transfer-Encoding. Nothing is encoded on output.
func (b *Buffer) EntityAlreadyEncoded() *Entity {
	if b.mode == ModeSingle {
		return NewEncodedLeaf(&b.Header, b.content.Bytes())
	}
	return b.Entity()
}
