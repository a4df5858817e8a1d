package message

import (
	"bytes"
	"io"

	"github.com/zostay/go-mime/header"
	"github.com/zostay/go-mime/internal/sink"
)

// Entity is one node of a MIME message: a header and a body. The top-level
// message is an entity and so is every part of a multipart message.
//
// An entity owns its body and, through a *Container body, all of its child
// entities. Entities have no link to their parent. Use the walk package to
// visit a tree with the ancestry of each entity at hand.
type Entity struct {
	// Header is the header of the entity.
	header.Header

	body Body

	lines int
	size  int64
}

// New returns a blank entity with an empty header and an *Empty body.
func New() *Entity {
	return &Entity{body: &Empty{}}
}

// GetHeader returns the header of the entity.
func (e *Entity) GetHeader() *header.Header {
	return &e.Header
}

// Body returns the body of the entity, which is a *Leaf, *Container, or
// *Empty.
func (e *Entity) Body() Body {
	if e.body == nil {
		e.body = &Empty{}
	}
	return e.body
}

// SetBody replaces the body of the entity. A nil body becomes *Empty.
func (e *Entity) SetBody(b Body) {
	if b == nil {
		b = &Empty{}
	}
	e.body = b
}

// IsMultipart returns true if the body is a *Container.
func (e *Entity) IsMultipart() bool {
	_, isContainer := e.body.(*Container)
	return isContainer
}

// Leaf returns the body as a *Leaf or nil if it is something else.
func (e *Entity) Leaf() *Leaf {
	l, _ := e.body.(*Leaf)
	return l
}

// Container returns the body as a *Container or nil if it is something
// else.
func (e *Entity) Container() *Container {
	c, _ := e.body.(*Container)
	return c
}

// Parts returns the child entities if the body is a *Container and nil
// otherwise.
func (e *Entity) Parts() []*Entity {
	if c := e.Container(); c != nil {
		return c.Parts()
	}
	return nil
}

// Lines returns the number of lines the entity took up in the input it was
// parsed from. For entities made some other way, it is the number of lines
// found by the last call to Measure. It is not updated when the entity
// changes.
func (e *Entity) Lines() int {
	return e.lines
}

// Size returns the number of bytes the entity took up in the input it was
// parsed from. For entities made some other way, it is the number of bytes
// found by the last call to Measure. It is not updated when the entity
// changes.
func (e *Entity) Size() int64 {
	return e.size
}

// Measure recounts Lines and Size for this entity and every entity below it
// by serializing the whole tree. This is slow. A body that has not been read
// yet is loaded first.
func (e *Entity) Measure() error {
	if err := e.Load(); err != nil {
		return err
	}

	for _, p := range e.Parts() {
		if err := p.Measure(); err != nil {
			return err
		}
	}

	c := &sink.Counter{}
	if _, err := e.WriteTo(c); err != nil {
		return err
	}

	e.lines, e.size = c.Lines(), c.Bytes()
	return nil
}

// WriteTo writes the entity to w: the header, then the body. Leaf content is
// transfer encoded as it is written unless it is already in wire form. An
// entity parsed from some input and not modified since is written back
// exactly as it was read, except that decoded leaves are encoded anew, which
// may change how their lines are wrapped.
func (e *Entity) WriteTo(w io.Writer) (int64, error) {
	b := e.Body()

	var (
		total int64
		err   error
	)
	if b.isEmpty() {
		total, err = e.Header.WriteTo(w)
	} else {
		total, err = e.Header.WriteTerminatedTo(w)
	}
	if err != nil {
		return total, err
	}

	n, err := b.writeTo(w, &e.Header)
	total += n
	return total, err
}

// CopyTo writes the entity to a consumer of single bytes, just as WriteTo
// would write it.
func (e *Entity) CopyTo(w io.ByteWriter) (int64, error) {
	return e.WriteTo(sink.New(w))
}

// Bytes returns the entity as it would be written by WriteTo. Any error
// encountered while serializing stops the output short.
func (e *Entity) Bytes() []byte {
	buf := &bytes.Buffer{}
	_, _ = e.WriteTo(buf)
	return buf.Bytes()
}

// String returns the entity as a string. See Bytes.
func (e *Entity) String() string {
	return string(e.Bytes())
}

// Load reads a body left unread by the SkipBody mask and parses it with the
// rest of the options of the original parse. It does nothing if the body is
// not waiting to be read. Like Parse, it may return ErrMaxDepth along with a
// usable body.
func (e *Entity) Load() error {
	empty, isEmpty := e.body.(*Empty)
	if !isEmpty || empty.src == nil {
		return nil
	}

	pr := empty.pr.clone()
	pr.mask &^= SkipBody

	src := empty.src
	empty.src = nil

	body, err := pr.parseBody(src, &e.Header, empty.depth)
	if body != nil {
		e.body = body
	}
	if empty.counter != nil {
		e.size, e.lines = empty.counter.Bytes, empty.counter.Lines
	}
	if err != nil {
		return err
	}
	return pr.warn
}
