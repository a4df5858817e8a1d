package walk

import (
	"errors"
	"fmt"

	"github.com/zostay/go-mime/message"
)

var (
	// ErrCopy may be returned by a Transformer callback to signal that the part
	// should be kept as is. The children of a kept multipart part are still
	// transformed.
	ErrCopy = errors.New("copy part")

	// ErrNilNil is returned by AndTransform when a Transformer callback returns
	// no parts and provides no error.
	ErrNilNil = errors.New("no parts and no error")
)

// BadTransformationError is used when transformation needs to fail with an
// error.
type BadTransformationError struct {
	Cause   error
	Message string
}

// Error returns the error message describing the bad transformation.
func (b *BadTransformationError) Error() string {
	return fmt.Sprintf("%s: %v", b.Message, b.Cause)
}

// Unwrap returns the error that caused the bad transformation.
func (b *BadTransformationError) Unwrap() error {
	return b.Cause
}

// Transformer is a callback that can be passed to the AndTransform() function
// to transform a message and its sub-parts into a new message.
//
// The Transformer is given the part to transform and the ancestry of the part.
// If len(parents) is zero, then this is the top-level part. The parents are the
// original parents of the given original part, not the transformed parents.
//
// The Transformer returns the entities that replace the part, which are not
// transformed any further. Or it returns ErrSkip to drop the part or ErrCopy
// to keep it. Any other error makes AndTransform fail with that error.
type Transformer func(part *message.Entity, parents []*message.Entity) ([]*message.Entity, error)

// AndTransform will perform a transformation on the given message, building a
// new tree and leaving the original alone. Parents are transformed before
// their children.
//
// When a multipart part is kept with ErrCopy, a new multipart entity is made
// with a copy of its header, its preamble and epilogue, and the transformed
// children. If all of the children are dropped, the multipart part is dropped
// too.
//
// The top-level part may be replaced by several entities, so AndTransform
// returns a list. It is empty if the top-level part was dropped.
func AndTransform(
	transformer Transformer,
	msg *message.Entity,
) ([]*message.Entity, error) {
	parents := make([]*message.Entity, 0, 10)
	return andTransform(transformer, msg, parents)
}

func andTransform(
	transformer Transformer,
	part *message.Entity,
	parents []*message.Entity,
) ([]*message.Entity, error) {
	tparts, err := transformer(part, parents)
	switch {
	case errors.Is(err, ErrSkip):
		return []*message.Entity{}, nil
	case errors.Is(err, ErrCopy):
		// keep the part, continue below
	case err != nil:
		return nil, err
	case tparts == nil:
		return nil, &BadTransformationError{ErrNilNil, "transformer error"}
	default:
		return tparts, nil
	}

	if !part.IsMultipart() {
		cp, err := CopyPart(part)
		if err != nil {
			return nil, err
		}
		return []*message.Entity{cp}, nil
	}

	parents = append(parents, part)
	children := make([]*message.Entity, 0, len(part.Parts()))
	for _, sub := range part.Parts() {
		tsubs, err := andTransform(transformer, sub, parents)
		if err != nil {
			return nil, err
		}
		children = append(children, tsubs...)
	}

	if len(children) == 0 {
		return []*message.Entity{}, nil
	}

	cp := message.NewContainer(part.GetHeader(), children...)
	if c := part.Container(); c != nil {
		cp.Container().SetPreamble(c.Preamble())
		cp.Container().SetEpilogue(c.Epilogue())
	}
	return []*message.Entity{cp}, nil
}

// CopyPart makes a copy of a part that does not share anything with the
// original. A multipart part is copied with all of its children.
func CopyPart(orig *message.Entity) (*message.Entity, error) {
	h := orig.GetHeader()

	switch b := orig.Body().(type) {
	case *message.Leaf:
		var cp *message.Entity
		if b.IsEncoded() {
			cp = message.NewEncodedLeaf(h, append([]byte(nil), mustBytes(b.Raw())...))
		} else {
			content, err := b.Content()
			if err != nil {
				return nil, err
			}
			cp = message.NewLeaf(h, append([]byte(nil), content...))
		}
		return cp, nil

	case *message.Container:
		children := make([]*message.Entity, 0, b.Len())
		for _, p := range b.Parts() {
			cp, err := CopyPart(p)
			if err != nil {
				return nil, err
			}
			children = append(children, cp)
		}

		cp := message.NewContainer(h, children...)
		cp.Container().SetPreamble(append([]byte(nil), b.Preamble()...))
		cp.Container().SetEpilogue(append([]byte(nil), b.Epilogue()...))
		return cp, nil
	}

	e := message.New()
	e.Header = *h
	return e, nil
}

// mustBytes drops the error of Raw on an encoded leaf, which never fails.
func mustBytes(b []byte, _ error) []byte {
	return b
}
