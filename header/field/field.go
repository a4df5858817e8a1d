package field

import (
	"fmt"
	"io"
)

// Base holds the logical name and body of a header field. The body is held
// unfolded and trimmed.
type Base struct {
	name string
	body string
}

// Name returns the name of the header field.
func (f *Base) Name() string {
	return f.name
}

// SetName updates the name of the header field.
func (f *Base) SetName(name string) {
	f.name = name
}

// Body returns the value of the header field as a string.
func (f *Base) Body() string {
	return f.body
}

// SetBody updates the body of the header field.
func (f *Base) SetBody(body string) {
	f.body = body
}

// String returns the complete header field as a string, without any line
// break.
func (f *Base) String() string {
	return fmt.Sprintf("%s: %s", f.name, f.body)
}

// Bytes returns the complete header field as a slice of bytes.
func (f *Base) Bytes() []byte {
	return []byte(f.String())
}

// Raw is the original text of a field as it was read from a message,
// including any folding and the line break that ended it. Objects of this
// type are immutable.
type Raw struct {
	field []byte // complete raw field
	colon int    // the index of the colon, or len(field) without one
	end   int    // the index where the line break starts
}

// String returns the Raw as a string.
func (f *Raw) String() string {
	return string(f.field[:f.end])
}

// Bytes returns the original bytes including the trailing line break, if
// there was one.
func (f *Raw) Bytes() []byte {
	return f.field
}

// Name returns the name part of the Raw.
func (f *Raw) Name() string {
	if f.colon > f.end {
		return string(f.field[:f.end])
	}
	return string(f.field[:f.colon])
}

// Body returns the body part of the Raw, exactly as it was written. It may
// still be folded and will include any leading whitespace.
func (f *Raw) Body() string {
	if f.colon >= f.end {
		return ""
	}
	return string(f.field[f.colon+1 : f.end])
}

// Field is a single header field. A field read from a message keeps its Raw
// form so it is written back out unchanged. As soon as the name or body is
// modified, the Raw form is dropped and the field is rendered from Base.
type Field struct {
	Base
	*Raw
}

// New creates a field with no original text.
func New(name, body string) *Field {
	return &Field{Base: Base{name, body}}
}

// Name returns the field name.
func (f *Field) Name() string {
	return f.Base.Name()
}

// Body returns the unfolded field body.
func (f *Field) Body() string {
	return f.Base.Body()
}

// SetName renames the field.
func (f *Field) SetName(name string) {
	f.Base.SetName(name)
	f.Raw = nil
}

// SetBody replaces the field body.
func (f *Field) SetBody(body string) {
	f.Base.SetBody(body)
	f.Raw = nil
}

// IsRaw returns true when the field will be written exactly as it was read.
func (f *Field) IsRaw() bool {
	return f.Raw != nil
}

// String returns the field without its trailing line break. This is the
// original text if the field is unmodified.
func (f *Field) String() string {
	if f.Raw != nil {
		return f.Raw.String()
	}
	return f.Base.String()
}

// Bytes returns the field as it would be written, but without any trailing
// line break.
func (f *Field) Bytes() []byte {
	return []byte(f.String())
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	c := &Field{Base: f.Base}
	if f.Raw != nil {
		raw := *f.Raw
		raw.field = append([]byte(nil), f.Raw.field...)
		c.Raw = &raw
	}
	return c
}

// Render writes the field to w. The original bytes are written verbatim if
// the field is unmodified. Otherwise, it is folded with the given
// FoldEncoding and ended with the given line break.
func (f *Field) Render(w io.Writer, lb []byte, fe *FoldEncoding) (int64, error) {
	if f.Raw != nil {
		n, err := w.Write(f.Raw.field)
		return int64(n), err
	}

	if fe == nil {
		fe = DoNotFoldEncoding
	}
	return fe.Fold(w, f.Base.Bytes(), lb)
}
