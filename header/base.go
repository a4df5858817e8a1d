package header

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/zostay/go-mime/header/field"
)

// ErrIndexOutOfRange is returned when a field index falls outside the header.
var ErrIndexOutOfRange = errors.New("header field index is out of range")

// Base is the ordered list of fields in a header plus the bytes around them.
// Field names are matched without regard to case.
//
// After Parse, a Base also keeps any junk found ahead of the first field and
// the blank line that closed the header, if there was one. With the raw text
// kept by each field, an untouched header is written back byte for byte.
type Base struct {
	lbr      Break
	vf       *field.FoldEncoding
	fields   []*field.Field
	badStart []byte

	// end follows the fields on output. Only meaningful when parsed is set;
	// a header built in code always ends with a single break.
	end    []byte
	parsed bool
}

// FoldEncoding returns the folder applied to fields that are not raw.
func (h *Base) FoldEncoding() *field.FoldEncoding {
	if h.vf == nil {
		h.vf = field.DefaultFoldEncoding
	}
	return h.vf
}

func (h *Base) SetFoldEncoding(vf *field.FoldEncoding) {
	h.vf = vf
}

// Break is the line break placed after fields that are not raw. It defaults
// to CRLF.
func (h *Base) Break() Break {
	if h.lbr == "" {
		h.lbr = CRLF
	}
	return h.lbr
}

func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// BadStart is text that preceded the first field in parsed input.
func (h *Base) BadStart() []byte {
	return h.badStart
}

// Terminator is what WriteTo puts after the fields: the original blank line
// of a parsed header (empty if the input stopped first) or one Break for a
// header made in code.
func (h *Base) Terminator() []byte {
	if h.parsed {
		return h.end
	}
	return h.Break().Bytes()
}

// Len is the number of fields.
func (h *Base) Len() int {
	return len(h.fields)
}

// GetField returns the field at index n, or nil when n is out of range.
func (h *Base) GetField(n int) *field.Field {
	if n >= 0 && n < len(h.fields) {
		return h.fields[n]
	}
	return nil
}

// eachNamed calls fn with the index and field of every field called name
// until fn returns false.
func (h *Base) eachNamed(name string, fn func(int, *field.Field) bool) {
	for i, f := range h.fields {
		if !strings.EqualFold(f.Name(), name) {
			continue
		}
		if !fn(i, f) {
			return
		}
	}
}

// GetFieldNamed returns the nth field called name, counting from zero.
func (h *Base) GetFieldNamed(name string, n int) *field.Field {
	var found *field.Field
	h.eachNamed(name, func(_ int, f *field.Field) bool {
		if n == 0 {
			found = f
			return false
		}
		n--
		return true
	})
	return found
}

func (h *Base) GetAllFieldsNamed(name string) []*field.Field {
	var fs []*field.Field
	h.eachNamed(name, func(_ int, f *field.Field) bool {
		fs = append(fs, f)
		return true
	})
	return fs
}

func (h *Base) GetIndexesNamed(name string) []int {
	var ixs []int
	h.eachNamed(name, func(i int, _ *field.Field) bool {
		ixs = append(ixs, i)
		return true
	})
	return ixs
}

func (h *Base) HasField(name string) bool {
	return h.GetFieldNamed(name, 0) != nil
}

// ListFields returns a copy of the field slice. The fields themselves are
// shared.
func (h *Base) ListFields() []*field.Field {
	return append([]*field.Field(nil), h.fields...)
}

// InsertBeforeField puts a new field at index n, clamped to the valid range,
// and shifts later fields down.
func (h *Base) InsertBeforeField(n int, name, body string) {
	switch {
	case n < 0:
		n = 0
	case n > len(h.fields):
		n = len(h.fields)
	}

	f := field.New(name, body)
	h.fields = append(h.fields[:n], append([]*field.Field{f}, h.fields[n:]...)...)
}

// Add appends a field, whether or not the name is already present.
func (h *Base) Add(name, body string) {
	h.fields = append(h.fields, field.New(name, body))
}

// ClearFields drops every field.
func (h *Base) ClearFields() {
	h.fields = nil
}

// DeleteField removes the field at index n.
func (h *Base) DeleteField(n int) error {
	if n < 0 || n >= len(h.fields) {
		return ErrIndexOutOfRange
	}
	h.fields = append(h.fields[:n], h.fields[n+1:]...)
	return nil
}

// DeleteAll removes the fields called name and reports how many there were.
func (h *Base) DeleteAll(name string) int {
	kept := h.fields[:0]
	removed := 0
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	for i := len(kept); i < len(h.fields); i++ {
		h.fields[i] = nil
	}
	h.fields = kept
	return removed
}

// Clone copies the header and each of its fields.
func (h *Base) Clone() *Base {
	c := *h
	c.fields = make([]*field.Field, 0, len(h.fields))
	for _, f := range h.fields {
		c.fields = append(c.fields, f.Clone())
	}
	c.badStart = append([]byte(nil), h.badStart...)
	c.end = append([]byte(nil), h.end...)
	return &c
}

// writeFields writes the bad start text and the fields.
func (h *Base) writeFields(w io.Writer) (int64, error) {
	total := int64(0)

	n, err := w.Write(h.badStart)
	total += int64(n)
	if err != nil {
		return total, err
	}

	lb := h.Break().Bytes()
	for _, f := range h.fields {
		n, err := f.Render(w, lb, h.FoldEncoding())
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// endsWithBreak returns true if the last bytes written by writeFields are a
// line break, or nothing has been written.
func (h *Base) endsWithBreak() bool {
	if len(h.fields) == 0 {
		return len(h.badStart) == 0 || bytes.HasSuffix(h.badStart, []byte{'\n'})
	}

	last := h.fields[len(h.fields)-1]
	if !last.IsRaw() {
		return true
	}
	return bytes.HasSuffix(last.Raw.Bytes(), []byte{'\n'})
}

// WriteTo writes the header out exactly: bad start text, the fields and then
// the terminator.
func (h *Base) WriteTo(w io.Writer) (int64, error) {
	total, err := h.writeFields(w)
	if err != nil {
		return total, err
	}

	n, err := w.Write(h.Terminator())
	total += int64(n)
	return total, err
}

// WriteTerminatedTo is like WriteTo, but always ends the output with a blank
// line so that a body may follow it. This only differs from WriteTo for a
// parsed header that was never terminated.
func (h *Base) WriteTerminatedTo(w io.Writer) (int64, error) {
	total, err := h.writeFields(w)
	if err != nil {
		return total, err
	}

	end := h.Terminator()
	if len(end) == 0 {
		lb := h.Break().Bytes()
		if !h.endsWithBreak() {
			end = append(append([]byte(nil), lb...), lb...)
		} else {
			end = lb
		}
	}

	n, err := w.Write(end)
	total += int64(n)
	return total, err
}

// Bytes renders the header as WriteTo would.
func (h *Base) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = h.WriteTo(&buf)
	return buf.Bytes()
}

func (h *Base) String() string {
	return string(h.Bytes())
}
