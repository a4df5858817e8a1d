package param

import (
	"sort"
	"strings"
)

// Names of the parameters this module pays attention to.
const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-Type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in the
	// Content-Type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in the
	// Content-Disposition header.
	Filename = "filename"

	// Name is the name of the name parameter that older mailers put on the
	// Content-Type header in place of a Content-Disposition filename.
	Name = "name"
)

// Param is a single name/value pair. The name is kept as it was written.
type Param struct {
	Name  string
	Value string
}

// Value represents a parsed parameterized header field, such as is used in the
// Content-Type and Content-Disposition headers. A Value object is immutable:
// You cannot change it in place. However, a Modify() function is provided to
// perform transformation of a Value into a new Value.
type Value struct {
	v        string
	ps       []Param
	trailing string
}

// Parse takes a header field body and parses it as a Value. Parsing is
// lenient and never fails. Parameters are kept in the order they appear.
// Parameter values may be tokens or quoted strings, in which a backslash
// escapes the next character. An unquoted value runs to the next semicolon or
// whitespace.
//
// When a parameter cannot be made sense of, scanning stops and everything from
// that parameter on is kept as-is and returned by Trailing().
func Parse(s string) *Value {
	p := &parser{s: s}

	ix := strings.IndexByte(s, ';')
	if ix < 0 {
		return &Value{v: strings.TrimSpace(s)}
	}

	pv := &Value{v: strings.TrimSpace(s[:ix])}
	p.pos = ix
	for {
		p.skipSpace()
		if p.done() {
			break
		}

		if p.peek() != ';' {
			pv.trailing = strings.TrimSpace(s[p.pos:])
			break
		}
		p.pos++

		p.skipSpace()
		if p.done() {
			break
		}

		start := p.pos
		param, ok := p.param()
		if !ok {
			pv.trailing = strings.TrimSpace(s[start:])
			break
		}

		pv.ps = append(pv.ps, param)
	}

	return pv
}

// parser holds the position of a parameter scan.
type parser struct {
	s   string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.s) }
func (p *parser) peek() byte { return p.s[p.pos] }

func (p *parser) skipSpace() {
	for !p.done() && isSpace(p.peek()) {
		p.pos++
	}
}

// param reads name=value. It returns false if that cannot be found at the
// current position.
func (p *parser) param() (Param, bool) {
	start := p.pos
	for !p.done() && isTokenChar(p.peek()) {
		p.pos++
	}
	name := p.s[start:p.pos]
	if name == "" {
		return Param{}, false
	}

	p.skipSpace()
	if p.done() || p.peek() != '=' {
		return Param{}, false
	}
	p.pos++
	p.skipSpace()

	if p.done() {
		return Param{name, ""}, true
	}

	if p.peek() == '"' {
		v, ok := p.quoted()
		return Param{name, v}, ok
	}

	start = p.pos
	for !p.done() && p.peek() != ';' && !isSpace(p.peek()) {
		p.pos++
	}
	return Param{name, p.s[start:p.pos]}, true
}

// quoted reads a quoted string, which must start at the current position.
func (p *parser) quoted() (string, bool) {
	var sb strings.Builder
	p.pos++
	for !p.done() {
		c := p.peek()
		p.pos++
		switch c {
		case '"':
			return sb.String(), true
		case '\\':
			if p.done() {
				return "", false
			}
			sb.WriteByte(p.peek())
			p.pos++
		default:
			sb.WriteByte(c)
		}
	}
	return "", false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// isTokenChar reports whether c may appear in an RFC 2045 token. The '*' used
// by RFC 2231 parameter names is a token character, so those names survive.
func isTokenChar(c byte) bool {
	return c > ' ' && c < 0x7f && !strings.ContainsRune(tspecials, rune(c))
}

const tspecials = `()<>@,;:\"/[]?=`

// New creates a new parameterized header field with no parameters.
func New(v string) *Value {
	return &Value{v: v}
}

// NewWithParams creates a new parameterized header field with the given
// parameters. Since a map has no order, the parameters are sorted by name.
func NewWithParams(v string, ps map[string]string) *Value {
	names := make([]string, 0, len(ps))
	for k := range ps {
		names = append(names, k)
	}
	sort.Strings(names)

	pv := &Value{v: v, ps: make([]Param, len(names))}
	for i, k := range names {
		pv.ps[i] = Param{k, ps[k]}
	}
	return pv
}

// Modifier is a modification to apply to a Value when calling the Modify()
// function.
type Modifier func(*Value)

// Change is a Modifier that replaces the primary value of the Value.
func Change(value string) Modifier {
	return func(pv *Value) {
		pv.v = value
	}
}

// Set is a Modifier that sets a parameter with the given name on the Value.
// An existing parameter keeps its place. A new one is added at the end.
func Set(name, value string) Modifier {
	return func(pv *Value) {
		for i := range pv.ps {
			if strings.EqualFold(pv.ps[i].Name, name) {
				pv.ps[i].Value = value
				return
			}
		}
		pv.ps = append(pv.ps, Param{name, value})
	}
}

// Delete is a Modifier that removes the parameter with the given name from the
// Value.
func Delete(name string) Modifier {
	return func(pv *Value) {
		kept := pv.ps[:0]
		for _, p := range pv.ps {
			if !strings.EqualFold(p.Name, name) {
				kept = append(kept, p)
			}
		}
		pv.ps = kept
	}
}

// Modify clones a Value, applies the given modifications (if any) and returns
// the new Value. You can pass multiple changes to this function:
//
//	v := param.Parse("multipart/mixed; boundary=abc123; charset=latin1")
//	nv := param.Modify(v, param.Change("multipart/alternative"), param.Set("charset", "utf-8"))
func Modify(pv *Value, changes ...Modifier) *Value {
	c := pv.Clone()
	for _, change := range changes {
		change(c)
	}
	return c
}

// Value returns the primary value of the Value, as it was written. This is
// the value before the first semicolon.
func (pv *Value) Value() string {
	return pv.v
}

// Disposition returns the Content-Disposition value, usually either "inline"
// or "attachment", in lowercase.
func (pv *Value) Disposition() string {
	return strings.ToLower(pv.v)
}

// Presentation is a synonym for Disposition().
func (pv *Value) Presentation() string {
	return pv.Disposition()
}

// MediaType returns the Content-Type value in lowercase, e.g., "text/html",
// "image/jpeg", "multipart/mixed", etc.
func (pv *Value) MediaType() string {
	return strings.ToLower(pv.v)
}

// Type returns the part of the MediaType() before the slash. If there is no
// slash, it returns an empty string.
//
// For example, if MediaType() returns "image/jpeg", this method will return
// "image".
func (pv *Value) Type() string {
	mt := pv.MediaType()
	if ix := strings.IndexByte(mt, '/'); ix >= 0 {
		return strings.TrimSpace(mt[:ix])
	}
	return ""
}

// Subtype returns the part of the MediaType() after the slash. If there is no
// slash, it returns an empty string.
func (pv *Value) Subtype() string {
	mt := pv.MediaType()
	if ix := strings.IndexByte(mt, '/'); ix >= 0 {
		return strings.TrimSpace(mt[ix+1:])
	}
	return ""
}

// Parameters returns a copy of the parameters in the order they were given.
func (pv *Value) Parameters() []Param {
	ps := make([]Param, len(pv.ps))
	copy(ps, pv.ps)
	return ps
}

// Parameter returns the value of the first parameter with the given name,
// compared without regard to case. It returns an empty string if no such
// parameter is set.
func (pv *Value) Parameter(name string) string {
	v, _ := pv.Lookup(name)
	return v
}

// Lookup is like Parameter, but also reports whether the parameter was found.
func (pv *Value) Lookup(name string) (string, bool) {
	for _, p := range pv.ps {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Trailing returns any text that could not be parsed as a parameter.
func (pv *Value) Trailing() string {
	return pv.trailing
}

// Filename returns the value of the "filename" parameter. It is intended for
// use with the Content-Disposition header.
func (pv *Value) Filename() string {
	return pv.Parameter(Filename)
}

// Name returns the value of the "name" parameter.
func (pv *Value) Name() string {
	return pv.Parameter(Name)
}

// Charset returns the value of the "charset" parameter. It is intended for use
// with the Content-Type header.
func (pv *Value) Charset() string {
	return pv.Parameter(Charset)
}

// Boundary returns the value of the "boundary" parameter. It is intended for
// use with the Content-Type header.
func (pv *Value) Boundary() string {
	return pv.Parameter(Boundary)
}

// String returns the serialized value of the Value including the primary value
// and all parameters, in order. Parameter values are quoted when required.
func (pv *Value) String() string {
	var sb strings.Builder
	sb.WriteString(pv.v)
	for _, p := range pv.ps {
		sb.WriteString("; ")
		sb.WriteString(p.Name)
		sb.WriteByte('=')
		writeValue(&sb, p.Value)
	}
	if pv.trailing != "" {
		sb.WriteString("; ")
		sb.WriteString(pv.trailing)
	}
	return sb.String()
}

func writeValue(sb *strings.Builder, v string) {
	if needsQuotes(v) {
		sb.WriteByte('"')
		for i := 0; i < len(v); i++ {
			if v[i] == '"' || v[i] == '\\' {
				sb.WriteByte('\\')
			}
			sb.WriteByte(v[i])
		}
		sb.WriteByte('"')
		return
	}
	sb.WriteString(v)
}

func needsQuotes(v string) bool {
	if v == "" {
		return true
	}
	for i := 0; i < len(v); i++ {
		if !isTokenChar(v[i]) {
			return true
		}
	}
	return false
}

// Bytes returns the serialized value of the Value including the primary value
// and all parameters.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}

// Clone returns a deep copy of the Value.
func (pv *Value) Clone() *Value {
	return &Value{
		v:        pv.v,
		ps:       pv.Parameters(),
		trailing: pv.trailing,
	}
}
