package header

import (
	"errors"
	"strings"
)

var (
	// ErrNoSuchField means no field of the requested name exists.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter means the field exists but lacks the requested
	// parameter.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrManyFields accompanies the first value when a field that ought to
	// appear once appears several times.
	ErrManyFields = errors.New("many header fields found")

	// ErrWrongAddressType is returned when an address setter receives
	// something that is neither a string nor an addr.Address.
	ErrWrongAddressType = errors.New("incorrect address type during write")
)

// Field names with special handling. Matching is case-insensitive; these
// spellings are used for newly created fields.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	Comments                = "Comments"
	ContentDisposition      = "Content-Disposition"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentType             = "Content-Type"
	Date                    = "Date"
	From                    = "From"
	InReplyTo               = "In-Reply-To"
	Keywords                = "Keywords"
	MessageID               = "Message-ID"
	MIMEVersion             = "MIME-Version"
	References              = "References"
	ReplyTo                 = "Reply-To"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// DefaultTransferEncoding applies when Content-Transfer-Encoding is absent.
const DefaultTransferEncoding = "7bit"

// Header is a Base plus typed accessors. Dates, address lists and
// parameterized values parsed from fields are memoized per field name.
//
// Getters fail with ErrNoSuchField when the field is missing.
type Header struct {
	Base

	// memo is keyed by lowercased field name. An entry is valid only while
	// the joined bodies of the fields still equal the text it was parsed
	// from. Values stored here must never be mutated.
	memo map[string]memoEntry
}

type memoEntry struct {
	from  string
	value any
}

// Clone makes an independent copy of the header.
func (h *Header) Clone() *Header {
	c := &Header{Base: *h.Base.Clone()}
	if len(h.memo) > 0 {
		c.memo = make(map[string]memoEntry, len(h.memo))
		for k, e := range h.memo {
			c.memo[k] = e
		}
	}
	return c
}

func (h *Header) bodiesOf(name string) []string {
	var bs []string
	for _, f := range h.GetAllFieldsNamed(name) {
		bs = append(bs, f.Body())
	}
	return bs
}

func (h *Header) recall(name string) (any, bool) {
	e, ok := h.memo[strings.ToLower(name)]
	if ok && e.from == strings.Join(h.bodiesOf(name), "\n") {
		return e.value, true
	}
	return nil, false
}

func (h *Header) remember(name, from string, value any) {
	if h.memo == nil {
		h.memo = map[string]memoEntry{}
	}
	h.memo[strings.ToLower(name)] = memoEntry{from: from, value: value}
}

// Get returns the body of the first field with the given name. When the name
// occurs more than once, that body comes back together with ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	bs := h.bodiesOf(name)
	switch len(bs) {
	case 0:
		return "", ErrNoSuchField
	case 1:
		return bs[0], nil
	default:
		return bs[0], ErrManyFields
	}
}

// GetAll returns the bodies of every field with the given name, in header
// order.
func (h *Header) GetAll(name string) ([]string, error) {
	bs := h.bodiesOf(name)
	if len(bs) == 0 {
		return nil, ErrNoSuchField
	}
	return bs, nil
}

// Set leaves exactly one field with the given name. The first existing field
// keeps its position and takes the new body; later ones are removed. With no
// existing field, one is appended.
func (h *Header) Set(name, body string) {
	h.SetAll(name, body)
}

// SetAll makes the header hold one field of the given name per body. Existing
// fields are reused in order, surplus ones removed, and missing ones appended.
func (h *Header) SetAll(name string, bodies ...string) {
	ixs := h.GetIndexesNamed(name)

	// delete from the back so earlier indexes stay valid
	for len(ixs) > len(bodies) {
		last := ixs[len(ixs)-1]
		_ = h.DeleteField(last)
		ixs = ixs[:len(ixs)-1]
	}

	for i, b := range bodies {
		if i >= len(ixs) {
			h.Add(name, b)
			continue
		}
		f := h.GetField(ixs[i])
		if len(bodies) == 1 {
			f.SetName(name)
		}
		f.SetBody(b)
	}
}

// GetMIMEVersion returns the MIME-Version body.
func (h *Header) GetMIMEVersion() (string, error) { return h.Get(MIMEVersion) }

// SetMIMEVersion replaces MIME-Version.
func (h *Header) SetMIMEVersion(v string) { h.Set(MIMEVersion, v) }

// GetSubject returns the Subject body.
func (h *Header) GetSubject() (string, error) { return h.Get(Subject) }

// SetSubject replaces Subject.
func (h *Header) SetSubject(s string) { h.Set(Subject, s) }

func (h *Header) GetMessageID() (string, error) { return h.Get(MessageID) }

func (h *Header) SetMessageID(ref string) { h.Set(MessageID, ref) }
