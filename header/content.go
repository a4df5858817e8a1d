package header

import (
	"errors"
	"strings"

	"github.com/zostay/go-mime/header/param"
)

// GetParamValue parses the named field as a value with parameters, such as
// Content-Type. Repeated fields yield the first value along with
// ErrManyFields. The returned *param.Value is shared and must not be changed;
// use param.Modify to derive a new one.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	body, err := h.Get(name)
	switch {
	case errors.Is(err, ErrManyFields):
		return param.Parse(body), err
	case err != nil:
		return nil, err
	}

	if v, ok := h.recall(name); ok {
		if pv, isPV := v.(*param.Value); isPV {
			return pv, nil
		}
	}

	pv := param.Parse(body)
	h.remember(name, body, pv)
	return pv, nil
}

// SetParamValue replaces the named field with the given value.
func (h *Header) SetParamValue(name string, pv *param.Value) {
	body := pv.String()
	h.Set(name, body)
	h.remember(name, body, pv)
}

// changeParamValue applies the modifiers to the named field, starting from
// param.New(v) when the field is missing. An empty v on a missing field makes
// the change fail with ErrNoSuchField.
func (h *Header) changeParamValue(name, v string, ms ...param.Modifier) error {
	pv, _ := h.GetParamValue(name)
	if pv == nil {
		if v == "" {
			return ErrNoSuchField
		}
		pv = param.New(v)
	}
	h.SetParamValue(name, param.Modify(pv, ms...))
	return nil
}

func (h *Header) paramOf(name, p string) (string, error) {
	pv, err := h.GetParamValue(name)
	if pv == nil {
		return "", err
	}
	v, ok := pv.Lookup(p)
	if !ok {
		return "", ErrNoSuchFieldParameter
	}
	return v, err
}

// GetContentType returns the parsed Content-Type.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// SetContentType replaces Content-Type.
func (h *Header) SetContentType(pv *param.Value) {
	h.SetParamValue(ContentType, pv)
}

// GetMediaType returns the lowercased type/subtype of Content-Type without
// its parameters.
func (h *Header) GetMediaType() (string, error) {
	pv, err := h.GetParamValue(ContentType)
	if pv == nil {
		return "", err
	}
	return pv.MediaType(), err
}

// SetMediaType changes the type/subtype of Content-Type and keeps its
// parameters. Content-Type is created when missing. Extra Content-Type
// fields are dropped.
func (h *Header) SetMediaType(mt string) {
	_ = h.changeParamValue(ContentType, mt, param.Change(mt))
}

// GetCharset returns the charset parameter of Content-Type. A present field
// without the parameter gives ErrNoSuchFieldParameter.
func (h *Header) GetCharset() (string, error) {
	return h.paramOf(ContentType, param.Charset)
}

// SetCharset sets the charset parameter. Content-Type must already exist.
func (h *Header) SetCharset(c string) error {
	return h.changeParamValue(ContentType, "", param.Set(param.Charset, c))
}

// GetBoundary returns the boundary parameter of Content-Type.
func (h *Header) GetBoundary() (string, error) {
	return h.paramOf(ContentType, param.Boundary)
}

// SetBoundary sets the boundary parameter. Content-Type must already exist.
func (h *Header) SetBoundary(b string) error {
	return h.changeParamValue(ContentType, "", param.Set(param.Boundary, b))
}

func (h *Header) GetContentDisposition() (*param.Value, error) {
	return h.GetParamValue(ContentDisposition)
}

func (h *Header) SetContentDisposition(pv *param.Value) {
	h.SetParamValue(ContentDisposition, pv)
}

// GetPresentation returns the disposition, such as "inline" or
// "attachment", from Content-Disposition.
func (h *Header) GetPresentation() (string, error) {
	pv, err := h.GetParamValue(ContentDisposition)
	if pv == nil {
		return "", err
	}
	return pv.Disposition(), err
}

// SetPresentation changes the disposition and keeps any parameters.
func (h *Header) SetPresentation(d string) {
	_ = h.changeParamValue(ContentDisposition, d, param.Change(d))
}

// GetFilename returns the filename parameter of Content-Disposition.
func (h *Header) GetFilename() (string, error) {
	return h.paramOf(ContentDisposition, param.Filename)
}

// SetFilename sets the filename parameter. Content-Disposition must already
// exist.
func (h *Header) SetFilename(f string) error {
	return h.changeParamValue(ContentDisposition, "", param.Set(param.Filename, f))
}

// GetTransferEncoding returns the raw Content-Transfer-Encoding body.
func (h *Header) GetTransferEncoding() (string, error) {
	return h.Get(ContentTransferEncoding)
}

// SetTransferEncoding replaces Content-Transfer-Encoding.
func (h *Header) SetTransferEncoding(te string) {
	h.Set(ContentTransferEncoding, te)
}

// TransferEncoding returns the normalized transfer encoding token:
// trimmed, lowercased, and DefaultTransferEncoding when absent or blank.
func (h *Header) TransferEncoding() string {
	te, _ := h.Get(ContentTransferEncoding)
	if te = strings.ToLower(strings.TrimSpace(te)); te != "" {
		return te
	}
	return DefaultTransferEncoding
}
