package param_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mime/header/param"
)

func TestParse(t *testing.T) {
	t.Parallel()

	mt := param.Parse("text")
	assert.Equal(t, "text", mt.MediaType())
	assert.Equal(t, "", mt.Type())
	assert.Equal(t, "", mt.Subtype())
	assert.Equal(t, "text", mt.Presentation())
	assert.Equal(t, "text", mt.Value())
	assert.Empty(t, mt.Parameters())

	mt = param.Parse("Image/JPEG")
	assert.Equal(t, "Image/JPEG", mt.Value())
	assert.Equal(t, "image/jpeg", mt.MediaType())
	assert.Equal(t, "image", mt.Type())
	assert.Equal(t, "jpeg", mt.Subtype())
	assert.Empty(t, mt.Parameters())

	mt = param.Parse("application/json; charset=UTF-8; foo=bar")
	assert.Equal(t, "application/json", mt.MediaType())
	assert.Equal(t, "application", mt.Type())
	assert.Equal(t, "json", mt.Subtype())
	assert.Equal(t, []param.Param{
		{Name: "charset", Value: "UTF-8"},
		{Name: "foo", Value: "bar"},
	}, mt.Parameters())
	assert.Equal(t, "UTF-8", mt.Charset())
	assert.Equal(t, "", mt.Trailing())
}

func TestParse_Quoted(t *testing.T) {
	t.Parallel()

	mt := param.Parse(`multipart/mixed; BOUNDARY="a b\"c;d"; x=1`)
	assert.Equal(t, `a b"c;d`, mt.Boundary())
	assert.Equal(t, "1", mt.Parameter("X"))
	assert.Equal(t, `multipart/mixed; BOUNDARY="a b\"c;d"; x=1`, mt.String())

	mt = param.Parse(`attachment;filename="report.pdf"`)
	assert.Equal(t, "attachment", mt.Disposition())
	assert.Equal(t, "report.pdf", mt.Filename())
}

func TestParse_Lenient(t *testing.T) {
	t.Parallel()

	// unquoted boundaries with tspecials are common
	mt := param.Parse("multipart/alternative; boundary==_abc/def=")
	assert.Equal(t, "=_abc/def=", mt.Boundary())

	// trailing semicolons are ignored
	mt = param.Parse("text/plain; charset=us-ascii;")
	assert.Equal(t, "us-ascii", mt.Charset())
	assert.Equal(t, "", mt.Trailing())

	// a malformed parameter stops the scan and is kept
	mt = param.Parse("text/plain; charset=utf-8; (junk) here; format=flowed")
	assert.Equal(t, "utf-8", mt.Charset())
	assert.Equal(t, "", mt.Parameter("format"))
	assert.Equal(t, "(junk) here; format=flowed", mt.Trailing())
	assert.Equal(t, "text/plain; charset=utf-8; (junk) here; format=flowed", mt.String())

	// an unterminated quote
	mt = param.Parse(`text/plain; name="oops`)
	_, found := mt.Lookup("name")
	assert.False(t, found)
	assert.Equal(t, `name="oops`, mt.Trailing())

	// missing equals
	mt = param.Parse("text/plain; flowed")
	assert.Empty(t, mt.Parameters())
	assert.Equal(t, "flowed", mt.Trailing())

	// an empty value
	mt = param.Parse("text/plain; name=")
	v, found := mt.Lookup("name")
	assert.True(t, found)
	assert.Equal(t, "", v)
	assert.Equal(t, `text/plain; name=""`, mt.String())
}

func TestNewWithParams(t *testing.T) {
	t.Parallel()

	mt := param.NewWithParams("text/json", map[string]string{
		"format":  "fixed",
		"charset": "trash",
	})

	assert.Equal(t, "text/json", mt.MediaType())
	assert.Equal(t, "text", mt.Type())
	assert.Equal(t, "json", mt.Subtype())
	assert.Equal(t, "text/json; charset=trash; format=fixed", mt.String())
}

func TestModify(t *testing.T) {
	t.Parallel()

	mt := param.New("text/json")
	assert.Equal(t, "text/json", mt.String())

	mt = param.Modify(mt,
		param.Set(param.Boundary, "abc123"),
		param.Change("application/json"),
	)
	assert.Equal(t, "application/json; boundary=abc123", mt.String())

	orig := mt
	mt = param.Modify(mt,
		param.Change("text/x-json"),
		param.Set(param.Charset, "utf-8"),
		param.Delete(param.Boundary),
	)
	assert.Equal(t, "text/x-json; charset=utf-8", mt.String())
	assert.Equal(t, []byte("text/x-json; charset=utf-8"), mt.Bytes())

	// the original is untouched
	assert.Equal(t, "application/json; boundary=abc123", orig.String())

	// set keeps the place of an existing parameter
	mt = param.Parse("text/plain; Charset=latin1; format=flowed")
	mt = param.Modify(mt, param.Set("charset", "utf-8"))
	assert.Equal(t, "text/plain; Charset=utf-8; format=flowed", mt.String())
}
