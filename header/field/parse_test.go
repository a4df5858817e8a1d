package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/header/field"
)

func TestParseLines(t *testing.T) {
	t.Parallel()

	// basic parse, no folding
	input := []byte("a:\nb:\nc:\nd:\n")
	lines, err := field.ParseLines(input)
	assert.NoError(t, err)
	assert.Equal(t, field.Lines{
		field.Line("a:\n"),
		field.Line("b:\n"),
		field.Line("c:\n"),
		field.Line("d:\n"),
	}, lines)

	// folding parse
	input = []byte("a:b\n b\n b\nb:\nc:\nd:\n\teeee\n")
	lines, err = field.ParseLines(input)
	assert.NoError(t, err)
	assert.Equal(t, field.Lines{
		field.Line("a:b\n b\n b\n"),
		field.Line("b:\n"),
		field.Line("c:\n"),
		field.Line("d:\n\teeee\n"),
	}, lines)

	// folding parse, with start junk
	input = []byte(" start:\njunk\na:b\n b\n b\nb:\nc:\nd:\n\teeee\n")
	lines, err = field.ParseLines(input)
	var badStart *field.BadStartError
	require.ErrorAs(t, err, &badStart)
	assert.Equal(t, []byte(" start:\njunk\n"), badStart.BadStart)
	assert.Equal(t, field.Lines{
		field.Line("a:b\n b\n b\n"),
		field.Line("b:\n"),
		field.Line("c:\n"),
		field.Line("d:\n\teeee\n"),
	}, lines)
}

func TestParseLines_CRLF(t *testing.T) {
	t.Parallel()

	input := []byte("Received: from a\r\n\tby b\r\nReceived: from c\r\n")
	lines, err := field.ParseLines(input)
	assert.NoError(t, err)
	assert.Equal(t, field.Lines{
		field.Line("Received: from a\r\n\tby b\r\n"),
		field.Line("Received: from c\r\n"),
	}, lines)
}

func TestParse(t *testing.T) {
	t.Parallel()

	f := field.Parse(field.Line("Subject: test\n"))
	require.NotNil(t, f)
	require.NotNil(t, f.Raw)
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "test", f.Body())
	assert.Equal(t, "Subject", f.Raw.Name())
	assert.Equal(t, " test", f.Raw.Body())
	assert.Equal(t, "Subject: test", f.Raw.String())
	assert.Equal(t, []byte("Subject: test\n"), f.Raw.Bytes())

	f = field.Parse(field.Line("Subject: =?utf-8?b?4pmg4pmj4pml4pmm?=\r\n"))
	require.NotNil(t, f)
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "=?utf-8?b?4pmg4pmj4pml4pmm?=", f.Body())
	assert.Equal(t, "Subject: =?utf-8?b?4pmg4pmj4pml4pmm?=", f.String())

	f = field.Parse(field.Line("Subject"))
	require.NotNil(t, f)
	require.NotNil(t, f.Raw)
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "", f.Body())
	assert.Equal(t, "Subject", f.Raw.Name())
	assert.Equal(t, "", f.Raw.Body())
	assert.Equal(t, "Subject", f.Raw.String())

	f = field.Parse(field.Line("Received: from a\r\n\tby b\r\n"))
	assert.Equal(t, "Received", f.Name())
	assert.Equal(t, "from a\tby b", f.Body())
}

func TestField_SetBody(t *testing.T) {
	t.Parallel()

	f := field.Parse(field.Line("X-Thing:   folded\n  value\n"))
	assert.True(t, f.IsRaw())
	assert.Equal(t, "folded  value", f.Body())

	c := f.Clone()

	f.SetBody("new value")
	assert.False(t, f.IsRaw())
	assert.Equal(t, "X-Thing: new value", f.String())

	assert.True(t, c.IsRaw())
	assert.Equal(t, "X-Thing:   folded\n  value", c.String())
}
