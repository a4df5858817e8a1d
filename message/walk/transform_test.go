package walk_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/header"
	"github.com/zostay/go-mime/message"
	"github.com/zostay/go-mime/message/walk"
	"github.com/zostay/go-mime/transfer"
)

const complexMsgBase64 = `To: sterling@example.com
From: sterling@example.com
Subject: Hello World
Content-type: multipart/mixed; boundary=__boundary-one__

--__boundary-one__
Content-type: multipart/alternate; boundary=__boundary-two__

--__boundary-two__
Content-type: text/html
Content-Transfer-Encoding: base64

SGVsbG8gV29ybGQh
--__boundary-two__
Content-type: text/plain
Content-Transfer-Encoding: base64

SGVsbG8gV29ybGQh
--__boundary-two__--
--__boundary-one__
Content-type: application/pdf
Content-disposition: attachment; filename=micro.pdf
Content-Transfer-Encoding: base64

JVBERi0xLgp0cmFpbGVyPDwvUm9vdDw8L1BhZ2VzPDwvS2lkc1s8PC9NZWRpYUJveFswIDAgMyAz
XT4+XT4+Pj4+Pg==
--__boundary-one__
Content-type: application/image
Content-disposition: attachment; filename=att-1.gif
Content-transfer-encoding: base64

R0lGODlhDAAMAPcAAAAAAAgICBAQEBgYGCkpKTExMTk5OUpKSoyMjJSUlJycnKWlpbW1tc7O
zufn5+/v7/f39///////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////
/////////////////////////////////ywAAAAADAAMAAAIXwAjRICQwIAAAQYUQBAYwUEB
AAACEIBYwMHAhxARNIAIoAAEBBAPOICwkSMCjBAXlKQYgCMABSsjtuQI02UAlC9jFgBJMyYC
CCgRMODoseFElx0tCvxYIEAAAwkWRggIADs=
--__boundary-one__--`

func TestAndTransform_base64(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader(complexMsg), message.WithMask(message.SkipDecode))
	require.NoError(t, err)

	// encode every leaf that has no transfer encoding as base64
	tms, err := walk.AndTransform(func(part *message.Entity, parents []*message.Entity) ([]*message.Entity, error) {
		if part.IsMultipart() {
			return nil, walk.ErrCopy
		}

		_, err := part.GetTransferEncoding()
		if !errors.Is(err, header.ErrNoSuchField) {
			return nil, walk.ErrCopy
		}

		content, err := part.Leaf().Content()
		if err != nil {
			return nil, err
		}

		h := part.GetHeader().Clone()
		h.SetTransferEncoding(transfer.Base64)
		return []*message.Entity{message.NewLeaf(h, content)}, nil
	}, m)

	require.NoError(t, err)
	require.Len(t, tms, 1)

	buf := &bytes.Buffer{}
	_, err = tms[0].WriteTo(buf)
	assert.NoError(t, err)
	assert.Equal(t, complexMsgBase64, buf.String())

	// the original is untouched
	assert.Equal(t, complexMsg, m.String())
}

func TestAndTransform_Skip(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	tms, err := walk.AndTransform(func(part *message.Entity, parents []*message.Entity) ([]*message.Entity, error) {
		if fn, _ := part.GetFilename(); fn != "" {
			return nil, walk.ErrSkip
		}
		return nil, walk.ErrCopy
	}, m)

	require.NoError(t, err)
	require.Len(t, tms, 1)

	out := tms[0]
	require.Len(t, out.Parts(), 1)
	require.Len(t, out.Parts()[0].Parts(), 2)

	leaf := out.Parts()[0].Parts()[1]
	c, err := leaf.Leaf().Content()
	assert.NoError(t, err)
	assert.Equal(t, "Hello World!", string(c))

	assert.Len(t, m.Parts(), 3)
}

func TestAndTransform_DropEmptyContainer(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	tms, err := walk.AndTransform(func(part *message.Entity, parents []*message.Entity) ([]*message.Entity, error) {
		if part.IsMultipart() {
			return nil, walk.ErrCopy
		}
		return nil, walk.ErrSkip
	}, m)

	require.NoError(t, err)
	assert.Empty(t, tms)
}

func TestAndTransform_Flatten(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	tms, err := walk.AndTransform(func(part *message.Entity, parents []*message.Entity) ([]*message.Entity, error) {
		if len(parents) > 0 {
			return nil, walk.ErrCopy
		}

		// replace the top with a flat list of its leaves
		leaves := []*message.Entity{}
		err := walk.AndProcessLeaves(func(leaf *message.Entity, _ []*message.Entity) error {
			cp, err := walk.CopyPart(leaf)
			leaves = append(leaves, cp)
			return err
		}, part)
		return leaves, err
	}, m)

	require.NoError(t, err)
	assert.Len(t, tms, 4)
	for _, tm := range tms {
		assert.False(t, tm.IsMultipart())
	}
}

func TestAndTransform_NilNil(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	_, err := walk.AndTransform(func(part *message.Entity, parents []*message.Entity) ([]*message.Entity, error) {
		return nil, nil
	}, m)

	assert.ErrorIs(t, err, walk.ErrNilNil)

	var badErr *walk.BadTransformationError
	assert.ErrorAs(t, err, &badErr)
}

func TestAndTransform_Error(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	_, err := walk.AndTransform(func(part *message.Entity, parents []*message.Entity) ([]*message.Entity, error) {
		return nil, testError{}
	}, m)

	assert.ErrorIs(t, err, testError{})
}

func TestCopyPart(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader(complexMsg), message.WithMask(message.SkipDecode))
	require.NoError(t, err)

	cp, err := walk.CopyPart(m)
	require.NoError(t, err)
	assert.Equal(t, complexMsg, cp.String())

	cp.Parts()[0].Parts()[0].Leaf().SetContent([]byte("changed"))
	cp.SetSubject("Changed")
	assert.Equal(t, complexMsg, m.String())
}
