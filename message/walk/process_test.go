package walk_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/message"
	"github.com/zostay/go-mime/message/walk"
)

// special thanks to plinth:
// https://stackoverflow.com/questions/17279712/what-is-the-smallest-possible-valid-pdf
// (micro-PDF pulled from that link 2023-01-28)
const complexMsg = `To: sterling@example.com
From: sterling@example.com
Subject: Hello World
Content-type: multipart/mixed; boundary=__boundary-one__

--__boundary-one__
Content-type: multipart/alternate; boundary=__boundary-two__

--__boundary-two__
Content-type: text/html

Hello World!
--__boundary-two__
Content-type: text/plain

Hello World!
--__boundary-two__--
--__boundary-one__
Content-type: application/pdf
Content-disposition: attachment; filename=micro.pdf

%PDF-1.
trailer<</Root<</Pages<</Kids[<</MediaBox[0 0 3 3]>>]>>>>>>
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

func parseComplex(t *testing.T) *message.Entity {
	t.Helper()
	m, err := message.Parse(strings.NewReader(complexMsg))
	require.NoError(t, err)
	return m
}

func TestAndProcess(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	counts := make([]int, 10)
	err := walk.AndProcess(
		func(part *message.Entity, parents []*message.Entity) error {
			count := counts[len(parents)]
			switch {
			case len(parents) == 0 && count == 0:
				assert.True(t, part.IsMultipart())
				assert.Len(t, part.Parts(), 3)

				s, err := part.GetSubject()
				assert.NoError(t, err)
				assert.Equal(t, "Hello World", s)
			case len(parents) == 1 && count == 0:
				assert.True(t, part.IsMultipart())
				assert.Len(t, part.Parts(), 2)
			case len(parents) == 1 && count == 1:
				assert.False(t, part.IsMultipart())

				fn, err := part.GetFilename()
				assert.NoError(t, err)
				assert.Equal(t, "micro.pdf", fn)
			case len(parents) == 1 && count == 2:
				assert.False(t, part.IsMultipart())

				fn, err := part.GetFilename()
				assert.NoError(t, err)
				assert.Equal(t, "att-1.gif", fn)
			case len(parents) == 2 && count == 0:
				assert.False(t, part.IsMultipart())

				mt, err := part.GetMediaType()
				assert.NoError(t, err)
				assert.Equal(t, "text/html", mt)
			case len(parents) == 2 && count == 1:
				assert.False(t, part.IsMultipart())

				mt, err := part.GetMediaType()
				assert.NoError(t, err)
				assert.Equal(t, "text/plain", mt)
			default:
				assert.Fail(t, "Unexpected part processed")
			}

			counts[len(parents)]++
			return nil
		}, m,
	)

	assert.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 0, 0, 0, 0, 0, 0, 0}, counts)
}

func TestAndProcessLeaves(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	counts := make([]int, 10)
	err := walk.AndProcessLeaves(
		func(part *message.Entity, parents []*message.Entity) error {
			count := counts[len(parents)]
			switch {
			case len(parents) == 1 && count == 0:
				assert.False(t, part.IsMultipart())

				fn, err := part.GetFilename()
				assert.NoError(t, err)
				assert.Equal(t, "micro.pdf", fn)
			case len(parents) == 1 && count == 1:
				assert.False(t, part.IsMultipart())

				fn, err := part.GetFilename()
				assert.NoError(t, err)
				assert.Equal(t, "att-1.gif", fn)
			case len(parents) == 2 && count == 0:
				assert.False(t, part.IsMultipart())

				mt, err := part.GetMediaType()
				assert.NoError(t, err)
				assert.Equal(t, "text/html", mt)
			case len(parents) == 2 && count == 1:
				assert.False(t, part.IsMultipart())

				mt, err := part.GetMediaType()
				assert.NoError(t, err)
				assert.Equal(t, "text/plain", mt)
			default:
				assert.Fail(t, "Unexpected part processed")
			}

			counts[len(parents)]++
			return nil
		}, m,
	)

	assert.NoError(t, err)
	assert.Equal(t, []int{0, 2, 2, 0, 0, 0, 0, 0, 0, 0}, counts)
}

func TestAndProcessContainers(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	counts := make([]int, 10)
	err := walk.AndProcessContainers(
		func(part *message.Entity, parents []*message.Entity) error {
			count := counts[len(parents)]
			switch {
			case len(parents) == 0 && count == 0:
				assert.True(t, part.IsMultipart())
				assert.Len(t, part.Parts(), 3)

				s, err := part.GetSubject()
				assert.NoError(t, err)
				assert.Equal(t, "Hello World", s)
			case len(parents) == 1 && count == 0:
				assert.True(t, part.IsMultipart())
				assert.Len(t, part.Parts(), 2)
			default:
				assert.Fail(t, "Unexpected part processed")
			}

			counts[len(parents)]++
			return nil
		}, m,
	)

	assert.NoError(t, err)
	assert.Equal(t, []int{1, 1, 0, 0, 0, 0, 0, 0, 0, 0}, counts)
}

type testError struct{}

func (testError) Error() string { return "I'm a little teapot." }

func TestAndProcess_Error(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	runs := 0
	err := walk.AndProcess(
		func(part *message.Entity, parents []*message.Entity) error {
			runs++
			return testError{}
		},
		m,
	)

	assert.ErrorIs(t, err, testError{})
	assert.Equal(t, 1, runs)
}

func TestAndProcess_Skip(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	seen := 0
	err := walk.AndProcess(
		func(part *message.Entity, parents []*message.Entity) error {
			seen++
			if len(parents) == 1 && part.IsMultipart() {
				return walk.ErrSkip
			}
			return nil
		},
		m,
	)

	assert.NoError(t, err)
	assert.Equal(t, 4, seen)
}

func TestParents(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)
	alt := m.Parts()[0]
	plain := alt.Parts()[1]

	parents, found := walk.Parents(m, plain)
	assert.True(t, found)
	require.Len(t, parents, 2)
	assert.Same(t, m, parents[0])
	assert.Same(t, alt, parents[1])

	parents, found = walk.Parents(m, m)
	assert.True(t, found)
	assert.Empty(t, parents)

	_, found = walk.Parents(alt, m)
	assert.False(t, found)
}

func TestPath(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)
	plain := m.Parts()[0].Parts()[1]

	path, found := walk.Path(m, plain)
	assert.True(t, found)
	assert.Equal(t, []int{0, 1}, path)

	again, found := walk.Find(m, path)
	assert.True(t, found)
	assert.Same(t, plain, again)

	root, found := walk.Find(m, nil)
	assert.True(t, found)
	assert.Same(t, m, root)

	_, found = walk.Find(m, []int{0, 2})
	assert.False(t, found)

	_, found = walk.Find(m, []int{1, 0})
	assert.False(t, found)

	_, found = walk.Path(m.Parts()[1], plain)
	assert.False(t, found)
}

func TestAndProcess_Stop(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	errStop := errors.New("stop")
	var last *message.Entity
	err := walk.AndProcessLeaves(
		func(part *message.Entity, parents []*message.Entity) error {
			last = part
			return errStop
		},
		m,
	)

	assert.ErrorIs(t, err, errStop)
	mt, err := last.GetMediaType()
	assert.NoError(t, err)
	assert.Equal(t, "text/html", mt)
}
