package transfer_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/transfer"
)

const uuCat = "begin 644 cat.txt\n#0V%T\n`\nend"

func TestUUEncoder(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	w := transfer.NewUUEncoder(buf, transfer.EncodeOptions{
		Break:    []byte("\n"),
		Filename: "cat.txt",
	})
	_, err := w.Write([]byte("Cat"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, uuCat, buf.String())

	buf.Reset()
	w = transfer.NewUUEncoder(buf, transfer.EncodeOptions{Break: []byte("\n")})
	require.NoError(t, w.Close())
	assert.Equal(t, "begin 644 noname\n`\nend", buf.String())
}

func TestUUDecoder(t *testing.T) {
	t.Parallel()

	decode := func(s string) string {
		b, err := io.ReadAll(transfer.NewUUDecoder(strings.NewReader(s)))
		require.NoError(t, err)
		return string(b)
	}

	assert.Equal(t, "Cat", decode(uuCat))
	assert.Equal(t, "Cat", decode("junk before\r\n\r\nbegin 600 x\r\n#0V%T\r\n`\r\nend\r\nand after\r\n"))

	// a short line is padded out
	assert.Equal(t, "Ca\x00", decode("begin 644 x\n#0V$\nend\n"))

	// no begin line means no data
	assert.Equal(t, "", decode("#0V%T\n"))
}
