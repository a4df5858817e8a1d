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

var qpEnc = []byte("=3D>?")
var qpDec = []byte{0x3d, 0x3e, 0x3f}

func TestNewQuotedPrintableDecoder(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader(qpEnc)
	qpdr := transfer.NewQuotedPrintableDecoder(r)
	db, err := io.ReadAll(qpdr)
	assert.NoError(t, err)
	assert.Equal(t, qpDec, db)
}

func TestNewQuotedPrintableEncoder(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	qpewc := transfer.NewQuotedPrintableEncoder(w, transfer.EncodeOptions{})
	n, err := qpewc.Write(qpDec)
	assert.Equal(t, len(qpDec), n)
	assert.NoError(t, err)

	err = qpewc.Close()
	assert.NoError(t, err)

	assert.Equal(t, qpEnc, w.Bytes())
}

func qpDecode(t *testing.T, s string) string {
	t.Helper()
	b, err := io.ReadAll(transfer.NewQuotedPrintableDecoder(strings.NewReader(s)))
	require.NoError(t, err)
	return string(b)
}

func qpEncode(t *testing.T, s string, o transfer.EncodeOptions) string {
	t.Helper()
	buf := &bytes.Buffer{}
	w := transfer.NewQuotedPrintableEncoder(buf, o)
	_, err := io.WriteString(w, s)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.String()
}

func TestQuotedPrintableDecoder_Lenient(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "caf\xc3\xa9\r\nsoftbreak=ZZ", qpDecode(t, "caf=C3=a9 \r\nsoft=\r\nbreak=ZZ"))
	assert.Equal(t, "padded soft", qpDecode(t, "padded =  \nsoft"))
	assert.Equal(t, "end with =", qpDecode(t, "end with ="+"3D"))
	assert.Equal(t, "short =4", qpDecode(t, "short =4"))
	assert.Equal(t, "lf\nonly\n", qpDecode(t, "lf\nonly\n"))
	assert.Equal(t, "", qpDecode(t, ""))
	assert.Equal(t, "joined", qpDecode(t, "joined="))
}

func TestQuotedPrintableEncoder(t *testing.T) {
	t.Parallel()

	lf := transfer.EncodeOptions{Break: []byte("\n")}

	assert.Equal(t, "hello=20\nworld=09", qpEncode(t, "hello \nworld\t", lf))
	assert.Equal(t, "a=0Db", qpEncode(t, "a\rb", lf))
	assert.Equal(t, "a\r\nb", qpEncode(t, "a\r\nb", lf))
	assert.Equal(t, "a=0D", qpEncode(t, "a\r", lf))
	assert.Equal(t, "tab=09\r\n", qpEncode(t, "tab\t\r\n", lf))
	assert.Equal(t, "mid space ok", qpEncode(t, "mid space ok", lf))
	assert.Equal(t, "caf=C3=A9", qpEncode(t, "caf\xc3\xa9", lf))

	long := strings.Repeat("a", 100)
	assert.Equal(t, strings.Repeat("a", 75)+"=\n"+strings.Repeat("a", 25), qpEncode(t, long, lf))

	out := qpEncode(t, strings.Repeat("\xff", 60), transfer.EncodeOptions{Break: []byte("\r\n")})
	for _, line := range strings.Split(out, "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
	assert.Equal(t, strings.Repeat("\xff", 60), qpDecode(t, out))
}
