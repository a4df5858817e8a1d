package header

import "bytes"

// Break represents the linebreak to use when working with a header.
type Break string

// Constants for use when selecting a line break to use with a new header. If
// you don't know what to pick, choose CRLF.
const (
	Meh  Break = ""         // Sometimes it doesn't matter
	CRLF Break = "\x0d\x0a" // \r\n - Network linebreak
	LF   Break = "\x0a"     // \n - Unix/Linux/BSD linebreak
	CR   Break = "\x0d"     // \r - Commodores/old Macs linebreak
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}

// DetectBreak returns the line break that ends the first line of the given
// bytes. It returns CRLF if no line ending is found.
func DetectBreak(m []byte) Break {
	ix := bytes.IndexByte(m, '\n')
	switch {
	case ix < 0:
		return CRLF
	case ix > 0 && m[ix-1] == '\r':
		return CRLF
	default:
		return LF
	}
}

// IsBlankLine returns true if the line consists of nothing but a line break.
func IsBlankLine(line []byte) bool {
	return (len(line) == 1 && line[0] == '\n') ||
		(len(line) == 2 && line[0] == '\r' && line[1] == '\n')
}
