package message

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateBoundary will generate a random MIME boundary. The boundary starts
// with "=_", which can appear in neither base64 nor quoted-printable data.
func GenerateBoundary() string {
	return "=_" + uuid.NewString()
}

// GenerateSafeBoundary will generate a random MIME boundary that is guaranteed
// to be safe with the given corpus of data. Use this when you want to generate
// a boundary for a known set of parts:
//
//	boundary := message.GenerateSafeBoundary(strings.Join(parts, ""))
//
// using this is likely to be total overkill, but in case you're paranoid.
func GenerateSafeBoundary(contents string) string {
	for {
		boundary := GenerateBoundary()
		if !strings.Contains(contents, boundary) {
			return boundary
		}
	}
}
