package message

import (
	"fmt"
	"strings"
)

// Mask selects parts of the parse to skip.
type Mask int

// MaskNone performs a complete parse.
const MaskNone Mask = 0

// The parse masks. These may be combined.
const (
	// SkipHeader keeps each header exactly as read without breaking it into
	// fields. Since the Content-Type cannot be known, every body is a leaf.
	SkipHeader Mask = 1 << iota

	// SkipBody stops the parse after the top-level header. The body is left
	// unread as an *Empty and may be read later with Load.
	SkipBody

	// SkipChildParts does not descend into multipart entities. Their bodies
	// are kept as leaves holding the raw bytes.
	SkipChildParts

	// SkipPreamble discards the bytes before the first delimiter of each
	// multipart body.
	SkipPreamble

	// SkipEpilogue discards the bytes after the closing delimiter of each
	// multipart body.
	SkipEpilogue

	// SkipDecode keeps leaf bodies in their transfer encoded form.
	SkipDecode
)

var maskNames = []struct {
	m    Mask
	name string
}{
	{SkipHeader, "header"},
	{SkipBody, "body"},
	{SkipChildParts, "child-parts"},
	{SkipPreamble, "preamble"},
	{SkipEpilogue, "epilogue"},
	{SkipDecode, "decode"},
}

// String names the set flags, separated by commas.
func (m Mask) String() string {
	if m == MaskNone {
		return "none"
	}

	names := make([]string, 0, len(maskNames))
	for _, mn := range maskNames {
		if m&mn.m != 0 {
			names = append(names, mn.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseMask turns a comma separated list of the names used by String back
// into a Mask.
func ParseMask(s string) (Mask, error) {
	m := MaskNone
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || name == "none" {
			continue
		}

		found := false
		for _, mn := range maskNames {
			if mn.name == name {
				m |= mn.m
				found = true
				break
			}
		}

		if !found {
			return m, fmt.Errorf("unknown parse mask %q", name)
		}
	}
	return m, nil
}
