package field

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

// Fold settings used by DefaultFoldEncoding.
const (
	DefaultFoldIndent          = " "
	DefaultPreferredFoldLength = 80
	DefaultForcedFoldLength    = 1000

	// DoNotFold, given as both lengths, turns folding off.
	DoNotFold = -1
)

// DefaultFoldEncoding is used by headers built in code.
var DefaultFoldEncoding = &FoldEncoding{
	foldIndent:          DefaultFoldIndent,
	preferredFoldLength: DefaultPreferredFoldLength,
	forcedFoldLength:    DefaultForcedFoldLength,
}

// DoNotFoldEncoding writes every field on one line. Parsed headers use it so
// that an edited field is not reflowed.
var DoNotFoldEncoding = &FoldEncoding{
	foldIndent:          DefaultFoldIndent,
	preferredFoldLength: DoNotFold,
	forcedFoldLength:    DoNotFold,
}

// Errors from NewFoldEncoding.
var (
	ErrFoldIndentSpace    = errors.New("fold indent may only contains spaces and tabs")
	ErrFoldIndentTooShort = errors.New("fold indent must contain at least one space or tab")
	ErrFoldIndentTooLong  = errors.New("fold indent must be shorter than the preferred fold length")
	ErrFoldLengthTooLong  = errors.New("preferred fold length must be no longer than the forced fold length")
	ErrFoldLengthTooShort = errors.New("preferred fold length and forced fold length cannot be too short")
	ErrDoNotFold          = errors.New("preferred fold length and forced fold length must both be -1 if either are -1")
)

// FoldEncoding decides where long fields are broken on output.
type FoldEncoding struct {
	foldIndent          string
	preferredFoldLength int
	forcedFoldLength    int
}

// NewFoldEncoding checks the settings and returns a FoldEncoding. The indent
// is one or more spaces or tabs, shorter than the preferred length, and the
// preferred length may not exceed the forced one. Pass DoNotFold for both
// lengths to disable folding.
func NewFoldEncoding(foldIndent string, preferredFoldLength, forcedFoldLength int) (*FoldEncoding, error) {
	if strings.Trim(foldIndent, " \t") != "" {
		return nil, ErrFoldIndentSpace
	}
	if len(foldIndent) < 1 {
		return nil, ErrFoldIndentTooShort
	}

	if (preferredFoldLength == DoNotFold) != (forcedFoldLength == DoNotFold) {
		return nil, ErrDoNotFold
	}

	if preferredFoldLength != DoNotFold {
		if len(foldIndent) >= preferredFoldLength {
			return nil, ErrFoldIndentTooLong
		}

		if preferredFoldLength > forcedFoldLength {
			return nil, ErrFoldLengthTooLong
		}

		if preferredFoldLength < 3 || forcedFoldLength < 3 {
			return nil, ErrFoldLengthTooShort
		}
	}

	return &FoldEncoding{foldIndent, preferredFoldLength, forcedFoldLength}, nil
}

// Unfold removes the line breaks from a folded value, leaving the whitespace
// that followed each break in place.
func Unfold(f []byte) []byte {
	uf := make([]byte, 0, len(f))
	for _, b := range f {
		if !isCRLF(rune(b)) {
			uf = append(uf, b)
		}
	}
	return uf
}

// Unfold is the method form of the package Unfold function. Unfolding does
// not depend on the choices made when folding.
func (vf *FoldEncoding) Unfold(f []byte) []byte {
	return Unfold(f)
}

func isCRLF(c rune) bool  { return c == '\r' || c == '\n' }
func isSpace(c rune) bool { return c == ' ' || c == '\t' }

// Fold writes the complete field line f to out, folding it so lines stay
// under the preferred length where a space allows and never exceed the forced
// length. Every output line is ended with lb, including the last.
func (vf *FoldEncoding) Fold(out io.Writer, f []byte, lb []byte) (int64, error) {
	total := int64(0)
	write := func(bs ...[]byte) error {
		for _, b := range bs {
			n, err := out.Write(b)
			total += int64(n)
			if err != nil {
				return err
			}
		}
		return nil
	}

	if vf.preferredFoldLength == DoNotFold || len(f) <= vf.preferredFoldLength {
		return total, write(f, lb)
	}

	// never fold inside the field name
	start := bytes.IndexByte(f, ':') + 1

	line := f
	first := true
	for len(line) > 0 {
		var indent []byte
		if !first && !isSpace(rune(line[0])) {
			indent = []byte(vf.foldIndent)
		}

		width := vf.preferredFoldLength - len(indent)
		if len(line) <= width {
			return total, write(indent, line, lb)
		}

		lo := 1
		if first && start > lo {
			lo = start
		}

		// break before the last space inside the preferred width, then before
		// the first space past it, then anywhere once the line is too long
		end := -1
		if lo < width {
			if ix := bytes.LastIndexAny(line[lo:width], " \t"); ix >= 0 {
				end = lo + ix
			}
		}
		if end < 0 && lo < len(line) {
			if ix := bytes.IndexAny(line[lo:], " \t"); ix >= 0 && lo+ix < vf.forcedFoldLength-len(indent) {
				end = lo + ix
			}
		}
		if end < 0 {
			if len(line)+len(indent) <= vf.forcedFoldLength {
				return total, write(indent, line, lb)
			}
			end = width
		}

		if err := write(indent, line[:end], lb); err != nil {
			return total, err
		}

		line = line[end:]
		first = false
	}

	return total, nil
}
