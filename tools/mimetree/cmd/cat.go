package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/zostay/go-mime/message/walk"
)

var (
	catCmd = &cobra.Command{
		Use:   "cat message",
		Short: "Writes the decoded content of one part of a message",
		Args:  cobra.ExactArgs(1),
		RunE:  RunCat,
	}

	catPart string
	catUTF8 bool
)

func init() {
	catCmd.Flags().StringVar(&catPart, "part", "", "dotted child index path to the part, such as 1.0")
	catCmd.Flags().BoolVar(&catUTF8, "utf8", false, "convert text from the charset of the part to UTF-8")
}

// parsePath turns "1.0.2" into []int{1, 0, 2}.
func parsePath(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}

	segs := strings.Split(s, ".")
	path := make([]int, len(segs))
	for i, seg := range segs {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return nil, fmt.Errorf("bad part path %q: %w", s, err)
		}
		path[i] = n
	}
	return path, nil
}

// charsetEncoding looks up a charset by its MIME name first, then by any of
// its IANA names.
func charsetEncoding(charset string) (encoding.Encoding, error) {
	enc, err := ianaindex.MIME.Encoding(charset)
	if enc == nil {
		enc, err = ianaindex.IANA.Encoding(charset)
	}
	if enc == nil && err == nil {
		err = errors.New("no decoder for charset")
	}
	return enc, err
}

func RunCat(cmd *cobra.Command, args []string) error {
	path, err := parsePath(catPart)
	if err != nil {
		return err
	}

	m, err := parseFile(args[0])
	if err != nil {
		return err
	}

	part, found := walk.Find(m, path)
	if !found {
		return fmt.Errorf("no part at %q", catPart)
	}

	leaf := part.Leaf()
	if leaf == nil {
		return fmt.Errorf("part %q is not a leaf", catPart)
	}

	content, err := leaf.Content()
	if err != nil {
		return err
	}

	var r io.Reader = bytes.NewReader(content)
	if catUTF8 {
		if cs, _ := part.GetCharset(); cs != "" {
			enc, err := charsetEncoding(cs)
			if err != nil {
				logrus.WithError(err).WithField("charset", cs).Warn("writing content unconverted")
			} else {
				r = transform.NewReader(r, enc.NewDecoder())
			}
		}
	}

	_, err = io.Copy(cmd.OutOrStdout(), r)
	return err
}
