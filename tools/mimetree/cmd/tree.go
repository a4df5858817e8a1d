package cmd

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mime/message"
	"github.com/zostay/go-mime/message/walk"
)

var (
	treeCmd = &cobra.Command{
		Use:   "tree message",
		Short: "Prints the entity tree of a message",
		Args:  cobra.ExactArgs(1),
		RunE:  RunTree,
	}

	treeSniff    bool
	treeMask     string
	treeMaxDepth int
)

func init() {
	treeCmd.Flags().BoolVar(&treeSniff, "sniff", false, "detect the content type of each leaf from its content")
	treeCmd.Flags().StringVar(&treeMask, "mask", "none", "parts of the parse to skip, separated by commas")
	treeCmd.Flags().IntVar(&treeMaxDepth, "max-depth", message.DefaultMaxDepth, "deepest multipart nesting to parse, negative for no limit")
}

func RunTree(cmd *cobra.Command, args []string) error {
	mask, err := message.ParseMask(treeMask)
	if err != nil {
		return err
	}

	m, err := parseFile(args[0], message.WithMask(mask), message.WithMaxDepth(treeMaxDepth))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var pw walk.PartWalker = func(depth, i int, part *message.Entity) error {
		_, err := fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), describe(i, part))
		return err
	}

	return pw.Walk(m)
}

// describe summarizes one entity on a single line.
func describe(i int, part *message.Entity) string {
	mt, _ := part.GetMediaType()
	if mt == "" {
		mt = "(none)"
	}

	desc := []string{
		fmt.Sprintf("%d: %s", i, mt),
		fmt.Sprintf("size=%d", part.Size()),
		fmt.Sprintf("lines=%d", part.Lines()),
	}

	switch b := part.Body().(type) {
	case *message.Container:
		desc = append(desc, fmt.Sprintf("parts=%d", b.Len()))
		if !b.IsClosed() {
			desc = append(desc, "unclosed")
		}

	case *message.Leaf:
		desc = append(desc, "encoding="+b.Encoding())
		if b.IsEncoded() {
			desc = append(desc, "raw")
		}

		if treeSniff {
			if content, err := b.Content(); err == nil {
				desc = append(desc, "sniffed="+mimetype.Detect(content).String())
			}
		}

	case *message.Empty:
		if b.Pending() {
			desc = append(desc, "unread")
		} else {
			desc = append(desc, "empty")
		}
	}

	return strings.Join(desc, " ")
}
