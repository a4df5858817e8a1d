package cmd

import (
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mime/message"
)

var (
	roundtripCmd = &cobra.Command{
		Use:   "roundtrip message",
		Short: "Shows the diff of a single message round-trip",
		Args:  cobra.ExactArgs(1),
		RunE:  RunRoundtrip,
	}

	roundtripDecode bool
)

func init() {
	roundtripCmd.Flags().BoolVar(&roundtripDecode, "decode", false, "decode leaf bodies, which may rewrap encoded lines")
}

func RunRoundtrip(cmd *cobra.Command, args []string) error {
	path := args[0]
	orig, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	opts := []message.ParseOption{message.WithUnlimitedDepth()}
	if !roundtripDecode {
		opts = append(opts, message.WithMask(message.SkipDecode))
	}

	m, err := parseFile(path, opts...)
	if err != nil {
		return err
	}

	rt := m.String()
	out := cmd.OutOrStdout()
	if rt == string(orig) {
		fmt.Fprintf(out, "%s: ok (%d bytes, %d lines)\n", path, m.Size(), m.Lines())
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(orig), rt, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	patches := dmp.PatchMake(string(orig), diffs)

	fmt.Fprintf(out, "%s: differs\n", path)
	fmt.Fprint(out, dmp.PatchToText(patches))

	return fmt.Errorf("round-trip of %s is not exact", path)
}
