package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	headersCmd = &cobra.Command{
		Use:   "headers message",
		Short: "Prints the header fields of a message",
		Args:  cobra.ExactArgs(1),
		RunE:  RunHeaders,
	}

	headersName string
)

func init() {
	headersCmd.Flags().StringVar(&headersName, "name", "", "only print fields with this name")
}

func RunHeaders(cmd *cobra.Command, args []string) error {
	m, err := parseFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range m.ListFields() {
		if headersName != "" && !strings.EqualFold(f.Name(), headersName) {
			continue
		}

		if _, err := fmt.Fprintf(out, "%s: %s\n", f.Name(), f.Body()); err != nil {
			return err
		}
	}

	return nil
}
