package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mime/message"
)

var (
	rootCmd = &cobra.Command{
		Use:               "mimetree",
		Short:             "Inspect, dump, and round-trip MIME messages",
		PersistentPreRunE: setupLogging,
		SilenceUsage:      true,
	}

	logLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "set the log level (debug shows recovered parse problems)")

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(roundtripCmd)
	rootCmd.AddCommand(headersCmd)
	rootCmd.AddCommand(catCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	logrus.SetLevel(lvl)
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return nil
}

// parseFile parses the message in the named file. A nil entity is only
// returned with an error. ErrMaxDepth is logged and dropped.
func parseFile(path string, opts ...message.ParseOption) (*message.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	opts = append(opts, message.WithLogger(logrus.StandardLogger()))
	m, err := message.Parse(f, opts...)
	if m == nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}

	if err != nil {
		logrus.WithError(err).WithField("path", path).Warn("parsed message is incomplete")
	}

	return m, nil
}

// Execute runs the command.
func Execute() {
	err := rootCmd.Execute()
	cobra.CheckErr(err)
}
