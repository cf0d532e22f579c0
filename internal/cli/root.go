package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	LogLevel string
	Config   string // config file, or directory searched for topq.yml
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// validate checks the global options once flags and config are merged.
func (o *RootOptions) validate() error {
	if !slices.Contains(ValidFormats, o.Format) {
		return WrapExitError(ExitCommandError, "invalid format",
			fmt.Errorf("%q: must be one of %v", o.Format, ValidFormats))
	}
	if _, err := logrus.ParseLevel(o.LogLevel); err != nil {
		return WrapExitError(ExitCommandError, "invalid log level", err)
	}
	return nil
}

// Execute runs the CLI with args and reports a failure in the selected output
// format: JSON errors go to stdout, text errors to stderr. It returns the
// process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	out := &OutputFormatter{Format: "text", Writer: stderr}
	if opts.Format == "json" {
		out = &OutputFormatter{Format: "json", Writer: stdout}
	}
	_ = out.Error(err)

	return GetExitCode(err)
}

// NewRootCommand creates the root command for the topq CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topq",
		Short: "topq - bounded top-N selection over FIFO queues",
		Long: `Select the N largest values held across many FIFO queues, using only
queue operations and a scratch buffer smaller than the input.`,
		SilenceErrors: true, // Execute reports errors in the selected format
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warning", "log level for diagnostics on stderr")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", ".", "config file, or directory holding topq.yml")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewGenCommand(opts))

	return cmd
}

// newLogger builds the diagnostics logger. Verbose wins over the log level.
func newLogger(opts *RootOptions, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if opts.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
