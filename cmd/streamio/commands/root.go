package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/streamio/pkg/cli"
)

// Global flags.
var (
	verbose      bool
	noColor      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "streamio",
	Short: "Record, replay and decode byte and text streams",
	Long: `streamio - record, replay and decode byte and text streams.

Streams read through a replay reader are recorded as they pass, so any
visited position can be revisited. The record command drains a stream
into a spool store (a directory, BadgerDB, or memory) together with a
manifest; replay reopens it any number of times.

Commands:
  record    Record a stream into a spool store
  replay    Replay a spooled stream
  merge     Merge several streams into one
  decode    Decode text streams (BOM, \uXXXX escapes, charsets)
  info      Show the manifest of a spooled stream

Examples:
  # Record a file and replay it twice
  streamio record session.log --key session-7
  streamio replay session-7
  streamio replay session-7 --skip 1024

  # Everything accepts a job file
  streamio record -f record-job.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output-format", "O", "yaml", "output format (yaml|json)")
}

// IsVerbose reports whether --verbose was given.
func IsVerbose() bool {
	return verbose
}

// styles returns the terminal styles honoring --no-color.
func styles() cli.Styles {
	if noColor {
		return cli.PlainStyles()
	}
	return cli.NewStyles(cli.DefaultTheme)
}

// outputOpts builds the cli output options from the global flags.
func outputOpts() cli.OutputOptions {
	return cli.OutputOptions{Format: cli.OutputFormat(outputFormat)}
}
