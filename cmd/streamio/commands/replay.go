package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/haivivi/streamio/pkg/cli"
	"github.com/haivivi/streamio/pkg/replay"
	"github.com/haivivi/streamio/pkg/streams"
)

// ReplayJob describes a replay run.
type ReplayJob struct {
	Key    string `json:"key,omitempty"`
	Store  string `json:"store,omitempty"`
	Path   string `json:"path,omitempty"`
	Output string `json:"output,omitempty"`
	Skip   int    `json:"skip,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

var (
	replayJobFile string
	replayStore   string
	replayPath    string
	replayOutput  string
	replaySkip    int
	replayLimit   int
)

var replayCmd = &cobra.Command{
	Use:   "replay <key>",
	Short: "Replay a spooled stream",
	Long: `Replay a spooled stream to stdout or a file.

--skip and --limit window the stream: skip bytes are discarded first,
then at most limit bytes are written.

Examples:
  streamio replay session-7
  streamio replay session-7 --skip 1024 --limit 4096 -o window.bin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var job ReplayJob
		if replayJobFile != "" {
			if err := loadJob(replayJobFile, &job); err != nil {
				return err
			}
		}
		if len(args) > 0 {
			job.Key = args[0]
		}
		if cmd.Flags().Changed("store") || job.Store == "" {
			job.Store = replayStore
		}
		if cmd.Flags().Changed("path") || job.Path == "" {
			job.Path = replayPath
		}
		if cmd.Flags().Changed("output") {
			job.Output = replayOutput
		}
		if cmd.Flags().Changed("skip") {
			job.Skip = replaySkip
		}
		if cmd.Flags().Changed("limit") {
			job.Limit = replayLimit
		}
		if job.Key == "" {
			return errors.New("a stream key is required")
		}
		if job.Skip < 0 || job.Limit < 0 {
			return errors.New("--skip and --limit must not be negative")
		}

		sp, closeStore, err := openSpooler(job.Store, job.Path, 0)
		if err != nil {
			return err
		}
		if closeStore != nil {
			defer closeStore()
		}

		rc, m, err := sp.Open(cmd.Context(), job.Key)
		if err != nil {
			return err
		}
		defer rc.Close()

		out, closeOut, err := openOutput(job.Output)
		if err != nil {
			return err
		}

		r := replay.NewReader(rc)
		if job.Skip > 0 {
			skipped, err := r.Skip(job.Skip)
			if err != nil {
				return fmt.Errorf("skip: %w", err)
			}
			if skipped < job.Skip && IsVerbose() {
				cli.PrintSuccess("stream ended after %d of %d skipped bytes", skipped, job.Skip)
			}
		}

		var written int64
		if job.Limit > 0 {
			written, err = io.CopyN(out, r, int64(job.Limit))
			if errors.Is(err, io.EOF) {
				err = nil
			}
		} else {
			written, err = streams.Pipe(out, r)
		}
		if err != nil {
			return fmt.Errorf("replay %s: %w", job.Key, err)
		}
		if closeOut != nil {
			if err := closeOut(); err != nil {
				return err
			}
		}

		if IsVerbose() {
			cli.PrintSuccess("replayed %s of %s from %s",
				cli.FormatBytes(written), cli.FormatBytes(m.Length), job.Key)
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVarP(&replayJobFile, "file", "f", "", "job file (yaml or json)")
	replayCmd.Flags().StringVar(&replayStore, "store", "dir", "spool store (dir|badger|memory)")
	replayCmd.Flags().StringVar(&replayPath, "path", defaultStorePath, "store path for dir and badger stores")
	replayCmd.Flags().StringVarP(&replayOutput, "output", "o", "", "output file (stdout when empty)")
	replayCmd.Flags().IntVar(&replaySkip, "skip", 0, "bytes to skip before writing")
	replayCmd.Flags().IntVar(&replayLimit, "limit", 0, "max bytes to write (0 for all)")
	rootCmd.AddCommand(replayCmd)
}
