package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/streamio/pkg/cli"
	"github.com/haivivi/streamio/pkg/replay"
	"github.com/haivivi/streamio/pkg/spool"
)

// RecordJob describes a record run. All fields are optional; explicit
// flags and arguments override the job file.
type RecordJob struct {
	Input     string `json:"input,omitempty"`
	Store     string `json:"store,omitempty"`
	Path      string `json:"path,omitempty"`
	Key       string `json:"key,omitempty"`
	ChunkSize int    `json:"chunk_size,omitempty"`
}

var (
	recordJobFile   string
	recordStore     string
	recordPath      string
	recordKey       string
	recordChunkSize int
)

var recordCmd = &cobra.Command{
	Use:   "record [input]",
	Short: "Record a stream into a spool store",
	Long: `Record a stream into a spool store.

The input (a file, or stdin with "-") is read through a replay reader
into the store and a manifest is written next to it. Without --key a
random key is generated.

Example job file (record-job.yaml):
  input: session.log
  store: dir
  path: .streamio
  key: session-7
  chunk_size: 2048

Examples:
  streamio record session.log --key session-7
  cat session.log | streamio record - --store badger --path /var/lib/streamio
  streamio record -f record-job.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var job RecordJob
		if recordJobFile != "" {
			if err := loadJob(recordJobFile, &job); err != nil {
				return err
			}
		}
		if len(args) > 0 {
			job.Input = args[0]
		}
		if cmd.Flags().Changed("store") || job.Store == "" {
			job.Store = recordStore
		}
		if cmd.Flags().Changed("path") || job.Path == "" {
			job.Path = recordPath
		}
		if cmd.Flags().Changed("key") {
			job.Key = recordKey
		}
		if cmd.Flags().Changed("chunk-size") {
			job.ChunkSize = recordChunkSize
		}

		src, closeIn, srcName, err := openInput(job.Input)
		if err != nil {
			return err
		}
		if closeIn != nil {
			defer closeIn()
		}

		sp, closeStore, err := openSpooler(job.Store, job.Path, job.ChunkSize)
		if err != nil {
			return err
		}
		if closeStore != nil {
			defer closeStore()
		}

		r := replay.NewReader(src)
		defer r.Close()

		ctx := cmd.Context()
		start := time.Now()
		var m *spool.Manifest
		if job.Key != "" {
			m, err = sp.PutKey(ctx, job.Key, r)
		} else {
			m, err = sp.Put(ctx, r)
		}
		if err != nil {
			return err
		}

		if IsVerbose() {
			cli.PrintSuccess("recorded %s from %s in %s",
				cli.FormatBytes(m.Length), srcName, cli.FormatDuration(time.Since(start)))
		}
		return cli.Output(m, outputOpts())
	},
}

func init() {
	recordCmd.Flags().StringVarP(&recordJobFile, "file", "f", "", "job file (yaml or json)")
	recordCmd.Flags().StringVar(&recordStore, "store", "dir", "spool store (dir|badger|memory)")
	recordCmd.Flags().StringVar(&recordPath, "path", defaultStorePath, "store path for dir and badger stores")
	recordCmd.Flags().StringVar(&recordKey, "key", "", "store key (random when empty)")
	recordCmd.Flags().IntVar(&recordChunkSize, "chunk-size", 0, "copy buffer size in bytes")
	rootCmd.AddCommand(recordCmd)
}
