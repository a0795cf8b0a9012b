package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/streamio/pkg/cli"
)

var (
	infoJobFile string
	infoStore   string
	infoPath    string
	infoQuery   string
)

var infoCmd = &cobra.Command{
	Use:   "info <key>",
	Short: "Show the manifest of a spooled stream",
	Long: `Show the manifest of a spooled stream.

By default a human-readable summary is printed. With --query the
manifest is filtered through a jq expression; with an explicit
--output-format it is printed as yaml or json.

Examples:
  streamio info session-7
  streamio info session-7 --query .length
  streamio info session-7 -O json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var job ReplayJob
		if infoJobFile != "" {
			if err := loadJob(infoJobFile, &job); err != nil {
				return err
			}
		}
		if len(args) > 0 {
			job.Key = args[0]
		}
		if cmd.Flags().Changed("store") || job.Store == "" {
			job.Store = infoStore
		}
		if cmd.Flags().Changed("path") || job.Path == "" {
			job.Path = infoPath
		}
		if job.Key == "" {
			return errors.New("a stream key is required")
		}

		sp, closeStore, err := openSpooler(job.Store, job.Path, 0)
		if err != nil {
			return err
		}
		if closeStore != nil {
			defer closeStore()
		}

		m, err := sp.Stat(cmd.Context(), job.Key)
		if err != nil {
			return err
		}

		if infoQuery != "" || cmd.Flags().Changed("output-format") {
			opts := outputOpts()
			opts.Query = infoQuery
			return cli.Output(m, opts)
		}

		st := styles()
		label := func(s string) string {
			return st.Label.Render(fmt.Sprintf("%-8s", s))
		}
		fmt.Printf("%s %s\n", label("Key"), m.Key)
		fmt.Printf("%s %s (%d bytes)\n", label("Length"), cli.FormatBytes(m.Length), m.Length)
		fmt.Printf("%s %d × %d\n", label("Chunks"), m.Chunks, m.ChunkSize)
		fmt.Printf("%s %s (%s ago)\n", label("Created"),
			m.CreatedAt.Format(time.RFC3339), cli.FormatDuration(time.Since(m.CreatedAt)))
		return nil
	},
}

func init() {
	infoCmd.Flags().StringVarP(&infoJobFile, "file", "f", "", "job file (yaml or json)")
	infoCmd.Flags().StringVar(&infoStore, "store", "dir", "spool store (dir|badger|memory)")
	infoCmd.Flags().StringVar(&infoPath, "path", defaultStorePath, "store path for dir and badger stores")
	infoCmd.Flags().StringVarP(&infoQuery, "query", "q", "", "jq expression applied to the manifest")
	rootCmd.AddCommand(infoCmd)
}
