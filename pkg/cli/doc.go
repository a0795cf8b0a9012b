// Package cli provides the shared terminal surface of the streamio
// commands.
//
// Output renders results as YAML, JSON or raw bytes, optionally
// filtered through a jq expression first. LoadJob reads job
// descriptions from YAML or JSON files, repairing sloppy JSON once
// before giving up. Theme and Styles wrap lipgloss for colored
// terminal output, and the Format helpers render sizes and durations
// for humans.
//
//	var job RecordJob
//	if err := cli.LoadJob("job.yaml", &job); err != nil {
//		return err
//	}
//
//	cli.Output(manifest, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    Query:  ".length",
//	})
package cli
