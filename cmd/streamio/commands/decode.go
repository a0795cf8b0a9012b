package commands

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/haivivi/streamio/pkg/cli"
	"github.com/haivivi/streamio/pkg/streams"
	"github.com/haivivi/streamio/pkg/textio"
)

// DecodeJob describes a decode run.
type DecodeJob struct {
	Input    string `json:"input,omitempty"`
	Output   string `json:"output,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Unescape bool   `json:"unescape,omitempty"`
	KeepBOM  bool   `json:"keep_bom,omitempty"`
}

var (
	decodeJobFile  string
	decodeOutput   string
	decodeFrom     string
	decodeTo       string
	decodeUnescape bool
	decodeKeepBOM  bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [input]",
	Short: "Decode text streams (BOM, \\uXXXX escapes, charsets)",
	Long: `Decode a text stream.

The pipeline runs in this order: a leading byte-order mark is stripped
(unless --keep-bom), --from transcodes the input charset to UTF-8,
--unescape decodes \uXXXX escape sequences, and --to transcodes the
result to a target charset.

Charset names are IANA names as understood by the x/text registry
(for example ISO-8859-1, UTF-16, windows-1252, GBK).

Examples:
  streamio decode notes.txt --from ISO-8859-1
  streamio decode escaped.txt --unescape
  streamio decode notes.txt --from UTF-16 --to UTF-8 -o notes.utf8.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var job DecodeJob
		if decodeJobFile != "" {
			if err := loadJob(decodeJobFile, &job); err != nil {
				return err
			}
		}
		if len(args) > 0 {
			job.Input = args[0]
		}
		if cmd.Flags().Changed("output") {
			job.Output = decodeOutput
		}
		if cmd.Flags().Changed("from") {
			job.From = decodeFrom
		}
		if cmd.Flags().Changed("to") {
			job.To = decodeTo
		}
		if cmd.Flags().Changed("unescape") {
			job.Unescape = decodeUnescape
		}
		if cmd.Flags().Changed("keep-bom") {
			job.KeepBOM = decodeKeepBOM
		}

		src, closeIn, _, err := openInput(job.Input)
		if err != nil {
			return err
		}
		if closeIn != nil {
			defer closeIn()
		}

		if !job.KeepBOM {
			bom, rest, err := textio.DetectBOM(src)
			if err != nil {
				return fmt.Errorf("detect BOM: %w", err)
			}
			if bom != textio.BOMNone && IsVerbose() {
				cli.PrintSuccess("stripped %s byte-order mark", bom)
			}
			src = rest
		}
		if job.From != "" {
			enc, err := textio.Charset(job.From)
			if err != nil {
				return err
			}
			src = textio.DecodeReader(src, enc)
		}
		if job.Unescape {
			src = runesToBytes(textio.NewUnicodeReader(bufio.NewReader(src)))
		}
		if job.To != "" {
			enc, err := textio.Charset(job.To)
			if err != nil {
				return err
			}
			src = textio.EncodeReader(src, enc)
		}

		out, closeOut, err := openOutput(job.Output)
		if err != nil {
			return err
		}
		written, err := streams.Pipe(out, src)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		if closeOut != nil {
			if err := closeOut(); err != nil {
				return err
			}
		}

		if IsVerbose() {
			cli.PrintSuccess("decoded %s", cli.FormatBytes(written))
		}
		return nil
	},
}

// runesToBytes adapts a rune reader into a UTF-8 byte stream.
func runesToBytes(rr io.RuneReader) io.Reader {
	pr, pw := io.Pipe()
	go func() {
		bw := bufio.NewWriter(pw)
		for {
			r, _, err := rr.ReadRune()
			if err != nil {
				flushErr := bw.Flush()
				if err == io.EOF {
					err = flushErr
				}
				pw.CloseWithError(err)
				return
			}
			if _, err := bw.WriteRune(r); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
	}()
	return pr
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeJobFile, "file", "f", "", "job file (yaml or json)")
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "output file (stdout when empty)")
	decodeCmd.Flags().StringVar(&decodeFrom, "from", "", "input charset (IANA name)")
	decodeCmd.Flags().StringVar(&decodeTo, "to", "", "output charset (IANA name)")
	decodeCmd.Flags().BoolVar(&decodeUnescape, "unescape", false, "decode \\uXXXX escape sequences")
	decodeCmd.Flags().BoolVar(&decodeKeepBOM, "keep-bom", false, "keep a leading byte-order mark")
	rootCmd.AddCommand(decodeCmd)
}
