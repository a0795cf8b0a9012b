package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// OutputFormat selects how Output renders a value.
type OutputFormat string

const (
	// FormatYAML renders YAML, the default for terminals.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON renders indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatRaw writes strings and byte slices untouched and falls
	// back to YAML for anything else.
	FormatRaw OutputFormat = "raw"
)

// OutputOptions configures Output.
type OutputOptions struct {
	// Format is one of yaml, json or raw. Empty means yaml.
	Format OutputFormat

	// Query filters the value through a jq expression before
	// rendering.
	Query string

	// File receives the output instead of stdout when set.
	File string

	// Indent overrides the two-space JSON indentation.
	Indent string

	// Writer takes precedence over File and stdout when set.
	Writer io.Writer
}

// Output renders result to the configured destination, filtering it
// through the jq query first when one is set.
func Output(result any, opts OutputOptions) error {
	if opts.Query != "" {
		filtered, err := ApplyQuery(result, opts.Query)
		if err != nil {
			return err
		}
		result = filtered
	}

	if opts.Writer != nil {
		return opts.render(opts.Writer, result)
	}
	if opts.File == "" {
		return opts.render(os.Stdout, result)
	}
	f, err := os.Create(opts.File)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	return opts.render(f, result)
}

func (o OutputOptions) render(w io.Writer, result any) error {
	switch o.Format {
	case FormatYAML, "":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to render output: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		if o.Indent != "" {
			enc.SetIndent("", o.Indent)
		} else {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(result)
	case FormatRaw:
		switch v := result.(type) {
		case []byte:
			_, err := w.Write(v)
			return err
		case string:
			_, err := io.WriteString(w, v)
			return err
		default:
			return OutputOptions{}.render(w, result)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", o.Format)
	}
}

// PrintSuccess prints a confirmation line with a leading checkmark.
func PrintSuccess(format string, args ...any) {
	fmt.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error line to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
