package commands

import (
	"fmt"
	"io"
	"os"
)

// openInput opens a command input. Empty or "-" means stdin. The
// returned close func is nil when there is nothing to close.
func openInput(path string) (io.Reader, func() error, string, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil, "stdin", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, "", fmt.Errorf("open input: %w", err)
	}
	return f, f.Close, path, nil
}

// openOutput opens a command output. Empty or "-" means stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
