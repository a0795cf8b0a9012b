// Package main is the entry point for the streamio CLI.
//
// Usage:
//
//	streamio [flags] <command> [args]
//
// Commands:
//
//	record    - Record a stream into a spool store
//	replay    - Replay a spooled stream
//	merge     - Merge several streams into one
//	decode    - Decode text streams (BOM, \uXXXX escapes, charsets)
//	info      - Show the manifest of a spooled stream
//	version   - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/haivivi/streamio/cmd/streamio/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
