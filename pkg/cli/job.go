package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kaptinlin/jsonrepair"
)

// LoadJob loads a job description from a YAML or JSON file into the
// provided struct. The path "-" reads from stdin.
func LoadJob(path string, v any) error {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		return ParseJob(data, "", v)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	return ParseJob(data, path, v)
}

// ParseJob parses job data based on file extension. JSON jobs that
// fail the strict parse are run through jsonrepair once, so
// hand-written files with trailing commas or unquoted keys still load.
func ParseJob(data []byte, filename string, v any) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return parseJSONJob(data, v)
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML job: %w", err)
		}
		return nil
	default:
		// YAML is a JSON superset, so it covers both when the
		// extension gives no hint.
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse job: %w", err)
		}
		return nil
	}
}

func parseJSONJob(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return fmt.Errorf("failed to parse JSON job: %w", err)
	}
	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return fmt.Errorf("failed to parse JSON job: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("failed to parse repaired JSON job: %w", err)
	}
	return nil
}
