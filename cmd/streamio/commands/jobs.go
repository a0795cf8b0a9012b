package commands

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/haivivi/streamio/pkg/cli"
)

// loadJob reads a job file into job after validating it against the
// schema derived from T, so typos and wrong types surface before any
// I/O happens.
func loadJob[T any](path string, job *T) error {
	var raw any
	if err := cli.LoadJob(path, &raw); err != nil {
		return err
	}

	// Normalize through JSON so yaml's integer types match what the
	// schema validator expects.
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("invalid job file %s: %w", path, err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("invalid job file %s: %w", path, err)
	}

	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return fmt.Errorf("derive job schema: %w", err)
	}
	schema.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}} // false schema
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return fmt.Errorf("resolve job schema: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return fmt.Errorf("invalid job file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, job); err != nil {
		return fmt.Errorf("invalid job file %s: %w", path, err)
	}
	return nil
}
