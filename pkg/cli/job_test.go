package cli

import (
	"os"
	"path/filepath"
	"testing"
)

type testJob struct {
	Input     string `json:"input" yaml:"input"`
	Key       string `json:"key" yaml:"key"`
	ChunkSize int    `json:"chunk_size" yaml:"chunk_size"`
}

func writeJobFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func TestLoadJob_YAML(t *testing.T) {
	path := writeJobFile(t, "job.yaml", "input: in.txt\nkey: session-7\nchunk_size: 512\n")

	var job testJob
	if err := LoadJob(path, &job); err != nil {
		t.Fatalf("LoadJob error: %v", err)
	}
	if job.Input != "in.txt" || job.Key != "session-7" || job.ChunkSize != 512 {
		t.Errorf("job = %+v", job)
	}
}

func TestLoadJob_JSON(t *testing.T) {
	path := writeJobFile(t, "job.json", `{"input": "in.txt", "key": "k", "chunk_size": 256}`)

	var job testJob
	if err := LoadJob(path, &job); err != nil {
		t.Fatalf("LoadJob error: %v", err)
	}
	if job.Input != "in.txt" || job.ChunkSize != 256 {
		t.Errorf("job = %+v", job)
	}
}

func TestLoadJob_SloppyJSON(t *testing.T) {
	// Trailing comma and unquoted key: invalid JSON, but repairable.
	path := writeJobFile(t, "job.json", `{"input": "in.txt", key: "k",}`)

	var job testJob
	if err := LoadJob(path, &job); err != nil {
		t.Fatalf("LoadJob error: %v", err)
	}
	if job.Input != "in.txt" || job.Key != "k" {
		t.Errorf("job = %+v", job)
	}
}

func TestLoadJob_UnknownExtension(t *testing.T) {
	path := writeJobFile(t, "job.txt", "input: in.txt\n")

	var job testJob
	if err := LoadJob(path, &job); err != nil {
		t.Fatalf("LoadJob error: %v", err)
	}
	if job.Input != "in.txt" {
		t.Errorf("job = %+v", job)
	}
}

func TestLoadJob_MissingFile(t *testing.T) {
	var job testJob
	if err := LoadJob(filepath.Join(t.TempDir(), "nope.yaml"), &job); err == nil {
		t.Error("LoadJob should fail for a missing file")
	}
}

func TestParseJob_BadYAML(t *testing.T) {
	var job testJob
	if err := ParseJob([]byte(":\n :\n  bad"), "job.yaml", &job); err == nil {
		t.Error("ParseJob should fail for malformed YAML")
	}
}
