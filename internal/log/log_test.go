package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_StderrLevels(t *testing.T) {
	var stderr bytes.Buffer

	if err := Init(Options{Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("debug message")
	slog.Info("info message")
	Warn("warn message")
	slog.Error("error message")

	output := stderr.String()

	if strings.Contains(output, "debug message") {
		t.Error("debug should not appear on stderr in non-verbose mode")
	}
	if strings.Contains(output, "info message") {
		t.Error("info should not appear on stderr in non-verbose mode")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn should appear on stderr")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error should appear on stderr")
	}
}

func TestInit_Verbose(t *testing.T) {
	var stderr bytes.Buffer

	if err := Init(Options{Verbose: true, Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// adapters log through the slog default
	slog.Debug("fetched github tags", "tags", 3)

	if !strings.Contains(stderr.String(), "fetched github tags") {
		t.Errorf("expected debug output, got: %s", stderr.String())
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var stderr bytes.Buffer

	if err := Init(Options{JSONFormat: true, Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	With("purl", "pkg:gem/rails").Warn("resolve failed")

	var record map[string]any
	if err := json.Unmarshal(stderr.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", stderr.String(), err)
	}
	if record["msg"] != "resolve failed" || record["purl"] != "pkg:gem/rails" {
		t.Errorf("unexpected record: %v", record)
	}
}

func TestInit_File(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "versionbadge.jsonl")

	if err := Init(Options{File: path, Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("file only", "key", "value")
	Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), "file only") {
		t.Errorf("expected log file to contain message, got: %s", content)
	}
	if strings.Contains(stderr.String(), "file only") {
		t.Error("debug should not reach stderr in non-verbose mode")
	}
}

func TestInit_BadFile(t *testing.T) {
	err := Init(Options{File: filepath.Join(t.TempDir(), "missing", "dir", "log.jsonl"), Stderr: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("expected error for unwritable log path")
	}
}

func TestCloseReleasesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "versionbadge.jsonl")

	if err := Init(Options{File: path, Stderr: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	f := logFile
	Close()
	Close()

	if logFile != nil {
		t.Error("Close should reset the file handle")
	}
	if _, err := f.Write([]byte("x")); err == nil {
		t.Error("expected write to a closed log file to fail")
	}
}
