package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"advancedstats/chart"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, `{"datasets":[{"data":[10]}]}`, "config", "-")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	var cfg chart.Config
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v\n%s", err, out)
	}
	if cfg.YMax() != 11 {
		t.Errorf("Expected ceiling 11, got %v", cfg.YMax())
	}
}

func TestConfigCommandMalformed(t *testing.T) {
	out, err := run(t, `{not json`, "config")
	var parseErr *chart.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if out != "" {
		t.Errorf("Expected no output, got %q", out)
	}
}

func TestPNGCommandToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.json")
	if err := os.WriteFile(input, []byte(`{"labels":["October"],"datasets":[{"label":"Fest","data":[3]}]}`), 0o600); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}
	output := filepath.Join(dir, "chart.png")

	if _, err := run(t, "", "png", input, "-o", output); err != nil {
		t.Fatalf("png failed: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("Expected PNG signature")
	}
}
