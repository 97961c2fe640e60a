package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"modelwatch/internal/config"
)

// setupTestConfig points the config package at a temp file and returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// execConfig creates the config command, wires up output buffers, runs with the
// given args, and returns what was written to stdout and stderr.
func execConfig(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestSet_APIURL(t *testing.T) {
	path := setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "api-url", "http://localhost:8000/")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"http://localhost:8000"`) {
		t.Errorf("expected confirmation with trimmed URL, got: %s", stdout)
	}

	// Verify it was persisted.
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("persisted api-url = %q", cfg.APIURL)
	}
}

func TestSet_APIURL_Invalid(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "api-url", "not a url")

	if !strings.Contains(stderr, "not a valid http(s) URL") {
		t.Errorf("expected URL validation error, got: %s", stderr)
	}
}

func TestSet_DefaultEndpoint(t *testing.T) {
	path := setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "default-endpoint", "sepsis-triage")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"sepsis-triage"`) {
		t.Errorf("expected confirmation, got: %s", stdout)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.DefaultEndpoint != "sepsis-triage" {
		t.Errorf("persisted default-endpoint = %q", cfg.DefaultEndpoint)
	}
}

func TestSet_DefaultEndpoint_Invalid(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "default-endpoint", "-bad-name")

	if stderr == "" {
		t.Error("expected a validation error for an invalid endpoint name")
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "bogus-key", "value")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}
