package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeStub(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "present")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheck(t *testing.T) {
	present := writeStub(t)
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := Check(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present || results[0].Detail != "" {
		t.Fatalf("unexpected status for present binary: %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable: %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected status for blank command: %#v", results[2])
	}
}

func TestRequire(t *testing.T) {
	if err := Require(Fetcher(writeStub(t))); err != nil {
		t.Fatalf("Require present: %v", err)
	}
	err := Require(Fetcher("clearly-not-present-binary"))
	if !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	optional := Requirement{Name: "Extra", Command: "clearly-not-present-binary", Optional: true}
	if err := Require(optional); err != nil {
		t.Fatalf("optional requirement should not fail: %v", err)
	}
}
