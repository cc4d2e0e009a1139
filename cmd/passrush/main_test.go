package main

import (
	"path/filepath"
	"testing"
)

func TestRunFailsOnBadConfig(t *testing.T) {
	t.Setenv("PASSRUSH_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if code := run(); code != 1 {
		t.Fatalf("expected exit code 1 on missing config file, got %d", code)
	}
}

func TestRunFailsOnInvalidPlayCount(t *testing.T) {
	t.Setenv("PASSRUSH_PLAYS", "-10")

	if code := run(); code != 1 {
		t.Fatalf("expected exit code 1 on negative play count, got %d", code)
	}
}
