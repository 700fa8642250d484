package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	t.Run("returns ldflags version when set", func(t *testing.T) {
		orig := version
		version = "v1.2.3"
		defer func() { version = orig }()

		if got := getVersion(); got != "v1.2.3" {
			t.Errorf("expected v1.2.3, got %s", got)
		}
	})

	t.Run("falls back when ldflags version is empty", func(t *testing.T) {
		orig := version
		version = ""
		defer func() { version = orig }()

		if got := getVersion(); got == "" {
			t.Error("expected non-empty version")
		}
	})
}

func TestGetCommit(t *testing.T) {
	t.Run("returns ldflags commit when set", func(t *testing.T) {
		orig := commit
		commit = "abc1234"
		defer func() { commit = orig }()

		if got := getCommit(); got != "abc1234" {
			t.Errorf("expected abc1234, got %s", got)
		}
	})

	t.Run("falls back when ldflags commit is empty", func(t *testing.T) {
		orig := commit
		commit = ""
		defer func() { commit = orig }()

		if got := getCommit(); got == "" {
			t.Error("expected non-empty commit")
		}
	})
}

func TestGetDate(t *testing.T) {
	t.Run("returns ldflags date when set", func(t *testing.T) {
		orig := date
		date = "2025-06-01"
		defer func() { date = orig }()

		if got := getDate(); got != "2025-06-01" {
			t.Errorf("expected 2025-06-01, got %s", got)
		}
	})
}

func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()

	t.Run("has correct use", func(t *testing.T) {
		if cmd.Use != "version" {
			t.Errorf("expected Use to be 'version', got %s", cmd.Use)
		}
	})

	t.Run("prints version information", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := NewVersionCmd()
		cmd.SetOut(&buf)

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "clinreport version") {
			t.Errorf("expected output to contain 'clinreport version', got: %s", out)
		}
		if !strings.Contains(out, "commit:") {
			t.Errorf("expected output to contain 'commit:', got: %s", out)
		}
		if !strings.Contains(out, "built:") {
			t.Errorf("expected output to contain 'built:', got: %s", out)
		}
	})
}
