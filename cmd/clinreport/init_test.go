package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()

		if cmd.Use != "init" {
			t.Errorf("expected Use to be 'init', got %s", cmd.Use)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()

		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag to exist")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected output shorthand to be 'o', got %s", flag.Shorthand)
		}
		if flag.DefValue != profileFileName {
			t.Errorf("expected output default to be %q, got %s", profileFileName, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()

		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag to exist")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected force shorthand to be 'f', got %s", flag.Shorthand)
		}
	})
}

func TestRunInit(t *testing.T) {
	t.Parallel()

	t.Run("creates profile file", func(t *testing.T) {
		t.Parallel()

		outPath := filepath.Join(t.TempDir(), ".clinreport")

		cmd := NewInitCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"-o", outPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read created file: %v", err)
		}

		content := string(data)
		for _, want := range []string{"clinician:", "laboratory:", "sequencing:", "qualityCriteria:"} {
			if !strings.Contains(content, want) {
				t.Errorf("expected template to contain %q", want)
			}
		}
		if !strings.Contains(buf.String(), "Created profile file") {
			t.Errorf("expected confirmation message, got: %s", buf.String())
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		outPath := filepath.Join(t.TempDir(), "nested", "dir", "profile.yaml")

		cmd := NewInitCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"-o", outPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(outPath); err != nil {
			t.Errorf("expected file to exist: %v", err)
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		outPath := filepath.Join(t.TempDir(), ".clinreport")
		if err := os.WriteFile(outPath, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"-o", outPath})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for existing file")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected 'already exists' error, got: %v", err)
		}
	})

	t.Run("overwrites with force", func(t *testing.T) {
		t.Parallel()

		outPath := filepath.Join(t.TempDir(), ".clinreport")
		if err := os.WriteFile(outPath, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"-o", outPath, "-f"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) == "existing" {
			t.Error("expected file to be overwritten")
		}
	})

	t.Run("creates file with restricted permissions", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" {
			t.Skip("file permissions are not meaningful on windows")
		}

		outPath := filepath.Join(t.TempDir(), ".clinreport")

		cmd := NewInitCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"-o", outPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(outPath)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})
}
