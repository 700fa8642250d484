package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/genlab/clinreport/internal/history"
)

func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()

		if cmd.Short == "" {
			t.Error("expected Short description to be set")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"gene", "variation", "sample", "limit", "archive-dir"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q to exist", name)
			}
		}

		if flag := cmd.Flags().Lookup("limit"); flag != nil && flag.Shorthand != "n" {
			t.Errorf("expected limit shorthand to be 'n', got %s", flag.Shorthand)
		}
	})
}

func TestParseVariation(t *testing.T) {
	t.Parallel()

	t.Run("valid variation string", func(t *testing.T) {
		t.Parallel()

		chrom, pos, ref, alt, err := parseVariation("chr7-117559590-ATCT-A")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if chrom != "chr7" || pos != 117559590 || ref != "ATCT" || alt != "A" {
			t.Errorf("unexpected parts: %s %d %s %s", chrom, pos, ref, alt)
		}
	})

	t.Run("too few parts", func(t *testing.T) {
		t.Parallel()

		if _, _, _, _, err := parseVariation("chr7-117559590"); err == nil {
			t.Error("expected error for incomplete variation string")
		}
	})

	t.Run("non-numeric position", func(t *testing.T) {
		t.Parallel()

		if _, _, _, _, err := parseVariation("chr7-abc-A-T"); err == nil {
			t.Error("expected error for non-numeric position")
		}
	})
}

func TestRunHistory(t *testing.T) {
	t.Parallel()

	t.Run("reports missing archive without error", func(t *testing.T) {
		t.Parallel()

		cmd := NewHistoryCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--archive-dir", t.TempDir()})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No archive found") {
			t.Errorf("expected missing-archive message, got: %s", buf.String())
		}
	})

	t.Run("lists nothing for an empty archive", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		adb, err := history.Open(dir, history.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if err := adb.Close(); err != nil {
			t.Fatal(err)
		}

		cmd := NewHistoryCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--archive-dir", dir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No report builds recorded yet") {
			t.Errorf("expected empty-archive message, got: %s", buf.String())
		}
	})

	t.Run("filters by gene", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		adb, err := history.Open(dir, history.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if err := adb.Close(); err != nil {
			t.Fatal(err)
		}

		cmd := NewHistoryCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--archive-dir", dir, "--gene", "BRCA1"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No reported variants for gene BRCA1") {
			t.Errorf("expected empty gene listing, got: %s", buf.String())
		}
	})
}
