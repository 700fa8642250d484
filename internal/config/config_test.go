package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestValidate tests configuration validation.
func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("no database", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := cfg.Validate(); !errors.Is(err, ErrNoDatabase) {
			t.Fatalf("want ErrNoDatabase, got %v", err)
		}
	})

	t.Run("valid defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Databases = []string{"run.sqlite"}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Databases = []string{"run.sqlite"}
		cfg.ReportFormat = Format("docx")
		if err := cfg.Validate(); !errors.Is(err, ErrConflictingFormats) {
			t.Fatalf("want ErrConflictingFormats, got %v", err)
		}
	})
}

// TestOutputFor tests output-path derivation.
func TestOutputFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		format      Format
		output      string
		outputIsDir bool
		dbPath      string
		want        string
	}{
		{
			name:   "default beside input",
			format: FormatMarkdown,
			dbPath: filepath.Join("data", "trio.sqlite"),
			want:   filepath.Join("data", "trio.report.md"),
		},
		{
			name:   "explicit file",
			format: FormatMarkdown,
			output: filepath.Join("out", "final.md"),
			dbPath: "trio.sqlite",
			want:   filepath.Join("out", "final.md"),
		},
		{
			name:        "directory output",
			format:      FormatJSON,
			output:      "out",
			outputIsDir: true,
			dbPath:      filepath.Join("data", "trio.sqlite"),
			want:        filepath.Join("out", "trio.report.json"),
		},
		{
			name:   "text extension",
			format: FormatText,
			dbPath: "run.sqlite",
			want:   "run.report.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			cfg.ReportFormat = tt.format
			cfg.OutputPath = tt.output
			if got := cfg.OutputFor(tt.dbPath, tt.outputIsDir); got != tt.want {
				t.Errorf("OutputFor = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestLoadProfile tests profile loading and default merging.
func TestLoadProfile(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrProfileNotFound) {
			t.Fatalf("want ErrProfileNotFound, got %v", err)
		}
	})

	t.Run("partial profile keeps sequencing defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".clinreport")
		content := "clinician: A. Ivanova\nlaboratory: GenLab\nsequencing:\n  meanDepth: 34x\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write profile: %v", err)
		}

		p, err := LoadProfile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Clinician != "A. Ivanova" {
			t.Errorf("clinician = %q", p.Clinician)
		}
		if p.Sequencing.MeanDepth != "34x" {
			t.Errorf("meanDepth = %q", p.Sequencing.MeanDepth)
		}
		if p.Sequencing.Method != "whole genome sequencing" {
			t.Errorf("method default not merged, got %q", p.Sequencing.Method)
		}
		if len(p.Sequencing.QualityCriteria) != 2 {
			t.Errorf("quality criteria defaults not merged, got %v", p.Sequencing.QualityCriteria)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".clinreport")
		if err := os.WriteFile(path, []byte("clinician: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write profile: %v", err)
		}
		if _, err := LoadProfile(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

// TestFindProfileFile tests the explicit-path branch.
func TestFindProfileFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "profile.yaml")
		if err := os.WriteFile(path, []byte("clinician: X"), 0600); err != nil {
			t.Fatalf("failed to write profile: %v", err)
		}
		if got := FindProfileFile(path); got != path {
			t.Errorf("FindProfileFile = %q, want %q", got, path)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindProfileFile(filepath.Join(t.TempDir(), "nope.yaml")); got != "" {
			t.Errorf("FindProfileFile = %q, want empty", got)
		}
	})
}
