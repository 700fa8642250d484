package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestRedactingHandler_Handle tests attribute masking in log records.
func TestRedactingHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		key        string
		value      string
		wantMasked bool
	}{
		{
			name:       "patient name key is masked",
			key:        "patient",
			value:      "Doe, Jane",
			wantMasked: true,
		},
		{
			name:       "diagnosis key is masked",
			key:        "diagnosis",
			value:      "cystic fibrosis",
			wantMasked: true,
		},
		{
			name:       "date of birth key is masked",
			key:        "dob",
			value:      "12.03.2019",
			wantMasked: true,
		},
		{
			name:       "clinician key is masked",
			key:        "clinician",
			value:      "A. Ivanova",
			wantMasked: true,
		},
		{
			name:       "keyword inside composite key is masked",
			key:        "referring_clinician",
			value:      "B. Petrov",
			wantMasked: true,
		},
		{
			name:       "specimen accession value is masked",
			key:        "note",
			value:      "MD-2024-01234",
			wantMasked: true,
		},
		{
			name:       "iso date value is masked",
			key:        "note",
			value:      "2019-03-12",
			wantMasked: true,
		},
		{
			name:       "database path passes through",
			key:        "database",
			value:      "trio.sqlite",
			wantMasked: false,
		},
		{
			name:       "sample identifier passes through",
			key:        "sample",
			value:      "proband",
			wantMasked: false,
		},
		{
			name:       "gene symbol passes through",
			key:        "gene",
			value:      "CFTR",
			wantMasked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewRedactingHandler(slog.NewTextHandler(&buf, nil)))
			logger.Info("test message", tt.key, tt.value)

			output := buf.String()
			masked := strings.Contains(output, MaskValue)
			if masked != tt.wantMasked {
				t.Errorf("masked = %v, want %v (output: %s)", masked, tt.wantMasked, output)
			}
			if tt.wantMasked && strings.Contains(output, tt.value) {
				t.Errorf("masked value leaked into output: %s", output)
			}
		})
	}
}

// TestRedactingHandler_WithAttrs tests that pre-bound attributes are masked.
func TestRedactingHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(slog.NewTextHandler(&buf, nil)))
	logger = logger.With("patient", "Doe, Jane", "database", "trio.sqlite")
	logger.Info("building report")

	output := buf.String()
	if strings.Contains(output, "Doe, Jane") {
		t.Errorf("patient name leaked into output: %s", output)
	}
	if !strings.Contains(output, "trio.sqlite") {
		t.Errorf("database path was masked: %s", output)
	}
}

// TestRedactingHandler_Groups tests recursion into attribute groups.
func TestRedactingHandler_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(slog.NewTextHandler(&buf, nil)))
	logger.Info("test message",
		slog.Group("case",
			slog.String("diagnosis", "cystic fibrosis"),
			slog.String("sample", "proband"),
		),
	)

	output := buf.String()
	if strings.Contains(output, "cystic fibrosis") {
		t.Errorf("diagnosis leaked into output: %s", output)
	}
	if !strings.Contains(output, "proband") {
		t.Errorf("sample identifier was masked: %s", output)
	}
}

// TestNewLogger tests the level selection of the logger constructors.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("default level hides info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Info("hidden")
		logger.Warn("shown")

		output := buf.String()
		if strings.Contains(output, "hidden") {
			t.Errorf("info logged at default level: %s", output)
		}
		if !strings.Contains(output, "shown") {
			t.Errorf("warn not logged: %s", output)
		}
	})

	t.Run("verbose level shows debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)
		logger.Debug("visible")

		if !strings.Contains(buf.String(), "visible") {
			t.Errorf("debug not logged in verbose mode: %s", buf.String())
		}
	})

	t.Run("json logger emits json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewJSONLogger(&buf, true)
		logger.Info("test", "patient", "Doe, Jane")

		output := buf.String()
		if !strings.HasPrefix(output, "{") {
			t.Errorf("output is not JSON: %s", output)
		}
		if strings.Contains(output, "Doe, Jane") {
			t.Errorf("patient name leaked into output: %s", output)
		}
	})
}
