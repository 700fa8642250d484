package model

import (
	"errors"
	"testing"
)

// TestNewSampleSet tests target-sample resolution for single, duo and trio
// layouts.
func TestNewSampleSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		samples    []string
		target     string
		wantTarget string
		wantKind   StudyKind
		wantErr    error
	}{
		{
			name:       "single sample defaults to itself",
			samples:    []string{"24-1001.wgs"},
			wantTarget: "24-1001.wgs",
			wantKind:   StudySingle,
		},
		{
			name:       "single sample with explicit matching target",
			samples:    []string{"24-1001.wgs"},
			target:     "24-1001.wgs",
			wantTarget: "24-1001.wgs",
			wantKind:   StudySingle,
		},
		{
			name:    "duo without target fails",
			samples: []string{"child", "mother"},
			wantErr: ErrMissingTargetSample,
		},
		{
			name:       "duo with valid target",
			samples:    []string{"child", "mother"},
			target:     "child",
			wantTarget: "child",
			wantKind:   StudyDuo,
		},
		{
			name:    "trio without target fails",
			samples: []string{"child", "mother", "father"},
			wantErr: ErrMissingTargetSample,
		},
		{
			name:       "trio with valid target",
			samples:    []string{"child", "mother", "father"},
			target:     "child",
			wantTarget: "child",
			wantKind:   StudyTrio,
		},
		{
			name:    "unknown target fails",
			samples: []string{"child", "mother", "father"},
			target:  "uncle",
			wantErr: ErrInvalidTargetSample,
		},
		{
			name:    "unknown target fails for single too",
			samples: []string{"child"},
			target:  "mother",
			wantErr: ErrInvalidTargetSample,
		},
		{
			name:    "no samples",
			samples: nil,
			wantErr: ErrNoSamples,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			set, err := NewSampleSet(tt.samples, tt.target)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if set.Target != tt.wantTarget {
				t.Errorf("target = %q, want %q", set.Target, tt.wantTarget)
			}
			if set.Kind() != tt.wantKind {
				t.Errorf("kind = %v, want %v", set.Kind(), tt.wantKind)
			}
		})
	}
}

// TestSampleSetOthers tests non-target sample enumeration.
func TestSampleSetOthers(t *testing.T) {
	t.Parallel()

	set, err := NewSampleSet([]string{"mother", "child", "father"}, "child")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	others := set.Others()
	want := []string{"mother", "father"}
	if len(others) != len(want) {
		t.Fatalf("others = %v, want %v", others, want)
	}
	for i := range want {
		if others[i] != want[i] {
			t.Errorf("others[%d] = %q, want %q", i, others[i], want[i])
		}
	}
}

// TestDisplayID tests specimen-ID shortening.
func TestDisplayID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"24-1234.wgs", "24-1234"},
		{"24-1234", "24-1234"},
		{".hidden", ".hidden"},
		{"a.b.c", "a"},
	}

	for _, tt := range tests {
		if got := DisplayID(tt.in); got != tt.want {
			t.Errorf("DisplayID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
