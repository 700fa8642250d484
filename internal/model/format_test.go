package model

import "testing"

func TestFormatPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		af   float64
		want string
	}{
		{name: "zero frequency", af: 0, want: "0%"},
		{name: "negative clamps to zero", af: -0.1, want: "0%"},
		{name: "common variant", af: 0.123, want: "12.3%"},
		{name: "one percent", af: 0.01, want: "1%"},
		{name: "sub-percent keeps one significant figure", af: 0.0042, want: "0.4%"},
		{name: "rare variant", af: 0.00037, want: "0.04%"},
		{name: "leading figure of one gets an extra digit", af: 0.000014, want: "0.0014%"},
		{name: "full frequency", af: 1, want: "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatPercent(tt.af); got != tt.want {
				t.Errorf("FormatPercent(%v) = %q, want %q", tt.af, got, tt.want)
			}
		})
	}
}

func TestFormatAlleleCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ac   int64
		want string
	}{
		{name: "small count", ac: 7, want: "7"},
		{name: "thousands", ac: 1521, want: "1,521"},
		{name: "gnomad scale", ac: 807162, want: "807,162"},
		{name: "zero", ac: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatAlleleCount(tt.ac); got != tt.want {
				t.Errorf("FormatAlleleCount(%d) = %q, want %q", tt.ac, got, tt.want)
			}
		})
	}
}
