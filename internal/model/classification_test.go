package model

import "testing"

// TestParseClassificationCode tests note-code parsing and validation.
func TestParseClassificationCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    ClassificationCode
		wantErr bool
	}{
		{name: "pathogenic", raw: "1", want: CodePathogenic},
		{name: "likely pathogenic", raw: "2", want: CodeLikelyPathogenic},
		{name: "uncertain", raw: "3", want: CodeUncertain},
		{name: "secondary finding", raw: "7", want: CodeSecondary},
		{name: "carrier", raw: "8", want: CodeCarrier},
		{name: "surrounding whitespace", raw: " 2 ", want: CodeLikelyPathogenic},
		{name: "empty is rejected", raw: "", wantErr: true},
		{name: "structural code is outside the set", raw: "4", wantErr: true},
		{name: "mitochondrial code is outside the set", raw: "5", wantErr: true},
		{name: "repeat-expansion code is outside the set", raw: "6", wantErr: true},
		{name: "zero is rejected", raw: "0", wantErr: true},
		{name: "non-numeric is rejected", raw: "pathogenic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseClassificationCode(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got code %d", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("want %d, got %d", tt.want, got)
			}
		})
	}
}

// TestClassificationCodeCausative tests the causative/non-causative split.
func TestClassificationCodeCausative(t *testing.T) {
	t.Parallel()

	causative := map[ClassificationCode]bool{
		CodePathogenic:       true,
		CodeLikelyPathogenic: true,
		CodeUncertain:        true,
		CodeSecondary:        false,
		CodeCarrier:          false,
	}

	for code, want := range causative {
		if got := code.Causative(); got != want {
			t.Errorf("code %d: Causative() = %v, want %v", code, got, want)
		}
	}
}

// TestReportOrder tests that the section order is the fixed severity order.
func TestReportOrder(t *testing.T) {
	t.Parallel()

	want := []ClassificationCode{1, 2, 3, 7, 8}
	if len(ReportOrder) != len(want) {
		t.Fatalf("ReportOrder has %d codes, want %d", len(ReportOrder), len(want))
	}
	for i, code := range want {
		if ReportOrder[i] != code {
			t.Errorf("ReportOrder[%d] = %d, want %d", i, ReportOrder[i], code)
		}
	}
}

// TestClassificationCodeLabels tests labels and section titles for all codes.
func TestClassificationCodeLabels(t *testing.T) {
	t.Parallel()

	for _, code := range ReportOrder {
		if code.String() == "unknown" {
			t.Errorf("code %d has no label", code)
		}
		if code.SectionTitle() == "Unclassified variants" {
			t.Errorf("code %d has no section title", code)
		}
	}

	if got := ClassificationCode(42).String(); got != "unknown" {
		t.Errorf("out-of-set code label = %q, want %q", got, "unknown")
	}
}
