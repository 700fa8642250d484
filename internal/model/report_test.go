package model

import (
	"reflect"
	"testing"
)

// reportRecord builds a minimal record at a locus with a classification.
func reportRecord(code ClassificationCode, chrom string, pos int64, ref, alt string) VariantRecord {
	return VariantRecord{Chrom: chrom, Pos: pos, Ref: ref, Alt: alt, Code: code}
}

// TestNewReport tests section grouping and deterministic ordering.
func TestNewReport(t *testing.T) {
	t.Parallel()

	t.Run("codes 1,3,1 group into two sections", func(t *testing.T) {
		t.Parallel()

		r := NewReport(ReportMeta{}, []VariantRecord{
			reportRecord(CodePathogenic, "chr1", 100, "A", "G"),
			reportRecord(CodeUncertain, "chr2", 200, "C", "T"),
			reportRecord(CodePathogenic, "chr3", 300, "G", "A"),
		})

		if len(r.Sections) != 2 {
			t.Fatalf("want 2 sections, got %d", len(r.Sections))
		}
		if r.Sections[0].Code != CodePathogenic || len(r.Sections[0].Records) != 2 {
			t.Errorf("first section = code %d with %d records, want code 1 with 2",
				r.Sections[0].Code, len(r.Sections[0].Records))
		}
		if r.Sections[1].Code != CodeUncertain || len(r.Sections[1].Records) != 1 {
			t.Errorf("second section = code %d with %d records, want code 3 with 1",
				r.Sections[1].Code, len(r.Sections[1].Records))
		}
	})

	t.Run("sections follow fixed severity order regardless of row order", func(t *testing.T) {
		t.Parallel()

		r := NewReport(ReportMeta{}, []VariantRecord{
			reportRecord(CodeCarrier, "chr1", 100, "A", "G"),
			reportRecord(CodeSecondary, "chr2", 200, "C", "T"),
			reportRecord(CodeUncertain, "chr3", 300, "G", "A"),
			reportRecord(CodeLikelyPathogenic, "chr4", 400, "T", "C"),
			reportRecord(CodePathogenic, "chr5", 500, "A", "T"),
		})

		want := []ClassificationCode{
			CodePathogenic, CodeLikelyPathogenic, CodeUncertain, CodeSecondary, CodeCarrier,
		}
		if len(r.Sections) != len(want) {
			t.Fatalf("want %d sections, got %d", len(want), len(r.Sections))
		}
		for i, code := range want {
			if r.Sections[i].Code != code {
				t.Errorf("section %d = code %d, want %d", i, r.Sections[i].Code, code)
			}
		}
	})

	t.Run("records sort by chromosome, position, ref and alt", func(t *testing.T) {
		t.Parallel()

		r := NewReport(ReportMeta{}, []VariantRecord{
			reportRecord(CodePathogenic, "chr7", 200, "C", "T"),
			reportRecord(CodePathogenic, "chr7", 100, "T", "A"),
			reportRecord(CodePathogenic, "chr2", 500, "G", "A"),
			reportRecord(CodePathogenic, "chr7", 100, "A", "G"),
			reportRecord(CodePathogenic, "chr7", 100, "A", "C"),
		})

		recs := r.Sections[0].Records
		wantLoci := []string{
			"chr2-500-G-A",
			"chr7-100-A-C",
			"chr7-100-A-G",
			"chr7-100-T-A",
			"chr7-200-C-T",
		}
		for i, want := range wantLoci {
			if got := recs[i].Locus(); got != want {
				t.Errorf("record %d = %s, want %s", i, got, want)
			}
		}
	})

	t.Run("shuffled input yields an identical report", func(t *testing.T) {
		t.Parallel()

		records := []VariantRecord{
			reportRecord(CodePathogenic, "chr7", 100, "A", "G"),
			reportRecord(CodeCarrier, "chr2", 500, "G", "A"),
			reportRecord(CodeUncertain, "chr1", 50, "T", "C"),
			reportRecord(CodePathogenic, "chr1", 300, "C", "T"),
		}
		reversed := make([]VariantRecord, len(records))
		for i, rec := range records {
			reversed[len(records)-1-i] = rec
		}

		a := NewReport(ReportMeta{Sample: "child"}, records)
		b := NewReport(ReportMeta{Sample: "child"}, reversed)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("reports differ by input order:\n%+v\n%+v", a, b)
		}
	})

	t.Run("no records means no sections", func(t *testing.T) {
		t.Parallel()

		r := NewReport(ReportMeta{}, nil)
		if !r.Empty() {
			t.Error("report should be empty")
		}
		if r.TotalVariants() != 0 {
			t.Errorf("total = %d, want 0", r.TotalVariants())
		}
	})
}
