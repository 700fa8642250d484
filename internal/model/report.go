package model

import (
	"sort"
	"time"
)

// ReportMeta carries the per-report header information that does not come
// from the variant table.
type ReportMeta struct {
	// Database is the input database path the report was built from.
	Database string `json:"database"`

	// Sample is the target (proband) sample the report is about.
	Sample string `json:"sample"`

	// FamilySamples lists all samples in the study, including the target.
	FamilySamples []string `json:"family_samples,omitempty"`

	// Study is the single/duo/trio layout.
	Study StudyKind `json:"study"`

	// Clinician is the reporting clinician's name from the profile file.
	Clinician string `json:"clinician,omitempty"`

	// Laboratory is the issuing laboratory's name from the profile file.
	Laboratory string `json:"laboratory,omitempty"`

	// Date is the report issue date. The builder sets it once per build so
	// that a build is internally consistent and tests can pin it.
	Date time.Time `json:"date"`
}

// Section is one classification block of the report: the code and its
// records in deterministic order.
type Section struct {
	// Code is the classification shared by every record in the section.
	Code ClassificationCode `json:"code"`

	// Records holds the section's variants ordered by chromosome, position,
	// ref and alt.
	Records []VariantRecord `json:"records"`
}

// Title returns the section's clinical heading.
func (s *Section) Title() string {
	return s.Code.SectionTitle()
}

// Report is the structured clinical report: severity-ordered sections, one
// per classification code that has at least one record. It is built once per
// invocation and discarded after rendering.
type Report struct {
	// Meta is the report header information.
	Meta ReportMeta `json:"meta"`

	// Sections holds the non-empty classification sections in the fixed
	// severity order 1, 2, 3, 7, 8.
	Sections []Section `json:"sections,omitempty"`
}

// NewReport groups classified records into severity-ordered sections.
// Sections appear only for codes with at least one record, always in
// ReportOrder regardless of database row order. Within a section, records
// are sorted by chromosome, position, reference allele and alternate allele
// so that rebuilding from the same input yields identical output.
func NewReport(meta ReportMeta, records []VariantRecord) *Report {
	byCode := make(map[ClassificationCode][]VariantRecord, len(ReportOrder))
	for _, rec := range records {
		byCode[rec.Code] = append(byCode[rec.Code], rec)
	}

	r := &Report{Meta: meta}
	for _, code := range ReportOrder {
		recs := byCode[code]
		if len(recs) == 0 {
			continue
		}
		sortRecords(recs)
		r.Sections = append(r.Sections, Section{Code: code, Records: recs})
	}
	return r
}

// sortRecords orders records by chromosome, position, ref and alt.
// Chromosome names compare lexically; that is stable, which is what matters
// for reproducibility, even though "chr10" sorts before "chr2".
func sortRecords(recs []VariantRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Chrom != b.Chrom {
			return a.Chrom < b.Chrom
		}
		if a.Pos != b.Pos {
			return a.Pos < b.Pos
		}
		if a.Ref != b.Ref {
			return a.Ref < b.Ref
		}
		return a.Alt < b.Alt
	})
}

// Empty reports whether no variant carried a reportable classification.
// An empty report still renders a document stating that no reportable
// findings were identified.
func (r *Report) Empty() bool {
	return len(r.Sections) == 0
}

// TotalVariants returns the number of records across all sections.
func (r *Report) TotalVariants() int {
	total := 0
	for _, s := range r.Sections {
		total += len(s.Records)
	}
	return total
}

// SectionFor returns the section for the given code, or nil when the code
// has no records.
func (r *Report) SectionFor(code ClassificationCode) *Section {
	for i := range r.Sections {
		if r.Sections[i].Code == code {
			return &r.Sections[i]
		}
	}
	return nil
}

// CausativeRecords returns the records of the causative sections (codes 1-3)
// in section order. These receive the interpretation narrative.
func (r *Report) CausativeRecords() []VariantRecord {
	var recs []VariantRecord
	for _, s := range r.Sections {
		if s.Code.Causative() {
			recs = append(recs, s.Records...)
		}
	}
	return recs
}
