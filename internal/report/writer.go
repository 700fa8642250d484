package report

import (
	"io"

	"github.com/genlab/clinreport/internal/model"
)

// Writer defines the interface for report output.
// Implementations render a built report in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. The builder renders into an in-memory buffer first and
// writes the document to disk in one step, so a failed render never leaves
// a partial report file behind.
type Writer interface {
	// Write renders the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)
}

// Assay carries the sequencing characteristics rendered into the technical
// section. It mirrors the profile file's sequencing block; the builder copies
// it over so writers do not depend on the config package.
type Assay struct {
	// Method is the assay name, e.g. "whole genome sequencing".
	Method string

	// MeanDepth is the mean genome coverage, e.g. "30x".
	MeanDepth string

	// TotalBases is the guaranteed sequencing yield.
	TotalBases string

	// ReadType is the library read layout, e.g. "paired-end".
	ReadType string

	// ReadLength is the read length in bases.
	ReadLength string

	// QualityCriteria lists the run acceptance criteria.
	QualityCriteria []string
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// sectionTableHeader is the column layout shared by the section tables of
// every text-based format. The order follows the laboratory's template.
var sectionTableHeader = []string{
	"Gene", "Variation", "Zygosity", "Inheritance",
	"Phenotype (OMIM)", "Frequency", "Coverage", "Pathogenicity",
}

// sectionTableRow renders one variant into the shared column layout.
// Multi-line cells keep "\n" separators; format writers rewrite them.
func sectionTableRow(v *model.VariantRecord) []string {
	return []string{
		orDash(v.Gene),
		v.VariationSummary(),
		v.ZygosityDisplay(),
		v.InheritanceDisplay(),
		phenotypeCell(v),
		v.FrequencyDisplay(),
		v.CoverageDisplay(),
		v.PathogenicityDisplay(),
	}
}

// phenotypeCell joins the OMIM phenotype name with its MIM number.
func phenotypeCell(v *model.VariantRecord) string {
	if v.OMIMPhenotype == "" {
		return "-"
	}
	if v.OMIMID == "" {
		return v.OMIMPhenotype
	}
	return v.OMIMPhenotype + " (OMIM " + v.OMIMID + ")"
}

// orDash substitutes "-" for an empty cell value.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// annotationSources lists the databases and tools the report's annotations
// come from, rendered in the sources section of every format.
var annotationSources = []string{
	"Ensembl VEP (transcript and consequence annotation, MANE Select transcripts)",
	"ClinVar (clinical assertions and submission summaries)",
	"gnomAD v4 (population allele frequencies, genomes and exomes)",
	"dbSNP (variant identifiers)",
	"OMIM (gene-phenotype relationships and inheritance modes)",
	"dbscSNV, MetaRNN, REVEL, AlphaMissense, phyloP100way (in-silico predictors)",
}
