package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/genlab/clinreport/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// assay is the sequencing block rendered into the technical section.
	assay Assay

	// verbose enables in-silico predictor scores in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithSimpleAssay sets the sequencing characteristics for the technical
// section.
func WithSimpleAssay(assay Assay) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.assay = assay
	}
}

// WithVerbose enables verbose output with predictor scores.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeResults(&sb, report)
	w.writeInterpretation(&sb, report)
	w.writeTechnical(&sb)
	w.writeSources(&sb)
	w.writeFooter(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report banner and the study information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      CLINICAL VARIANT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	if report.Meta.Laboratory != "" {
		fmt.Fprintf(sb, "Laboratory:     %s\n", report.Meta.Laboratory)
	}
	fmt.Fprintf(sb, "Sample:         %s\n", model.DisplayID(report.Meta.Sample))
	fmt.Fprintf(sb, "Study:          %s\n", report.Meta.Study)
	if len(report.Meta.FamilySamples) > 1 {
		fmt.Fprintf(sb, "Family samples: %s\n", displayIDs(report.Meta.FamilySamples))
	}
	fmt.Fprintf(sb, "Database:       %s\n", report.Meta.Database)
	fmt.Fprintf(sb, "Report date:    %s\n", report.Meta.Date.Format("2006-01-02"))
	sb.WriteString("\n")
}

// writeResults writes the classification sections or the no-findings text.
func (w *SimpleWriter) writeResults(sb *strings.Builder, report *model.Report) {
	w.writeRule(sb, "RESULTS")

	if report.Empty() {
		sb.WriteString("  ")
		sb.WriteString(NoFindingsStatement)
		sb.WriteString("\n\n")
		return
	}

	for i := range report.Sections {
		w.writeSection(sb, &report.Sections[i])
	}
}

// writeSection writes one classification section with indented records.
func (w *SimpleWriter) writeSection(sb *strings.Builder, section *model.Section) {
	fmt.Fprintf(sb, "[%d] %s\n\n", int(section.Code), section.Title())

	for i := range section.Records {
		w.writeRecord(sb, &section.Records[i])
	}
}

// writeRecord writes one variant as an indented block.
func (w *SimpleWriter) writeRecord(sb *strings.Builder, v *model.VariantRecord) {
	fmt.Fprintf(sb, "  * %s\n", orDash(v.Gene))
	for _, line := range strings.Split(v.VariationSummary(), "\n") {
		fmt.Fprintf(sb, "      %s\n", line)
	}
	fmt.Fprintf(sb, "    Zygosity:      %s\n", v.ZygosityDisplay())
	fmt.Fprintf(sb, "    Inheritance:   %s\n", v.InheritanceDisplay())
	fmt.Fprintf(sb, "    Phenotype:     %s\n", phenotypeCell(v))
	fmt.Fprintf(sb, "    Frequency:     %s\n", v.FrequencyDisplay())
	fmt.Fprintf(sb, "    Coverage:      %s\n", v.CoverageDisplay())
	fmt.Fprintf(sb, "    Pathogenicity: %s\n", v.PathogenicityDisplay())

	if w.verbose {
		w.writePredictors(sb, v)
	}
	sb.WriteString("\n")
}

// writePredictors writes the raw in-silico scores in verbose mode.
func (w *SimpleWriter) writePredictors(sb *strings.Builder, v *model.VariantRecord) {
	scores := []struct {
		name  string
		value *float64
	}{
		{"ADA", v.Predictor.ADAScore},
		{"MetaRNN", v.Predictor.MetaRNN},
		{"REVEL", v.Predictor.REVEL},
		{"AlphaMissense", v.Predictor.AlphaMissense},
		{"phyloP", v.Predictor.PhyloP},
	}

	var parts []string
	for _, s := range scores {
		if s.value != nil {
			parts = append(parts, fmt.Sprintf("%s=%.3f", s.name, *s.value))
		}
	}
	if v.GERPScore != nil {
		parts = append(parts, fmt.Sprintf("GERP=%.2f", *v.GERPScore))
	}
	if len(parts) > 0 {
		fmt.Fprintf(sb, "    Predictors:    %s\n", strings.Join(parts, ", "))
	}
}

// writeInterpretation writes the narrative paragraphs for causative variants.
func (w *SimpleWriter) writeInterpretation(sb *strings.Builder, report *model.Report) {
	paragraphs := Interpretation(report)
	if len(paragraphs) == 0 {
		return
	}

	w.writeRule(sb, "INTERPRETATION")
	for _, p := range paragraphs {
		sb.WriteString("  ")
		sb.WriteString(p)
		sb.WriteString("\n\n")
	}
}

// writeTechnical writes the sequencing characteristics section.
func (w *SimpleWriter) writeTechnical(sb *strings.Builder) {
	w.writeRule(sb, "TECHNICAL CHARACTERISTICS")

	fmt.Fprintf(sb, "  Method:       %s\n", orDash(w.assay.Method))
	fmt.Fprintf(sb, "  Mean depth:   %s\n", orDash(w.assay.MeanDepth))
	fmt.Fprintf(sb, "  Total yield:  %s\n", orDash(w.assay.TotalBases))
	fmt.Fprintf(sb, "  Read type:    %s\n", orDash(w.assay.ReadType))
	fmt.Fprintf(sb, "  Read length:  %s\n", orDash(w.assay.ReadLength))
	for _, c := range w.assay.QualityCriteria {
		fmt.Fprintf(sb, "  - %s\n", c)
	}
	sb.WriteString("\n")
}

// writeSources writes the annotation sources section.
func (w *SimpleWriter) writeSources(sb *strings.Builder) {
	w.writeRule(sb, "ANNOTATION SOURCES")
	for _, s := range annotationSources {
		fmt.Fprintf(sb, "  - %s\n", s)
	}
	sb.WriteString("\n")
}

// writeFooter writes the clinician sign-off block.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	clinician := report.Meta.Clinician
	if clinician == "" {
		clinician = "________"
	}
	fmt.Fprintf(sb, "Clinical bioinformatician: %s\n", clinician)
	fmt.Fprintf(sb, "Date: %s   Signature: ________\n", report.Meta.Date.Format("2006-01-02"))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// writeRule writes a section divider with its heading.
func (w *SimpleWriter) writeRule(sb *strings.Builder, heading string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(heading)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}
