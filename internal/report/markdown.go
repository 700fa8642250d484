package report

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/genlab/clinreport/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This is the primary document format: the rendered file imports cleanly
// into the word processors the laboratory finalizes and signs reports in.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// assay is the sequencing block rendered into the technical section.
	assay Assay
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithAssay sets the sequencing characteristics for the technical section.
func WithAssay(assay Assay) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.assay = assay
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeResults(md, report)
	w.writeInterpretation(md, report)
	w.writeTechnical(md)
	w.writeSources(md)
	w.writeSignature(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title, the study information table and the
// patient fill-in block. Patient identity is never stored in the annotation
// database; the clinician fills it in when finalizing the document.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	title := "Clinical Variant Report"
	if report.Meta.Laboratory != "" {
		title = report.Meta.Laboratory + ": Clinical Variant Report"
	}
	md.H1(title)
	md.PlainText("")

	rows := [][]string{
		{"Sample", model.DisplayID(report.Meta.Sample)},
		{"Study", report.Meta.Study.String()},
	}
	if len(report.Meta.FamilySamples) > 1 {
		rows = append(rows, []string{"Family samples", displayIDs(report.Meta.FamilySamples)})
	}
	rows = append(rows,
		[]string{"Annotation database", "`" + report.Meta.Database + "`"},
		[]string{"Report date", report.Meta.Date.Format("2006-01-02")},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.PlainText("Patient: \\_\\_\\_\\_\\_\\_\\_\\_ Date of birth: \\_\\_\\_\\_\\_\\_\\_\\_ Sex: \\_\\_\\_\\_")
	md.PlainText("")
	md.PlainText("Referral diagnosis: \\_\\_\\_\\_\\_\\_\\_\\_")
	md.PlainText("")
}

// writeResults writes the classification sections or the no-findings note.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.Report) {
	md.H2("Results")
	md.PlainText("")

	if report.Empty() {
		md.Note(NoFindingsStatement)
		md.PlainText("")
		return
	}

	for i := range report.Sections {
		w.writeSection(md, &report.Sections[i])
	}
}

// writeSection writes one classification section as a heading and a table.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, section *model.Section) {
	md.H3(section.Title())
	md.PlainText("")

	rows := make([][]string, len(section.Records))
	for i := range section.Records {
		row := sectionTableRow(&section.Records[i])
		for j, cell := range row {
			row[j] = strings.ReplaceAll(cell, "\n", "<br>")
		}
		rows[i] = row
	}

	md.Table(markdown.TableSet{
		Header: sectionTableHeader,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeInterpretation writes the narrative paragraphs for causative variants.
func (w *MarkdownWriter) writeInterpretation(md *markdown.Markdown, report *model.Report) {
	paragraphs := Interpretation(report)
	if len(paragraphs) == 0 {
		return
	}

	md.H2("Interpretation")
	md.PlainText("")
	for _, p := range paragraphs {
		md.PlainText(p)
		md.PlainText("")
	}
}

// writeTechnical writes the sequencing characteristics section.
func (w *MarkdownWriter) writeTechnical(md *markdown.Markdown) {
	md.H2("Technical Characteristics")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Characteristic", "Value"},
		Rows: [][]string{
			{"Method", orDash(w.assay.Method)},
			{"Mean depth of coverage", orDash(w.assay.MeanDepth)},
			{"Total sequencing yield", orDash(w.assay.TotalBases)},
			{"Read type", orDash(w.assay.ReadType)},
			{"Read length", orDash(w.assay.ReadLength)},
		},
	})
	md.PlainText("")

	if len(w.assay.QualityCriteria) > 0 {
		md.PlainText("Run acceptance criteria:")
		md.PlainText("")
		md.BulletList(w.assay.QualityCriteria...)
		md.PlainText("")
	}
}

// writeSources writes the annotation sources section.
func (w *MarkdownWriter) writeSources(md *markdown.Markdown) {
	md.H2("Annotation Sources")
	md.PlainText("")
	md.BulletList(annotationSources...)
	md.PlainText("")
}

// writeSignature writes the clinician sign-off block.
func (w *MarkdownWriter) writeSignature(md *markdown.Markdown, report *model.Report) {
	md.HorizontalRule()
	md.PlainText("")
	clinician := report.Meta.Clinician
	if clinician == "" {
		clinician = "\\_\\_\\_\\_\\_\\_\\_\\_"
	}
	md.PlainTextf("Clinical bioinformatician: %s", clinician)
	md.PlainText("")
	md.PlainTextf("Date: %s Signature: \\_\\_\\_\\_\\_\\_\\_\\_", report.Meta.Date.Format("2006-01-02"))
}

// displayIDs joins sample identifiers in their short display form.
func displayIDs(samples []string) string {
	out := make([]string, 0, len(samples))
	for _, s := range samples {
		out = append(out, model.DisplayID(s))
	}
	return strings.Join(out, ", ")
}
