package report

import (
	"fmt"
	"strings"

	"github.com/genlab/clinreport/internal/model"
)

// NoFindingsStatement is the result text of a report with no reportable
// variants. An empty result is still a result the clinician signs off on, so
// the document is rendered in full with this statement in place of sections.
const NoFindingsStatement = "No sequence variants classified as causative " +
	"for the primary diagnosis or otherwise reportable were identified in " +
	"this analysis."

// Interpretation builds one narrative paragraph per causative variant
// (classification codes 1-3). Secondary findings and carrier status are
// reported in their section tables only, matching the laboratory's template.
func Interpretation(r *model.Report) []string {
	recs := r.CausativeRecords()
	paragraphs := make([]string, 0, len(recs))
	for i := range recs {
		paragraphs = append(paragraphs, interpretRecord(&recs[i], &r.Meta))
	}
	return paragraphs
}

// interpretRecord builds the narrative paragraph for one causative variant.
// Sentence order follows the template: identification, molecular consequence,
// gene-phenotype relationship, ClinVar assertion, population frequency,
// conservation, in-silico verdict, familial segregation.
func interpretRecord(v *model.VariantRecord, meta *model.ReportMeta) string {
	var sb strings.Builder

	sb.WriteString("The analysis identified a ")
	if z := v.ZygosityDisplay(); z != "-" {
		sb.WriteString(z)
		sb.WriteString(" ")
	}
	sb.WriteString(v.Code.String())
	sb.WriteString(" variant ")
	sb.WriteString(variantMention(v))
	if v.Gene != "" {
		sb.WriteString(" in ")
		if part := v.GenePart(); part != "" {
			sb.WriteString(part)
			sb.WriteString(" of ")
		}
		sb.WriteString("the ")
		sb.WriteString(v.Gene)
		sb.WriteString(" gene")
	}
	sb.WriteString(".")

	writeConsequenceSentence(&sb, v)
	writePhenotypeSentence(&sb, v)
	writeClinVarSentence(&sb, v)
	writeFrequencySentence(&sb, v)
	writeConservationSentence(&sb, v)
	writePredictorSentence(&sb, v)
	writeSegregationSentence(&sb, v, meta)

	return sb.String()
}

// writeConsequenceSentence describes the molecular effect implied by the VEP
// consequence term. The branch order mirrors the laboratory's template:
// missense and synonymous/intronic wording first, then the truncating
// classes, then canonical splice sites.
func writeConsequenceSentence(sb *strings.Builder, v *model.VariantRecord) {
	c := v.Consequence
	if c == "" {
		return
	}

	protein := ""
	if p := v.ProteinChange(); p != "" {
		protein = " " + p
	}

	switch {
	case strings.Contains(c, "missense"):
		fmt.Fprintf(sb, " The variant results in an amino-acid substitution%s.", protein)
	case strings.Contains(c, "synon"), strings.Contains(c, "intron"):
		sb.WriteString(" The variant may lead to aberrant splicing.")
	case strings.Contains(c, "shift"):
		verb, size := "inserts", v.IndelSize()
		if size < 0 {
			verb, size = "deletes", -size
		}
		fmt.Fprintf(sb, " The variant %s %d nucleotides, shifting the reading frame and creating a premature stop codon%s.", verb, size, protein)
		sb.WriteString(" The change most likely abolishes the function of the affected gene copy.")
	case strings.Contains(c, "stop"):
		fmt.Fprintf(sb, " The variant creates a premature stop codon%s.", protein)
		sb.WriteString(" The change most likely abolishes the function of the affected gene copy.")
	case strings.Contains(c, "splice"):
		sb.WriteString(" The variant disrupts a canonical splice site.")
	}
}

// writeConservationSentence reports the GERP conservation class of the
// position.
func writeConservationSentence(sb *strings.Builder, v *model.VariantRecord) {
	if v.GERPScore == nil {
		return
	}
	switch {
	case *v.GERPScore >= 2:
		sb.WriteString(" The variant is located at a highly conserved position.")
	case *v.GERPScore >= 0:
		sb.WriteString(" The variant is located at a conserved position.")
	default:
		sb.WriteString(" The variant is located at a non-conserved position.")
	}
}

// variantMention is the inline form of the variant: transcript notation with
// protein change when annotated, the bare locus otherwise.
func variantMention(v *model.VariantRecord) string {
	mention := v.TranscriptNotation()
	if mention == "" {
		return v.Locus()
	}
	if p := v.ProteinChange(); p != "" {
		mention += " " + p
	}
	return mention
}

func writePhenotypeSentence(sb *strings.Builder, v *model.VariantRecord) {
	if v.OMIMPhenotype == "" {
		return
	}
	sb.WriteString(" The gene is associated with ")
	sb.WriteString(v.OMIMPhenotype)
	if v.OMIMID != "" {
		sb.WriteString(" (OMIM ")
		sb.WriteString(v.OMIMID)
		sb.WriteString(")")
	}
	if inh := v.InheritanceDisplay(); inh != "-" {
		sb.WriteString(", ")
		sb.WriteString(inh)
		sb.WriteString(" inheritance")
	}
	sb.WriteString(".")
}

// writeClinVarSentence reports the ClinVar assertion, preferring the
// per-submitter summary when the annotator provides one.
func writeClinVarSentence(sb *strings.Builder, v *model.VariantRecord) {
	if subs := v.ClinVarSubmissionList(); len(subs) > 0 {
		parts := make([]string, 0, len(subs))
		for _, s := range subs {
			noun := "submitters"
			if s.Count == "1" {
				noun = "submitter"
			}
			parts = append(parts, fmt.Sprintf("as %s by %s %s", s.Significance, s.Count, noun))
		}
		sb.WriteString(" The variant is annotated in ClinVar ")
		sb.WriteString(strings.Join(parts, ", "))
		writeClinVarID(sb, v)
		sb.WriteString(".")
		return
	}

	if v.ClinVarSig == "" {
		return
	}
	sb.WriteString(" ClinVar classifies the variant as ")
	sb.WriteString(v.ClinVarSigDisplay())
	writeClinVarID(sb, v)
	sb.WriteString(".")
}

func writeClinVarID(sb *strings.Builder, v *model.VariantRecord) {
	if v.ClinVarID == "" {
		return
	}
	sb.WriteString(" (variation ID ")
	sb.WriteString(v.ClinVarID)
	sb.WriteString(")")
}

func writeFrequencySentence(sb *strings.Builder, v *model.VariantRecord) {
	af, an, ac, present := v.PopulationFrequency()
	if !present {
		sb.WriteString(" The variant is absent from the gnomAD v4 population data.")
		return
	}
	fmt.Fprintf(sb, " The aggregated gnomAD v4 allele frequency is %s (%s of %s alleles).",
		model.FormatPercent(af), model.FormatAlleleCount(ac), model.FormatAlleleCount(an))
}

func writePredictorSentence(sb *strings.Builder, v *model.VariantRecord) {
	deleterious, known := v.Predictor.Deleterious()
	if !known {
		return
	}
	if deleterious {
		sb.WriteString(" In-silico predictors assess the variant as deleterious.")
	} else {
		sb.WriteString(" In-silico predictors do not assess the variant as deleterious.")
	}
}

// writeSegregationSentence reports which other family samples carry the
// variant. Only multi-sample studies get the sentence.
func writeSegregationSentence(sb *strings.Builder, v *model.VariantRecord, meta *model.ReportMeta) {
	if len(meta.FamilySamples) < 2 {
		return
	}

	carriers := v.Calls.CarriedBy(meta.Sample)
	if len(carriers) == 0 {
		sb.WriteString(" The variant was not detected in the other family samples.")
		return
	}

	display := make([]string, 0, len(carriers))
	for _, c := range carriers {
		display = append(display, model.DisplayID(c))
	}
	if len(display) == 1 {
		fmt.Fprintf(sb, " The variant is also present in sample %s.", display[0])
		return
	}
	fmt.Fprintf(sb, " The variant is also present in samples %s.", strings.Join(display, ", "))
}
