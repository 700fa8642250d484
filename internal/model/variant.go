package model

import (
	"fmt"
	"strings"
)

// VariantRecord is one row of the OpenCRAVAT variant table restricted to the
// columns the report needs. Column names are an external contract with the
// annotation tool (VEP, dbSNP, gnomAD v4, ClinVar and the tagsampler
// post-aggregator); the database package owns the mapping.
type VariantRecord struct {
	// === Locus (base__* / extra_vcf_info__*) ===

	// Chrom is the chromosome name, e.g. "chr7".
	Chrom string `json:"chrom"`

	// Pos is the 1-based VCF position on HG38.
	Pos int64 `json:"pos"`

	// Ref and Alt are the VCF reference and alternate alleles.
	Ref string `json:"ref"`
	Alt string `json:"alt"`

	// Code is the clinician-assigned classification (base__note).
	Code ClassificationCode `json:"code"`

	// === Gene/transcript annotation (vep_csq__*) ===

	Gene        string `json:"gene,omitempty"`        // gene symbol
	Transcript  string `json:"transcript,omitempty"`  // Ensembl transcript ID
	RefSeq      string `json:"refseq,omitempty"`      // MANE Select RefSeq ID, preferred over Transcript when present
	HGVSc       string `json:"hgvs_c,omitempty"`      // coding-DNA change, e.g. "c.1521_1523del"
	HGVSp       string `json:"hgvs_p,omitempty"`      // raw protein change as emitted by VEP, e.g. "p.Phe508del" or with %3D escapes
	HGVSg       string `json:"hgvs_g,omitempty"`      // genomic change
	Consequence string `json:"consequence,omitempty"` // VEP consequence term(s)
	Exon        string `json:"exon,omitempty"`        // "n/total" when the variant falls in an exon
	Intron      string `json:"intron,omitempty"`      // "n/total" when the variant falls in an intron

	// RSID is the dbSNP identifier, empty when unknown.
	RSID string `json:"rsid,omitempty"`

	// === Phenotype annotation (vep_omim_pheno__*) ===

	OMIMPhenotype string `json:"omim_phenotype,omitempty"`
	OMIMID        string `json:"omim_id,omitempty"`
	// Inheritance holds comma-joined OMIM inheritance modes (AD, AR, XD, XR).
	Inheritance string `json:"inheritance,omitempty"`

	// === ClinVar (clinvar_new__*) ===

	ClinVarID          string `json:"clinvar_id,omitempty"`
	ClinVarSig         string `json:"clinvar_sig,omitempty"`
	ClinVarSubmissions string `json:"clinvar_submissions,omitempty"` // "sig (count); sig (count)" summary of submitters

	// === Population frequency (gnomad4genomes__* / gnomad4exomes__*) ===
	// Zero AN means the variant is absent from the corresponding call set.

	GenomesAN int64 `json:"genomes_an,omitempty"`
	GenomesAC int64 `json:"genomes_ac,omitempty"`
	ExomesAN  int64 `json:"exomes_an,omitempty"`
	ExomesAC  int64 `json:"exomes_ac,omitempty"`

	// === Conservation and in-silico predictors ===

	GERPScore *float64        `json:"gerp_score,omitempty"`
	Predictor PredictorScores `json:"predictor"`

	// Calls holds the per-sample genotype columns before narrowing.
	Calls SampleCalls `json:"-"`

	// Genotype is the call narrowed to the target sample.
	// Populated by the builder; nil until resolved.
	Genotype *GenotypeCall `json:"genotype,omitempty"`
}

// GenotypeCall is one sample's call for a variant after de-multiplexing the
// tagsampler columns.
type GenotypeCall struct {
	// Sample is the sample identifier the call belongs to.
	Sample string `json:"sample"`

	// Zygosity is "het" or "hom" as reported by the variant caller.
	Zygosity string `json:"zygosity,omitempty"`

	// AltDepth is the number of reads supporting the alternate allele.
	AltDepth string `json:"alt_depth,omitempty"`

	// TotalDepth is the total read depth at the locus.
	TotalDepth string `json:"total_depth,omitempty"`
}

// SampleCalls holds the tagsampler post-aggregator columns: semicolon-joined
// parallel lists, one entry per sample carrying the variant.
type SampleCalls struct {
	Samples    []string
	Filters    []string
	Zygosities []string
	AltDepths  []string
	Depths     []string
}

// ParseSampleCalls splits the raw tagsampler_new__* column values.
// The AD column nests a comma-separated ref,alt pair per sample; only the
// alternate-allele depth is kept.
func ParseSampleCalls(samples, filter, zygosity, ad, dp string) SampleCalls {
	c := SampleCalls{
		Samples:    splitList(samples),
		Filters:    splitList(filter),
		Zygosities: splitList(zygosity),
		Depths:     splitList(dp),
	}
	for _, pair := range splitList(ad) {
		fields := strings.Split(pair, ",")
		c.AltDepths = append(c.AltDepths, fields[len(fields)-1])
	}
	return c
}

// splitList splits a semicolon-joined tagsampler list, returning nil for the
// empty string so absent columns do not produce a single empty entry.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}

// For returns the call for the given sample. The second return value is
// false when the sample does not carry the variant or its call did not pass
// the caller's FILTER, in which case the variant is not reportable for that
// sample.
func (c SampleCalls) For(sample string) (GenotypeCall, bool) {
	for i, s := range c.Samples {
		if s != sample {
			continue
		}
		if at(c.Filters, i) != "PASS" {
			return GenotypeCall{}, false
		}
		return GenotypeCall{
			Sample:     sample,
			Zygosity:   at(c.Zygosities, i),
			AltDepth:   at(c.AltDepths, i),
			TotalDepth: at(c.Depths, i),
		}, true
	}
	return GenotypeCall{}, false
}

// CarriedBy returns the samples other than target that carry the variant,
// regardless of filter status. Used by the narrative to report familial
// segregation.
func (c SampleCalls) CarriedBy(target string) []string {
	var carriers []string
	for _, s := range c.Samples {
		if s != target {
			carriers = append(carriers, s)
		}
	}
	return carriers
}

// at indexes a parallel list defensively: tagsampler occasionally emits
// shorter lists than the sample list when a field is missing upstream.
func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}

// Locus returns the SPDI-style locus string "chrom-pos-ref-alt".
func (v *VariantRecord) Locus() string {
	return fmt.Sprintf("%s-%d-%s-%s", v.Chrom, v.Pos, v.Ref, v.Alt)
}

// TranscriptNotation returns the coding-DNA change prefixed with the
// preferred transcript: the MANE Select RefSeq ID when present, the Ensembl
// transcript otherwise.
func (v *VariantRecord) TranscriptNotation() string {
	tx := v.Transcript
	if v.RefSeq != "" {
		tx = v.RefSeq
	}
	if tx == "" || v.HGVSc == "" {
		return v.HGVSc
	}
	return tx + ":" + v.HGVSc
}

// ProteinChange returns the protein-level change in report notation,
// "p.(Phe508del)". VEP URL-escapes the synonymous "=" as %3D; that is
// unescaped here. Empty when there is no protein annotation.
func (v *VariantRecord) ProteinChange() string {
	if v.HGVSp == "" {
		return ""
	}
	body := strings.TrimPrefix(v.HGVSp, "p.")
	body = strings.ReplaceAll(body, "%3D", "=")
	return "p.(" + body + ")"
}

// VariationSummary returns the multi-line variant description used in the
// section tables: locus, transcript change, protein change and rsID, with
// absent parts omitted.
func (v *VariantRecord) VariationSummary() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{v.Locus(), v.TranscriptNotation(), v.ProteinChange(), v.RSID} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n")
}

// zygosityLabels maps caller zygosity codes to report wording.
var zygosityLabels = map[string]string{
	"het": "heterozygous",
	"hom": "homozygous",
}

// ZygosityDisplay returns the zygosity of the resolved genotype in report
// wording, or "-" when no genotype was resolved.
func (v *VariantRecord) ZygosityDisplay() string {
	if v.Genotype == nil || v.Genotype.Zygosity == "" {
		return "-"
	}
	if label, ok := zygosityLabels[v.Genotype.Zygosity]; ok {
		return label
	}
	return v.Genotype.Zygosity
}

// inheritanceLabels expands OMIM inheritance mode abbreviations.
var inheritanceLabels = map[string]string{
	"AD": "autosomal dominant",
	"AR": "autosomal recessive",
	"XD": "X-linked dominant",
	"XR": "X-linked recessive",
}

// InheritanceDisplay expands the comma-joined OMIM inheritance modes into
// words, or "-" when no mode is annotated.
func (v *VariantRecord) InheritanceDisplay() string {
	if v.Inheritance == "" {
		return "-"
	}
	modes := strings.Split(v.Inheritance, ",")
	labels := make([]string, 0, len(modes))
	for _, m := range modes {
		m = strings.TrimSpace(m)
		if label, ok := inheritanceLabels[m]; ok {
			labels = append(labels, label)
		} else if m != "" {
			labels = append(labels, m)
		}
	}
	return strings.Join(labels, ", ")
}

// CoverageDisplay returns the "ALTx/TOTALx" read-depth string for the
// resolved genotype. Missing depths render as underscores, matching the
// template's fill-in convention.
func (v *VariantRecord) CoverageDisplay() string {
	ad, dp := "_", "_"
	if v.Genotype != nil {
		if v.Genotype.AltDepth != "" {
			ad = v.Genotype.AltDepth
		}
		if v.Genotype.TotalDepth != "" {
			dp = v.Genotype.TotalDepth
		}
	}
	return fmt.Sprintf("%sx/%sx", ad, dp)
}

// PopulationFrequency aggregates the gnomAD v4 genomes and exomes call sets.
// AN and AC are summed; AF is derived. Present is false when the variant is
// absent from both call sets.
func (v *VariantRecord) PopulationFrequency() (af float64, an, ac int64, present bool) {
	an = v.GenomesAN + v.ExomesAN
	if an == 0 {
		return 0, 0, 0, false
	}
	ac = v.GenomesAC + v.ExomesAC
	return float64(ac) / float64(an), an, ac, true
}

// FrequencyDisplay returns the aggregated allele frequency as an adaptive
// percent string, or "n/a" when the variant is absent from gnomAD.
func (v *VariantRecord) FrequencyDisplay() string {
	af, _, _, present := v.PopulationFrequency()
	if !present || af == 0 {
		return "n/a"
	}
	return FormatPercent(af)
}

// clinVarSigLabels normalizes ClinVar significance values to report wording.
// ClinVar uses both space- and underscore-separated forms.
var clinVarSigLabels = map[string]string{
	"Pathogenic":                   "pathogenic",
	"Pathogenic/Likely_pathogenic": "pathogenic / likely pathogenic",
	"Pathogenic/Likely pathogenic": "pathogenic / likely pathogenic",
	"Likely_pathogenic":            "likely pathogenic",
	"Likely pathogenic":            "likely pathogenic",
	"Uncertain_significance":       "uncertain significance",
	"Uncertain significance":       "uncertain significance",
}

// ClinVarSigDisplay returns the normalized ClinVar significance, or the raw
// value when ClinVar uses a term outside the mapping.
func (v *VariantRecord) ClinVarSigDisplay() string {
	if v.ClinVarSig == "" {
		return "-"
	}
	if label, ok := clinVarSigLabels[v.ClinVarSig]; ok {
		return label
	}
	return v.ClinVarSig
}

// ClinVarSubmission is one aggregated submitter assertion from the ClinVar
// submission summary.
type ClinVarSubmission struct {
	// Significance is the asserted significance in report wording.
	Significance string

	// Count is the number of submitters asserting it, as annotated.
	Count string
}

// ClinVarSubmissionList parses the submission summary column, a
// semicolon-joined list of "Significance (count)" pairs. Malformed pairs are
// skipped; an empty column yields nil.
func (v *VariantRecord) ClinVarSubmissionList() []ClinVarSubmission {
	if v.ClinVarSubmissions == "" {
		return nil
	}

	var subs []ClinVarSubmission
	for _, pair := range strings.Split(v.ClinVarSubmissions, ";") {
		pair = strings.TrimSpace(pair)
		open := strings.LastIndex(pair, " (")
		if open <= 0 || !strings.HasSuffix(pair, ")") {
			continue
		}
		sig := pair[:open]
		if label, ok := clinVarSigLabels[sig]; ok {
			sig = label
		}
		subs = append(subs, ClinVarSubmission{
			Significance: sig,
			Count:        pair[open+2 : len(pair)-1],
		})
	}
	return subs
}

// IndelSize returns the length change the variant introduces: positive for
// insertions, negative for deletions, zero for substitutions. OpenCRAVAT
// writes "-" for an empty allele.
func (v *VariantRecord) IndelSize() int {
	ref := strings.ReplaceAll(v.Ref, "-", "")
	alt := strings.ReplaceAll(v.Alt, "-", "")
	return len(alt) - len(ref)
}

// GenePart returns the variant's position within the gene structure,
// "exon 11 of 27" or "intron 3 of 12", derived from VEP's "n/total"
// annotation. Empty when the variant falls in neither.
func (v *VariantRecord) GenePart() string {
	if part := genePartLabel("exon", v.Exon); part != "" {
		return part
	}
	return genePartLabel("intron", v.Intron)
}

// genePartLabel formats one "n/total" annotation.
func genePartLabel(kind, raw string) string {
	n, total, ok := strings.Cut(raw, "/")
	if !ok || n == "" || total == "" {
		return ""
	}
	return fmt.Sprintf("%s %s of %s", kind, n, total)
}

// PathogenicityDisplay returns the pathogenicity cell for the section
// tables. Carrier variants (code 8) report the ClinVar assertion because the
// clinician did not classify them against the primary diagnosis; all other
// codes report their own classification label. A ClinVar term outside the
// known vocabulary renders as "-" in the cell; free-form terms belong in the
// narrative, not the table.
func (v *VariantRecord) PathogenicityDisplay() string {
	if v.Code == CodeCarrier {
		if label, ok := clinVarSigLabels[v.ClinVarSig]; ok {
			return label
		}
		return "-"
	}
	return capitalize(v.Code.String())
}

// capitalize upper-cases the first byte of an ASCII label.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
