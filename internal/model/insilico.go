package model

// PredictorScores holds the in-silico predictor annotations for a variant.
// Nil means the predictor did not score the variant.
type PredictorScores struct {
	// ADAScore is the dbscSNV ADA splice-impact score.
	ADAScore *float64 `json:"ada_score,omitempty"`

	// MetaRNN is the MetaRNN missense ensemble score.
	MetaRNN *float64 `json:"metarnn,omitempty"`

	// REVEL is the REVEL missense ensemble score.
	REVEL *float64 `json:"revel,omitempty"`

	// AlphaMissense is the AlphaMissense pathogenicity score.
	AlphaMissense *float64 `json:"alphamissense,omitempty"`

	// PhyloP is the phyloP100way conservation score.
	PhyloP *float64 `json:"phylop,omitempty"`
}

// Deleteriousness thresholds. A score at or above its threshold counts as a
// deleterious prediction. Values follow the calibrated "likely pathogenic"
// cutoffs published for each predictor.
const (
	adaThreshold           = 0.957813
	metaRNNThreshold       = 0.748
	revelThreshold         = 0.644
	alphaMissenseThreshold = 0.787
	phyloPThreshold        = 7.52
)

// Deleterious returns the in-silico verdict for the variant. The predictors
// are consulted in fixed priority order (splice predictor first, then the
// missense ensembles, then raw conservation) and the first usable score
// decides. A zero score means the annotator emitted a placeholder rather
// than a prediction and falls through to the next predictor. known is false
// when no predictor scored the variant.
func (p PredictorScores) Deleterious() (deleterious, known bool) {
	checks := []struct {
		score     *float64
		threshold float64
	}{
		{p.ADAScore, adaThreshold},
		{p.MetaRNN, metaRNNThreshold},
		{p.REVEL, revelThreshold},
		{p.AlphaMissense, alphaMissenseThreshold},
		{p.PhyloP, phyloPThreshold},
	}
	for _, c := range checks {
		if c.score != nil && *c.score != 0 {
			return *c.score >= c.threshold, true
		}
	}
	return false, false
}
