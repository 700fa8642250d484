package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ClassificationCode is a clinician-assigned significance code stored in the
// base__note column of the OpenCRAVAT variant table.
//
// Design decision: We use a closed integer type with an explicit parse step
// rather than passing raw note values through to rendering. Invalid codes are
// a construction-time error, so downstream code never has to branch on
// unknown values.
type ClassificationCode int

const (
	// CodePathogenic marks a pathogenic variant that is the probable cause
	// of the primary diagnosis.
	CodePathogenic ClassificationCode = 1

	// CodeLikelyPathogenic marks a likely pathogenic variant that is a
	// possible cause of the primary diagnosis.
	CodeLikelyPathogenic ClassificationCode = 2

	// CodeUncertain marks a variant of uncertain clinical significance.
	CodeUncertain ClassificationCode = 3

	// CodeSecondary marks a clinically significant variant that is not
	// related to the primary diagnosis (a secondary finding).
	CodeSecondary ClassificationCode = 7

	// CodeCarrier marks carrier status for a recessive condition.
	CodeCarrier ClassificationCode = 8
)

// ReportOrder is the fixed clinical severity order in which report sections
// appear: pathogenic, likely pathogenic, uncertain, secondary, carrier.
// Database row order never influences section order.
var ReportOrder = []ClassificationCode{
	CodePathogenic,
	CodeLikelyPathogenic,
	CodeUncertain,
	CodeSecondary,
	CodeCarrier,
}

// ParseClassificationCode converts a raw base__note value into a
// ClassificationCode. OpenCRAVAT stores the column as free-typed text, so
// the value may arrive as "1" or as an integer; both are accepted.
// Empty input and codes outside the enumeration are rejected.
func ParseClassificationCode(raw string) (ClassificationCode, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty classification code")
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("classification code %q is not numeric", raw)
	}

	code := ClassificationCode(n)
	if !code.IsValid() {
		return 0, fmt.Errorf("classification code %d is not in the reportable set", n)
	}
	return code, nil
}

// IsValid reports whether the code belongs to the fixed enumeration.
func (c ClassificationCode) IsValid() bool {
	switch c {
	case CodePathogenic, CodeLikelyPathogenic, CodeUncertain, CodeSecondary, CodeCarrier:
		return true
	default:
		return false
	}
}

// Causative reports whether the code marks a variant considered causative
// for the primary diagnosis. Causative variants get an interpretation
// narrative in addition to their section table.
func (c ClassificationCode) Causative() bool {
	return c == CodePathogenic || c == CodeLikelyPathogenic || c == CodeUncertain
}

// String returns the short clinical significance label.
func (c ClassificationCode) String() string {
	switch c {
	case CodePathogenic:
		return "pathogenic"
	case CodeLikelyPathogenic:
		return "likely pathogenic"
	case CodeUncertain:
		return "uncertain significance"
	case CodeSecondary:
		return "unrelated to primary diagnosis"
	case CodeCarrier:
		return "carrier"
	default:
		return "unknown"
	}
}

// SectionTitle returns the full heading used for the code's report section.
// These phrasings follow the laboratory's report template.
func (c ClassificationCode) SectionTitle() string {
	switch c {
	case CodePathogenic:
		return "Pathogenic sequence variants considered the probable cause of the disease"
	case CodeLikelyPathogenic:
		return "Likely pathogenic sequence variants considered a possible cause of the disease"
	case CodeUncertain:
		return "Sequence variants of uncertain clinical significance"
	case CodeSecondary:
		return "Clinically significant variants unrelated to the primary diagnosis"
	case CodeCarrier:
		return "Carrier status for likely pathogenic variants unrelated to the primary diagnosis"
	default:
		return "Unclassified variants"
	}
}
