package model

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders numbers with English digit grouping ("807,162"), matching
// the population-database citations in the report template.
var printer = message.NewPrinter(language.English)

// FormatPercent renders an allele frequency as a percent string with
// adaptive precision: enough digits to show at least one significant figure,
// one more when the leading figure would round to 1 (so 0.000014 renders as
// "0.0014%" rather than "0.001%").
func FormatPercent(af float64) string {
	pct := af * 100
	if pct <= 0 {
		return "0%"
	}

	ndigits := 1
	if d := -int(math.Floor(math.Log10(pct))); d > 1 {
		ndigits = d
	}
	if math.Round(math.Pow10(ndigits)*pct) == 1 {
		ndigits++
	}

	factor := math.Pow10(ndigits)
	rounded := math.Round(pct*factor) / factor
	return strconv.FormatFloat(rounded, 'f', -1, 64) + "%"
}

// FormatAlleleCount renders an allele count with thousands separators.
func FormatAlleleCount(ac int64) string {
	return printer.Sprintf("%d", ac)
}
