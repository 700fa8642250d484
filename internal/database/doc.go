// Package database provides read-only access to OpenCRAVAT result databases.
//
// An OpenCRAVAT run produces a single SQLite file whose schema this package
// depends on but does not own: a "sample" table registering the sequenced
// specimens and a wide "variant" table with one column group per annotator
// (VEP, dbSNP, gnomAD v4, ClinVar, the tagsampler post-aggregator). The
// clinician marks reportable variants in the base__note column.
//
// Design decision: We use SQLite via modernc.org/sqlite because:
//  1. The input format is SQLite, so there is no choice of engine
//  2. The CGO-free driver allows easy cross-compilation of a desktop tool
//  3. Opening with mode=ro guarantees the input file is never mutated
//
// The package validates the schema before querying so that a file produced
// by something other than OpenCRAVAT (or by the legacy pre-VEP pipeline)
// fails with a clear error instead of a cryptic SQL one.
package database
