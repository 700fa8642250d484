// Package model defines the core data structures used throughout clinreport.
//
// This package contains the following main types:
//   - ClassificationCode: the closed set of clinician-assigned note codes
//   - VariantRecord: one annotated variant row from the OpenCRAVAT database
//   - SampleSet: the single/duo/trio sample layout and target-sample resolution
//   - Report: classified variants grouped into severity-ordered sections
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (database, builder, report) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are read-only views of the input database plus the display
// strings derived from them; nothing in this package mutates the source file.
package model
