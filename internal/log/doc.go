// Package log provides logging with automatic redaction of patient
// information, built on top of the standard slog package.
//
// Clinical annotation databases carry protected health information: patient
// names, dates of birth, diagnoses and specimen identifiers. Log output is
// routinely attached to support tickets and pipeline run records, so the
// RedactingHandler masks these values before they reach the underlying
// handler.
//
// # Redaction
//
// The RedactingHandler masks attribute values two ways:
//   - by key: attributes whose key names patient data (patient, diagnosis,
//     dob, clinician and similar) are always masked
//   - by value: strings that look like specimen identifiers are masked
//     regardless of key name
//
// Even in verbose mode, patient values are masked. Sample identifiers used
// for joining tables are laboratory accessions, not names, and pass through
// untouched.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Info("building report",
//	    "database", "trio.sqlite",
//	    "patient", "Doe, Jane", // masked
//	)
//	slog.SetDefault(logger)
package log
