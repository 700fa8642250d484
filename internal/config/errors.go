package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic error handling while still providing human-readable
// messages.
var (
	// ErrNoDatabase is returned when no input database path was supplied.
	ErrNoDatabase = errors.New("no input database specified: provide the path to an OpenCRAVAT SQLite file")

	// ErrConflictingFormats is returned when more than one of --json,
	// --markdown and --text is specified. Only one output format can be
	// used at a time.
	ErrConflictingFormats = errors.New("conflicting report formats: --json, --markdown and --text are mutually exclusive")

	// ErrOutputNotDirectory is returned when several input databases are
	// given but --output names a single file. With multiple inputs the
	// output path must be a directory for the per-database documents.
	ErrOutputNotDirectory = errors.New("multiple input databases: --output must be a directory")

	// ErrProfileNotFound is returned when an explicitly requested profile
	// file does not exist.
	ErrProfileNotFound = errors.New("report profile file not found")
)
