package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Format selects the report output format.
type Format string

// Supported output formats. Markdown is the default because the resulting
// document imports cleanly into word processors, which is how reports are
// finalized and signed.
const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// AppName is the application name used for XDG directory paths.
const AppName = "clinreport"

// Config holds all build options for one clinreport invocation.
// This struct is populated from CLI flags and the optional profile file and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs.
// The number of options is manageable, and nesting would add complexity
// without significant benefit.
type Config struct {
	// Databases are the input OpenCRAVAT SQLite paths. Each produces one
	// report document. Invocations are independent; several databases are
	// built concurrently.
	Databases []string

	// TargetSample is the designated proband sample identifier.
	// Required for duo/trio databases, optional for single-sample ones.
	TargetSample string

	// OutputPath is where the rendered document is written. With one input
	// database it may be a file path; with several it must be a directory.
	// Empty means "next to each input file".
	OutputPath string

	// ReportFormat selects the document format. Exactly one of the format
	// flags may set it away from the markdown default.
	ReportFormat Format

	// ProfilePath is the report-profile file path. If empty, the tool
	// searches for .clinreport in the current directory, the home
	// directory and the XDG config directory.
	ProfilePath string

	// Profile holds laboratory boilerplate loaded from the profile file.
	Profile *Profile

	// Clinician overrides the profile's clinician name for this build.
	Clinician string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// NoArchive disables recording reported variants in the local archive
	// database. Archiving is on by default; it never touches the input file.
	NoArchive bool

	// ArchiveDir is the directory of the reported-variants archive
	// database. Defaults to the XDG data directory.
	ArchiveDir string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		ReportFormat: FormatMarkdown,
		ArchiveDir:   XDGDataDir(),
		Profile:      DefaultProfile(),
	}
}

// XDGDataDir returns the XDG data directory for clinreport.
// On Linux: ~/.local/share/clinreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for clinreport.
// On Linux: ~/.config/clinreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found; fixing one error often makes the
// others irrelevant.
func (c *Config) Validate() error {
	if len(c.Databases) == 0 {
		return ErrNoDatabase
	}

	switch c.ReportFormat {
	case FormatMarkdown, FormatText, FormatJSON:
	default:
		return ErrConflictingFormats
	}

	return nil
}

// DocumentExtension returns the file extension for the configured format.
func (c *Config) DocumentExtension() string {
	switch c.ReportFormat {
	case FormatJSON:
		return ".report.json"
	case FormatText:
		return ".report.txt"
	default:
		return ".report.md"
	}
}

// OutputFor derives the output document path for one input database.
// Precedence: explicit file path (single input), directory + derived name,
// or the input's own directory + derived name.
func (c *Config) OutputFor(dbPath string, outputIsDir bool) string {
	name := filepath.Base(dbPath)
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	name += c.DocumentExtension()

	switch {
	case c.OutputPath == "":
		return filepath.Join(filepath.Dir(dbPath), name)
	case outputIsDir:
		return filepath.Join(c.OutputPath, name)
	default:
		return c.OutputPath
	}
}
