package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// phiKeys contains attribute keys that should always be masked.
// These keys commonly carry protected health information.
var phiKeys = map[string]bool{
	// Patient identity
	"patient":       true,
	"patient_name":  true,
	"patient_id":    true,
	"name":          true,
	"surname":       true,
	"dob":           true,
	"birthdate":     true,
	"date_of_birth": true,
	"sex":           true,
	"age":           true,

	// Clinical context
	"diagnosis":  true,
	"phenotype":  true,
	"indication": true,
	"referral":   true,

	// Reporting staff
	"clinician": true,
	"physician": true,
	"doctor":    true,
}

// phiPatterns contains regex patterns that indicate patient-identifying
// values. Values matching these patterns are masked regardless of key name.
var phiPatterns = []*regexp.Regexp{
	// Specimen accessions of the form "MD-2024-01234" or "S24-0042"
	regexp.MustCompile(`^[A-Z]{1,3}-?\d{2,4}-\d{3,6}$`),

	// ISO dates, which in this tool's logs only ever mean a birth date
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
}

// MaskValue is the string used to replace masked values.
const MaskValue = "***REDACTED***"

// RedactingHandler wraps an slog.Handler to mask protected health
// information. It intercepts log records and masks attribute values that
// match PHI key names or value patterns before passing them to the
// underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
type RedactingHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler
}

// NewRedactingHandler creates a new RedactingHandler wrapping the given handler.
// All log attributes will be checked before being passed to the underlying handler.
// If handler is nil, the returned RedactingHandler will use slog.Default().Handler().
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactingHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.redactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.redactAttr(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name)}
}

// redactAttr masks a single attribute, recursively handling groups.
func (h *RedactingHandler) redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.redactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	keyLower := strings.ToLower(a.Key)
	if phiKeys[keyLower] || containsPHIKeyword(keyLower) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		if isPHIValue(strVal) {
			return slog.String(a.Key, MaskValue)
		}
	}

	return a
}

// containsPHIKeyword checks if the key contains patient-related keywords.
// Note: We intentionally exclude the bare "sample" keyword as sample
// identifiers are laboratory accessions needed for debugging, and masking
// them would make logs useless. Explicit patient keys are covered by the
// phiKeys map.
func containsPHIKeyword(key string) bool {
	phiKeywords := []string{
		"patient", "diagnosis", "birth", "phenotype", "clinician",
	}

	for _, keyword := range phiKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// isPHIValue checks if a value matches patient-identifying patterns.
func isPHIValue(value string) bool {
	for _, pattern := range phiPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// NewLogger creates a new slog.Logger with PHI redaction.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewRedactingHandler(textHandler))
}

// NewJSONLogger creates a new slog.Logger with PHI redaction that outputs
// JSON format. Useful for structured log aggregation in pipeline runs.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewRedactingHandler(jsonHandler))
}
