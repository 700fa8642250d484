package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/genlab/clinreport/internal/config"
	"github.com/genlab/clinreport/internal/database"
	"github.com/genlab/clinreport/internal/history"
	"github.com/genlab/clinreport/internal/model"
	"github.com/genlab/clinreport/internal/report"
)

// maxConcurrentBuilds bounds how many databases are built at once.
// Each build holds one SQLite read connection and a rendered document in
// memory.
const maxConcurrentBuilds = 4

// Builder orchestrates report builds for the configured input databases.
type Builder struct {
	// cfg holds the validated build options.
	cfg *config.Config

	// logger receives build progress and warnings.
	logger *slog.Logger

	// now supplies the report date. Tests pin it for stable output.
	now func() time.Time

	// version is the tool version stamped into JSON output.
	version string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for build progress and warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithClock sets the time source for the report date.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// WithVersion sets the tool version stamped into JSON output.
func WithVersion(version string) Option {
	return func(b *Builder) {
		b.version = version
	}
}

// New creates a Builder for the given configuration.
func New(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:    cfg,
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Result describes one completed (or failed) database build.
type Result struct {
	// Database is the input database path.
	Database string

	// Output is the written document path. Empty when the build failed.
	Output string

	// Variants is the number of reported variants.
	Variants int

	// Empty reports whether the document states no reportable findings.
	Empty bool

	// Err is the build failure, nil on success.
	Err error
}

// Build builds a report for every configured database. Builds run
// concurrently and independently: one database failing does not stop the
// others. The returned error joins all per-database failures.
func (b *Builder) Build(ctx context.Context) ([]Result, error) {
	outputIsDir, err := b.checkOutputPath()
	if err != nil {
		return nil, err
	}

	var archive *history.ArchiveDB
	if !b.cfg.NoArchive {
		archive, err = history.Open(b.cfg.ArchiveDir, history.DefaultOptions())
		if err != nil {
			// The archive is bookkeeping, not the deliverable. Keep building.
			b.logger.Warn("reported-variants archive unavailable", "error", err)
			archive = nil
		} else {
			defer archive.Close()
		}
	}

	results := make([]Result, len(b.cfg.Databases))
	errs := make([]error, len(b.cfg.Databases))

	var g errgroup.Group
	g.SetLimit(maxConcurrentBuilds)
	for i, dbPath := range b.cfg.Databases {
		g.Go(func() error {
			results[i] = b.buildOne(ctx, dbPath, outputIsDir, archive)
			if results[i].Err != nil {
				errs[i] = fmt.Errorf("%s: %w", dbPath, results[i].Err)
			}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // Goroutines always return nil; failures land in errs

	return results, errors.Join(errs...)
}

// checkOutputPath validates the output path against the number of inputs.
// With several inputs the output must be a directory; with one it may be a
// file path.
func (b *Builder) checkOutputPath() (outputIsDir bool, err error) {
	if b.cfg.OutputPath == "" {
		return false, nil
	}

	info, statErr := os.Stat(b.cfg.OutputPath)
	outputIsDir = statErr == nil && info.IsDir()

	if len(b.cfg.Databases) > 1 && !outputIsDir {
		return false, config.ErrOutputNotDirectory
	}
	return outputIsDir, nil
}

// buildOne builds the report document for a single database.
func (b *Builder) buildOne(ctx context.Context, dbPath string, outputIsDir bool, archive *history.ArchiveDB) Result {
	result := Result{Database: dbPath}

	rep, err := b.assemble(ctx, dbPath)
	if err != nil {
		result.Err = err
		return result
	}

	result.Variants = rep.TotalVariants()
	result.Empty = rep.Empty()
	if rep.Empty() {
		b.logger.Warn("no reportable variants found",
			"database", dbPath, "sample", rep.Meta.Sample)
	}

	// Render fully in memory, then write once. A render failure must not
	// leave a partial document behind.
	var buf bytes.Buffer
	if _, err := b.writerFor(&buf).Write(rep); err != nil {
		result.Err = fmt.Errorf("failed to render report: %w", err)
		return result
	}

	outPath := b.cfg.OutputFor(dbPath, outputIsDir)
	if err := os.WriteFile(outPath, buf.Bytes(), 0600); err != nil {
		result.Err = fmt.Errorf("failed to write report: %w", err)
		return result
	}
	result.Output = outPath

	if archive != nil {
		if err := archive.ArchiveReport(ctx, rep); err != nil {
			b.logger.Warn("failed to archive reported variants",
				"database", dbPath, "error", err)
		}
	}

	b.logger.Debug("report written",
		"database", dbPath, "output", outPath, "variants", result.Variants)
	return result
}

// assemble reads the database and produces the structured report.
func (b *Builder) assemble(ctx context.Context, dbPath string) (*model.Report, error) {
	db, err := database.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	samples, err := db.Samples(ctx)
	if err != nil {
		return nil, err
	}

	set, err := model.NewSampleSet(samples, b.cfg.TargetSample)
	if err != nil {
		return nil, err
	}

	records, err := db.ClassifiedVariants(ctx)
	if err != nil {
		return nil, err
	}

	resolved := b.resolveGenotypes(records, set)

	clinician := b.cfg.Clinician
	if clinician == "" && b.cfg.Profile != nil {
		clinician = b.cfg.Profile.Clinician
	}
	laboratory := ""
	if b.cfg.Profile != nil {
		laboratory = b.cfg.Profile.Laboratory
	}

	meta := model.ReportMeta{
		Database:      dbPath,
		Sample:        set.Target,
		FamilySamples: set.Samples,
		Study:         set.Kind(),
		Clinician:     clinician,
		Laboratory:    laboratory,
		Date:          b.now(),
	}
	return model.NewReport(meta, resolved), nil
}

// resolveGenotypes narrows each record's per-sample calls to the target
// sample. Records the target does not carry, or whose call did not pass the
// variant caller's FILTER, are dropped: a classified variant belonging only
// to a parent is not reportable for the proband.
func (b *Builder) resolveGenotypes(records []model.VariantRecord, set *model.SampleSet) []model.VariantRecord {
	resolved := make([]model.VariantRecord, 0, len(records))
	for _, rec := range records {
		call, ok := rec.Calls.For(set.Target)
		if !ok {
			b.logger.Debug("variant not reportable for target sample",
				"locus", rec.Locus(), "sample", set.Target)
			continue
		}
		rec.Genotype = &call
		resolved = append(resolved, rec)
	}
	return resolved
}

// writerFor returns the report writer for the configured output format.
func (b *Builder) writerFor(buf *bytes.Buffer) report.Writer {
	assay := b.assay()
	switch b.cfg.ReportFormat {
	case config.FormatJSON:
		opts := []report.JSONWriterOption{report.WithPrettyPrint()}
		if b.version != "" {
			opts = append(opts, report.WithVersion(b.version))
		}
		return report.NewJSONWriter(buf, opts...)
	case config.FormatText:
		return report.NewSimpleWriter(buf,
			report.WithSimpleAssay(assay), report.WithVerbose(b.cfg.Verbose))
	default:
		return report.NewMarkdownWriter(buf, report.WithAssay(assay))
	}
}

// assay copies the profile's sequencing block into the writer's form.
func (b *Builder) assay() report.Assay {
	if b.cfg.Profile == nil {
		return report.Assay{}
	}
	seq := b.cfg.Profile.Sequencing
	return report.Assay{
		Method:          seq.Method,
		MeanDepth:       seq.MeanDepth,
		TotalBases:      seq.TotalBases,
		ReadType:        seq.ReadType,
		ReadLength:      seq.ReadLength,
		QualityCriteria: seq.QualityCriteria,
	}
}
