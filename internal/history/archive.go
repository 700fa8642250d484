package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/genlab/clinreport/internal/model"
)

// ArchiveFileName is the archive database file name inside the archive
// directory.
const ArchiveFileName = "archive.db"

// ErrArchiveNotFound is returned when Open is asked for an existing archive
// and the database file is not there. Callers distinguish "never built a
// report on this machine" from real I/O failures with errors.Is().
var ErrArchiveNotFound = errors.New("archive database not found")

// ArchiveDB provides SQLite-based storage for previously reported variants.
// It manages connection pooling and provides methods for recording report
// builds and querying earlier cases.
//
// Design decision: We use a single database file for all cases rather than
// one file per case. Cross-case queries (same locus, same gene) are the whole
// point of the archive, and a single file simplifies backup.
type ArchiveDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ArchiveDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an ArchiveDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ArchiveDB, error) {
	dbPath := filepath.Join(dbDir, ArchiveFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check archive path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &ArchiveDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *ArchiveDB) Close() error {
	return adb.db.Close()
}

// Path returns the archive database file path.
func (adb *ArchiveDB) Path() string {
	return adb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (adb *ArchiveDB) createTables() error {
	schema := `
	-- One row per reported variant per case
	CREATE TABLE IF NOT EXISTS reported_variants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chrom TEXT NOT NULL,
		pos INTEGER NOT NULL,
		ref TEXT NOT NULL,
		alt TEXT NOT NULL,
		gene TEXT,
		code INTEGER NOT NULL,
		sample TEXT NOT NULL,
		source_db TEXT NOT NULL,
		zygosity TEXT,
		clinician TEXT,
		record_json TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(chrom, pos, ref, alt, sample)
	);

	CREATE INDEX IF NOT EXISTS idx_reported_locus ON reported_variants(chrom, pos);
	CREATE INDEX IF NOT EXISTS idx_reported_gene ON reported_variants(gene);
	CREATE INDEX IF NOT EXISTS idx_reported_sample ON reported_variants(sample);

	-- One row per report build
	CREATE TABLE IF NOT EXISTS report_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_db TEXT NOT NULL,
		sample TEXT NOT NULL,
		study TEXT,
		variant_count INTEGER NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_sample ON report_runs(sample);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON report_runs(timestamp);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// Entry is one archived reported variant.
type Entry struct {
	ID        int64
	Chrom     string
	Pos       int64
	Ref       string
	Alt       string
	Gene      string
	Code      model.ClassificationCode
	Sample    string
	SourceDB  string
	Zygosity  string
	Clinician string
	Timestamp time.Time

	// Record is the full variant record as archived.
	Record *model.VariantRecord
}

// Run is one archived report build.
type Run struct {
	ID           int64
	SourceDB     string
	Sample       string
	Study        string
	VariantCount int
	Timestamp    time.Time
}

// ArchiveReport records all variants of a built report and the build itself.
// Re-reporting the same variant for the same sample updates the earlier row.
func (adb *ArchiveDB) ArchiveReport(ctx context.Context, report *model.Report) error {
	for i := range report.Sections {
		section := &report.Sections[i]
		for j := range section.Records {
			if err := adb.insertVariant(ctx, &section.Records[j], &report.Meta); err != nil {
				return err
			}
		}
	}
	return adb.insertRun(ctx, report)
}

// insertVariant inserts or updates one reported variant.
// Uses UPSERT to handle duplicates (same locus + sample).
func (adb *ArchiveDB) insertVariant(ctx context.Context, rec *model.VariantRecord, meta *model.ReportMeta) error {
	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to serialize variant record: %w", err)
	}

	zygosity := ""
	if rec.Genotype != nil {
		zygosity = rec.Genotype.Zygosity
	}

	query := `
	INSERT INTO reported_variants (chrom, pos, ref, alt, gene, code, sample, source_db, zygosity, clinician, record_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(chrom, pos, ref, alt, sample) DO UPDATE SET
		gene = excluded.gene,
		code = excluded.code,
		source_db = excluded.source_db,
		zygosity = excluded.zygosity,
		clinician = excluded.clinician,
		record_json = excluded.record_json,
		timestamp = CURRENT_TIMESTAMP
	`

	_, err = adb.db.ExecContext(ctx, query,
		rec.Chrom,
		rec.Pos,
		rec.Ref,
		rec.Alt,
		rec.Gene,
		int(rec.Code),
		meta.Sample,
		meta.Database,
		zygosity,
		meta.Clinician,
		string(recordJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to archive variant: %w", err)
	}

	return nil
}

// insertRun records one report build.
func (adb *ArchiveDB) insertRun(ctx context.Context, report *model.Report) error {
	query := `
	INSERT INTO report_runs (source_db, sample, study, variant_count)
	VALUES (?, ?, ?, ?)
	`

	_, err := adb.db.ExecContext(ctx, query,
		report.Meta.Database,
		report.Meta.Sample,
		report.Meta.Study.String(),
		report.TotalVariants(),
	)
	if err != nil {
		return fmt.Errorf("failed to record report run: %w", err)
	}

	return nil
}

// PriorReports returns the archived entries for the exact locus, newest
// first. This is the "have we seen this variant before" query of clinical
// review.
func (adb *ArchiveDB) PriorReports(ctx context.Context, chrom string, pos int64, ref, alt string) ([]Entry, error) {
	query := `
	SELECT id, chrom, pos, ref, alt, gene, code, sample, source_db, zygosity, clinician, record_json, timestamp
	FROM reported_variants
	WHERE chrom = ? AND pos = ? AND ref = ? AND alt = ?
	ORDER BY timestamp DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, chrom, pos, ref, alt)
	if err != nil {
		return nil, fmt.Errorf("failed to query prior reports: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ByGene returns the archived entries for a gene symbol, newest first.
func (adb *ArchiveDB) ByGene(ctx context.Context, gene string) ([]Entry, error) {
	query := `
	SELECT id, chrom, pos, ref, alt, gene, code, sample, source_db, zygosity, clinician, record_json, timestamp
	FROM reported_variants
	WHERE gene = ?
	ORDER BY timestamp DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, gene)
	if err != nil {
		return nil, fmt.Errorf("failed to query gene entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// BySample returns the archived entries for a sample, newest first.
func (adb *ArchiveDB) BySample(ctx context.Context, sample string) ([]Entry, error) {
	query := `
	SELECT id, chrom, pos, ref, alt, gene, code, sample, source_db, zygosity, clinician, record_json, timestamp
	FROM reported_variants
	WHERE sample = ?
	ORDER BY timestamp DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, sample)
	if err != nil {
		return nil, fmt.Errorf("failed to query sample entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// scanEntries reads Entry rows from a result set.
func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var results []Entry
	for rows.Next() {
		var e Entry
		var gene, zygosity, clinician sql.NullString
		var recordJSON, timestamp string

		err := rows.Scan(
			&e.ID,
			&e.Chrom,
			&e.Pos,
			&e.Ref,
			&e.Alt,
			&gene,
			&e.Code,
			&e.Sample,
			&e.SourceDB,
			&zygosity,
			&clinician,
			&recordJSON,
			&timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan archive entry: %w", err)
		}

		e.Gene = gene.String
		e.Zygosity = zygosity.String
		e.Clinician = clinician.String
		e.Timestamp = parseTimestamp(timestamp)

		var rec model.VariantRecord
		if err := json.Unmarshal([]byte(recordJSON), &rec); err == nil {
			e.Record = &rec
		}

		results = append(results, e)
	}

	return results, rows.Err()
}

// RecentRuns returns the most recent report builds, newest first.
// A non-positive limit returns all runs.
func (adb *ArchiveDB) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
	SELECT id, source_db, sample, study, variant_count, timestamp
	FROM report_runs
	ORDER BY timestamp DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := adb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query report runs: %w", err)
	}
	defer rows.Close()

	var results []Run
	for rows.Next() {
		var r Run
		var timestamp string

		if err := rows.Scan(&r.ID, &r.SourceDB, &r.Sample, &r.Study, &r.VariantCount, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan report run: %w", err)
		}

		r.Timestamp = parseTimestamp(timestamp)
		results = append(results, r)
	}

	return results, rows.Err()
}

// LastReported returns the most recent archive entry for the locus, or nil
// when the variant has never been reported.
func (adb *ArchiveDB) LastReported(ctx context.Context, chrom string, pos int64, ref, alt string) (*Entry, error) {
	entries, err := adb.PriorReports(ctx, chrom, pos, ref, alt)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
