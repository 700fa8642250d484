package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/genlab/clinreport/internal/model"
)

// Sentinel errors for input-file problems. Callers use errors.Is() to map
// them to exit messages.
var (
	// ErrDatabaseNotFound is returned when the input path does not exist or
	// is not a regular file.
	ErrDatabaseNotFound = errors.New("input database not found")

	// ErrBadSchema is returned when the file is not an OpenCRAVAT result
	// database in the expected schema.
	ErrBadSchema = errors.New("unexpected database schema")
)

// CravatDB provides read-only access to one OpenCRAVAT result database.
//
// Design decision: The connection is opened with mode=ro for the duration of
// one build and closed before returning, so the builder can guarantee the
// input file is never modified. No locking is done; concurrent invocations
// against the same file are the caller's responsibility.
type CravatDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// path is the input SQLite file path.
	path string
}

// Open opens an existing OpenCRAVAT database read-only and validates its
// schema. It returns ErrDatabaseNotFound when the path does not exist and
// ErrBadSchema when the file lacks the expected tables or columns.
func Open(ctx context.Context, path string) (*CravatDB, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, path)
		}
		return nil, fmt.Errorf("failed to check input path: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrDatabaseNotFound, path)
	}

	// mode=ro prevents both file creation and any write statement.
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection is enough for one linear build pass.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CravatDB{db: db, path: path}
	if err := cdb.validateSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cdb, nil
}

// Close closes the database connection.
func (c *CravatDB) Close() error {
	return c.db.Close()
}

// Path returns the input file path the connection was opened with.
func (c *CravatDB) Path() string {
	return c.path
}

// validateSchema checks that the file carries the OpenCRAVAT tables and the
// columns the report depends on. The legacy pre-VEP schema (no vep_csq__*
// columns; consequence data packed into raw VCF INFO strings) is recognized
// and rejected with a message telling the user to re-annotate.
func (c *CravatDB) validateSchema(ctx context.Context) error {
	for _, table := range []string{"variant", "sample"} {
		var name string
		err := c.db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: missing %q table (is this an OpenCRAVAT result file?)", ErrBadSchema, table)
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadSchema, err)
		}
	}

	cols, err := c.variantColumns(ctx)
	if err != nil {
		return err
	}
	if !cols["base__note"] {
		return fmt.Errorf("%w: variant table has no base__note classification column", ErrBadSchema)
	}
	if !cols["vep_csq__symbol"] {
		return fmt.Errorf("%w: legacy pre-VEP annotation schema; re-annotate the run with the current module set", ErrBadSchema)
	}
	return nil
}

// variantColumns returns the set of column names of the variant table.
func (c *CravatDB) variantColumns(ctx context.Context) (map[string]bool, error) {
	rows, err := c.db.QueryContext(ctx, `PRAGMA table_info(variant)`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSchema, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   sql.NullString
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSchema, err)
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// Samples returns the distinct sample identifiers registered in the
// database, in first-seen order. Single-sample runs return one entry; duo
// and trio family studies return two or three.
func (c *CravatDB) Samples(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT DISTINCT base__sample_id FROM sample ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate samples: %w", err)
	}
	defer rows.Close()

	var samples []string
	for rows.Next() {
		var sample sql.NullString
		if err := rows.Scan(&sample); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		if sample.Valid && sample.String != "" {
			samples = append(samples, sample.String)
		}
	}
	return samples, rows.Err()
}

// variantQuery selects the columns the report needs from rows the clinician
// marked. The note filter happens here; code validation happens in Go so
// that text/integer column affinity differences cannot slip rows through.
const variantQuery = `
SELECT
	base__chrom, base__pos, base__ref_base, base__alt_base, base__note,
	vep_csq__symbol, vep_csq__transcript, vep_csq__refseq,
	vep_csq__hgvsc, vep_csq__hgvsp, vep_csq__hgvsg,
	vep_csq__consequence, vep_csq__exon, vep_csq__intron,
	dbsnp__rsid,
	vep_omim_pheno__pheno, vep_omim_pheno__id, vep_omim_pheno__inher,
	clinvar_new__id, clinvar_new__sig, clinvar_new__sig_subs,
	gnomad4genomes__AN, gnomad4genomes__AC,
	gnomad4exomes__AN, gnomad4exomes__AC,
	gerp__gerp_rs,
	dbscsnv__ada_score, metarnn__score, revel__score,
	alphamissense__score, phylop100__score,
	tagsampler_new__samples, tagsampler_new__filter,
	tagsampler_new__zygosity, tagsampler_new__ad, tagsampler_new__dp
FROM variant
WHERE base__note IS NOT NULL AND base__note != ''
`

// ClassifiedVariants returns every variant row carrying a classification
// code from the reportable enumeration. Rows whose note value falls outside
// the enumeration (historical structural/mitochondrial codes, typos) are
// skipped; they must never reach a report section.
func (c *CravatDB) ClassifiedVariants(ctx context.Context) ([]model.VariantRecord, error) {
	rows, err := c.db.QueryContext(ctx, variantQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query classified variants: %w", err)
	}
	defer rows.Close()

	var records []model.VariantRecord
	for rows.Next() {
		rec, ok, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}
	return records, rows.Err()
}

// scanVariant scans one variant row. ok is false when the note code is
// outside the reportable enumeration.
func scanVariant(rows *sql.Rows) (model.VariantRecord, bool, error) {
	var (
		chrom, ref, alt, note                    sql.NullString
		pos                                      sql.NullInt64
		gene, transcript, refseq                 sql.NullString
		hgvsc, hgvsp, hgvsg                      sql.NullString
		consequence, exon, intron                sql.NullString
		rsid                                     sql.NullString
		omimPheno, omimID, inher                 sql.NullString
		clinvarID, clinvarSig, clinvarSubs       sql.NullString
		genomesAN, genomesAC                     sql.NullInt64
		exomesAN, exomesAC                       sql.NullInt64
		gerp                                     sql.NullFloat64
		adaScore, metaRNN, revel, alphaM, phyloP sql.NullFloat64
		tsSamples, tsFilter, tsZygosity          sql.NullString
		tsAD, tsDP                               sql.NullString
	)

	err := rows.Scan(
		&chrom, &pos, &ref, &alt, &note,
		&gene, &transcript, &refseq,
		&hgvsc, &hgvsp, &hgvsg,
		&consequence, &exon, &intron,
		&rsid,
		&omimPheno, &omimID, &inher,
		&clinvarID, &clinvarSig, &clinvarSubs,
		&genomesAN, &genomesAC,
		&exomesAN, &exomesAC,
		&gerp,
		&adaScore, &metaRNN, &revel,
		&alphaM, &phyloP,
		&tsSamples, &tsFilter,
		&tsZygosity, &tsAD, &tsDP,
	)
	if err != nil {
		return model.VariantRecord{}, false, fmt.Errorf("failed to scan variant: %w", err)
	}

	code, err := model.ParseClassificationCode(note.String)
	if err != nil {
		return model.VariantRecord{}, false, nil
	}

	rec := model.VariantRecord{
		Chrom:              chrom.String,
		Pos:                pos.Int64,
		Ref:                ref.String,
		Alt:                alt.String,
		Code:               code,
		Gene:               gene.String,
		Transcript:         transcript.String,
		RefSeq:             refseq.String,
		HGVSc:              hgvsc.String,
		HGVSp:              hgvsp.String,
		HGVSg:              hgvsg.String,
		Consequence:        consequence.String,
		Exon:               exon.String,
		Intron:             intron.String,
		RSID:               rsid.String,
		OMIMPhenotype:      omimPheno.String,
		OMIMID:             omimID.String,
		Inheritance:        inher.String,
		ClinVarID:          clinvarID.String,
		ClinVarSig:         clinvarSig.String,
		ClinVarSubmissions: clinvarSubs.String,
		GenomesAN:          genomesAN.Int64,
		GenomesAC:          genomesAC.Int64,
		ExomesAN:           exomesAN.Int64,
		ExomesAC:           exomesAC.Int64,
		Predictor: model.PredictorScores{
			ADAScore:      nullableFloat(adaScore),
			MetaRNN:       nullableFloat(metaRNN),
			REVEL:         nullableFloat(revel),
			AlphaMissense: nullableFloat(alphaM),
			PhyloP:        nullableFloat(phyloP),
		},
		Calls: model.ParseSampleCalls(
			tsSamples.String, tsFilter.String, tsZygosity.String, tsAD.String, tsDP.String,
		),
	}
	if gerp.Valid {
		rec.GERPScore = &gerp.Float64
	}
	return rec, true, nil
}

// nullableFloat converts a NullFloat64 to the pointer form the model uses.
func nullableFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
