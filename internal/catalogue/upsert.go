package catalogue

import (
	"database/sql"
	"encoding/json"

	dbutil "github.com/llehouerou/waves/internal/db"
	"github.com/llehouerou/waves/internal/errs"
	"github.com/llehouerou/waves/internal/fingerprint"
)

// AnalysisInput is what a caller (the Scanner Orchestrator, an importer)
// hands the Catalogue Store for a single path.
type AnalysisInput struct {
	Path          string
	Analysis      AnalysisResult
	ScanSessionID *int64
}

// UpsertAnalysis re-reads size/mtime, computes the fingerprint, and writes
// the full row under INSERT OR REPLACE semantics, atomically.
func (c *Catalogue) UpsertAnalysis(in AnalysisInput) error {
	if err := validateAnalysis(&in.Analysis); err != nil {
		return err
	}

	info, exists, err := fingerprint.Stat(in.Path)
	if err != nil {
		return errs.E(errs.OpCatalogueUpsert, errs.ErrIO, err)
	}
	if !exists {
		return errs.E(errs.OpCatalogueUpsert, errs.ErrNotFound, sql.ErrNoRows)
	}
	fp := fingerprint.Compute(in.Path)

	return dbutil.WithTx(c.db, func(tx *sql.Tx) error {
		return upsertOne(tx, in, info, fp)
	})
}

// BatchUpsertAnalyses wraps batches of up to batchSize rows in explicit
// transactions; a failing row rolls back only its own batch and the
// remaining batches are still attempted (partial-failure semantics).
// Returns (successful, failed, failedPaths).
func (c *Catalogue) BatchUpsertAnalyses(inputs []AnalysisInput, batchSize int) (int, int, []string) {
	if batchSize <= 0 {
		batchSize = 1000
	}

	var success, failed int
	var failedPaths []string

	for start := 0; start < len(inputs); start += batchSize {
		end := start + batchSize
		if end > len(inputs) {
			end = len(inputs)
		}
		batch := inputs[start:end]

		err := dbutil.WithTx(c.db, func(tx *sql.Tx) error {
			for _, in := range batch {
				if err := validateAnalysis(&in.Analysis); err != nil {
					return err
				}
				info, exists, err := fingerprint.Stat(in.Path)
				if err != nil {
					return err
				}
				if !exists {
					return errs.E(errs.OpCatalogueUpsert, errs.ErrNotFound, sql.ErrNoRows)
				}
				fp := fingerprint.Compute(in.Path)
				if err := upsertOne(tx, in, info, fp); err != nil {
					return err
				}
			}
			return nil
		})

		if err != nil {
			// Batch-level rollback already happened inside WithTx; fall
			// back to one-by-one so a single bad row doesn't sink its
			// whole sibling batch.
			for _, in := range batch {
				rowErr := c.UpsertAnalysis(in)
				if rowErr != nil {
					failed++
					failedPaths = append(failedPaths, in.Path)
					continue
				}
				success++
			}
			continue
		}

		success += len(batch)
	}

	return success, failed, failedPaths
}

func upsertOne(tx *sql.Tx, in AnalysisInput, info fingerprint.Info, fp []byte) error {
	a := in.Analysis
	hammsJSON, err := marshalOptional(a.HAMMS)
	if err != nil {
		return errs.E(errs.OpCatalogueUpsert, errs.ErrValidation, err)
	}
	tagsJSON, err := marshalOptionalMap(a.Tags)
	if err != nil {
		return errs.E(errs.OpCatalogueUpsert, errs.ErrValidation, err)
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO tracks (
			path, fingerprint, size, mtime, status, last_verified,
			bpm, initial_key, camelot_key, energy, hamms, genre, subgenre, era, mood,
			isrc, analysis_method, confidence, analyzed_at, scan_session_id,
			has_complete_data, tags_json
		) VALUES (
			?, ?, ?, ?, 'active', ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?
		)`,
		in.Path, fp, info.Size, info.Mtime, nowSeconds(),
		a.BPM, a.InitialKey, a.CamelotKey, a.Energy, hammsJSON, a.Genre, a.Subgenre, a.Era, a.Mood,
		a.ISRC, a.AnalysisMethod, a.Confidence, nowSeconds(), in.ScanSessionID,
		boolToInt(hasCompleteData(&a)), tagsJSON,
	)
	if err != nil {
		return errs.E(errs.OpCatalogueUpsert, errs.ErrIntegrity, err)
	}
	return nil
}

func marshalOptional(v []float64) (*string, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func marshalOptionalMap(v map[string]string) (*string, error) {
	if len(v) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
