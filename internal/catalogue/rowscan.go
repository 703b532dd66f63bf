package catalogue

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/llehouerou/waves/internal/db"
	"github.com/llehouerou/waves/internal/errs"
)

const rowColumns = `path, fingerprint, size, mtime, status, last_verified,
	bpm, initial_key, camelot_key, energy, hamms, genre, subgenre, era, mood,
	isrc, analysis_method, confidence, analyzed_at, scan_session_id,
	has_complete_data, tags_json`

func scanRow(scanner interface {
	Scan(dest ...any) error
}) (*Row, error) {
	var r Row
	var fingerprint []byte
	var lastVerified, bpm, energy, confidence, analyzedAt sql.NullFloat64
	var initialKey, camelotKey, genre, subgenre, era, mood, isrc, hammsJSON, tagsJSON sql.NullString
	var sessionID sql.NullInt64
	var hasComplete int

	if err := scanner.Scan(
		&r.Path, &fingerprint, &r.Size, &r.Mtime, &r.Status, &lastVerified,
		&bpm, &initialKey, &camelotKey, &energy, &hammsJSON, &genre, &subgenre, &era, &mood,
		&isrc, &r.AnalysisMethod, &confidence, &analyzedAt, &sessionID,
		&hasComplete, &tagsJSON,
	); err != nil {
		return nil, err
	}

	r.Fingerprint = fingerprint
	if lastVerified.Valid {
		r.LastVerified = lastVerified.Float64
	}
	if bpm.Valid {
		v := bpm.Float64
		r.BPM = &v
	}
	if initialKey.Valid {
		v := initialKey.String
		r.InitialKey = &v
	}
	if camelotKey.Valid {
		v := camelotKey.String
		r.CamelotKey = &v
	}
	if energy.Valid {
		v := energy.Float64
		r.Energy = &v
	}
	if hammsJSON.Valid && hammsJSON.String != "" {
		var h []float64
		if err := json.Unmarshal([]byte(hammsJSON.String), &h); err == nil {
			r.HAMMS = h
		}
	}
	if genre.Valid {
		v := genre.String
		r.Genre = &v
	}
	if subgenre.Valid {
		v := subgenre.String
		r.Subgenre = &v
	}
	if era.Valid {
		v := era.String
		r.Era = &v
	}
	if mood.Valid {
		v := mood.String
		r.Mood = &v
	}
	if isrc.Valid {
		v := isrc.String
		r.ISRC = &v
	}
	if confidence.Valid {
		v := confidence.Float64
		r.Confidence = &v
	}
	if analyzedAt.Valid {
		r.AnalyzedAt = analyzedAt.Float64
	}
	r.ScanSessionID = db.NullInt64ToPtr(sessionID)
	r.HasCompleteData = hasComplete != 0
	if tagsJSON.Valid && tagsJSON.String != "" {
		var t map[string]string
		if err := json.Unmarshal([]byte(tagsJSON.String), &t); err == nil {
			r.Tags = t
		}
	}

	return &r, nil
}

func (c *Catalogue) loadRow(path string) (*Row, error) {
	row := c.db.QueryRow(`SELECT `+rowColumns+` FROM tracks WHERE path = ?`, path)
	return scanRow(row)
}

// GetRow is the public point lookup for one path, used by callers (the CLI
// entry points, the sequencer's seed resolution) outside the cache-check
// path. Returns errs.ErrNotFound if no row exists.
func (c *Catalogue) GetRow(path string) (*Row, error) {
	r, err := c.loadRow(path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.E(errs.OpCatalogueQuery, errs.ErrNotFound, err)
		}
		return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
	}
	return r, nil
}

// AllActiveRows returns every active row, bpm or not — the candidate pool
// the CLI entry points draw from before handing it to the Similarity
// Engine for exact ranking, which drops bpm-less rows itself.
func (c *Catalogue) AllActiveRows() ([]*Row, error) {
	rows, err := c.db.Query(`SELECT ` + rowColumns + ` FROM tracks WHERE status = 'active'`)
	if err != nil {
		return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
	}
	defer rows.Close()

	var out []*Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, errs.E(errs.OpCatalogueQuery, errs.ErrIntegrity, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (c *Catalogue) loadRows(paths []string) (map[string]*Row, error) {
	q := `SELECT ` + rowColumns + ` FROM tracks WHERE path IN (` + placeholders(len(paths)) + `) AND status = 'active'`
	rows, err := c.db.Query(q, argsOf(paths)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]*Row, len(paths))
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out[r.Path] = r
	}
	return out, rows.Err()
}
