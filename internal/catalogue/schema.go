package catalogue

import "database/sql"

const currentSchemaVersion = 1

// initSchema creates the catalogue schema if absent. Evolution beyond this
// point is additive migrations keyed by the schema_version row; downgrades
// are not supported.
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS tracks (
			path              TEXT PRIMARY KEY,
			fingerprint       BLOB,
			size              INTEGER NOT NULL,
			mtime             REAL NOT NULL,
			status            TEXT NOT NULL DEFAULT 'active',
			last_verified     REAL,

			bpm               REAL,
			initial_key       TEXT,
			camelot_key       TEXT,
			energy            REAL,
			hamms             TEXT, -- JSON array of 12 floats
			genre             TEXT,
			subgenre          TEXT,
			era               TEXT,
			mood              TEXT,
			isrc              TEXT,
			analysis_method   TEXT NOT NULL DEFAULT '',
			confidence        REAL,
			analyzed_at       REAL,
			scan_session_id   INTEGER REFERENCES scan_sessions(id),
			has_complete_data INTEGER NOT NULL DEFAULT 0,
			tags_json         TEXT -- JSON map, raw extractor tag fallback
		);

		CREATE INDEX IF NOT EXISTS idx_tracks_fingerprint ON tracks(fingerprint);
		CREATE INDEX IF NOT EXISTS idx_tracks_mtime_status ON tracks(mtime, status);
		CREATE INDEX IF NOT EXISTS idx_tracks_complete
			ON tracks(genre, bpm, energy) WHERE has_complete_data = 1;
		CREATE INDEX IF NOT EXISTS idx_tracks_active
			ON tracks(path, mtime) WHERE status = 'active';
		CREATE INDEX IF NOT EXISTS idx_tracks_session
			ON tracks(scan_session_id, analyzed_at);
		CREATE INDEX IF NOT EXISTS idx_tracks_cache_warmth
			ON tracks(mtime, has_complete_data, status);

		CREATE TABLE IF NOT EXISTS scan_sessions (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at      REAL NOT NULL,
			ended_at        REAL,
			root_path       TEXT NOT NULL,
			mode            TEXT NOT NULL,
			status          TEXT NOT NULL DEFAULT 'running',
			discovered      INTEGER NOT NULL DEFAULT 0,
			processed       INTEGER NOT NULL DEFAULT 0,
			cached          INTEGER NOT NULL DEFAULT 0,
			analyzed        INTEGER NOT NULL DEFAULT 0,
			skipped         INTEGER NOT NULL DEFAULT 0,
			errors          INTEGER NOT NULL DEFAULT 0,
			peak_memory_mb  REAL,
			duration_secs   REAL,
			error_message   TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_started ON scan_sessions(started_at);
		CREATE INDEX IF NOT EXISTS idx_sessions_path ON scan_sessions(root_path, started_at);
	`)
	if err != nil {
		return err
	}

	if _, err := db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion); err != nil {
		return err
	}

	if _, err := db.Exec(`ANALYZE`); err != nil {
		return err
	}
	return nil
}
