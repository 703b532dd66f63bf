// Package catalogue is the durable Catalogue Store: tracks, analysis
// results, and scan sessions persisted in a single-file embedded database.
// Opened with WAL journaling, a pooled *sql.DB, and pragmas applied once
// at open, the same way this module's other SQLite-backed state is opened.
package catalogue

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/llehouerou/waves/internal/errs"
)

// Catalogue owns the pooled connection to the catalogue file and every
// operation in §4.1.
type Catalogue struct {
	db *sql.DB
}

// Open opens (creating if absent) the catalogue file at path, applies the
// pragma set, runs schema migrations, and sizes the connection pool to
// poolSize. poolSize <= 0 falls back to 5.
func Open(path string, poolSize int) (*Catalogue, error) {
	if poolSize <= 0 {
		poolSize = 5
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errs.E(errs.OpCatalogueOpen, errs.ErrIO, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.E(errs.OpCatalogueOpen, errs.ErrIO, err)
	}

	db.SetMaxOpenConns(poolSize)
	db.SetMaxIdleConns(poolSize)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA cache_size = 10000", // 10k pages
		"PRAGMA temp_store = memory",
		"PRAGMA mmap_size = 268435456", // 256 MiB
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errs.E(errs.OpCatalogueOpen, errs.ErrIO, err)
		}
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errs.E(errs.OpCatalogueOpen, errs.ErrIntegrity, err)
	}

	return &Catalogue{db: db}, nil
}

// Close releases the pooled connections.
func (c *Catalogue) Close() error {
	return c.db.Close()
}

// DB exposes the underlying pool for callers (tests, maintenance jobs)
// that need to issue raw statements outside the typed API.
func (c *Catalogue) DB() *sql.DB {
	return c.db
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	s := make([]byte, 0, n*2-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			s = append(s, ',')
		}
		s = append(s, '?')
	}
	return string(s)
}

func argsOf(paths []string) []any {
	args := make([]any, len(paths))
	for i, p := range paths {
		args[i] = p
	}
	return args
}
