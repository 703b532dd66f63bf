// Package catalogueconfig loads the engine's tunable configuration from a
// TOML file using the same koanf-based load pattern the rest of this
// module's config handling follows.
package catalogueconfig

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "music-cataloguer"

// Config holds every tunable the catalogue, scanner, similarity engine,
// and sequencer read at startup. Zero values fall back to Default's
// values via Load.
type Config struct {
	// CataloguePath is the SQLite file backing the Catalogue Store.
	// Empty means the XDG data directory default.
	CataloguePath string `koanf:"catalogue_path"`

	// PoolSize is the number of pooled database connections (§4.1).
	PoolSize int `koanf:"pool_size"`

	// SupportedExtensions is loaded but not passed to any scan; discovery
	// uses its own DefaultExtensions when a scan sets none.
	SupportedExtensions []string `koanf:"supported_extensions"`

	// Scan holds Scanner Orchestrator defaults.
	Scan ScanDefaults `koanf:"scan"`

	// Sequencer holds Playlist Sequencer defaults.
	Sequencer SequencerDefaults `koanf:"sequencer"`
}

// ScanDefaults hold scan settings. The scan command seeds its batch size,
// permission probe and memory limit from them; SkipCorrupted,
// ProgressInterval, Watch and SlowFileWarnSecs are loaded but not read.
type ScanDefaults struct {
	BatchSize        int  `koanf:"batch_size"`
	ProgressInterval int  `koanf:"progress_interval"`
	MemoryLimitMB    int  `koanf:"memory_limit_mb"`
	SkipCorrupted    bool `koanf:"skip_corrupted"`
	ValidatePerms    bool `koanf:"validate_permissions"`
	Watch            bool `koanf:"watch"`
	SlowFileWarnSecs int  `koanf:"slow_file_warn_seconds"`
}

// SequencerDefaults are the defaults a sequencer run is seeded with,
// except DedupeByISRC, which is loaded but not read (the playlist entry
// point always dedupes by ISRC).
type SequencerDefaults struct {
	BPMTolerance   float64 `koanf:"bpm_tolerance"`
	PreferRelative bool    `koanf:"prefer_relative"`
	DedupeByISRC   bool    `koanf:"dedupe_by_isrc"`
	DefaultLength  int     `koanf:"default_length"`
	DefaultCurve   string  `koanf:"default_curve"`
}

// Default returns the built-in configuration used when no TOML file is
// present.
func Default() Config {
	return Config{
		PoolSize:            5,
		SupportedExtensions: []string{"mp3", "flac", "wav", "m4a", "aac", "ogg"},
		Scan: ScanDefaults{
			BatchSize:        500,
			ProgressInterval: 50,
			MemoryLimitMB:    500,
			SkipCorrupted:    true,
			ValidatePerms:    true,
			Watch:            false,
			SlowFileWarnSecs: 60,
		},
		Sequencer: SequencerDefaults{
			BPMTolerance:   0.15,
			PreferRelative: false,
			DedupeByISRC:   false,
			DefaultLength:  10,
			DefaultCurve:   "ascending",
		},
	}
}

// Load reads config from path, falling back to Default for any field the
// file doesn't set. A missing file is not an error — it just means
// every field uses its default.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return cfg, err
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func defaultConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(appName, "config.toml"))
}

// DataPath returns the default catalogue file location when cfg.CataloguePath
// is unset.
func (c Config) DataPath() (string, error) {
	if c.CataloguePath != "" {
		return c.CataloguePath, nil
	}
	return xdg.DataFile(filepath.Join(appName, "catalogue.db"))
}
