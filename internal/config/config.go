// Package config loads toolkit settings from the environment (.env
// supported) with sane defaults.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/classroom-roster/internal/resolver"
)

// Config is the toolkit's runtime configuration.
type Config struct {
	// Threshold is the default fuzzy-match confidence floor (0-100).
	Threshold int
	// CacheDir is the Badger directory holding the roster snapshot.
	CacheDir string
	// OverridesFile optionally points at a YAML/JSON file carrying the
	// manual override table. Empty means no overrides.
	OverridesFile string
	// ScanRoster lets the resolver fall back to whole-roster
	// disambiguation when a lookup has no subgroup scope.
	ScanRoster bool
	// Debug enables debug-level logging.
	Debug bool
}

// Load reads configuration from ROSTER_* environment variables,
// sourcing a .env file first when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	v := viper.New()
	v.SetEnvPrefix("ROSTER")
	v.AutomaticEnv()
	v.SetDefault("threshold", resolver.DefaultThreshold)
	v.SetDefault("cache_dir", ".roster-cache")
	v.SetDefault("overrides_file", "")
	v.SetDefault("scan_roster", false)
	v.SetDefault("debug", false)

	cfg := &Config{
		Threshold:     v.GetInt("threshold"),
		CacheDir:      v.GetString("cache_dir"),
		OverridesFile: v.GetString("overrides_file"),
		ScanRoster:    v.GetBool("scan_roster"),
		Debug:         v.GetBool("debug"),
	}
	if cfg.Threshold <= 0 || cfg.Threshold > 100 {
		return nil, fmt.Errorf("config: threshold %d out of range (0, 100]", cfg.Threshold)
	}
	return cfg, nil
}

// LoadOverrides reads the manual override table from path. The file
// carries a single "overrides" mapping of raw string to corrected
// name. An empty path yields an empty (no-op) table.
func LoadOverrides(path string) (resolver.Overrides, error) {
	if path == "" {
		return resolver.Overrides{}, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read overrides from %s: %w", path, err)
	}
	return resolver.Overrides(v.GetStringMapString("overrides")), nil
}
