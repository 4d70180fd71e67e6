// Package config loads the server configuration: a YAML file with
// environment-variable overrides on top of built-in defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML accepts "100ms"-style strings.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds everything cmd/cityd needs to boot a session.
type Config struct {
	MapSize int   `yaml:"map_size"`
	Seed    int64 `yaml:"seed"`

	DBPath      string `yaml:"db_path"`
	SavePath    string `yaml:"save_path"`
	CatalogPath string `yaml:"catalog_path"`

	APIPort int `yaml:"api_port"`

	TickInterval  Duration `yaml:"tick_interval"`
	IncomeEvery   Duration `yaml:"income_every"`
	AutosaveEvery Duration `yaml:"autosave_every"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		MapSize:       60,
		Seed:          0,
		DBPath:        "data/city.db",
		SavePath:      "data/city.save.zst",
		APIPort:       8080,
		TickInterval:  Duration(100 * time.Millisecond),
		IncomeEvery:   Duration(10 * time.Second),
		AutosaveEvery: Duration(30 * time.Second),
	}
}

// Load reads the config file at path (optional — a missing file just
// yields defaults) and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.MapSize < 16 {
		return cfg, fmt.Errorf("map_size %d too small (minimum 16)", cfg.MapSize)
	}
	if cfg.TickInterval <= 0 {
		return cfg, fmt.Errorf("tick_interval must be positive")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CITYD_MAP_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MapSize = n
		}
	}
	if v := os.Getenv("CITYD_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("CITYD_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CITYD_SAVE_PATH"); v != "" {
		cfg.SavePath = v
	}
	if v := os.Getenv("CITYD_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("CITYD_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.APIPort = n
		}
	}
}
