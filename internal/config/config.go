package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"kibble-ration/internal/logging"
	"kibble-ration/internal/store"
)

// DefaultPath is read when no -config flag is given.
const DefaultPath = "kibble-ration.yaml"

// AppID identifies the fyne application and its preferences file.
const AppID = "com.kibble-ration.app"

// Config holds all application configuration.
type Config struct {
	Storage struct {
		Backend string `yaml:"backend"` // preferences | file | sqlite | memory
		Path    string `yaml:"path"`
	} `yaml:"storage"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
	// Strict makes internal invariant violations panic.
	Strict bool `yaml:"strict"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error. defaultBackend is
// used when neither the file nor the environment picks one.
func Load(path, defaultBackend string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("RATION_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("RATION_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("RATION_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RATION_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("RATION_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("RATION_STRICT"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("RATION_STRICT: %w", err)
		}
		cfg.Strict = strict
	}

	// Defaults
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaultBackend
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Backend {
		case store.BackendFile:
			cfg.Storage.Path = "data/ration.json"
		case store.BackendSQLite:
			cfg.Storage.Path = "data/ration.db"
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "results"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendPreferences, store.BackendMemory:
	case store.BackendFile, store.BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for backend %q", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("storage.backend must be preferences, file, sqlite or memory, got %q", c.Storage.Backend)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
