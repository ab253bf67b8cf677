// Package config provides configuration for the playlist tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingHost       = errors.New("host is required")
	ErrInvalidTimeout    = errors.New("timeout_sec must be at least 1")
	ErrMissingBaseDir    = errors.New("archive.base_dir is required")
	ErrMissingCollection = errors.New("firestore.collection is required when firestore.project_id is set")
)

// Config represents the complete tool configuration.
type Config struct {
	// Host is the playlist site, without scheme.
	Host string `yaml:"host"`
	// TimeoutSec bounds each page fetch.
	TimeoutSec int    `yaml:"timeout_sec"`
	UserAgent  string `yaml:"user_agent"`
	// Render fetches pages through headless Chrome instead of a plain GET,
	// for stations whose schedule table is rendered client-side.
	Render    bool            `yaml:"render"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Firestore FirestoreConfig `yaml:"firestore"`
}

// ArchiveConfig defines where archived playlists go.
type ArchiveConfig struct {
	BaseDir string `yaml:"base_dir"`
	// GCSBucket, if set, archives to Cloud Storage instead of local disk.
	GCSBucket string `yaml:"gcs_bucket"`
}

// FirestoreConfig enables publishing archived days to a Firestore collection.
type FirestoreConfig struct {
	ProjectID  string `yaml:"project_id"`
	Collection string `yaml:"collection"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Host:       "onlineradiobox.com",
		TimeoutSec: 30,
		UserAgent:  "orbplaylist",
		Archive: ArchiveConfig{
			BaseDir: filepath.Join(home, "radio-playlists"),
		},
		Firestore: FirestoreConfig{
			Collection: "playlists",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "orbplaylist", "config.yaml")
}

// Load reads configuration from a YAML file layered over Default.
// A missing file at the default path is not an error; an explicitly
// requested path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Host == "" {
		return ErrMissingHost
	}
	if c.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}
	if c.Archive.BaseDir == "" && c.Archive.GCSBucket == "" {
		return ErrMissingBaseDir
	}
	if c.Firestore.ProjectID != "" && c.Firestore.Collection == "" {
		return ErrMissingCollection
	}
	return nil
}
