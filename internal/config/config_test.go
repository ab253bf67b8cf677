package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Host != "onlineradiobox.com" {
		t.Errorf("unexpected default host: %s", cfg.Host)
	}
	if cfg.TimeoutSec != 30 {
		t.Errorf("unexpected default timeout: %d", cfg.TimeoutSec)
	}
	if cfg.Archive.BaseDir == "" {
		t.Error("default archive base dir is empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
host: example.org
timeout_sec: 5
render: true
archive:
  base_dir: /var/lib/playlists
  gcs_bucket: my-bucket
firestore:
  project_id: my-project
  collection: songs
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Host != "example.org" {
		t.Errorf("host not loaded: %s", cfg.Host)
	}
	if cfg.TimeoutSec != 5 {
		t.Errorf("timeout not loaded: %d", cfg.TimeoutSec)
	}
	if !cfg.Render {
		t.Error("render not loaded")
	}
	if cfg.Archive.GCSBucket != "my-bucket" {
		t.Errorf("gcs bucket not loaded: %s", cfg.Archive.GCSBucket)
	}
	if cfg.Firestore.ProjectID != "my-project" {
		t.Errorf("firestore project not loaded: %s", cfg.Firestore.ProjectID)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"missing host", func(c *Config) { c.Host = "" }, ErrMissingHost},
		{"zero timeout", func(c *Config) { c.TimeoutSec = 0 }, ErrInvalidTimeout},
		{"no archive target", func(c *Config) { c.Archive = ArchiveConfig{} }, ErrMissingBaseDir},
		{"firestore without collection", func(c *Config) {
			c.Firestore = FirestoreConfig{ProjectID: "p"}
		}, ErrMissingCollection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
