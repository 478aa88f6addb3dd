package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PipeCut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerf = 4.0
	cfg.ExportDir = "/tmp/exports"
	cfg.RecentProjects = []string{"/tmp/proj1.pipecut", "/tmp/proj2.pipecut"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultKerf != 4.0 {
		t.Errorf("expected DefaultKerf=4.0, got %f", loaded.DefaultKerf)
	}
	if loaded.ExportDir != "/tmp/exports" {
		t.Errorf("expected ExportDir=/tmp/exports, got %s", loaded.ExportDir)
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultKerf != defaults.DefaultKerf {
		t.Errorf("expected default kerf %f, got %f", defaults.DefaultKerf, cfg.DefaultKerf)
	}
	if cfg.DefaultTrim != 110 {
		t.Errorf("expected default trim 110, got %f", cfg.DefaultTrim)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"export_dir":"/srv/out"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.ExportDir != "/srv/out" {
		t.Errorf("expected ExportDir=/srv/out, got %s", cfg.ExportDir)
	}
	if cfg.DefaultTrim != model.DefaultTrim || cfg.DefaultKerf != model.DefaultKerf {
		t.Errorf("expected default allowances, got trim %v kerf %v", cfg.DefaultTrim, cfg.DefaultKerf)
	}
}

func TestLoadAppConfigNilRecentProjects(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	// Write config with null recent_projects
	data := []byte(`{"default_kerf":3.2,"default_trim":100,"recent_projects":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil after loading")
	}
}
