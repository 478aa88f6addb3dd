package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PipeCut/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "frame"+FileExtension)

	p := model.NewProject()
	p.Name = "Frame"
	steel := model.NewMaterial("Steel", 6000)
	p.AddMaterial(steel)
	p.AddDemands(model.NewDemands("Frame", steel.ID, 1200, 3)...)
	p.Settings.Kerf = 3

	if err := SaveProject(path, p); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if loaded.Name != "Frame" {
		t.Errorf("expected name Frame, got %s", loaded.Name)
	}
	if len(loaded.Materials) != 1 || loaded.Materials[0].ID != steel.ID {
		t.Errorf("unexpected materials %+v", loaded.Materials)
	}
	if len(loaded.Demands) != 3 {
		t.Errorf("expected 3 demands, got %d", len(loaded.Demands))
	}
	if loaded.Settings.Kerf != 3 || loaded.Settings.Trim != model.DefaultTrim {
		t.Errorf("unexpected settings %+v", loaded.Settings)
	}
}

func TestLoadProjectFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.pipecut")
	if err := os.WriteFile(path, []byte(`{"name":"Bare"}`), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if p.Materials == nil || p.Demands == nil {
		t.Error("collections should not be nil after loading")
	}
	if p.Settings != model.DefaultSettings() {
		t.Errorf("expected default settings, got %+v", p.Settings)
	}
}

func TestSaveAndLoadProjectKeepsZeroAllowances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exact"+FileExtension)

	p := model.NewProject()
	p.Settings = model.CutSettings{Trim: 0, Kerf: 0}
	if err := SaveProject(path, p); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if loaded.Settings != (model.CutSettings{}) {
		t.Errorf("expected zero allowances to survive, got %+v", loaded.Settings)
	}
}

func TestLoadProjectPartialSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.pipecut")
	if err := os.WriteFile(path, []byte(`{"name":"P","settings":{"kerf":0}}`), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if p.Settings.Kerf != 0 || p.Settings.Trim != model.DefaultTrim {
		t.Errorf("expected kerf 0 and default trim, got %+v", p.Settings)
	}
}

func TestLoadProjectErrors(t *testing.T) {
	if _, err := LoadProject(filepath.Join(t.TempDir(), "missing.pipecut")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.pipecut")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProject(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
