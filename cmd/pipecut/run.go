package main

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/piwi3910/PipeCut/internal/engine"
	"github.com/piwi3910/PipeCut/internal/export"
	"github.com/piwi3910/PipeCut/internal/importer"
	"github.com/piwi3910/PipeCut/internal/model"
	"github.com/piwi3910/PipeCut/internal/project"
)

// recentProjectsLimit caps the recent project list in the app config.
const recentProjectsLimit = 10

// Config holds the parsed command line.
type Config struct {
	ProjectFile   string
	DemandsFile   string
	Name          string
	LibraryFile   string
	ImportLibrary string
	ConfigFile    string
	Trim          *float64 // nil when not overridden
	Kerf          *float64
	Format        string
	PDFOut        string
	LabelsOut     string
	XLSXOut       string
	SaveProject   string
	Compare       bool
	BackupOut     string
	RestoreIn     string
}

func run(cfg Config, out io.Writer) error {
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = project.DefaultConfigPath()
	}
	if cfg.LibraryFile == "" {
		cfg.LibraryFile = project.DefaultLibraryPath()
	}

	appCfg, err := project.LoadAppConfig(cfg.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	lib, err := project.LoadLibrary(cfg.LibraryFile)
	if err != nil {
		return fmt.Errorf("failed to load material library: %w", err)
	}

	switch {
	case cfg.RestoreIn != "":
		return restore(cfg, out)
	case cfg.BackupOut != "":
		if err := project.ExportAllData(cfg.BackupOut, appCfg, lib); err != nil {
			return err
		}
		fmt.Fprintf(out, "Backup written to %s\n", cfg.BackupOut)
		return nil
	}

	if cfg.ImportLibrary != "" {
		before := len(lib.Materials)
		if lib, err = project.ImportLibrary(cfg.ImportLibrary, lib); err != nil {
			return fmt.Errorf("failed to import library: %w", err)
		}
		if err := project.SaveLibrary(cfg.LibraryFile, lib); err != nil {
			return fmt.Errorf("failed to save library: %w", err)
		}
		log.Printf("Imported %d materials into %s", len(lib.Materials)-before, cfg.LibraryFile)
	}

	if cfg.DemandsFile == "" && cfg.ProjectFile == "" {
		if cfg.ImportLibrary != "" {
			return nil
		}
		return fmt.Errorf("either -project or -demands is required")
	}

	p, err := buildProject(cfg, appCfg, lib)
	if err != nil {
		return err
	}

	if cfg.Trim != nil {
		p.Settings.Trim = *cfg.Trim
	}
	if cfg.Kerf != nil {
		p.Settings.Kerf = *cfg.Kerf
	}
	if !p.Settings.Valid() {
		return fmt.Errorf("trim and kerf must not be negative")
	}

	report := export.NewReport(p.Name, p.Materials, p.Demands, p.Settings)

	var comparison []engine.ComparisonResult
	if cfg.Compare {
		comparison = engine.CompareScenarios(engine.BuildDefaultScenarios(p.Settings), p.Materials, p.Demands)
	}
	if err := writeReport(out, cfg.Format, report, comparison); err != nil {
		return err
	}

	outputs := []struct {
		path  string
		write func(string, export.Report) error
	}{
		{exportPath(cfg.PDFOut, appCfg), export.ExportPDF},
		{exportPath(cfg.LabelsOut, appCfg), export.ExportLabels},
		{exportPath(cfg.XLSXOut, appCfg), export.ExportXLSX},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := o.write(o.path, report); err != nil {
			return fmt.Errorf("failed to write %s: %w", o.path, err)
		}
		log.Printf("Wrote %s", o.path)
	}

	if cfg.SaveProject != "" {
		if err := project.SaveProject(cfg.SaveProject, p); err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}
		log.Printf("Saved project to %s", cfg.SaveProject)
	}

	if cfg.ProjectFile != "" {
		appCfg.AddRecentProject(cfg.ProjectFile, recentProjectsLimit)
		if err := project.SaveAppConfig(cfg.ConfigFile, appCfg); err != nil {
			log.Printf("Warning: failed to update recent projects: %v", err)
		}
	}
	return nil
}

// buildProject loads the project file, if any, and appends imported cuts.
// Without a project file the library materials and app config defaults are
// used.
func buildProject(cfg Config, appCfg model.AppConfig, lib model.Library) (model.Project, error) {
	p := model.NewProject()
	appCfg.ApplyToSettings(&p.Settings)
	p.Materials = lib.Materials

	if cfg.ProjectFile != "" {
		loaded, err := project.LoadProject(cfg.ProjectFile)
		if err != nil {
			return model.Project{}, fmt.Errorf("failed to load project: %w", err)
		}
		p = loaded
		// Library materials not yet in the project become available for imports.
		projectLib := model.Library{Materials: p.Materials}
		projectLib.Merge(lib.Materials)
		p.Materials = projectLib.Materials
	}
	if cfg.Name != "" {
		p.Name = cfg.Name
	}

	if cfg.DemandsFile != "" {
		result := importer.ImportFile(cfg.DemandsFile, p.Name, p.Materials)
		for _, w := range result.Warnings {
			log.Printf("Import warning: %s", w)
		}
		for _, e := range result.Errors {
			log.Printf("Import error: %s", e)
		}
		if len(result.Demands) == 0 {
			return model.Project{}, fmt.Errorf("no cuts imported from %s", cfg.DemandsFile)
		}
		p.AddDemands(result.Demands...)
	}
	return p, nil
}

// exportPath resolves a relative output path against the configured export
// directory.
func exportPath(path string, appCfg model.AppConfig) string {
	if path == "" || appCfg.ExportDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(appCfg.ExportDir, path)
}

func restore(cfg Config, out io.Writer) error {
	backup, err := project.ImportAllData(cfg.RestoreIn)
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(cfg.ConfigFile, backup.Config); err != nil {
		return fmt.Errorf("failed to restore config: %w", err)
	}
	if err := project.SaveLibrary(cfg.LibraryFile, backup.Library); err != nil {
		return fmt.Errorf("failed to restore library: %w", err)
	}
	fmt.Fprintf(out, "Restored %d materials from %s\n", len(backup.Library.Materials), cfg.RestoreIn)
	return nil
}
