package project

import (
	"fmt"
	"time"

	"github.com/piwi3910/PipeCut/internal/model"
)

// BackupVersion is written to every backup file.
const BackupVersion = "1.0.0"

// BackupData bundles the app config and the material library in one file.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Library   model.Library   `json:"library"`
}

// ExportAllData writes config and lib to a single backup file.
func ExportAllData(path string, config model.AppConfig, lib model.Library) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Library:   lib,
	}
	if err := writeJSON(path, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads and validates a backup file. Applying it is left to
// the caller.
func ImportAllData(path string) (BackupData, error) {
	var backup BackupData
	found, err := readJSON(path, &backup)
	if !found && err == nil {
		err = fmt.Errorf("%s does not exist", path)
	}
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	for _, m := range backup.Library.Materials {
		if m.ID == "" || !model.ValidLength(m.StockLength) {
			return BackupData{}, fmt.Errorf("invalid backup file: material %q needs an ID and a positive stock length", m.Name)
		}
	}

	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	if backup.Library.Materials == nil {
		backup.Library.Materials = []model.Material{}
	}
	return backup, nil
}
