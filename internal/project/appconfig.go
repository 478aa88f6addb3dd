// Package project persists projects, the material library and app settings
// as JSON files under ~/.pipecut.
package project

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/piwi3910/PipeCut/internal/model"
)

// DefaultConfigDir returns ~/.pipecut, or ./.pipecut when the home
// directory is unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".pipecut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig writes config to path, creating parent directories.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from path. A missing file yields
// DefaultAppConfig and no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if _, err := readJSON(path, &config); err != nil {
		return model.AppConfig{}, err
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// writeJSON marshals v with indentation and writes it to path, creating
// parent directories as needed.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// readJSON decodes the file at path into v. It reports false, and leaves v
// untouched, when the file does not exist.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}
