// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/piwi3910/PipeCut/internal/model"
)

// Defaults used when the environment leaves a value unset.
const (
	DefaultPort     = "8000"
	DefaultDataPath = "pipecut.db"
)

// envFiles are tried in order; the first one that exists is loaded.
var envFiles = []string{".env", "../.env", "../../.env"}

// Server holds the settings for cmd/pipecut-server.
type Server struct {
	Port        string
	DatabaseURL string // Postgres DSN, sqlite is used when empty
	DataPath    string // sqlite file
	Settings    model.CutSettings
}

// LoadEnvFile loads the first .env file found in the working directory or
// its parents. Variables already set in the environment are not overridden.
// It returns the loaded path, or "" when none was found.
func LoadEnvFile() string {
	for _, p := range envFiles {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return p
		}
	}
	return ""
}

// FromEnv reads PORT, DATABASE_URL, DATA_PATH, PIPECUT_TRIM and PIPECUT_KERF.
// Allowances that are set must parse as non-negative numbers.
func FromEnv() (Server, error) {
	cfg := Server{
		Port:        getenv("PORT", DefaultPort),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DataPath:    getenv("DATA_PATH", DefaultDataPath),
		Settings:    model.DefaultSettings(),
	}

	var err error
	if cfg.Settings.Trim, err = envFloat("PIPECUT_TRIM", cfg.Settings.Trim); err != nil {
		return Server{}, err
	}
	if cfg.Settings.Kerf, err = envFloat("PIPECUT_KERF", cfg.Settings.Kerf); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative number", key, raw)
	}
	return v, nil
}
