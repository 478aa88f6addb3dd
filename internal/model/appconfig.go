package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default cut allowances applied to new projects
	DefaultTrim float64 `json:"default_trim"`
	DefaultKerf float64 `json:"default_kerf"`

	// Application preferences
	ExportDir      string   `json:"export_dir"` // Empty means next to the project file
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultTrim:    defaults.Trim,
		DefaultKerf:    defaults.Kerf,
		RecentProjects: []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a CutSettings struct.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	s.Trim = c.DefaultTrim
	s.Kerf = c.DefaultKerf
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most limit entries.
func (c *AppConfig) AddRecentProject(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
