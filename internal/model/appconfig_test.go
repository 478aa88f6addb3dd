package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultTrim != defaults.Trim {
		t.Errorf("Trim mismatch: config=%f settings=%f", cfg.DefaultTrim, defaults.Trim)
	}
	if cfg.DefaultKerf != defaults.Kerf {
		t.Errorf("Kerf mismatch: config=%f settings=%f", cfg.DefaultKerf, defaults.Kerf)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultTrim = 50
	cfg.DefaultKerf = 3.5

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Trim != 50 {
		t.Errorf("expected Trim=50, got %f", s.Trim)
	}
	if s.Kerf != 3.5 {
		t.Errorf("expected Kerf=3.5, got %f", s.Kerf)
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("a.pipecut", 3)
	cfg.AddRecentProject("b.pipecut", 3)
	cfg.AddRecentProject("c.pipecut", 3)
	cfg.AddRecentProject("a.pipecut", 3)
	cfg.AddRecentProject("d.pipecut", 3)

	want := []string{"d.pipecut", "a.pipecut", "c.pipecut"}
	if len(cfg.RecentProjects) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.RecentProjects)
	}
	for i := range want {
		if cfg.RecentProjects[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], cfg.RecentProjects[i])
		}
	}
}
