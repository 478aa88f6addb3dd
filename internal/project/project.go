package project

import (
	"fmt"

	"github.com/piwi3910/PipeCut/internal/model"
)

// FileExtension is the extension used for saved projects.
const FileExtension = ".pipecut"

// SaveProject writes a project to path as JSON.
func SaveProject(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProject reads a project from path. Nil collections are replaced by
// empty ones. Allowances missing from the file keep their defaults; an
// explicit zero is preserved.
func LoadProject(path string) (model.Project, error) {
	p := model.Project{Settings: model.DefaultSettings()}
	found, err := readJSON(path, &p)
	if !found && err == nil {
		err = fmt.Errorf("%s does not exist", path)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to load project: %w", err)
	}
	if p.Materials == nil {
		p.Materials = []model.Material{}
	}
	if p.Demands == nil {
		p.Demands = []model.Demand{}
	}
	return p, nil
}
