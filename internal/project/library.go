package project

import (
	"fmt"
	"path/filepath"

	"github.com/piwi3910/PipeCut/internal/model"
)

// DefaultLibraryPath returns ~/.pipecut/materials.json.
func DefaultLibraryPath() string {
	return filepath.Join(DefaultConfigDir(), "materials.json")
}

// SaveLibrary writes the material library to path.
func SaveLibrary(path string, lib model.Library) error {
	return writeJSON(path, lib)
}

// LoadLibrary reads the material library from path. When the file does not
// exist yet, the default library is written there and returned.
func LoadLibrary(path string) (model.Library, error) {
	var lib model.Library
	found, err := readJSON(path, &lib)
	if err != nil {
		return model.Library{}, err
	}
	if !found {
		lib = model.DefaultLibrary()
		return lib, SaveLibrary(path, lib)
	}
	if lib.Materials == nil {
		lib.Materials = []model.Material{}
	}
	return lib, nil
}

// ImportLibrary merges the materials of the library file at path into
// existing. Materials whose ID is already present are skipped.
func ImportLibrary(path string, existing model.Library) (model.Library, error) {
	var imported model.Library
	found, err := readJSON(path, &imported)
	if err != nil {
		return existing, err
	}
	if !found {
		return existing, fmt.Errorf("library file %s not found", path)
	}
	existing.Merge(imported.Materials)
	return existing, nil
}
