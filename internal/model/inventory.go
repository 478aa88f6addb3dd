package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Library holds the user's saved material definitions so they can be
// reused across projects.
type Library struct {
	Materials []Material `json:"materials"`
}

// NewMaterialWithPrice creates a material with a known unit price.
func NewMaterialWithPrice(name string, stockLength float64, price decimal.Decimal) Material {
	m := NewMaterial(name, stockLength)
	m.PricePerUnit = price
	return m
}

// DefaultLibrary returns a library populated with common stock lengths.
func DefaultLibrary() Library {
	return Library{
		Materials: []Material{
			NewMaterial("Steel tube 40x40x2", 6000),
			NewMaterial("Steel pipe 1\"", 6000),
			NewMaterial("Copper pipe 22mm", 5000),
			NewMaterial("PVC pipe 110mm", 3000),
			NewMaterial("Aluminium profile 30x30", 6000),
		},
	}
}

// Lookup finds a material by ID, or by name ignoring case.
func (l Library) Lookup(ref string) (Material, bool) {
	ref = strings.TrimSpace(ref)
	for _, m := range l.Materials {
		if m.ID == ref {
			return m, true
		}
	}
	for _, m := range l.Materials {
		if strings.EqualFold(m.Name, ref) {
			return m, true
		}
	}
	return Material{}, false
}

// Merge adds materials whose IDs are not yet in the library.
// It returns the number of materials added.
func (l *Library) Merge(materials []Material) int {
	ids := make(map[string]bool, len(l.Materials))
	for _, m := range l.Materials {
		ids[m.ID] = true
	}
	added := 0
	for _, m := range materials {
		if ids[m.ID] {
			continue
		}
		l.Materials = append(l.Materials, m)
		ids[m.ID] = true
		added++
	}
	return added
}
