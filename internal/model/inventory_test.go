package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMaterialWithPrice(t *testing.T) {
	m := NewMaterialWithPrice("Steel 6m", 6000, decimal.RequireFromString("45.99"))
	if !m.PricePerUnit.Equal(decimal.RequireFromString("45.99")) {
		t.Errorf("expected price 45.99, got %s", m.PricePerUnit)
	}
	if m.Name != "Steel 6m" {
		t.Errorf("expected name 'Steel 6m', got %s", m.Name)
	}
	if m.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestDefaultLibraryHasUniqueIDs(t *testing.T) {
	lib := DefaultLibrary()
	if len(lib.Materials) == 0 {
		t.Fatal("expected default materials")
	}
	seen := map[string]bool{}
	for _, m := range lib.Materials {
		if seen[m.ID] {
			t.Errorf("duplicate ID %s", m.ID)
		}
		seen[m.ID] = true
		if m.StockLength <= 0 {
			t.Errorf("material %s has non-positive stock length", m.Name)
		}
	}
}

func TestLibraryLookup(t *testing.T) {
	lib := Library{Materials: []Material{
		{ID: "m1", Name: "Copper 22", StockLength: 5000},
		{ID: "m2", Name: "PVC 110", StockLength: 3000},
	}}

	if m, ok := lib.Lookup("m2"); !ok || m.Name != "PVC 110" {
		t.Errorf("lookup by ID failed: %+v %v", m, ok)
	}
	if m, ok := lib.Lookup("  copper 22 "); !ok || m.ID != "m1" {
		t.Errorf("lookup by name failed: %+v %v", m, ok)
	}
	if _, ok := lib.Lookup("steel"); ok {
		t.Error("expected miss for unknown material")
	}
}

func TestLibraryMergeSkipsDuplicates(t *testing.T) {
	lib := Library{Materials: []Material{{ID: "m1", Name: "A", StockLength: 6000}}}
	added := lib.Merge([]Material{
		{ID: "m1", Name: "A again", StockLength: 6000},
		{ID: "m2", Name: "B", StockLength: 3000},
	})
	if added != 1 {
		t.Errorf("expected 1 added, got %d", added)
	}
	if len(lib.Materials) != 2 {
		t.Errorf("expected 2 materials, got %d", len(lib.Materials))
	}
	if lib.Materials[0].Name != "A" {
		t.Errorf("existing material should be kept, got %s", lib.Materials[0].Name)
	}
}
