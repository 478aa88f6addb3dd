package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNewDemandsCreatesDistinctIDs(t *testing.T) {
	demands := NewDemands("Gate", "m1", 1200, 4)
	if len(demands) != 4 {
		t.Fatalf("expected 4 demands, got %d", len(demands))
	}
	seen := map[string]bool{}
	for _, d := range demands {
		if seen[d.ID] {
			t.Errorf("duplicate ID %s", d.ID)
		}
		seen[d.ID] = true
		if d.Project != "Gate" || d.MaterialID != "m1" || d.Length != 1200 {
			t.Errorf("unexpected demand %+v", d)
		}
	}
}

func TestNewDemandsZeroCount(t *testing.T) {
	if got := NewDemands("P", "m1", 100, 0); got != nil {
		t.Errorf("expected nil for n=0, got %v", got)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Trim != 110 {
		t.Errorf("expected trim 110, got %f", s.Trim)
	}
	if s.Kerf != 2 {
		t.Errorf("expected kerf 2, got %f", s.Kerf)
	}
	if got := s.Usable(Material{StockLength: 6000}); got != 5890 {
		t.Errorf("expected usable 5890, got %f", got)
	}
}

func TestBinHelpers(t *testing.T) {
	b := Bin{
		Cuts: []Demand{
			{ID: "a", Length: 2000},
			{ID: "b", Length: 1000.5},
		},
		StockLength: 6000,
		Usable:      5890,
		Remaining:   2887.5,
	}

	if b.UsedLength() != 3000.5 {
		t.Errorf("expected used 3000.5, got %f", b.UsedLength())
	}
	if b.Pattern() != "2000 + 1000.5" {
		t.Errorf("unexpected pattern %q", b.Pattern())
	}
	reversed := Bin{Cuts: []Demand{{Length: 1000.5}, {Length: 2000}}}
	if reversed.Pattern() == b.Pattern() {
		t.Error("patterns must be order sensitive")
	}
	if eff := b.Efficiency(); eff < 50.0 || eff > 50.01 {
		t.Errorf("expected efficiency ~50.008, got %f", eff)
	}
	if (Bin{}).Efficiency() != 0 {
		t.Error("expected zero efficiency for empty bin")
	}
}

func TestCutPlanHelpers(t *testing.T) {
	plan := CutPlan{Materials: []MaterialBins{
		{MaterialID: "m1", Bins: []Bin{
			{Cuts: []Demand{{ID: "d1"}, {ID: "d2"}}},
			{Cuts: []Demand{{ID: "d3"}}},
		}},
		{MaterialID: "m2", Bins: []Bin{
			{Cuts: []Demand{{ID: "d4"}}},
		}},
	}}

	if plan.TotalBins() != 3 {
		t.Errorf("expected 3 bins, got %d", plan.TotalBins())
	}
	if plan.TotalCuts() != 4 {
		t.Errorf("expected 4 cuts, got %d", plan.TotalCuts())
	}
	if len(plan.Bins("m2")) != 1 {
		t.Errorf("expected 1 bin for m2, got %d", len(plan.Bins("m2")))
	}
	if plan.Bins("missing") != nil {
		t.Error("expected nil bins for unknown material")
	}
	ids := plan.AssignedIDs()
	for _, id := range []string{"d1", "d2", "d3", "d4"} {
		if !ids[id] {
			t.Errorf("expected %s to be assigned", id)
		}
	}
}

func TestMaterialJSONRoundTripKeepsPrice(t *testing.T) {
	m := NewMaterial("Copper", 5000)
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Material
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.ID != m.ID || decoded.StockLength != 5000 || !decoded.PricePerUnit.IsZero() {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestValidLength(t *testing.T) {
	tests := []struct {
		length float64
		want   bool
	}{
		{1200, true},
		{0.5, true},
		{0, false},
		{-5, false},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, tt := range tests {
		if got := ValidLength(tt.length); got != tt.want {
			t.Errorf("ValidLength(%v) = %v, want %v", tt.length, got, tt.want)
		}
	}
}

func TestCutSettingsValid(t *testing.T) {
	if !DefaultSettings().Valid() {
		t.Error("default settings should be valid")
	}
	if !(CutSettings{}).Valid() {
		t.Error("zero allowances should be valid")
	}
	for _, s := range []CutSettings{
		{Trim: -1, Kerf: 2},
		{Trim: 110, Kerf: -0.5},
		{Trim: math.NaN(), Kerf: 2},
		{Trim: 110, Kerf: math.Inf(1)},
	} {
		if s.Valid() {
			t.Errorf("expected %+v to be invalid", s)
		}
	}
}
