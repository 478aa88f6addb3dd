// Package export provides functionality for exporting cut plans to various
// file formats.
package export

import (
	"github.com/piwi3910/PipeCut/internal/engine"
	"github.com/piwi3910/PipeCut/internal/model"
)

// Report bundles a cut plan with everything needed to render it.
type Report struct {
	Title     string
	Materials []model.Material
	Plan      model.CutPlan
	Stats     model.PlanStatistics
	Purchase  model.PurchaseSummary
	Settings  model.CutSettings
}

// NewReport allocates demands and computes statistics and the purchase list.
func NewReport(title string, materials []model.Material, demands []model.Demand, settings model.CutSettings) Report {
	plan := engine.New(settings).Allocate(materials, demands)
	return Report{
		Title:     title,
		Materials: materials,
		Plan:      plan,
		Stats:     engine.Summarize(materials, demands, plan, settings),
		Purchase:  model.CalculatePurchase(materials, plan),
		Settings:  settings,
	}
}

// materialName returns the display name of a material, falling back to its ID.
func (r Report) materialName(id string) string {
	for _, m := range r.Materials {
		if m.ID == id {
			return m.Name
		}
	}
	return id
}
