package engine

import (
	"fmt"

	"github.com/piwi3910/PipeCut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.CutSettings
}

// ComparisonResult holds the cut plan and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario          ComparisonScenario
	Plan              model.CutPlan
	Stats             model.PlanStatistics
	BinsUsed          int
	TotalCuts         int
	WastePercent      float64
	UnassignableCount int
}

// CompareScenarios runs allocation for each scenario and returns the results
// in scenario order. This enables side-by-side comparison of different
// allowances (e.g., a thinner blade or no trim).
func CompareScenarios(scenarios []ComparisonScenario, materials []model.Material, demands []model.Demand) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		plan := New(scenario.Settings).Allocate(materials, demands)
		stats := Summarize(materials, demands, plan, scenario.Settings)

		wastePercent := 0.0
		if stats.TotalStock > 0 {
			wastePercent = 100.0 - stats.Efficiency
		}

		results = append(results, ComparisonResult{
			Scenario:          scenario,
			Plan:              plan,
			Stats:             stats,
			BinsUsed:          stats.TotalBins,
			TotalCuts:         plan.TotalCuts(),
			WastePercent:      wastePercent,
			UnassignableCount: stats.UnassignableCount(),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying the allowances to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.CutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: Thinner blade
	if baseSettings.Kerf > 1.0 {
		thinKerf := baseSettings
		thinKerf.Kerf = baseSettings.Kerf * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.1fmm (half)", thinKerf.Kerf),
			Settings: thinKerf,
		})
	}

	// Scenario: No trim allowance
	if baseSettings.Trim > 0 {
		noTrim := baseSettings
		noTrim.Trim = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Trim",
			Settings: noTrim,
		})
	}

	return scenarios
}
