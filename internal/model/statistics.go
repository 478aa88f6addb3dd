package model

// CutPattern counts the bins of one material that share an ordered
// sequence of cut lengths.
type CutPattern struct {
	MaterialID string    `json:"material_id"`
	Key        string    `json:"key"`
	Lengths    []float64 `json:"lengths"`
	Count      int       `json:"count"`
}

// MaterialStatistics holds plan totals for a single material.
type MaterialStatistics struct {
	MaterialID string  `json:"material_id"`
	Name       string  `json:"name"`
	Bins       int     `json:"bins"`
	Cuts       int     `json:"cuts"`
	TotalStock float64 `json:"total_stock"`
	TotalUsed  float64 `json:"total_used"`
	TotalWaste float64 `json:"total_waste"`
	Efficiency float64 `json:"efficiency"`
}

// PlanStatistics holds the derived figures used to judge a cut plan.
type PlanStatistics struct {
	TotalBins    int                  `json:"total_bins"`
	TotalStock   float64              `json:"total_stock"` // mm
	TotalUsed    float64              `json:"total_used"`  // mm, sum of cut lengths
	TotalWaste   float64              `json:"total_waste"` // mm, sum of remaining lengths
	Efficiency   float64              `json:"efficiency"`  // percent, 0 for an empty plan
	Unassignable []AggregatedDemand   `json:"unassignable"`
	Patterns     []CutPattern         `json:"patterns"`
	Materials    []MaterialStatistics `json:"materials"`
}

// UnassignableCount returns the number of individual demands that cannot
// be cut from any stock unit of their material.
func (ps PlanStatistics) UnassignableCount() int {
	total := 0
	for _, g := range ps.Unassignable {
		total += g.Count
	}
	return total
}

// PatternsFor returns the cut patterns of one material.
func (ps PlanStatistics) PatternsFor(materialID string) []CutPattern {
	var patterns []CutPattern
	for _, p := range ps.Patterns {
		if p.MaterialID == materialID {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
