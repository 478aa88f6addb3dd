package engine

import (
	"github.com/piwi3910/PipeCut/internal/model"
)

// Summarize computes plan statistics from the same materials and demands
// the plan was allocated from. Unassignable demands are recomputed from the
// raw inputs because the plan itself does not record them.
func Summarize(materials []model.Material, demands []model.Demand, plan model.CutPlan, settings model.CutSettings) model.PlanStatistics {
	byID := make(map[string]model.Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	stats := model.PlanStatistics{
		Unassignable: []model.AggregatedDemand{},
		Patterns:     []model.CutPattern{},
		Materials:    []model.MaterialStatistics{},
	}

	for _, mb := range plan.Materials {
		ms := model.MaterialStatistics{
			MaterialID: mb.MaterialID,
			Name:       byID[mb.MaterialID].Name,
			Bins:       len(mb.Bins),
		}
		for _, b := range mb.Bins {
			ms.Cuts += len(b.Cuts)
			ms.TotalStock += b.StockLength
			ms.TotalUsed += b.UsedLength()
			ms.TotalWaste += b.Remaining
		}
		ms.Efficiency = percent(ms.TotalUsed, ms.TotalStock)

		stats.TotalBins += ms.Bins
		stats.TotalStock += ms.TotalStock
		stats.TotalUsed += ms.TotalUsed
		stats.TotalWaste += ms.TotalWaste
		stats.Materials = append(stats.Materials, ms)
		stats.Patterns = append(stats.Patterns, cutPatterns(mb)...)
	}
	stats.Efficiency = percent(stats.TotalUsed, stats.TotalStock)
	stats.Unassignable = model.AggregateDemands(Unassignable(materials, demands, settings))

	return stats
}

// Unassignable returns the demands that are longer than the usable length
// of their material. Demands with an unknown material are not included.
func Unassignable(materials []model.Material, demands []model.Demand, settings model.CutSettings) []model.Demand {
	byID := make(map[string]model.Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	var out []model.Demand
	for _, d := range demands {
		m, ok := byID[d.MaterialID]
		if !ok {
			continue
		}
		if d.Length > settings.Usable(m) {
			out = append(out, d)
		}
	}
	return out
}

// cutPatterns counts the bins of one material by exact ordered cut lengths.
func cutPatterns(mb model.MaterialBins) []model.CutPattern {
	var patterns []model.CutPattern
	index := make(map[string]int)
	for _, b := range mb.Bins {
		key := b.Pattern()
		i, ok := index[key]
		if !ok {
			i = len(patterns)
			index[key] = i
			patterns = append(patterns, model.CutPattern{
				MaterialID: mb.MaterialID,
				Key:        key,
				Lengths:    b.Lengths(),
			})
		}
		patterns[i].Count++
	}
	return patterns
}

func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return (part / whole) * 100.0
}
