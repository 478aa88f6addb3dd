package engine

import (
	"sort"

	"github.com/piwi3910/PipeCut/internal/model"
)

// Optimizer runs the 1D bin-packing algorithm.
type Optimizer struct {
	Settings model.CutSettings
}

func New(settings model.CutSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Allocate packs demands onto stock units of their material and returns the
// cut plan. Materials are packed independently, in the order their first
// demand appears. Demands referencing an unknown material are ignored, and
// demands longer than the usable length of their material are left out of
// every bin (see Summarize for recovering them).
//
// Lengths and allowances are expected to be positive; they are not
// re-validated here.
func (o *Optimizer) Allocate(materials []model.Material, demands []model.Demand) model.CutPlan {
	plan := model.CutPlan{Materials: []model.MaterialBins{}}

	for _, g := range groupByMaterial(materials, demands) {
		bins := o.packMaterial(g.material, g.demands)
		if len(bins) == 0 {
			continue
		}
		plan.Materials = append(plan.Materials, model.MaterialBins{
			MaterialID: g.material.ID,
			Bins:       bins,
		})
	}
	return plan
}

// materialGroup holds the demands for a single material.
type materialGroup struct {
	material model.Material
	demands  []model.Demand
}

// groupByMaterial splits demands into groups by material, ordered by the
// first demand seen for each material. Demands with an unknown material
// are dropped.
func groupByMaterial(materials []model.Material, demands []model.Demand) []materialGroup {
	byID := make(map[string]model.Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	var groups []materialGroup
	index := make(map[string]int)
	for _, d := range demands {
		m, ok := byID[d.MaterialID]
		if !ok {
			continue
		}
		i, seen := index[m.ID]
		if !seen {
			i = len(groups)
			index[m.ID] = i
			groups = append(groups, materialGroup{material: m})
		}
		groups[i].demands = append(groups[i].demands, d)
	}
	return groups
}

// packMaterial uses first-fit-decreasing ordering with a best-fit bin choice.
func (o *Optimizer) packMaterial(material model.Material, demands []model.Demand) []model.Bin {
	usable := o.Settings.Usable(material)
	kerf := o.Settings.Kerf

	// Sort by length descending (largest first = less fragmentation).
	// Stable so equal lengths keep their input order.
	pieces := make([]model.Demand, len(demands))
	copy(pieces, demands)
	sort.SliceStable(pieces, func(i, j int) bool {
		return pieces[i].Length > pieces[j].Length
	})

	var bins []model.Bin
	for _, piece := range pieces {
		if piece.Length > usable {
			continue
		}
		needed := piece.Length + kerf

		if idx := bestFit(bins, needed); idx >= 0 {
			bins[idx].Cuts = append(bins[idx].Cuts, piece)
			bins[idx].Remaining -= needed
			continue
		}

		bins = append(bins, model.Bin{
			Cuts:        []model.Demand{piece},
			Remaining:   usable - needed,
			StockLength: material.StockLength,
			Usable:      usable,
		})
	}

	// Kerf is only lost between two cuts, but every piece above was charged
	// one. Refund the trailing charge once per bin.
	for i := range bins {
		if len(bins[i].Cuts) > 0 {
			bins[i].Remaining += kerf
		}
	}
	return bins
}

// bestFit returns the index of the open bin with the least remaining length
// that still holds needed, or -1 if none does. Ties go to the earliest bin.
func bestFit(bins []model.Bin, needed float64) int {
	bestIdx := -1
	for i, b := range bins {
		if b.Remaining < needed {
			continue
		}
		if bestIdx < 0 || b.Remaining < bins[bestIdx].Remaining {
			bestIdx = i
		}
	}
	return bestIdx
}
