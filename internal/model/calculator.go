package model

import "github.com/shopspring/decimal"

// PurchaseLine is the buying summary for one material.
type PurchaseLine struct {
	MaterialID   string          `json:"material_id"`
	Name         string          `json:"name"`
	Units        int             `json:"units"`        // Stock units to buy
	StockLength  float64         `json:"stock_length"` // mm per unit
	TotalLength  float64         `json:"total_length"` // mm across all units
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Cost         decimal.Decimal `json:"cost"`
}

// PurchaseSummary holds the full buying list for a cut plan.
type PurchaseSummary struct {
	Lines      []PurchaseLine  `json:"lines"`
	TotalUnits int             `json:"total_units"`
	TotalCost  decimal.Decimal `json:"total_cost"`
}

// CalculatePurchase computes how many stock units of each material must be
// bought to cut the plan, and what they cost. Lines follow plan order.
// Plan entries whose material is unknown are skipped.
func CalculatePurchase(materials []Material, plan CutPlan) PurchaseSummary {
	byID := make(map[string]Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	summary := PurchaseSummary{Lines: []PurchaseLine{}, TotalCost: decimal.Zero}
	for _, mb := range plan.Materials {
		m, ok := byID[mb.MaterialID]
		if !ok || len(mb.Bins) == 0 {
			continue
		}
		units := len(mb.Bins)
		cost := m.PricePerUnit.Mul(decimal.NewFromInt(int64(units)))
		summary.Lines = append(summary.Lines, PurchaseLine{
			MaterialID:   m.ID,
			Name:         m.Name,
			Units:        units,
			StockLength:  m.StockLength,
			TotalLength:  m.StockLength * float64(units),
			PricePerUnit: m.PricePerUnit,
			Cost:         cost,
		})
		summary.TotalUnits += units
		summary.TotalCost = summary.TotalCost.Add(cost)
	}
	return summary
}
