package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetCutPlan      = "Cut Plan"
	SheetPatterns     = "Patterns"
	SheetPurchase     = "Purchase"
	SheetUnassignable = "Unassignable"
)

// ExportXLSX writes the report as a workbook with one sheet each for the
// cut plan, the cut patterns, the purchase list and the unassignable cuts.
func ExportXLSX(path string, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCutPlan); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetPatterns, SheetPurchase, SheetUnassignable} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
	}

	if err := writeRows(f, SheetCutPlan, cutPlanRows(r)); err != nil {
		return err
	}
	if err := writeRows(f, SheetPatterns, patternRows(r)); err != nil {
		return err
	}
	if err := writeRows(f, SheetPurchase, purchaseRows(r)); err != nil {
		return err
	}
	if err := writeRows(f, SheetUnassignable, unassignableRows(r)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func cutPlanRows(r Report) [][]interface{} {
	rows := [][]interface{}{{"Material", "Unit", "Position", "Project", "Length", "Demand ID", "Remaining"}}
	for _, mb := range r.Plan.Materials {
		name := r.materialName(mb.MaterialID)
		for unit, bin := range mb.Bins {
			for pos, c := range bin.Cuts {
				rows = append(rows, []interface{}{name, unit + 1, pos + 1, c.Project, c.Length, c.ID, bin.Remaining})
			}
		}
	}
	return rows
}

func patternRows(r Report) [][]interface{} {
	rows := [][]interface{}{{"Material", "Pattern", "Count"}}
	for _, p := range r.Stats.Patterns {
		rows = append(rows, []interface{}{r.materialName(p.MaterialID), p.Key, p.Count})
	}
	return rows
}

func purchaseRows(r Report) [][]interface{} {
	rows := [][]interface{}{{"Material", "Units", "Stock Length", "Total Length", "Unit Price", "Cost"}}
	for _, l := range r.Purchase.Lines {
		price, _ := l.PricePerUnit.Float64()
		cost, _ := l.Cost.Float64()
		rows = append(rows, []interface{}{l.Name, l.Units, l.StockLength, l.TotalLength, price, cost})
	}
	total, _ := r.Purchase.TotalCost.Float64()
	rows = append(rows, []interface{}{"Total", r.Purchase.TotalUnits, nil, nil, nil, total})
	return rows
}

func unassignableRows(r Report) [][]interface{} {
	rows := [][]interface{}{{"Material", "Project", "Length", "Count", "Usable Length"}}
	for _, g := range r.Stats.Unassignable {
		usable := 0.0
		for _, m := range r.Materials {
			if m.ID == g.MaterialID {
				usable = r.Settings.Usable(m)
			}
		}
		rows = append(rows, []interface{}{r.materialName(g.MaterialID), g.Project, g.Length, g.Count, usable})
	}
	return rows
}
