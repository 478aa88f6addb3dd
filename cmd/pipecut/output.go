package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/PipeCut/internal/engine"
	"github.com/piwi3910/PipeCut/internal/export"
	"github.com/piwi3910/PipeCut/internal/model"
)

const rule = "────────────────────────────────────────────────────────────────\n"

// jsonReport is the shape of -format json output.
type jsonReport struct {
	Name       string                `json:"name"`
	Settings   model.CutSettings     `json:"settings"`
	Plan       model.CutPlan         `json:"plan"`
	Statistics model.PlanStatistics  `json:"statistics"`
	Purchase   model.PurchaseSummary `json:"purchase"`
	Scenarios  []jsonScenario        `json:"scenarios,omitempty"`
}

type jsonScenario struct {
	Name              string            `json:"name"`
	Settings          model.CutSettings `json:"settings"`
	BinsUsed          int               `json:"bins_used"`
	Efficiency        float64           `json:"efficiency"`
	UnassignableCount int               `json:"unassignable_count"`
}

// writeReport renders the report in the requested format.
func writeReport(out io.Writer, format string, r export.Report, comparison []engine.ComparisonResult) error {
	switch format {
	case "text":
		_, err := io.WriteString(out, textReport(r, comparison))
		return err
	case "json":
		return jsonOutput(out, r, comparison)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func jsonOutput(out io.Writer, r export.Report, comparison []engine.ComparisonResult) error {
	doc := jsonReport{
		Name:       r.Title,
		Settings:   r.Settings,
		Plan:       r.Plan,
		Statistics: r.Stats,
		Purchase:   r.Purchase,
	}
	for _, c := range comparison {
		doc.Scenarios = append(doc.Scenarios, jsonScenario{
			Name:              c.Scenario.Name,
			Settings:          c.Scenario.Settings,
			BinsUsed:          c.BinsUsed,
			Efficiency:        c.Stats.Efficiency,
			UnassignableCount: c.UnassignableCount,
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// textReport generates human-readable text output
func textReport(r export.Report, comparison []engine.ComparisonResult) string {
	var b strings.Builder
	names := make(map[string]string, len(r.Materials))
	for _, m := range r.Materials {
		names[m.ID] = m.Name
	}

	b.WriteString("═══════════════════════════════════════════════════════════════\n")
	fmt.Fprintf(&b, "  CUT PLAN: %s\n", r.Title)
	b.WriteString("═══════════════════════════════════════════════════════════════\n\n")

	s := r.Stats
	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "  Trim / Kerf:     %s / %s mm\n", model.FormatLength(r.Settings.Trim), model.FormatLength(r.Settings.Kerf))
	fmt.Fprintf(&b, "  Stock units:     %d\n", s.TotalBins)
	fmt.Fprintf(&b, "  Cuts placed:     %d\n", r.Plan.TotalCuts())
	fmt.Fprintf(&b, "  Efficiency:      %.1f%%\n", s.Efficiency)
	fmt.Fprintf(&b, "  Waste:           %s mm\n", model.FormatLength(s.TotalWaste))
	fmt.Fprintf(&b, "  Unassignable:    %d\n\n", s.UnassignableCount())

	for _, mb := range r.Plan.Materials {
		fmt.Fprintf(&b, "%s\n", names[mb.MaterialID])
		b.WriteString(rule)
		for i, bin := range mb.Bins {
			fmt.Fprintf(&b, "  #%-3d %-40s rest %-8s %5.1f%%\n",
				i+1, bin.Pattern(), model.FormatLength(bin.Remaining), bin.Efficiency())
		}
		b.WriteString("\n")
	}

	if len(s.Patterns) > 0 {
		b.WriteString("PATTERNS\n")
		b.WriteString(rule)
		for _, p := range s.Patterns {
			fmt.Fprintf(&b, "  %3dx  %-20s %s\n", p.Count, names[p.MaterialID], p.Key)
		}
		b.WriteString("\n")
	}

	if len(r.Purchase.Lines) > 0 {
		b.WriteString("PURCHASE\n")
		b.WriteString(rule)
		for _, l := range r.Purchase.Lines {
			fmt.Fprintf(&b, "  %3d x %-30s @ %s = %s\n", l.Units, l.Name, l.PricePerUnit.StringFixed(2), l.Cost.StringFixed(2))
		}
		fmt.Fprintf(&b, "  Total: %d units, %s\n\n", r.Purchase.TotalUnits, r.Purchase.TotalCost.StringFixed(2))
	}

	if len(s.Unassignable) > 0 {
		b.WriteString("UNASSIGNABLE (longer than usable stock)\n")
		b.WriteString(rule)
		for _, g := range s.Unassignable {
			fmt.Fprintf(&b, "  %3d x %s mm  %s  project %q\n", g.Count, model.FormatLength(g.Length), names[g.MaterialID], g.Project)
		}
		b.WriteString("\n")
	}

	if len(comparison) > 0 {
		b.WriteString("SCENARIOS\n")
		b.WriteString(rule)
		for _, c := range comparison {
			fmt.Fprintf(&b, "  %-24s units %3d  efficiency %5.1f%%  unassignable %d\n",
				c.Scenario.Name, c.BinsUsed, c.Stats.Efficiency, c.UnassignableCount)
		}
		b.WriteString("\n")
	}

	return b.String()
}
