package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PipeCut/internal/model"
)

// cutColor represents an RGB color for a cut segment.
type cutColor struct {
	R, G, B int
}

// cutColors cycles over the cuts of a bin.
var cutColors = []cutColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	barLabelW    = 22.0
	barHeight    = 8.0
	barSpacing   = 5.0
)

// ExportPDF generates a PDF document containing the cut plan.
// Each material gets one or more pages with every stock unit drawn as a bar,
// followed by a summary page with statistics, patterns and the purchase list.
func ExportPDF(path string, r Report) error {
	if len(r.Plan.Materials) == 0 {
		return fmt.Errorf("no bins to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, mb := range r.Plan.Materials {
		renderMaterialPages(pdf, r, mb)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, r)

	return pdf.OutputFileAndClose(path)
}

// barsPerPage is the number of bins that fit below the page header.
func barsPerPage() int {
	avail := (pageHeight - drawAreaTop - marginBottom - 10) / (barHeight + barSpacing)
	return int(avail)
}

// renderMaterialPages draws all bins of one material, adding pages as needed.
func renderMaterialPages(pdf *fpdf.Fpdf, r Report, mb model.MaterialBins) {
	name := r.materialName(mb.MaterialID)
	perPage := barsPerPage()

	for i, bin := range mb.Bins {
		if i%perPage == 0 {
			pdf.AddPage()
			renderMaterialHeader(pdf, r, mb, name)
		}
		y := drawAreaTop + float64(i%perPage)*(barHeight+barSpacing)
		drawBin(pdf, bin, r.Settings, i+1, y)
	}
}

func renderMaterialHeader(pdf *fpdf.Fpdf, r Report, mb model.MaterialBins, name string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	stockLength := 0.0
	if len(mb.Bins) > 0 {
		stockLength = mb.Bins[0].StockLength
	}
	title := fmt.Sprintf("%s (%s mm stock)", name, model.FormatLength(stockLength))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	cuts := 0
	for _, b := range mb.Bins {
		cuts += len(b.Cuts)
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Units: %d | Cuts: %d | Patterns: %d | Trim: %s mm | Kerf: %s mm",
		len(mb.Bins), cuts, len(r.Stats.PatternsFor(mb.MaterialID)),
		model.FormatLength(r.Settings.Trim), model.FormatLength(r.Settings.Kerf))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")
}

// drawBin renders one stock unit as a horizontal bar: cuts in assignment
// order separated by kerf gaps, then the remainder and the trim.
func drawBin(pdf *fpdf.Fpdf, bin model.Bin, settings model.CutSettings, num int, y float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(barLabelW, barHeight, fmt.Sprintf("#%d", num), "", 0, "L", false, 0, "")

	barX := marginLeft + barLabelW
	barW := pageWidth - marginRight - barX - 30
	if bin.StockLength <= 0 {
		return
	}
	scale := barW / bin.StockLength

	// Stock background (remainder)
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(barX, y, barW, barHeight, "FD")

	x := barX
	for i, c := range bin.Cuts {
		if i > 0 {
			x += settings.Kerf * scale
		}
		w := c.Length * scale
		col := cutColors[i%len(cutColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.Rect(x, y, w, barHeight, "FD")

		label := model.FormatLength(c.Length)
		pdf.SetFont("Helvetica", "", 7)
		if lw := pdf.GetStringWidth(label); lw < w-1 {
			pdf.SetXY(x+(w-lw)/2, y+barHeight/2-2)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}
		x += w
	}

	// Trim at the far end
	if settings.Trim > 0 {
		tw := settings.Trim * scale
		pdf.SetFillColor(255, 200, 200)
		pdf.SetDrawColor(200, 0, 0)
		pdf.Rect(barX+barW-tw, y, tw, barHeight, "FD")
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(barX+barW+2, y)
	rest := fmt.Sprintf("rest %s", model.FormatLength(bin.Remaining))
	pdf.CellFormat(28, barHeight, rest, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, r Report) {
	title := "Cut Plan Summary"
	if r.Title != "" {
		title = fmt.Sprintf("%s: %s", title, r.Title)
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	s := r.Stats

	y = sectionTitle(pdf, "Overall Statistics", y)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Stock Units Used", fmt.Sprintf("%d", s.TotalBins)},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", s.Efficiency)},
		{"Total Waste", fmt.Sprintf("%s mm", model.FormatLength(s.TotalWaste))},
		{"Unassignable Cuts", fmt.Sprintf("%d", s.UnassignableCount())},
		{"Purchase Cost", r.Purchase.TotalCost.StringFixed(2)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	y = sectionTitle(pdf, "Purchase List", y)
	rows := make([][]string, 0, len(r.Purchase.Lines))
	for _, l := range r.Purchase.Lines {
		rows = append(rows, []string{
			l.Name,
			fmt.Sprintf("%d", l.Units),
			model.FormatLength(l.StockLength),
			l.PricePerUnit.StringFixed(2),
			l.Cost.StringFixed(2),
		})
	}
	y = drawTable(pdf, y, []float64{90, 25, 40, 40, 40},
		[]string{"Material", "Units", "Stock (mm)", "Unit Price", "Cost"}, rows)
	y += 8

	y = sectionTitle(pdf, "Cut Patterns", y)
	rows = rows[:0]
	for _, p := range s.Patterns {
		rows = append(rows, []string{r.materialName(p.MaterialID), p.Key, fmt.Sprintf("%d", p.Count)})
	}
	y = drawTable(pdf, y, []float64{70, 140, 25}, []string{"Material", "Pattern", "Count"}, rows)

	if len(s.Unassignable) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Cuts longer than usable stock", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, g := range s.Unassignable {
			if y > pageHeight-marginBottom-8 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %s mm x %d (project %q)",
				r.materialName(g.MaterialID), model.FormatLength(g.Length), g.Count, g.Project)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by PipeCut - Pipe and Profile Cut Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func sectionTitle(pdf *fpdf.Fpdf, title string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	return y + 9
}

// drawTable renders a bordered table and returns the y position below it.
// Rows that would overflow the page are dropped.
func drawTable(pdf *fpdf.Fpdf, y float64, widths []float64, headers []string, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(widths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += widths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		if y > pageHeight-marginBottom-10 {
			break
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(widths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += widths[j]
		}
		y += 6
	}
	return y
}
