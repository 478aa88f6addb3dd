package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PipeCut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each cut label's QR code.
type LabelInfo struct {
	DemandID string  `json:"id"`
	Project  string  `json:"project"`
	Material string  `json:"material"`
	Length   float64 `json:"length_mm"`
	Unit     int     `json:"unit"` // 1-based stock unit within the material
	Position int     `json:"pos"`  // 1-based cut position on the unit
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for every assigned cut.
// Each label shows the project, material and length, plus a QR code encoding
// the cut metadata as JSON. Labels are laid out on a standard label sheet
// format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, r Report) error {
	labels := CollectLabelInfos(r)
	if len(labels) == 0 {
		return fmt.Errorf("no cuts assigned to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.DemandID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, idx int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Length is the most prominent line
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 5, model.FormatLength(info.Length)+" mm", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+6)
	pdf.CellFormat(textW, 3.5, truncate(pdf, info.Material, textW), "", 1, "L", false, 0, "")

	if info.Project != "" {
		pdf.SetXY(textX, y+labelPadding+9.5)
		pdf.CellFormat(textW, 3.5, truncate(pdf, info.Project, textW), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+13.5)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Unit %d, cut %d", info.Unit, info.Position), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits in width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// CollectLabelInfos lists one label per assigned cut, in plan order.
func CollectLabelInfos(r Report) []LabelInfo {
	var labels []LabelInfo
	for _, mb := range r.Plan.Materials {
		name := r.materialName(mb.MaterialID)
		for unit, bin := range mb.Bins {
			for pos, c := range bin.Cuts {
				labels = append(labels, LabelInfo{
					DemandID: c.ID,
					Project:  c.Project,
					Material: name,
					Length:   c.Length,
					Unit:     unit + 1,
					Position: pos + 1,
				})
			}
		}
	}
	return labels
}
