package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PipeCut/internal/model"
	"github.com/shopspring/decimal"
)

// buildTestReport creates a realistic report with two materials and one
// unassignable cut.
func buildTestReport() Report {
	materials := []model.Material{
		{ID: "tube", Name: "Steel tube 40x40", StockLength: 6000, PricePerUnit: decimal.RequireFromString("42.50")},
		{ID: "pipe", Name: "Copper pipe 22mm", StockLength: 5000},
	}
	var demands []model.Demand
	demands = append(demands, model.NewDemands("Frame", "tube", 2500, 3)...)
	demands = append(demands, model.NewDemands("Frame", "tube", 800, 2)...)
	demands = append(demands, model.NewDemands("Plumbing", "pipe", 1200, 4)...)
	demands = append(demands, model.NewDemand("Plumbing", "pipe", 4950))

	return NewReport("Workshop", materials, demands, model.DefaultSettings())
}

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

func TestNewReport(t *testing.T) {
	r := buildTestReport()

	if r.Stats.TotalBins != r.Plan.TotalBins() {
		t.Errorf("stats bins %d != plan bins %d", r.Stats.TotalBins, r.Plan.TotalBins())
	}
	if r.Stats.UnassignableCount() != 1 {
		t.Errorf("expected 1 unassignable cut, got %d", r.Stats.UnassignableCount())
	}
	if r.Purchase.TotalUnits != r.Plan.TotalBins() {
		t.Errorf("purchase units %d != plan bins %d", r.Purchase.TotalUnits, r.Plan.TotalBins())
	}
	if got := r.materialName("pipe"); got != "Copper pipe 22mm" {
		t.Errorf("expected material name, got %q", got)
	}
	if got := r.materialName("missing"); got != "missing" {
		t.Errorf("expected ID fallback, got %q", got)
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")

	if err := ExportPDF(path, buildTestReport()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportPDF_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, Report{Settings: model.DefaultSettings()})
	if err == nil {
		t.Fatal("expected error for empty plan, got nil")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("expected no file to be written")
	}
}

func TestExportPDF_ManyBinsSpanPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	materials := []model.Material{{ID: "m", Name: "PVC pipe", StockLength: 3000}}
	demands := model.NewDemands("", "m", 2800, barsPerPage()*2+1)
	r := NewReport("", materials, demands, model.DefaultSettings())

	if got := r.Plan.TotalBins(); got != barsPerPage()*2+1 {
		t.Fatalf("expected one bin per demand, got %d", got)
	}
	if err := ExportPDF(path, r); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportPDF_InvalidPath(t *testing.T) {
	err := ExportPDF("/nonexistent/dir/plan.pdf", buildTestReport())
	if err == nil {
		t.Fatal("expected error for invalid path, got nil")
	}
}
