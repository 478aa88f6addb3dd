package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default cut allowances in mm.
const (
	DefaultTrim = 110.0 // Unusable length at the end of every stock unit
	DefaultKerf = 2.0   // Material lost per saw cut
)

// MaxDemandCount caps how many identical demands a single entry may create.
const MaxDemandCount = 10000

// ValidLength reports whether l is a finite, positive length.
func ValidLength(l float64) bool {
	return l > 0 && !math.IsInf(l, 1)
}

// Material represents a raw-stock type sold in fixed lengths.
type Material struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	StockLength  float64         `json:"stock_length"`   // mm, length of one purchasable unit
	PricePerUnit decimal.Decimal `json:"price_per_unit"` // Optional, zero when unknown
}

func NewMaterial(name string, stockLength float64) Material {
	return Material{
		ID:          uuid.New().String()[:8],
		Name:        name,
		StockLength: stockLength,
	}
}

// Demand represents one required cut.
type Demand struct {
	ID         string  `json:"id"`
	Project    string  `json:"project"`     // Grouping label only, never used for allocation
	MaterialID string  `json:"material_id"` // References Material.ID
	Length     float64 `json:"length"`      // mm
}

func NewDemand(project, materialID string, length float64) Demand {
	return Demand{
		ID:         uuid.New().String()[:8],
		Project:    project,
		MaterialID: materialID,
		Length:     length,
	}
}

// NewDemands creates n identical demands, each with its own ID.
// It returns nil when n < 1.
func NewDemands(project, materialID string, length float64, n int) []Demand {
	if n < 1 {
		return nil
	}
	demands := make([]Demand, n)
	for i := range demands {
		demands[i] = NewDemand(project, materialID, length)
	}
	return demands
}

// CutSettings holds the cutting allowances used by the allocator and metrics.
type CutSettings struct {
	Trim float64 `json:"trim"` // Unusable length per stock unit in mm
	Kerf float64 `json:"kerf"` // Saw blade width in mm
}

func DefaultSettings() CutSettings {
	return CutSettings{
		Trim: DefaultTrim,
		Kerf: DefaultKerf,
	}
}

// Valid reports whether both allowances are finite and not negative.
func (s CutSettings) Valid() bool {
	return s.Trim >= 0 && s.Kerf >= 0 && !math.IsInf(s.Trim, 1) && !math.IsInf(s.Kerf, 1)
}

// Usable returns the length of a stock unit available for cuts.
func (s CutSettings) Usable(m Material) float64 {
	return m.StockLength - s.Trim
}

// Bin represents one stock unit committed to cutting.
type Bin struct {
	Cuts        []Demand `json:"cuts"`         // In assignment order
	Remaining   float64  `json:"remaining"`    // mm left after all cuts and kerfs
	StockLength float64  `json:"stock_length"` // mm, copied from the material
	Usable      float64  `json:"usable"`       // StockLength minus trim
}

// UsedLength returns the total length of all cuts in the bin.
func (b Bin) UsedLength() float64 {
	var total float64
	for _, c := range b.Cuts {
		total += c.Length
	}
	return total
}

// Lengths returns the cut lengths in assignment order.
func (b Bin) Lengths() []float64 {
	lengths := make([]float64, len(b.Cuts))
	for i, c := range b.Cuts {
		lengths[i] = c.Length
	}
	return lengths
}

// Pattern returns the canonical key of the bin's ordered cut lengths,
// e.g. "2500 + 2500". Bins with the same lengths in a different order
// have different patterns.
func (b Bin) Pattern() string {
	return FormatPattern(b.Lengths())
}

// FormatPattern joins lengths in order into a pattern key.
func FormatPattern(lengths []float64) string {
	parts := make([]string, len(lengths))
	for i, l := range lengths {
		parts[i] = FormatLength(l)
	}
	return strings.Join(parts, " + ")
}

// FormatLength renders a length in mm without trailing zeros.
func FormatLength(l float64) string {
	return strconv.FormatFloat(l, 'f', -1, 64)
}

// Efficiency returns the used percentage of the stock unit.
func (b Bin) Efficiency() float64 {
	if b.StockLength == 0 {
		return 0
	}
	return (b.UsedLength() / b.StockLength) * 100.0
}

// MaterialBins holds the bins opened for one material, in creation order.
type MaterialBins struct {
	MaterialID string `json:"material_id"`
	Bins       []Bin  `json:"bins"`
}

// CutPlan holds the result of one allocation run. Materials appear in the
// order their first demand was seen.
type CutPlan struct {
	Materials []MaterialBins `json:"materials"`
}

// Bins returns the bins for a material, or nil if the plan has none.
func (p CutPlan) Bins(materialID string) []Bin {
	for _, mb := range p.Materials {
		if mb.MaterialID == materialID {
			return mb.Bins
		}
	}
	return nil
}

// TotalBins returns the number of bins across all materials.
func (p CutPlan) TotalBins() int {
	total := 0
	for _, mb := range p.Materials {
		total += len(mb.Bins)
	}
	return total
}

// TotalCuts returns the number of assigned demands across all bins.
func (p CutPlan) TotalCuts() int {
	total := 0
	for _, mb := range p.Materials {
		for _, b := range mb.Bins {
			total += len(b.Cuts)
		}
	}
	return total
}

// AssignedIDs returns the set of demand IDs placed in any bin.
func (p CutPlan) AssignedIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, mb := range p.Materials {
		for _, b := range mb.Bins {
			for _, c := range b.Cuts {
				ids[c.ID] = true
			}
		}
	}
	return ids
}
