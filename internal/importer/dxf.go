package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/PipeCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// minDXFLength is the shortest drawn segment accepted as a cut, in mm.
const minDXFLength = 0.5

// ImportDXF imports demands from a DXF drawing. Every LINE, ARC and open
// LWPOLYLINE becomes one demand whose length is the drawn path length,
// rounded to 0.1 mm. The entity's layer name selects the material.
func ImportDXF(path, project string, materials []model.Material) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	lib := model.Library{Materials: materials}
	unknownLayers := make(map[string]bool)

	for _, ent := range entities {
		var length float64
		switch e := ent.(type) {
		case *entity.Line:
			length = math.Hypot(e.End[0]-e.Start[0], e.End[1]-e.Start[1])
		case *entity.Arc:
			length = arcLength(e)
		case *entity.LwPolyline:
			if e.Closed {
				result.Warnings = append(result.Warnings, "Skipped closed LWPOLYLINE")
				continue
			}
			length = polylineLength(e)
		default:
			continue
		}

		length = math.Round(length*10) / 10
		if length < minDXFLength || !model.ValidLength(length) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate segment (%.2f mm)", length))
			continue
		}

		layer := layerName(ent)
		material, ok := lib.Lookup(layer)
		if !ok {
			if !unknownLayers[layer] {
				unknownLayers[layer] = true
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Layer '%s' does not match any material, entities skipped", layer))
			}
			continue
		}

		result.Demands = append(result.Demands, model.NewDemand(project, material.ID, length))
	}

	if len(result.Demands) == 0 {
		result.Errors = append(result.Errors, "No cuts found in DXF file")
	}

	return result
}

func layerName(ent entity.Entity) string {
	if l := ent.Layer(); l != nil {
		return l.Name()
	}
	return "0"
}

// arcLength returns the length of a DXF ARC. Angles are stored in degrees
// and the arc runs counter-clockwise from Angle[0] to Angle[1].
func arcLength(a *entity.Arc) float64 {
	sweep := a.Angle[1] - a.Angle[0]
	for sweep <= 0 {
		sweep += 360
	}
	return a.Circle.Radius * sweep * math.Pi / 180
}

// polylineLength sums the segments of an open LWPOLYLINE. A non-zero bulge
// on a vertex makes the following segment a circular arc.
func polylineLength(lw *entity.LwPolyline) float64 {
	var total float64
	for i := 0; i+1 < len(lw.Vertices); i++ {
		p1, p2 := lw.Vertices[i], lw.Vertices[i+1]
		chord := math.Hypot(p2[0]-p1[0], p2[1]-p1[1])

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		total += bulgeSegmentLength(chord, bulge)
	}
	return total
}

// bulgeSegmentLength converts a chord and DXF bulge factor to a path length.
// The bulge is the tangent of 1/4 the included angle.
func bulgeSegmentLength(chord, bulge float64) float64 {
	if math.Abs(bulge) < 1e-9 || chord == 0 {
		return chord
	}
	theta := 4 * math.Atan(math.Abs(bulge))
	radius := chord / (2 * math.Sin(theta/2))
	return radius * theta
}
