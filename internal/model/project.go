package model

// Project ties materials, demands and settings together for save/load.
type Project struct {
	Name      string      `json:"name"`
	Materials []Material  `json:"materials"`
	Demands   []Demand    `json:"demands"`
	Settings  CutSettings `json:"settings"`
}

func NewProject() Project {
	return Project{
		Name:      "Untitled",
		Materials: []Material{},
		Demands:   []Demand{},
		Settings:  DefaultSettings(),
	}
}

// Material looks up a material by ID.
func (p Project) Material(id string) (Material, bool) {
	for _, m := range p.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

func (p *Project) AddMaterial(m Material) {
	p.Materials = append(p.Materials, m)
}

// RemoveMaterial deletes a material and every demand that references it.
// It reports whether the material existed.
func (p *Project) RemoveMaterial(id string) bool {
	found := false
	materials := p.Materials[:0]
	for _, m := range p.Materials {
		if m.ID == id {
			found = true
			continue
		}
		materials = append(materials, m)
	}
	p.Materials = materials
	if !found {
		return false
	}

	demands := p.Demands[:0]
	for _, d := range p.Demands {
		if d.MaterialID != id {
			demands = append(demands, d)
		}
	}
	p.Demands = demands
	return true
}

func (p *Project) AddDemands(demands ...Demand) {
	p.Demands = append(p.Demands, demands...)
}

// RemoveDemands deletes the demands with the given IDs and returns how
// many were removed.
func (p *Project) RemoveDemands(ids ...string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := p.Demands[:0]
	removed := 0
	for _, d := range p.Demands {
		if drop[d.ID] {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	p.Demands = kept
	return removed
}

func (p *Project) ClearDemands() {
	p.Demands = []Demand{}
}
