package model

// DemandKey identifies demands that are interchangeable for reporting.
type DemandKey struct {
	MaterialID string  `json:"material_id"`
	Project    string  `json:"project"`
	Length     float64 `json:"length"`
}

// AggregatedDemand is a group of demands sharing the same DemandKey.
type AggregatedDemand struct {
	DemandKey
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}

// AggregateDemands collapses demands with the same material, project and
// length into counted groups. Groups are returned in the order their key
// was first seen.
func AggregateDemands(demands []Demand) []AggregatedDemand {
	groups := []AggregatedDemand{}
	index := make(map[DemandKey]int)

	for _, d := range demands {
		key := DemandKey{MaterialID: d.MaterialID, Project: d.Project, Length: d.Length}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, AggregatedDemand{DemandKey: key})
		}
		groups[i].Count++
		groups[i].IDs = append(groups[i].IDs, d.ID)
	}
	return groups
}
