package model

import "testing"

func TestAggregateDemandsSplitsByProject(t *testing.T) {
	var demands []Demand
	demands = append(demands, NewDemands("X", "M", 1000, 3)...)
	demands = append(demands, NewDemand("Y", "M", 1000))

	groups := AggregateDemands(demands)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Project != "X" || groups[0].Count != 3 {
		t.Errorf("unexpected first group %+v", groups[0])
	}
	if groups[1].Project != "Y" || groups[1].Count != 1 {
		t.Errorf("unexpected second group %+v", groups[1])
	}
	if len(groups[0].IDs) != 3 || groups[0].IDs[0] != demands[0].ID {
		t.Errorf("group IDs should follow input order: %v", groups[0].IDs)
	}
}

func TestAggregateDemandsPreservesFirstSeenOrder(t *testing.T) {
	demands := []Demand{
		{ID: "1", Project: "P", MaterialID: "b", Length: 500},
		{ID: "2", Project: "P", MaterialID: "a", Length: 900},
		{ID: "3", Project: "P", MaterialID: "b", Length: 500},
		{ID: "4", Project: "P", MaterialID: "a", Length: 100},
	}

	groups := AggregateDemands(demands)

	want := []DemandKey{
		{MaterialID: "b", Project: "P", Length: 500},
		{MaterialID: "a", Project: "P", Length: 900},
		{MaterialID: "a", Project: "P", Length: 100},
	}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i, w := range want {
		if groups[i].DemandKey != w {
			t.Errorf("group %d: expected %+v, got %+v", i, w, groups[i].DemandKey)
		}
	}
	if groups[0].Count != 2 || groups[0].IDs[1] != "3" {
		t.Errorf("unexpected first group %+v", groups[0])
	}
}

func TestAggregateDemandsEmpty(t *testing.T) {
	groups := AggregateDemands(nil)
	if groups == nil || len(groups) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", groups)
	}
}
