package optimizer

import (
	"errors"
	"testing"

	"github.com/blocksolve/blocksolve/internal/blockerr"
)

func TestExpandAccumulatesIncrementalIncome(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"business": {
			"Shop": BuildingDefinition{
				BaseIncome: ptrFloat(10),
				Upgrades: []UpgradeDefinition{
					{Level: 2, AdditionalIncome: ptrFloat(5)},
					{Level: 3, AdditionalIncome: ptrFloat(5)},
				},
			},
		},
	}}

	variants, _, err := Expand(catalog)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if len(variants) != 3 {
		t.Fatalf("got %d variants, want 3", len(variants))
	}

	want := map[int]float64{1: 10, 2: 15, 3: 20}
	for _, v := range variants {
		if v.Income != want[v.Level] {
			t.Errorf("level %d income = %v, want %v", v.Level, v.Income, want[v.Level])
		}
	}
}

func TestExpandAbsoluteIncomeOverridesAccumulation(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"business": {
			"Shop": BuildingDefinition{
				BaseIncome: ptrFloat(10),
				Upgrades: []UpgradeDefinition{
					{Level: 2, Income: ptrFloat(100)},
				},
			},
		},
	}}

	variants, _, err := Expand(catalog)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if variants[1].Income != 100 {
		t.Errorf("level 2 income = %v, want 100 (absolute override)", variants[1].Income)
	}
}

func TestExpandCostInheritance(t *testing.T) {
	baseCost := ResourceCost{Money: 50}
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"business": {
			"Shop": BuildingDefinition{
				BaseCost: &baseCost,
				Upgrades: []UpgradeDefinition{
					{Level: 2}, // no declared cost: must inherit
				},
			},
		},
	}}

	variants, _, err := Expand(catalog)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if variants[1].Costs != baseCost {
		t.Errorf("level 2 costs = %+v, want inherited %+v", variants[1].Costs, baseCost)
	}
}

func TestExpandExplicitZeroCostOverridesBase(t *testing.T) {
	baseCost := ResourceCost{Money: 50}
	zeroCost := ResourceCost{}
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"business": {
			"Shop": BuildingDefinition{
				BaseCost: &baseCost,
				Upgrades: []UpgradeDefinition{
					{Level: 2, Cost: &zeroCost}, // explicit all-zero cost: must not inherit base
				},
			},
		},
	}}

	variants, _, err := Expand(catalog)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if variants[1].Costs != zeroCost {
		t.Errorf("level 2 costs = %+v, want explicit zero override %+v", variants[1].Costs, zeroCost)
	}
}

func TestExpandNegativeSizeIsInvalidCatalog(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"misc": {"Bad": BuildingDefinition{Size: ptrInt(-3)}},
	}}

	_, _, err := Expand(catalog)
	if !errors.Is(err, blockerr.ErrInvalidCatalog) {
		t.Fatalf("err = %v, want ErrInvalidCatalog", err)
	}
}

func TestExpandNegativeIncomeIsInvalidCatalog(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"misc": {"Bad": BuildingDefinition{BaseIncome: ptrFloat(-1)}},
	}}

	_, _, err := Expand(catalog)
	if !errors.Is(err, blockerr.ErrInvalidCatalog) {
		t.Fatalf("err = %v, want ErrInvalidCatalog", err)
	}
}

func TestExpandBusinessAndMandatoryIndexesAreSortedAndDeduped(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"business": {
			"Zeta":  BuildingDefinition{Employees: ptrInt(1)},
			"Alpha": BuildingDefinition{Employees: ptrInt(1)},
		},
		"misc": {
			"Zulu":  BuildingDefinition{Mandatory: true},
			"Alpha": BuildingDefinition{Mandatory: true},
		},
	}}

	_, ix, err := Expand(catalog)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	wantBusiness := []string{"Alpha", "Zeta"}
	if len(ix.BusinessNames) != len(wantBusiness) || ix.BusinessNames[0] != wantBusiness[0] || ix.BusinessNames[1] != wantBusiness[1] {
		t.Errorf("BusinessNames = %v, want %v", ix.BusinessNames, wantBusiness)
	}
	wantMandatory := []string{"Alpha", "Zulu"}
	if len(ix.MandatoryNames) != len(wantMandatory) || ix.MandatoryNames[0] != wantMandatory[0] || ix.MandatoryNames[1] != wantMandatory[1] {
		t.Errorf("MandatoryNames = %v, want %v", ix.MandatoryNames, wantMandatory)
	}
	if ix.RequiredMask() != 0b11 {
		t.Errorf("RequiredMask = %b, want 11", ix.RequiredMask())
	}
}

func TestExpandDeterministicAcrossRuns(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"business": {
			"Zeta":  BuildingDefinition{Employees: ptrInt(1)},
			"Alpha": BuildingDefinition{Employees: ptrInt(1)},
			"Mid":   BuildingDefinition{Employees: ptrInt(1)},
		},
	}}

	first, firstIx, err := Expand(catalog)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	for i := 0; i < 20; i++ {
		next, nextIx, err := Expand(catalog)
		if err != nil {
			t.Fatalf("Expand returned error: %v", err)
		}
		if len(next) != len(first) {
			t.Fatalf("variant count differs across runs: %d vs %d", len(next), len(first))
		}
		for j := range next {
			if next[j].Name != first[j].Name {
				t.Fatalf("variant order differs across runs at index %d: %q vs %q", j, next[j].Name, first[j].Name)
			}
		}
		for j := range nextIx.BusinessNames {
			if nextIx.BusinessNames[j] != firstIx.BusinessNames[j] {
				t.Fatalf("business index order differs across runs")
			}
		}
	}
}
