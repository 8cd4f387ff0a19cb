package optimizer

import (
	"errors"
	"testing"

	"github.com/blocksolve/blocksolve/internal/blockerr"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func TestOptimizeEmptyCatalog(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{}}

	result, err := Optimize(catalog, 16, Options{})
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if len(result.Combination) != 0 {
		t.Errorf("combination = %v, want empty", result.Combination)
	}
	if result.TotalIncome != 0 {
		t.Errorf("totalIncome = %d, want 0", result.TotalIncome)
	}
}

func TestOptimizeSingleNeutralVariant(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"misc": {
			"Shed": BuildingDefinition{BaseIncome: ptrFloat(5), Size: ptrInt(1)},
		},
	}}

	result, err := Optimize(catalog, 3, Options{})
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if len(result.Combination) != 1 {
		t.Fatalf("combination has %d lines, want 1", len(result.Combination))
	}
	item := result.Combination[0]
	if item.Count != 3 {
		t.Errorf("count = %d, want 3", item.Count)
	}
	if result.TotalIncome != 15 {
		t.Errorf("totalIncome = %d, want 15", result.TotalIncome)
	}
	if got := result.AverageEfficiencyByType["Shed"]; got != "100%" {
		t.Errorf("efficiency[Shed] = %q, want 100%%", got)
	}
}

func houseAndBusinessCatalog(prefers []string) Catalog {
	house := BuildingDefinition{PeopleCapacity: ptrInt(4), BaseIncome: ptrFloat(2), Size: ptrInt(2)}
	if len(prefers) > 0 {
		house.Prefers = prefers
	}
	return Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"house":    {"H1": house},
		"business": {"B1": BuildingDefinition{Employees: ptrInt(4), BaseIncome: ptrFloat(10), Size: ptrInt(2)}},
	}}
}

func TestOptimizeHouseAndBusinessNoPrefers(t *testing.T) {
	result, err := Optimize(houseAndBusinessCatalog(nil), 4, Options{})
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if len(result.Combination) != 2 {
		t.Fatalf("combination has %d lines, want 2: %+v", len(result.Combination), result.Combination)
	}
	if result.TotalIncome != 12 {
		t.Errorf("totalIncome = %d, want 12", result.TotalIncome)
	}
}

func TestOptimizeHousePrefersExcludesBusiness(t *testing.T) {
	result, err := Optimize(houseAndBusinessCatalog([]string{"OtherBiz"}), 4, Options{})
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	for _, item := range result.Combination {
		if item.Name == "B1" {
			t.Fatalf("business B1 should have been filtered out by staffing prefeasibility, got %+v", result.Combination)
		}
	}
	if result.TotalIncome != 2 {
		t.Errorf("totalIncome = %d, want 2", result.TotalIncome)
	}
}

func TestOptimizeUnreachableMandatoryMaskReturnsNoSolution(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"misc": {
			"M1": BuildingDefinition{Size: ptrInt(2), BaseIncome: ptrFloat(0), Mandatory: true},
			"M2": BuildingDefinition{Size: ptrInt(2), BaseIncome: ptrFloat(0), Mandatory: true},
		},
	}}

	_, err := Optimize(catalog, 3, Options{})
	if !errors.Is(err, blockerr.ErrNoSolution) {
		t.Fatalf("err = %v, want ErrNoSolution", err)
	}
}

func TestOptimizeNegativeSizeIsInvalidCatalog(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"misc": {"Bad": BuildingDefinition{Size: ptrInt(-1)}},
	}}

	_, err := Optimize(catalog, 10, Options{})
	if !errors.Is(err, blockerr.ErrInvalidCatalog) {
		t.Fatalf("err = %v, want ErrInvalidCatalog", err)
	}
}

func TestOptimizeBeamWidthMustBePositive(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{}}

	_, err := Optimize(catalog, 10, Options{BeamWidth: -1})
	if !errors.Is(err, blockerr.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestOptimizeDeterministic(t *testing.T) {
	catalog := houseAndBusinessCatalog(nil)

	first, err := Optimize(catalog, 8, Options{})
	if err != nil {
		t.Fatalf("first run error: %v", err)
	}
	second, err := Optimize(catalog, 8, Options{})
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}

	if first.TotalIncome != second.TotalIncome {
		t.Errorf("totalIncome differs across runs: %d vs %d", first.TotalIncome, second.TotalIncome)
	}
	if len(first.Combination) != len(second.Combination) {
		t.Fatalf("combination length differs across runs: %d vs %d", len(first.Combination), len(second.Combination))
	}
}

func TestOptimizeZeroCapacity(t *testing.T) {
	catalog := houseAndBusinessCatalog(nil)

	result, err := Optimize(catalog, 0, Options{})
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if len(result.Combination) != 0 || result.TotalIncome != 0 {
		t.Errorf("C=0 result = %+v, want empty combination and zero income", result)
	}
}
