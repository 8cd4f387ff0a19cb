package optimizer

import (
	"errors"
	"testing"

	"github.com/blocksolve/blocksolve/internal/blockerr"
)

func mandatoryReservationCatalog() Catalog {
	return Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"misc": {
			"M1": BuildingDefinition{Size: ptrInt(2), BaseIncome: ptrFloat(0), Mandatory: true},
		},
		"business": {
			"B1": BuildingDefinition{Employees: ptrInt(2), BaseIncome: ptrFloat(4), Size: ptrInt(1)},
		},
	}}
}

func TestOptimizeMultipleBlocksReservesLastBlock(t *testing.T) {
	result, err := OptimizeMultipleBlocks(mandatoryReservationCatalog(), 3, 4, Options{})
	if err != nil {
		t.Fatalf("OptimizeMultipleBlocks returned error: %v", err)
	}
	if len(result.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(result.Blocks))
	}

	for _, block := range result.Blocks[:2] {
		for _, item := range block.Combination {
			if item.Name == "M1" {
				t.Errorf("block %d contains reserved mandatory item M1, want it only in the last block", block.BlockNumber)
			}
		}
	}

	last := result.Blocks[2]
	found := false
	for _, item := range last.Combination {
		if item.Name == "M1" {
			found = true
			if item.Count != 1 {
				t.Errorf("M1 count = %d, want 1", item.Count)
			}
		}
	}
	if !found {
		t.Errorf("last block does not contain reserved mandatory item M1: %+v", last.Combination)
	}

	var sum int64
	for _, block := range result.Blocks {
		sum += block.TotalIncome
	}
	if result.AggregateTotalIncome != sum {
		t.Errorf("aggregateTotalIncome = %d, want sum of blocks %d", result.AggregateTotalIncome, sum)
	}
}

func TestOptimizeMultipleBlocksSingleDelegatesToSingleBlock(t *testing.T) {
	catalog := houseAndBusinessCatalog(nil)

	single, err := Optimize(catalog, 4, Options{})
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	multi, err := OptimizeMultipleBlocks(catalog, 1, 4, Options{})
	if err != nil {
		t.Fatalf("OptimizeMultipleBlocks returned error: %v", err)
	}

	if len(multi.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(multi.Blocks))
	}
	if multi.Blocks[0].TotalIncome != single.TotalIncome {
		t.Errorf("N=1 income = %d, want %d to match single-block", multi.Blocks[0].TotalIncome, single.TotalIncome)
	}
	if multi.AggregateTotalIncome != single.TotalIncome {
		t.Errorf("aggregateTotalIncome = %d, want %d", multi.AggregateTotalIncome, single.TotalIncome)
	}
}

func TestOptimizeMultipleBlocksRejectsInvalidN(t *testing.T) {
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{}}

	_, err := OptimizeMultipleBlocks(catalog, 0, 10, Options{})
	if !errors.Is(err, blockerr.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestOptimizeMultipleBlocksReservedInjectionIgnoresRemainingCapacity(t *testing.T) {
	// The reserved item's size can exceed what's left of the last block's
	// budget; injection does not re-check terminal resources or size, per
	// the core spec's required-for-parity behavior.
	catalog := Catalog{BuildingTypes: map[string]map[string]BuildingDefinition{
		"misc": {
			"M1": BuildingDefinition{Size: ptrInt(5), BaseIncome: ptrFloat(0), Mandatory: true},
		},
	}}

	result, err := OptimizeMultipleBlocks(catalog, 2, 1, Options{})
	if err != nil {
		t.Fatalf("OptimizeMultipleBlocks returned error: %v", err)
	}
	last := result.Blocks[1]
	if last.TotalSize < 5 {
		t.Errorf("last block totalSize = %d, want at least the reserved item's size 5", last.TotalSize)
	}
}
