package optimizer

import (
	"fmt"
	"math"
	"sort"

	"github.com/blocksolve/blocksolve/internal/blockerr"
)

// BlockResult is one block's entry in a MultiBlockResult.
type BlockResult struct {
	BlockNumber             int               `json:"blockNumber"`
	Combination             []CombinationItem `json:"combination"`
	TotalIncome             int64             `json:"totalIncome"`
	AverageEfficiencyByType map[string]string `json:"averageEfficiencyByType"`
	TotalSize               int               `json:"totalSize"`
	BlockStorage            ResourceCost      `json:"blockStorage"`
}

// MultiBlockResult is the result of OptimizeMultipleBlocks.
type MultiBlockResult struct {
	Blocks                []BlockResult `json:"blocks"`
	AggregateTotalIncome  int64         `json:"aggregateTotalIncome"`
	AggregateTotalStorage ResourceCost  `json:"aggregateTotalStorage"`
	BaseStorage           ResourceCost  `json:"baseStorage"`
	DebugInfo             *DebugInfo    `json:"debugInfo,omitempty"`
}

// OptimizeMultipleBlocks sequences N single-block solves, carrying storage
// contributions forward and reserving mandatory misc items for the last
// block. See SPEC_FULL.md §4.5.
func OptimizeMultipleBlocks(catalog Catalog, n int, capacity int, opts Options) (*MultiBlockResult, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: N must be >= 1, got %d", blockerr.ErrInvalidArgument, n)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must be >= 0, got %d", blockerr.ErrInvalidArgument, capacity)
	}

	if n == 1 {
		result, err := Optimize(catalog, capacity, opts)
		if err != nil {
			return nil, err
		}
		blockStorage := storageContribution(result.Combination)
		return &MultiBlockResult{
			Blocks: []BlockResult{{
				BlockNumber:             1,
				Combination:             result.Combination,
				TotalIncome:             result.TotalIncome,
				AverageEfficiencyByType: result.AverageEfficiencyByType,
				TotalSize:               result.TotalSize,
				BlockStorage:            blockStorage,
			}},
			AggregateTotalIncome:  result.TotalIncome,
			AggregateTotalStorage: opts.StartingResources.Add(blockStorage),
			BaseStorage:           opts.StartingResources,
			DebugInfo:             result.DebugInfo,
		}, nil
	}

	variantsAll, ix, err := Expand(catalog)
	if err != nil {
		return nil, err
	}

	reserved := buildReservationSet(variantsAll)
	var reservedSize int
	var reservedIncome float64
	for _, v := range reserved {
		reservedSize += v.Size
		reservedIncome += v.Income
	}

	strippedVariants, strippedIx := stripMandatory(variantsAll, ix)

	blocks := make([]BlockResult, 0, n)
	cumulativeStorage := opts.StartingResources
	var aggregateIncome int64

	for blockNum := 1; blockNum <= n; blockNum++ {
		blockOpts := opts
		blockOpts.StartingResources = cumulativeStorage

		blockCapacity := capacity
		if blockNum == n {
			blockCapacity = capacity - reservedSize
			if blockCapacity < 0 {
				blockCapacity = 0
			}
		}

		result, err := solveVariants(strippedVariants, strippedIx, blockCapacity, blockOpts)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d had no feasible completion", blockerr.ErrNoSolution, blockNum)
		}

		if blockNum == n {
			injectReserved(result, reserved)
			result.TotalIncome += int64(math.Round(reservedIncome))
			result.TotalSize += reservedSize
		}

		blockStorage := storageContribution(result.Combination)
		blocks = append(blocks, BlockResult{
			BlockNumber:             blockNum,
			Combination:             result.Combination,
			TotalIncome:             result.TotalIncome,
			AverageEfficiencyByType: result.AverageEfficiencyByType,
			TotalSize:               result.TotalSize,
			BlockStorage:            blockStorage,
		})

		aggregateIncome += result.TotalIncome
		cumulativeStorage = cumulativeStorage.Add(blockStorage)
	}

	return &MultiBlockResult{
		Blocks:                blocks,
		AggregateTotalIncome:  aggregateIncome,
		AggregateTotalStorage: cumulativeStorage,
		BaseStorage:           opts.StartingResources,
	}, nil
}

// buildReservationSet picks, per distinct mandatory misc name, the
// highest-level mandatory variant — the one reserved for the last block.
func buildReservationSet(variants []Variant) []Variant {
	best := make(map[string]Variant)
	for _, v := range variants {
		if v.Type != miscType || !v.Mandatory {
			continue
		}
		if cur, ok := best[v.Name]; !ok || v.Level > cur.Level {
			best[v.Name] = v
		}
	}

	names := make([]string, 0, len(best))
	for name := range best {
		names = append(names, name)
	}
	sort.Strings(names)

	reserved := make([]Variant, 0, len(names))
	for _, name := range names {
		reserved = append(reserved, best[name])
	}
	return reserved
}

// stripMandatory returns a copy of variants with every Mandatory flag
// cleared, plus a matching Index with an empty mandatory mask — a
// flag-override view rather than a deep catalog clone, per the core spec's
// design notes. Business identity (names, positions) is shared with ix since
// stripping never touches it.
func stripMandatory(variants []Variant, ix *Index) ([]Variant, *Index) {
	stripped := make([]Variant, len(variants))
	copy(stripped, variants)
	for i := range stripped {
		stripped[i].Mandatory = false
	}

	strippedIx := &Index{
		BusinessNames: ix.BusinessNames,
		businessPos:   ix.businessPos,
	}
	return stripped, strippedIx
}

// injectReserved appends each reserved variant to result's combination as a
// single-count line, defaulting its efficiency entry when the solve never
// placed a variant under that name.
func injectReserved(result *SingleBlockResult, reserved []Variant) {
	for _, v := range reserved {
		item := CombinationItem{
			Name:              v.Name,
			Level:             v.Level,
			Count:             1,
			Size:              v.Size,
			IncomePerBuilding: v.Income,
			Capacity:          v.Capacity,
			WorkerType:        v.WorkerKind.String(),
			Type:              v.Type,
			TotalIncome:       v.Income,
			TotalSize:         v.Size,
		}
		if v.StorageKind == StorageKindResource {
			item.StorageCapacity = v.StorageResource
		}
		result.Combination = append(result.Combination, item)

		if _, ok := result.AverageEfficiencyByType[v.Name]; !ok {
			if v.WorkerKind != WorkerNone {
				result.AverageEfficiencyByType[v.Name] = "100%"
			} else {
				result.AverageEfficiencyByType[v.Name] = "N/A"
			}
		}
	}
}

// storageContribution sums a combination's resource-shaped storage
// contributions, scaled by each line's count.
func storageContribution(combination []CombinationItem) ResourceCost {
	var total ResourceCost
	for _, item := range combination {
		if item.StorageCapacity == (ResourceCost{}) {
			continue
		}
		total = total.Add(ResourceCost{
			Money:  item.StorageCapacity.Money * item.Count,
			Wood:   item.StorageCapacity.Wood * item.Count,
			Cement: item.StorageCapacity.Cement * item.Count,
			Steel:  item.StorageCapacity.Steel * item.Count,
		})
	}
	return total
}
