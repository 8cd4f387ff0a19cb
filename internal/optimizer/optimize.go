package optimizer

import (
	"fmt"
	"sort"

	"github.com/blocksolve/blocksolve/internal/blockerr"
)

// Options configures a single-block solve. See SPEC_FULL.md §6.
type Options struct {
	BeamWidth         int
	Debug             bool
	StartingResources ResourceCost
}

// DefaultOptions returns the spec-mandated defaults: beam width 400 and
// starting resources {money:1000, wood:100, cement:100, steel:100}.
func DefaultOptions() Options {
	return Options{
		BeamWidth:         400,
		StartingResources: ResourceCost{Money: 1000, Wood: 100, Cement: 100, Steel: 100},
	}
}

func (o Options) withDefaults() Options {
	if o.BeamWidth == 0 {
		o.BeamWidth = 400
	}
	if o.StartingResources == (ResourceCost{}) {
		o.StartingResources = DefaultOptions().StartingResources
	}
	return o
}

func (o Options) validate() error {
	if o.BeamWidth < 1 {
		return fmt.Errorf("%w: beamWidth must be >= 1, got %d", blockerr.ErrInvalidArgument, o.BeamWidth)
	}
	return nil
}

// CombinationItem is one line of a result's combination: a (name, level)
// placed count≥1 times.
type CombinationItem struct {
	Name             string       `json:"name"`
	Level            int          `json:"level"`
	Count            int          `json:"count"`
	Size             int          `json:"size"`
	IncomePerBuilding float64     `json:"incomePerBuilding"`
	Capacity         int          `json:"capacity"`
	StorageCapacity  ResourceCost `json:"storageCapacity,omitempty"`
	WorkerType       string       `json:"workerType"`
	Type             string       `json:"type,omitempty"`
	TotalIncome      float64      `json:"totalIncome"`
	TotalSize        int          `json:"totalSize"`
}

// SingleBlockResult is the result of one single-block solve.
type SingleBlockResult struct {
	Combination            []CombinationItem `json:"combination"`
	TotalIncome            int64             `json:"totalIncome"`
	AverageEfficiencyByType map[string]string `json:"averageEfficiencyByType"`
	TotalSize              int               `json:"totalSize"`
	TotalStorage           float64           `json:"totalStorage"`
	DebugInfo              *DebugInfo        `json:"debugInfo,omitempty"`
}

// Optimize runs the single-block beam-pruned DP search and the forward
// simulator over its reconstructed placement sequence. See SPEC_FULL.md §4.2.
func Optimize(catalog Catalog, capacity int, opts Options) (*SingleBlockResult, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must be >= 0, got %d", blockerr.ErrInvalidArgument, capacity)
	}

	variants, ix, err := Expand(catalog)
	if err != nil {
		return nil, err
	}

	return solveVariants(variants, ix, capacity, opts)
}

// solveVariants runs the search and forward simulation over an already
// expanded variant list. Factored out so the Multi-Block Driver can reuse it
// against a mandatory-flag-stripped variant/index pair without re-expanding
// the catalog from scratch.
func solveVariants(variants []Variant, ix *Index, capacity int, opts Options) (*SingleBlockResult, error) {
	indices, debugInfo, err := search(variants, ix, capacity, opts)
	if err != nil {
		return nil, err
	}

	result := simulate(variants, indices, capacity)
	result.DebugInfo = debugInfo
	return result, nil
}

// search runs the beam-pruned DP and returns the back-reconstructed
// placement order as indices into variants.
func search(variants []Variant, ix *Index, capacity int, opts Options) ([]int, *DebugInfo, error) {
	bounds := computeBounds(variants, capacity, opts.StartingResources)
	table := newStateTable(capacity)
	debug := newDebugRecorder(opts.Debug, capacity)

	root := newRootNode(ix.NumBusinesses(), bounds.clamp(opts.StartingResources))
	table.at(0).insert(root)

	requiredMask := ix.RequiredMask()

	for w := 0; w <= capacity; w++ {
		sourceStates := sortedBucketEntries(table.at(w))
		touched := make(map[int]bool)

		for _, entry := range sourceStates {
			node := entry.node
			for vi := range variants {
				v := &variants[vi]
				successor, wNext, ok := transition(node, w, v, vi, ix, bounds, capacity)
				if !ok {
					continue
				}
				if table.at(wNext).insert(successor) {
					touched[wNext] = true
				}
			}
		}

		for _, wNext := range sortedIntKeys(touched) {
			pruneBucket(table.at(wNext), opts.BeamWidth, requiredMask)
		}

		debug.recordBucket(w, len(table.at(w)))
	}

	w, key, ok := selectBest(table, requiredMask)
	if !ok {
		return nil, debug.finish(), blockerr.ErrNoSolution
	}

	return reconstruct(table, w, key), debug.finish(), nil
}

type bucketEntry struct {
	key  Key
	node *Node
}

// sortedBucketEntries snapshots a bucket in deterministic key order so that
// the solve's outcome never depends on Go's randomized map iteration.
func sortedBucketEntries(b bucket) []bucketEntry {
	entries := make([]bucketEntry, 0, len(b))
	for k, n := range b {
		entries = append(entries, bucketEntry{key: k, node: n})
	}
	sort.Slice(entries, func(i, j int) bool { return keyLess(entries[i].key, entries[j].key) })
	return entries
}

func keyLess(a, b Key) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	if a.Money != b.Money {
		return a.Money < b.Money
	}
	if a.Wood != b.Wood {
		return a.Wood < b.Wood
	}
	if a.Cement != b.Cement {
		return a.Cement < b.Cement
	}
	if a.Steel != b.Steel {
		return a.Steel < b.Steel
	}
	if a.Mask != b.Mask {
		return a.Mask < b.Mask
	}
	return a.countsPacked < b.countsPacked
}

func sortedIntKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// selectBest implements the Selection rule (SPEC_FULL.md §4.2): among all
// (w, key) pairs, pick the maximum score, restricted to mask==requiredMask
// when requiredMask > 0.
func selectBest(table *stateTable, requiredMask uint64) (w int, key Key, ok bool) {
	var bestScore int64
	found := false

	for size, b := range table.buckets {
		for k, n := range b {
			if requiredMask > 0 && n.Mask != requiredMask {
				continue
			}
			if !found || n.Score > bestScore || (n.Score == bestScore && (size < w || (size == w && keyLess(k, key)))) {
				bestScore = n.Score
				w, key = size, k
				found = true
			}
		}
	}

	return w, key, found
}
