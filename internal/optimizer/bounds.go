package optimizer

import "math"

// hardResourceCeiling is the absolute clamp applied to every axis regardless
// of starting resources or storage contributions.
const hardResourceCeiling = 100000

// resourceBounds holds, per axis, the upper clamp applied to resource
// balances before they enter a state key.
type resourceBounds struct {
	upper ResourceCost
}

// computeBounds derives the global per-axis upper clamp: starting resources
// plus capacity C times the maximum per-unit-size storage contribution among
// storage variants on that axis, capped by the hard ceiling.
func computeBounds(variants []Variant, capacity int, starting ResourceCost) resourceBounds {
	var maxRatio [4]float64
	for _, v := range variants {
		if !v.IsStorage() || v.Size <= 0 {
			continue
		}
		for _, axis := range AllResourceAxes() {
			ratio := float64(v.StorageResource.Get(axis)) / float64(v.Size)
			if ratio > maxRatio[axis] {
				maxRatio[axis] = ratio
			}
		}
	}

	upper := ResourceCost{}
	for _, axis := range AllResourceAxes() {
		bound := float64(starting.Get(axis)) + float64(capacity)*maxRatio[axis]
		rounded := int(math.Ceil(bound))
		if rounded > hardResourceCeiling {
			rounded = hardResourceCeiling
		}
		upper.Set(axis, rounded)
	}

	return resourceBounds{upper: upper}
}

// clamp caps each axis of r at upper. Negative values are returned
// unchanged; the caller is responsible for treating them as infeasible.
func (b resourceBounds) clamp(r ResourceCost) ResourceCost {
	clampAxis := func(v, upper int) int {
		if v < 0 {
			return v
		}
		if v > upper {
			return upper
		}
		return v
	}
	return ResourceCost{
		Money:  clampAxis(r.Money, b.upper.Money),
		Wood:   clampAxis(r.Wood, b.upper.Wood),
		Cement: clampAxis(r.Cement, b.upper.Cement),
		Steel:  clampAxis(r.Steel, b.upper.Steel),
	}
}

func negativeAxis(r ResourceCost) bool {
	return r.Money < 0 || r.Wood < 0 || r.Cement < 0 || r.Steel < 0
}
