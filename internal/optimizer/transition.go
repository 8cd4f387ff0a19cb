package optimizer

// transition attempts to place variant v (at its index variantIndex in the
// flattened variant list) onto state n at size w. It returns the successor
// node and its destination size, or ok=false if any feasibility filter
// rejects the move. See SPEC_FULL.md §4.2.
func transition(n *Node, w int, v *Variant, variantIndex int, ix *Index, bounds resourceBounds, capacity int) (successor *Node, wNext int, ok bool) {
	wNext = w + v.Size
	if wNext > capacity {
		return nil, 0, false
	}

	if !v.IsStorage() && !n.Resources.GreaterEqual(v.Costs) {
		return nil, 0, false
	}

	if v.WorkerKind == WorkerEmployees && !v.Mandatory {
		bi := ix.BusinessIndex(v.Name)
		if bi < 0 {
			return nil, 0, false
		}
		businessCapacityAfter := sumBusinessCapacity(n.BusinessCapacity) + v.Capacity
		houseCapacity := n.TotalHouseCapacity
		if businessCapacityAfter > 0 && float64(houseCapacity)/float64(businessCapacityAfter) < 0.9 {
			return nil, 0, false
		}
		if n.PreferenceCapacity[bi] < n.BusinessCapacity[bi]+v.Capacity {
			return nil, 0, false
		}
	}

	next := n.clone()

	if v.Type == miscType && v.Mandatory {
		if bit := ix.MandatoryBit(v.Name); bit >= 0 {
			next.Mask |= uint64(1) << uint(bit)
		}
	}

	resources := n.Resources
	if !v.IsStorage() {
		resources = resources.Sub(v.Costs)
	} else {
		resources = resources.Add(v.StorageResource)
	}
	if negativeAxis(resources) {
		return nil, 0, false
	}
	next.Resources = bounds.clamp(resources)

	switch v.WorkerKind {
	case WorkerEmployees:
		bi := ix.BusinessIndex(v.Name)
		if bi >= 0 {
			next.Counts[bi]++
			next.BusinessIncomeBase[bi] += v.Income
			next.BusinessCapacity[bi] += v.Capacity
		}
	case WorkerResidents:
		next.HouseBaseIncome += v.Income
		next.TotalHouseCapacity += v.Capacity
		for b, name := range ix.BusinessNames {
			if v.PrefersAny(name) {
				next.PreferenceCapacity[b] += v.Capacity
			}
		}
	default:
		next.IncomeNeutral += v.Income
		if v.StorageKind == StorageKindScalar {
			next.TotalStorage += v.StorageScalar
		}
	}

	score, allocEstimate := estimate(next, w, v.Size, capacity)
	next.Score = score
	next.ResidualResidents = clampResidents(next.TotalHouseCapacity - allocEstimate)

	next.HasPrev = true
	next.PrevSize = w
	next.PrevKey = n.key()
	next.VariantIndex = variantIndex

	return next, wNext, true
}

func sumBusinessCapacity(capacities []int) int {
	sum := 0
	for _, c := range capacities {
		sum += c
	}
	return sum
}
