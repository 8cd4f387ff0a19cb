package optimizer

import (
	"math"
	"sort"
)

// maxResidentsBound caps the residual-residents key component so it cannot
// grow without bound on catalogs with very large house capacities; it plays
// the same saturating role as hardResourceCeiling does for resource axes.
const maxResidentsBound = 100000

type estimateItem struct {
	business          int
	incomePerWorker   float64
	effectiveStaffing int
}

// estimate implements the Heuristic Estimator (SPEC_FULL.md §4.2): given the
// post-transition aggregate node, the size used before placing the variant,
// the variant's size, and the block capacity, it returns the scalar score and the
// total allocation estimate (used to derive the residual-residents key
// component).
func estimate(n *Node, wBefore, placedSize, capacity int) (score int64, totalAllocated int) {
	items := make([]estimateItem, 0, len(n.Counts))
	for b := range n.Counts {
		if n.BusinessCapacity[b] <= 0 || n.PreferenceCapacity[b] <= 0 {
			continue
		}
		dupPenalty := math.Max(0, float64(n.Counts[b]-2)) * 0.1
		incomePerWorker := (n.BusinessIncomeBase[b] / float64(n.BusinessCapacity[b])) * math.Max(0, 1-dupPenalty)
		effectiveStaffing := n.BusinessCapacity[b]
		if n.PreferenceCapacity[b] < effectiveStaffing {
			effectiveStaffing = n.PreferenceCapacity[b]
		}
		items = append(items, estimateItem{business: b, incomePerWorker: incomePerWorker, effectiveStaffing: effectiveStaffing})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].incomePerWorker > items[j].incomePerWorker
	})

	used := make([]int, len(n.Counts))
	remainingResidents := n.TotalHouseCapacity
	var businessIncomeEstimate float64

	for _, item := range items {
		draw := item.effectiveStaffing
		if remainingResidents < draw {
			draw = remainingResidents
		}
		if draw < 0 {
			draw = 0
		}
		used[item.business] = draw
		remainingResidents -= draw
		businessIncomeEstimate += item.incomePerWorker * float64(draw)
		totalAllocated += draw
	}

	var totalUnstaffed int
	var incomeSum, capacitySum float64
	for b := range n.Counts {
		unstaffed := n.BusinessCapacity[b] - used[b]
		if unstaffed > 0 {
			totalUnstaffed += unstaffed
		}
		incomeSum += n.BusinessIncomeBase[b]
		capacitySum += float64(n.BusinessCapacity[b])
	}

	avgIncomePerWorker := 15.0
	if capacitySum > 0 {
		avgIncomePerWorker = incomeSum / capacitySum
	}
	penalty := float64(totalUnstaffed) * avgIncomePerWorker

	houseEfficiency := 1.0
	if n.TotalHouseCapacity > 0 {
		houseEfficiency = float64(totalAllocated) / float64(n.TotalHouseCapacity)
	}
	scaledHouseIncome := n.HouseBaseIncome * houseEfficiency

	spaceBonus := float64(capacity-(wBefore+placedSize)) * 0.1

	total := businessIncomeEstimate + scaledHouseIncome + n.IncomeNeutral - penalty + spaceBonus
	score = int64(math.Round(total))

	return score, totalAllocated
}

func clampResidents(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxResidentsBound {
		return maxResidentsBound
	}
	return v
}
