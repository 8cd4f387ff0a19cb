package optimizer

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const anyPoolKey = "*"

// comboKey identifies one combination line: a (name, level) pair.
type comboKey struct {
	name  string
	level int
}

type poolEntry struct {
	names     []string
	remaining int
}

// simulate implements the Forward Simulator (SPEC_FULL.md §4.4): it replays
// the back-reconstructed placement sequence twice — once to inventory house
// pools and business/neutral capacity, once to stage residents' preference
// pools into employees' capacity — and derives the authoritative income and
// per-type efficiency, independent of any estimator score.
func simulate(variants []Variant, placementOrder []int, capacity int) *SingleBlockResult {
	pools := make(map[string]*poolEntry)
	var poolOrder []string

	var totalHouseCapacity int
	var houseBaseIncome float64
	houseNames := make(map[string]bool)

	businessCapTotal := make(map[string]int)
	businessCountByName := make(map[string]int)
	businessNames := make(map[string]bool)

	var neutralIncome float64
	neutralIsObjectStorage := make(map[string]bool)
	neutralNames := make(map[string]bool)

	combos := make(map[comboKey]*CombinationItem)
	var comboOrder []comboKey
	comboIncomeSum := make(map[comboKey]float64)
	comboScaledIncome := make(map[comboKey]float64)

	touch := func(v *Variant) *CombinationItem {
		k := comboKey{name: v.Name, level: v.Level}
		item, ok := combos[k]
		if !ok {
			item = &CombinationItem{
				Name:              v.Name,
				Level:             v.Level,
				Size:              v.Size,
				IncomePerBuilding: v.Income,
				Capacity:          v.Capacity,
				WorkerType:        v.WorkerKind.String(),
				Type:              v.Type,
			}
			if v.StorageKind == StorageKindResource {
				item.StorageCapacity = v.StorageResource
			}
			combos[k] = item
			comboOrder = append(comboOrder, k)
		}
		item.Count++
		return item
	}

	// Pass 1: inventory.
	for _, idx := range placementOrder {
		v := &variants[idx]
		touch(v)
		k := comboKey{name: v.Name, level: v.Level}

		switch v.WorkerKind {
		case WorkerResidents:
			totalHouseCapacity += v.Capacity
			houseBaseIncome += v.Income
			houseNames[v.Name] = true
			comboIncomeSum[k] += v.Income

			key := canonicalPoolKey(v.Prefers)
			p, ok := pools[key]
			if !ok {
				p = &poolEntry{names: v.Prefers}
				pools[key] = p
				poolOrder = append(poolOrder, key)
			}
			p.remaining += v.Capacity
		case WorkerEmployees:
			businessCapTotal[v.Name] += v.Capacity
			businessCountByName[v.Name]++
			businessNames[v.Name] = true
		default:
			neutralIncome += v.Income
			neutralIsObjectStorage[v.Name] = v.StorageKind == StorageKindResource
			neutralNames[v.Name] = true
			comboIncomeSum[k] += v.Income
		}
	}

	// Pass 2: staffing, in placement order.
	var totalAllocatedEmployees int
	var businessIncome float64
	businessAllocatedTotal := make(map[string]int)

	for _, idx := range placementOrder {
		v := &variants[idx]
		if v.WorkerKind != WorkerEmployees {
			continue
		}
		k := comboKey{name: v.Name, level: v.Level}

		allocated := 0
		cap := v.Capacity
		if cap > 0 {
			for _, poolKey := range poolOrder {
				if allocated >= cap {
					break
				}
				p := pools[poolKey]
				if p.remaining <= 0 {
					continue
				}
				if poolKey != anyPoolKey && !containsName(p.names, v.Name) {
					continue
				}
				draw := cap - allocated
				if p.remaining < draw {
					draw = p.remaining
				}
				p.remaining -= draw
				allocated += draw
			}
		}

		efficiency := 1.0
		if cap > 0 {
			efficiency = float64(allocated) / float64(cap)
		}
		count := businessCountByName[v.Name]
		dupPenalty := math.Max(0, 1-0.1*math.Max(0, float64(count-2)))

		contribution := v.Income * efficiency * dupPenalty
		businessIncome += contribution
		comboScaledIncome[k] += contribution
		businessAllocatedTotal[v.Name] += allocated
		totalAllocatedEmployees += allocated
	}

	houseEfficiency := 1.0
	if totalHouseCapacity > 0 {
		houseEfficiency = float64(totalAllocatedEmployees) / float64(totalHouseCapacity)
	}
	scaledHouseIncome := houseBaseIncome * houseEfficiency
	totalIncome := int64(math.Round(businessIncome + scaledHouseIncome + neutralIncome))

	// Finalize combination lines' total income/size.
	var totalSize int
	var totalStorage float64
	for _, k := range comboOrder {
		item := combos[k]
		item.TotalSize = item.Size * item.Count
		totalSize += item.TotalSize
		switch item.WorkerType {
		case WorkerResidents.String():
			item.TotalIncome = comboIncomeSum[k] * houseEfficiency
		case WorkerEmployees.String():
			item.TotalIncome = comboScaledIncome[k]
		default:
			item.TotalIncome = comboIncomeSum[k]
			if item.StorageCapacity != (ResourceCost{}) {
				totalStorage += float64(item.StorageCapacity.Money + item.StorageCapacity.Wood + item.StorageCapacity.Cement + item.StorageCapacity.Steel)
			}
		}
	}

	efficiencyByType := make(map[string]string)
	for name := range businessNames {
		capTotal := businessCapTotal[name]
		allocTotal := businessAllocatedTotal[name]
		count := businessCountByName[name]
		dupPenalty := math.Max(0, 1-0.1*math.Max(0, float64(count-2)))
		ratio := 0.0
		if capTotal > 0 {
			ratio = float64(allocTotal) / float64(capTotal)
		}
		eff := math.Max(0, ratio-dupPenalty)
		efficiencyByType[name] = formatPercent(eff)
	}
	houseEffPercent := formatPercent(houseEfficiency)
	for name := range houseNames {
		efficiencyByType[name] = houseEffPercent
	}
	for name := range neutralNames {
		if neutralIsObjectStorage[name] {
			efficiencyByType[name] = "N/A"
		} else {
			efficiencyByType[name] = "100%"
		}
	}

	combination := make([]CombinationItem, 0, len(comboOrder))
	for _, k := range comboOrder {
		combination = append(combination, *combos[k])
	}

	return &SingleBlockResult{
		Combination:             combination,
		TotalIncome:             totalIncome,
		AverageEfficiencyByType: efficiencyByType,
		TotalSize:               totalSize,
		TotalStorage:            totalStorage,
	}
}

func canonicalPoolKey(prefers []string) string {
	if len(prefers) == 0 {
		return anyPoolKey
	}
	sorted := append([]string(nil), prefers...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func formatPercent(ratio float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(ratio*100)))
}
