package optimizer

import (
	"fmt"
	"sort"

	"github.com/blocksolve/blocksolve/internal/blockerr"
)

const miscType = "misc"

// Expand converts a catalog into a flat, immutable list of variants plus the
// business/mandatory indexes derived from it. See SPEC_FULL.md §4.1.
//
// Iteration order over the catalog's maps is sorted by type name then
// building name so that expansion — and therefore the business/mandatory
// index assignment — is deterministic regardless of Go's randomized map
// iteration.
func Expand(catalog Catalog) ([]Variant, *Index, error) {
	typeNames := sortedKeys(catalog.BuildingTypes)

	var variants []Variant
	businessSeen := make(map[string]bool)
	var businessNames []string
	mandatorySeen := make(map[string]bool)
	var mandatoryNames []string

	for _, typeName := range typeNames {
		buildings := catalog.BuildingTypes[typeName]
		buildingNames := sortedKeys(buildings)
		for _, buildingName := range buildingNames {
			def := buildings[buildingName]
			expanded, err := expandBuilding(typeName, buildingName, def)
			if err != nil {
				return nil, nil, err
			}
			for _, v := range expanded {
				if v.WorkerKind == WorkerEmployees && !businessSeen[v.Name] {
					businessSeen[v.Name] = true
					businessNames = append(businessNames, v.Name)
				}
				if v.Type == miscType && v.Mandatory && !mandatorySeen[v.Name] {
					mandatorySeen[v.Name] = true
					mandatoryNames = append(mandatoryNames, v.Name)
				}
			}
			variants = append(variants, expanded...)
		}
	}

	sort.Strings(businessNames)
	sort.Strings(mandatoryNames)

	ix := &Index{
		BusinessNames:  businessNames,
		businessPos:    indexPositions(businessNames),
		MandatoryNames: mandatoryNames,
		mandatoryPos:   indexPositions(mandatoryNames),
	}

	return variants, ix, nil
}

func indexPositions(names []string) map[string]int {
	pos := make(map[string]int, len(names))
	for i, n := range names {
		pos[n] = i
	}
	return pos
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func expandBuilding(typeName, buildingName string, def BuildingDefinition) ([]Variant, error) {
	base, err := baseVariant(typeName, buildingName, def)
	if err != nil {
		return nil, err
	}

	variants := []Variant{base}
	current := base

	upgrades := make([]UpgradeDefinition, len(def.Upgrades))
	copy(upgrades, def.Upgrades)
	sort.Slice(upgrades, func(i, j int) bool { return upgrades[i].Level < upgrades[j].Level })

	for _, up := range upgrades {
		next, err := applyUpgrade(current, up)
		if err != nil {
			return nil, err
		}
		variants = append(variants, next)
		current = next
	}

	return variants, nil
}

func baseVariant(typeName, buildingName string, def BuildingDefinition) (Variant, error) {
	v := Variant{
		Name:  buildingName,
		Type:  typeName,
		Level: 1,
		Size:  1,
	}

	if def.BaseIncome != nil {
		v.Income = *def.BaseIncome
		if v.Income < 0 {
			return Variant{}, fmt.Errorf("%w: %q has negative baseIncome", blockerr.ErrInvalidCatalog, buildingName)
		}
	}
	if def.Size != nil {
		if *def.Size < 0 {
			return Variant{}, fmt.Errorf("%w: %q has negative size", blockerr.ErrInvalidCatalog, buildingName)
		}
		v.Size = *def.Size
	}

	switch {
	case def.Employees != nil:
		v.WorkerKind = WorkerEmployees
		v.Capacity = *def.Employees
	case def.PeopleCapacity != nil:
		v.WorkerKind = WorkerResidents
		v.Capacity = *def.PeopleCapacity
	default:
		v.WorkerKind = WorkerNone
	}

	applyStorageShape(&v, def.StorageCapacity, def.Capacity)

	if def.BaseCost != nil {
		v.Costs = *def.BaseCost
	}

	v.Mandatory = def.Mandatory
	v.Prefers = def.Prefers

	return v, nil
}

func applyUpgrade(base Variant, up UpgradeDefinition) (Variant, error) {
	v := base
	v.Level = up.Level

	switch {
	case up.Income != nil:
		v.Income = *up.Income
	case up.AdditionalIncome != nil:
		v.Income = base.Income + *up.AdditionalIncome
	}
	if v.Income < 0 {
		return Variant{}, fmt.Errorf("%w: %q level %d has negative income", blockerr.ErrInvalidCatalog, base.Name, up.Level)
	}

	switch {
	case up.Employees != nil:
		v.WorkerKind = WorkerEmployees
		v.Capacity = *up.Employees
	case up.PeopleCapacity != nil:
		v.WorkerKind = WorkerResidents
		v.Capacity = *up.PeopleCapacity
	}

	applyStorageShape(&v, up.StorageCapacity, up.Capacity)

	if up.Cost != nil {
		v.Costs = *up.Cost
	}

	if up.Mandatory != nil {
		v.Mandatory = *up.Mandatory || base.Mandatory
	}
	if len(up.Prefers) > 0 {
		v.Prefers = up.Prefers
	}

	return v, nil
}

func applyStorageShape(v *Variant, storageCapacity, capacity *storageShape) {
	shape := storageCapacity
	if shape == nil {
		shape = capacity
	}
	if shape == nil || !shape.set {
		return
	}
	if shape.isScalar {
		v.StorageKind = StorageKindScalar
		v.StorageScalar = shape.scalar
		return
	}
	v.StorageKind = StorageKindResource
	v.StorageResource = shape.resource
}
