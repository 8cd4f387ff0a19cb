package optimizer

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ResourceAxis identifies one of the four resource budgets tracked by the
// optimizer. Declared as an enum, matching the teacher repo's ResourceType
// convention, rather than a bare string, to keep axis iteration ordered.
type ResourceAxis int

const (
	Money ResourceAxis = iota
	Wood
	Cement
	Steel
)

// AllResourceAxes returns the four axes in canonical, deterministic order.
func AllResourceAxes() []ResourceAxis {
	return []ResourceAxis{Money, Wood, Cement, Steel}
}

func (a ResourceAxis) String() string {
	switch a {
	case Money:
		return "money"
	case Wood:
		return "wood"
	case Cement:
		return "cement"
	case Steel:
		return "steel"
	default:
		return "unknown"
	}
}

// ResourceCost is the four-axis resource tuple used for both costs and
// storage contributions. Any missing axis reads as zero.
type ResourceCost struct {
	Money  int `json:"money,omitempty" yaml:"money,omitempty"`
	Wood   int `json:"wood,omitempty" yaml:"wood,omitempty"`
	Cement int `json:"cement,omitempty" yaml:"cement,omitempty"`
	Steel  int `json:"steel,omitempty" yaml:"steel,omitempty"`
}

// Get returns the value on a given axis.
func (c ResourceCost) Get(axis ResourceAxis) int {
	switch axis {
	case Money:
		return c.Money
	case Wood:
		return c.Wood
	case Cement:
		return c.Cement
	case Steel:
		return c.Steel
	default:
		return 0
	}
}

// Set assigns the value on a given axis.
func (c *ResourceCost) Set(axis ResourceAxis, v int) {
	switch axis {
	case Money:
		c.Money = v
	case Wood:
		c.Wood = v
	case Cement:
		c.Cement = v
	case Steel:
		c.Steel = v
	}
}

// Add returns the axis-wise sum of c and o.
func (c ResourceCost) Add(o ResourceCost) ResourceCost {
	return ResourceCost{c.Money + o.Money, c.Wood + o.Wood, c.Cement + o.Cement, c.Steel + o.Steel}
}

// Sub returns the axis-wise difference c - o.
func (c ResourceCost) Sub(o ResourceCost) ResourceCost {
	return ResourceCost{c.Money - o.Money, c.Wood - o.Wood, c.Cement - o.Cement, c.Steel - o.Steel}
}

// GreaterEqual reports whether c covers o on every axis.
func (c ResourceCost) GreaterEqual(o ResourceCost) bool {
	return c.Money >= o.Money && c.Wood >= o.Wood && c.Cement >= o.Cement && c.Steel >= o.Steel
}

// ClampNonNegative floors every axis at zero.
func (c ResourceCost) ClampNonNegative() ResourceCost {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	return ResourceCost{clamp(c.Money), clamp(c.Wood), clamp(c.Cement), clamp(c.Steel)}
}

// storageShape decodes a catalog storage/capacity field that may be either a
// bare number (a scalar, axis-less capacity) or a {money,wood,cement,steel}
// object (a resource-bearing storage contribution). Only the object form
// qualifies a variant as a storage variant; see Variant.IsStorage.
type storageShape struct {
	set      bool
	isScalar bool
	scalar   float64
	resource ResourceCost
}

func (s *storageShape) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		s.set, s.isScalar, s.scalar = true, true, num
		return nil
	}
	var obj ResourceCost
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("storage shape must be a number or a resource object: %w", err)
	}
	s.set, s.isScalar, s.resource = true, false, obj
	return nil
}

func (s *storageShape) UnmarshalYAML(value *yaml.Node) error {
	var num float64
	if err := value.Decode(&num); err == nil {
		s.set, s.isScalar, s.scalar = true, true, num
		return nil
	}
	var obj ResourceCost
	if err := value.Decode(&obj); err != nil {
		return fmt.Errorf("storage shape must be a number or a resource object: %w", err)
	}
	s.set, s.isScalar, s.resource = true, false, obj
	return nil
}

// UpgradeDefinition is one entry of a building's upgrades list.
type UpgradeDefinition struct {
	Level            int           `json:"level" yaml:"level"`
	Income           *float64      `json:"income,omitempty" yaml:"income,omitempty"`
	AdditionalIncome *float64      `json:"additionalIncome,omitempty" yaml:"additionalIncome,omitempty"`
	Employees        *int          `json:"employees,omitempty" yaml:"employees,omitempty"`
	PeopleCapacity   *int          `json:"peopleCapacity,omitempty" yaml:"peopleCapacity,omitempty"`
	StorageCapacity  *storageShape `json:"storageCapacity,omitempty" yaml:"storageCapacity,omitempty"`
	Capacity         *storageShape `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Cost             *ResourceCost `json:"cost,omitempty" yaml:"cost,omitempty"`
	Mandatory        *bool         `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
	Prefers          []string      `json:"prefers,omitempty" yaml:"prefers,omitempty"`
}

// BuildingDefinition is the base (level 1) definition of a named building,
// plus its ordered upgrades.
type BuildingDefinition struct {
	BaseIncome      *float64            `json:"baseIncome,omitempty" yaml:"baseIncome,omitempty"`
	Size            *int                `json:"size,omitempty" yaml:"size,omitempty"`
	Employees       *int                `json:"employees,omitempty" yaml:"employees,omitempty"`
	PeopleCapacity  *int                `json:"peopleCapacity,omitempty" yaml:"peopleCapacity,omitempty"`
	StorageCapacity *storageShape       `json:"storageCapacity,omitempty" yaml:"storageCapacity,omitempty"`
	Capacity        *storageShape       `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	BaseCost        *ResourceCost       `json:"baseCost,omitempty" yaml:"baseCost,omitempty"`
	Mandatory       bool                `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
	Prefers         []string            `json:"prefers,omitempty" yaml:"prefers,omitempty"`
	Upgrades        []UpgradeDefinition `json:"upgrades,omitempty" yaml:"upgrades,omitempty"`
}

// Catalog is the logical input shape: typeName -> buildingName -> definition.
// Unknown fields are ignored by encoding/json and yaml.v3 alike.
type Catalog struct {
	BuildingTypes map[string]map[string]BuildingDefinition `json:"buildingTypes" yaml:"buildingTypes"`
}
