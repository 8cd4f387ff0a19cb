package optimizer

import (
	"strconv"
	"strings"
)

// Key is the canonical, comparable identity of a DP node within one size
// bucket: (r, money, wood, cement, steel, mask, counts). Two transitions
// that land on the same key coalesce to the higher-score node.
//
// counts is variable-length (one slot per business name in the catalog), so
// it cannot be a plain Go map key on its own; it is packed into a string
// alongside the fixed-width fields, which keeps Key a comparable struct
// usable directly as a map key without a second hashing pass. The counts are
// encoded as comma-separated decimal text (see packCounts).
type Key struct {
	R                 int
	Money, Wood, Cement, Steel int
	Mask              uint64
	countsPacked      string
}

func newKey(r int, res ResourceCost, mask uint64, counts []int) Key {
	return Key{
		R:            r,
		Money:        res.Money,
		Wood:         res.Wood,
		Cement:       res.Cement,
		Steel:        res.Steel,
		Mask:         mask,
		countsPacked: packCounts(counts),
	}
}

func packCounts(counts []int) string {
	if len(counts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range counts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

// Node is the aggregated DP value at a given size bucket and key. It is both
// the heuristic search value and the back-pointer record used by the
// Back-Reconstructor.
type Node struct {
	ResidualResidents int
	Resources         ResourceCost
	Mask              uint64
	Counts            []int

	IncomeNeutral      float64
	HouseBaseIncome    float64
	TotalHouseCapacity int

	BusinessIncomeBase []float64
	BusinessCapacity   []int
	PreferenceCapacity []int

	// TotalStorage is retained for parity with the core node shape but is
	// never read back; multi-resource storage lives in Resources.
	TotalStorage float64

	Score int64

	HasPrev      bool
	PrevSize     int
	PrevKey      Key
	VariantIndex int
}

// key computes this node's canonical state key.
func (n *Node) key() Key {
	return newKey(n.ResidualResidents, n.Resources, n.Mask, n.Counts)
}

// clone deep-copies the node's slices so transitions never mutate a shared
// parent. Mirrors the teacher's State.Clone deep-copy discipline.
func (n *Node) clone() *Node {
	c := *n
	c.Counts = append([]int(nil), n.Counts...)
	c.BusinessIncomeBase = append([]float64(nil), n.BusinessIncomeBase...)
	c.BusinessCapacity = append([]int(nil), n.BusinessCapacity...)
	c.PreferenceCapacity = append([]int(nil), n.PreferenceCapacity...)
	return &c
}

func newRootNode(nBusiness int, startingResources ResourceCost) *Node {
	return &Node{
		Resources:          startingResources,
		Counts:             make([]int, nBusiness),
		BusinessIncomeBase: make([]float64, nBusiness),
		BusinessCapacity:   make([]int, nBusiness),
		PreferenceCapacity: make([]int, nBusiness),
		HasPrev:            false,
		PrevSize:           -1,
		VariantIndex:       -1,
	}
}
