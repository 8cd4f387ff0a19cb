package optimizer

// reconstruct walks the back-pointer chain from the selected (w, key) node
// back to the root, emitting each step's VariantIndex, then reverses the
// result to produce the placement order. See SPEC_FULL.md §4.3.
func reconstruct(table *stateTable, w int, key Key) []int {
	var indices []int

	size := w
	node, ok := table.at(size)[key]
	for ok {
		if node.VariantIndex >= 0 {
			indices = append(indices, node.VariantIndex)
		}
		if !node.HasPrev || node.PrevSize < 0 {
			break
		}
		size = node.PrevSize
		key = node.PrevKey
		node, ok = table.at(size)[key]
	}

	reverse(indices)
	return indices
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
