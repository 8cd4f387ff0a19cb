package optimizer

import "container/heap"

// rankedNode pairs a bucket entry with its pruning rank: mask-complete
// states always outrank incomplete ones (only when requiredMask > 0), and
// within the same mask-completeness tier, higher score wins.
type rankedNode struct {
	key          Key
	node         *Node
	maskComplete bool
}

func (r rankedNode) less(o rankedNode) bool {
	if r.maskComplete != o.maskComplete {
		return !r.maskComplete && o.maskComplete
	}
	return r.node.Score < o.node.Score
}

// rankedHeap is a min-heap over rankedNode, ordered so the worst-ranked
// entry sits at the root and is evicted first. Modeled on the teacher
// repo's container/heap-based event queue (internal/solver/castle/events.go):
// same Len/Less/Swap/Push/Pop shape, applied here to bucket pruning instead
// of event-time ordering.
type rankedHeap []rankedNode

func (h rankedHeap) Len() int            { return len(h) }
func (h rankedHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h rankedHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *rankedHeap) Push(x any)         { *h = append(*h, x.(rankedNode)) }
func (h *rankedHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// pruneBucket retains only the top-beamWidth entries of b by the
// lexicographic (maskComplete, score) order, evicting the rest. Deleted
// entries are irrecoverable, per the core spec's pruning contract.
func pruneBucket(b bucket, beamWidth int, requiredMask uint64) {
	if len(b) <= beamWidth {
		return
	}

	h := make(rankedHeap, 0, beamWidth+1)
	heap.Init(&h)

	for k, n := range b {
		rn := rankedNode{key: k, node: n, maskComplete: requiredMask > 0 && n.Mask == requiredMask}
		if h.Len() < beamWidth {
			heap.Push(&h, rn)
			continue
		}
		if h.Len() > 0 && h[0].less(rn) {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	kept := make(map[Key]struct{}, h.Len())
	for _, rn := range h {
		kept[rn.key] = struct{}{}
	}
	for k := range b {
		if _, ok := kept[k]; !ok {
			delete(b, k)
		}
	}
}
