package optimizer

// bucket is the State Table entry for one size level: a map from packed key
// to aggregated node. Bucket maps live only for the duration of one
// single-block solve.
type bucket map[Key]*Node

// insert adds n under its own key, coalescing to the higher-score node when
// the key already has an entry. Reports whether the bucket changed.
func (b bucket) insert(n *Node) bool {
	k := n.key()
	existing, ok := b[k]
	if !ok {
		b[k] = n
		return true
	}
	if n.Score > existing.Score {
		b[k] = n
		return true
	}
	return false
}

// stateTable holds one bucket per size level 0..capacity.
type stateTable struct {
	buckets []bucket
}

func newStateTable(capacity int) *stateTable {
	t := &stateTable{buckets: make([]bucket, capacity+1)}
	for i := range t.buckets {
		t.buckets[i] = make(bucket)
	}
	return t
}

func (t *stateTable) at(w int) bucket { return t.buckets[w] }
