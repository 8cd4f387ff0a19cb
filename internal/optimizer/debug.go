package optimizer

import "time"

// DebugInfo is the optional post-hoc report attached to a result when
// Options.Debug is set. It must never influence any decision made during
// the solve — it is populated strictly after the fact.
type DebugInfo struct {
	DPStateCounts []int `json:"dpStateCounts"`
	DurationMs    int64 `json:"durationMs"`
}

type debugRecorder struct {
	enabled bool
	start   time.Time
	counts  []int
}

func newDebugRecorder(enabled bool, capacity int) *debugRecorder {
	if !enabled {
		return &debugRecorder{enabled: false}
	}
	return &debugRecorder{enabled: true, start: time.Now(), counts: make([]int, capacity+1)}
}

func (d *debugRecorder) recordBucket(w int, n int) {
	if !d.enabled {
		return
	}
	d.counts[w] = n
}

func (d *debugRecorder) finish() *DebugInfo {
	if !d.enabled {
		return nil
	}
	return &DebugInfo{
		DPStateCounts: d.counts,
		DurationMs:    time.Since(d.start).Milliseconds(),
	}
}
