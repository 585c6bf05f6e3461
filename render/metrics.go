package render

import (
	"sync"
	"time"
)

// Metrics accumulates per-engine render counters. Safe for concurrent
// reads while a render loop writes.
type Metrics struct {
	mu          sync.Mutex
	renders     int64
	full        int64
	selective   int64
	skipped     int64
	cacheHits   int64
	shapeErrors int64
	totalTime   time.Duration
}

// MetricsSnapshot is a read-only copy of the counters.
type MetricsSnapshot struct {
	RenderCount      int64         `json:"renderCount"`
	FullRenders      int64         `json:"fullRenders"`
	SelectiveRenders int64         `json:"selectiveRenders"`
	SkippedRenders   int64         `json:"skippedRenders"`
	CacheHits        int64         `json:"cacheHits"`
	ShapeErrors      int64         `json:"shapeErrors"`
	AvgRenderTime    time.Duration `json:"avgRenderTime"`
}

func (m *Metrics) record(stats FrameStats, cacheHits int, took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renders++
	switch stats.Kind {
	case FrameFull:
		m.full++
	case FrameSelective:
		m.selective++
	case FrameSkipped:
		m.skipped++
	}
	m.cacheHits += int64(cacheHits)
	m.shapeErrors += int64(stats.ShapeErrors)
	m.totalTime += took
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := MetricsSnapshot{
		RenderCount:      m.renders,
		FullRenders:      m.full,
		SelectiveRenders: m.selective,
		SkippedRenders:   m.skipped,
		CacheHits:        m.cacheHits,
		ShapeErrors:      m.shapeErrors,
	}
	if m.renders > 0 {
		snap.AvgRenderTime = m.totalTime / time.Duration(m.renders)
	}
	return snap
}
