package display

import "time"

// MetricsSnapshot aggregates counters across every registered viewport
// and the shared scheduler. Reading it has no side effects.
type MetricsSnapshot struct {
	RenderCount       int64
	CacheHits         int64
	AvgRenderTime     time.Duration
	DroppedUpdates    int64
	CoalescedRequests int64
	RetriedRequests   int64
	ConversionErrors  int64
	ActiveViewports   int
}

// Metrics returns the manager-wide snapshot.
func (m *Manager) Metrics() MetricsSnapshot {
	sched := m.sched.Metrics()

	m.mu.Lock()
	defer m.mu.Unlock()
	out := MetricsSnapshot{
		DroppedUpdates:    sched.Dropped,
		CoalescedRequests: sched.Coalesced,
		RetriedRequests:   sched.Retried,
		ConversionErrors:  m.conversionErrors,
		ActiveViewports:   len(m.viewports),
	}
	var totalTime time.Duration
	for _, vp := range m.viewports {
		snap := vp.engine.Metrics()
		out.RenderCount += snap.RenderCount
		out.CacheHits += snap.CacheHits
		totalTime += time.Duration(snap.RenderCount) * snap.AvgRenderTime
	}
	if out.RenderCount > 0 {
		out.AvgRenderTime = totalTime / time.Duration(out.RenderCount)
	}
	return out
}
