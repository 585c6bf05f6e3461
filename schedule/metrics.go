package schedule

// Metrics counts scheduler activity. Access is guarded by the scheduler's
// mutex.
type Metrics struct {
	processed int64
	coalesced int64
	dropped   int64
	retried   int64
	cancelled int64
}

// MetricsSnapshot is a copy of the scheduler counters at one instant.
type MetricsSnapshot struct {
	Processed int64
	Coalesced int64
	Dropped   int64
	Retried   int64
	Cancelled int64
}

func (m *Metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Processed: m.processed,
		Coalesced: m.coalesced,
		Dropped:   m.dropped,
		Retried:   m.retried,
		Cancelled: m.cancelled,
	}
}
