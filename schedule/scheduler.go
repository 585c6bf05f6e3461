package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/kelibst/praise-present-v2-sub002/logx"
)

// Processor executes one request against its target engine. A returned
// error triggers retry with backoff up to the configured bound.
type Processor func(*Request) error

// Options tunes the scheduler. Zero values fall back to the defaults.
type Options struct {
	// Delays maps each debounced tier to its coalescing window.
	Delays map[Priority]time.Duration
	// RetryLimit bounds retries per request before it is dropped.
	RetryLimit int
	// BackoffBase is the first retry delay; it doubles per attempt.
	BackoffBase time.Duration
}

// DefaultOptions returns the tuned tier delays and retry policy.
func DefaultOptions() Options {
	return Options{
		Delays: map[Priority]time.Duration{
			High:       8 * time.Millisecond,
			Medium:     33 * time.Millisecond,
			Low:        100 * time.Millisecond,
			Background: 500 * time.Millisecond,
		},
		RetryLimit:  3,
		BackoffBase: 50 * time.Millisecond,
	}
}

// Scheduler owns the pending request queues. One scheduler may serve many
// viewports; requests are partitioned by viewport through their coalescing
// keys, so engines never see interleaved state for the same shape.
type Scheduler struct {
	mu      sync.Mutex
	opts    Options
	process Processor

	// runMu serializes dispatch: one request executes to completion
	// before the next begins, even across tier timers.
	runMu sync.Mutex

	queues map[Priority][]*Request
	byID   map[string]*Request
	byKey  map[coalesceKey]*Request
	timers map[Priority]*time.Timer

	seq     int64
	closed  bool
	metrics Metrics
}

// New creates a scheduler dispatching to the given processor.
func New(process Processor, opts Options) *Scheduler {
	def := DefaultOptions()
	if opts.Delays == nil {
		opts.Delays = def.Delays
	}
	if opts.RetryLimit <= 0 {
		opts.RetryLimit = def.RetryLimit
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = def.BackoffBase
	}
	return &Scheduler{
		opts:    opts,
		process: process,
		queues:  map[Priority][]*Request{},
		byID:    map[string]*Request{},
		byKey:   map[coalesceKey]*Request{},
		timers:  map[Priority]*time.Timer{},
	}
}

// Submit enqueues a request and returns its cancellable id. An immediate
// request with no unresolved prerequisites is processed synchronously
// before Submit returns. A request whose coalescing key matches a pending
// request merges into it and returns the pending request's id.
func (s *Scheduler) Submit(req Request) string {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}
	s.seq++
	req.ID = fmt.Sprintf("req-%d", s.seq)

	if pending, ok := s.byKey[req.key()]; ok {
		pending.merge(&req)
		if req.Priority < pending.Priority {
			// Coalescing never lowers urgency.
			s.promoteLocked(pending, req.Priority)
		}
		s.metrics.coalesced++
		id := pending.ID
		s.mu.Unlock()
		return id
	}

	r := &req
	s.byID[r.ID] = r
	s.byKey[r.key()] = r

	if r.Priority == Immediate && !s.blockedLocked(r) {
		s.untrackLocked(r)
		s.mu.Unlock()
		s.run(r)
		return r.ID
	}

	s.queues[r.Priority] = append(s.queues[r.Priority], r)
	s.armLocked(r.Priority, s.delay(r.Priority))
	s.mu.Unlock()
	return r.ID
}

// Cancel removes a not-yet-dispatched request. It returns false when the
// id is unknown or already in flight; cancellation after dispatch has no
// effect by design.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return false
	}
	s.untrackLocked(r)
	queue := s.queues[r.Priority]
	for i, candidate := range queue {
		if candidate == r {
			s.queues[r.Priority] = append(queue[:i], queue[i+1:]...)
			break
		}
	}
	s.metrics.cancelled++
	return true
}

// Flush synchronously drains every tier, honoring dependency order but not
// delays. Intended for tests and for shutdown.
func (s *Scheduler) Flush() {
	for _, p := range []Priority{Immediate, High, Medium, Low, Background} {
		s.drain(p)
	}
}

// Close stops all timers and drops pending requests.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for _, t := range s.timers {
		t.Stop()
	}
	s.queues = map[Priority][]*Request{}
	s.byID = map[string]*Request{}
	s.byKey = map[coalesceKey]*Request{}
}

// Pending returns the number of queued requests.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Metrics returns a snapshot of the scheduler counters.
func (s *Scheduler) Metrics() MetricsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics.snapshot()
}

func (s *Scheduler) delay(p Priority) time.Duration {
	return s.opts.Delays[p]
}

// armLocked starts the tier's debounce timer unless one is already armed.
// One timer per tier: re-arming only happens once the previous fire has
// drained the queue.
func (s *Scheduler) armLocked(p Priority, d time.Duration) {
	if s.closed {
		return
	}
	if _, armed := s.timers[p]; armed {
		return
	}
	s.timers[p] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, p)
		s.mu.Unlock()
		s.drain(p)
	})
}

func (s *Scheduler) promoteLocked(r *Request, p Priority) {
	queue := s.queues[r.Priority]
	for i, candidate := range queue {
		if candidate == r {
			s.queues[r.Priority] = append(queue[:i], queue[i+1:]...)
			break
		}
	}
	r.Priority = p
	s.queues[p] = append(s.queues[p], r)
	s.armLocked(p, s.delay(p))
}

// blockedLocked reports whether a prerequisite of r is still pending.
// Unknown ids count as resolved: they either completed already or never
// existed, and waiting on them would stall forever.
func (s *Scheduler) blockedLocked(r *Request) bool {
	for _, dep := range r.DependsOn {
		if _, pending := s.byID[dep]; pending {
			return true
		}
	}
	return false
}

func (s *Scheduler) untrackLocked(r *Request) {
	delete(s.byID, r.ID)
	if s.byKey[r.key()] == r {
		delete(s.byKey, r.key())
	}
}

// drain processes the tier's queue. Requests with unresolved prerequisites
// or a backoff deadline in the future return to the front of the queue and
// the timer re-arms for another pass.
func (s *Scheduler) drain(p Priority) {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		queue := s.queues[p]
		if len(queue) == 0 {
			s.mu.Unlock()
			return
		}

		var next *Request
		var deferred []*Request
		rearm := time.Duration(-1)
		now := time.Now()
		for i, r := range queue {
			if s.blockedLocked(r) {
				deferred = append(deferred, r)
				rearm = maxDelay(rearm, s.delay(p))
				continue
			}
			if r.notBefore.After(now) {
				deferred = append(deferred, r)
				rearm = maxDelay(rearm, r.notBefore.Sub(now))
				continue
			}
			next = r
			s.queues[p] = append(deferred, queue[i+1:]...)
			break
		}
		if next == nil {
			s.queues[p] = deferred
			if rearm >= 0 {
				// Never spin on a zero tier delay while blocked.
				if rearm < time.Millisecond {
					rearm = time.Millisecond
				}
				s.armLocked(p, rearm)
			}
			s.mu.Unlock()
			return
		}
		s.untrackLocked(next)
		s.mu.Unlock()

		s.run(next)
	}
}

func maxDelay(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

// run executes one request through the processor. On failure the request
// is re-tracked and re-queued with exponential backoff until the retry
// bound, then dropped and counted; no error reaches the submitter.
func (s *Scheduler) run(r *Request) {
	s.runMu.Lock()
	err := s.safeProcess(r)
	s.runMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.metrics.processed++
		return
	}

	r.retries++
	if r.retries > s.opts.RetryLimit {
		s.metrics.dropped++
		logx.L().Warn("update dropped after retries",
			"request", r.ID, "type", r.Type.String(), "viewport", r.Viewport, "err", err)
		return
	}
	s.metrics.retried++
	backoff := s.opts.BackoffBase << (r.retries - 1)
	r.notBefore = time.Now().Add(backoff)
	if s.closed {
		return
	}
	// Immediate requests retry through the high tier; there is no
	// synchronous path to come back on.
	p := r.Priority
	if p == Immediate {
		p = High
		r.Priority = High
	}
	s.byID[r.ID] = r
	if _, taken := s.byKey[r.key()]; !taken {
		s.byKey[r.key()] = r
	}
	s.queues[p] = append([]*Request{r}, s.queues[p]...)
	s.armLocked(p, backoff)
}

func (s *Scheduler) safeProcess(r *Request) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("processor panicked: %v", rec)
		}
	}()
	return s.process(r)
}
