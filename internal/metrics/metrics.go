package metrics

import (
	"sync"
	"sync/atomic"
)

// MetricKey is a strongly typed metric identifier.
type MetricKey string

// Metric keys (centralized)
const (
	// Poller
	PollRunsTotal      MetricKey = "poll_runs_total"
	PollSuccessTotal   MetricKey = "poll_success_total"
	PollFailuresTotal  MetricKey = "poll_failures_total"
	PollManualTotal    MetricKey = "poll_manual_total"
	PollStaleDiscarded MetricKey = "poll_stale_discarded_total"

	// Actions
	ActionsDispatchedTotal MetricKey = "actions_dispatched_total"
	ActionsDeclinedTotal   MetricKey = "actions_declined_total"
	ActionsSucceededTotal  MetricKey = "actions_succeeded_total"
	ActionsFailedTotal     MetricKey = "actions_failed_total"
	ResetReloadsTotal      MetricKey = "reset_reloads_total"

	// Sinks
	ViewUpdatesTotal MetricKey = "view_updates_total"
	StreamClients    MetricKey = "stream_clients"
)

// gauges lists the keys that go up and down; everything else is a counter.
var gauges = map[MetricKey]bool{
	StreamClients: true,
}

// Registry stores all metrics.
type Registry struct {
	mu       sync.RWMutex
	counters map[MetricKey]*int64
}

// NewRegistry creates a metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]*int64),
	}
}

// Inc increments a metric by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Dec decrements a metric by 1.
func (r *Registry) Dec(key MetricKey) {
	r.Add(key, -1)
}

// Add increments a metric by delta.
func (r *Registry) Add(key MetricKey, delta int64) {
	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()

	if ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	// Slow path: metric not yet initialized
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok = r.counters[key]; ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	var val int64
	r.counters[key] = &val
	atomic.AddInt64(&val, delta)
}
