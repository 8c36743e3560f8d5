package sessionkit

import "sync/atomic"

// MetricID indexes one session counter.
type MetricID uint16

const (
	// MetricBootstrapAuthenticated counts cold starts that restored a session.
	MetricBootstrapAuthenticated MetricID = iota
	// MetricBootstrapAnonymous counts cold starts with no stored credentials.
	MetricBootstrapAnonymous
	// MetricBootstrapRejected counts cold starts whose stored token the
	// server (or the local expiry check) rejected.
	MetricBootstrapRejected
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess
	// MetricLoginFailure counts rejected logins.
	MetricLoginFailure
	// MetricRegisterSuccess counts successful registrations.
	MetricRegisterSuccess
	// MetricRegisterFailure counts rejected registrations.
	MetricRegisterFailure
	// MetricRefreshSuccess counts successful token rotations.
	MetricRefreshSuccess
	// MetricRefreshFailure counts failed token rotations.
	MetricRefreshFailure
	// MetricLogout counts logout cleanups, including redundant ones.
	MetricLogout

	metricCount
)

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Metrics is a dependency-free counter set. All operations are atomic and
// allocation-free on the increment path.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

// NewMetrics creates a zeroed counter set.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Inc increments one counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot copies every counter.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}

// MetricName returns the stable exposition name of a counter.
func MetricName(id MetricID) string {
	switch id {
	case MetricBootstrapAuthenticated:
		return "bootstrap_authenticated_total"
	case MetricBootstrapAnonymous:
		return "bootstrap_anonymous_total"
	case MetricBootstrapRejected:
		return "bootstrap_rejected_total"
	case MetricLoginSuccess:
		return "login_success_total"
	case MetricLoginFailure:
		return "login_failure_total"
	case MetricRegisterSuccess:
		return "register_success_total"
	case MetricRegisterFailure:
		return "register_failure_total"
	case MetricRefreshSuccess:
		return "refresh_success_total"
	case MetricRefreshFailure:
		return "refresh_failure_total"
	case MetricLogout:
		return "logout_total"
	default:
		return "unknown"
	}
}
