// Package prometheus renders session counters in Prometheus text exposition
// format without depending on the Prometheus client library. Mount the
// exporter on a diagnostics mux.
package prometheus

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/novexa/sessionkit"
)

type metricsSource interface {
	MetricsSnapshot() sessionkit.MetricsSnapshot
}

// Exporter serves the counter snapshot of a [sessionkit.Store].
type Exporter struct {
	source metricsSource
}

// NewExporter creates an Exporter reading from the given store.
func NewExporter(store *sessionkit.Store) *Exporter {
	return &Exporter{source: store}
}

// ServeHTTP implements http.Handler.
func (e *Exporter) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	snap := e.source.MetricsSnapshot()

	ids := make([]sessionkit.MetricID, 0, len(snap.Counters))
	for id := range snap.Counters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	for _, id := range ids {
		name := "sessionkit_" + sessionkit.MetricName(id)
		fmt.Fprintf(w, "# TYPE %s counter\n%s %d\n", name, name, snap.Counters[id])
	}
}
