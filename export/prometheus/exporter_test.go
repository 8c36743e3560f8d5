package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/novexa/sessionkit"
)

type fakeSource struct {
	snap sessionkit.MetricsSnapshot
}

func (f fakeSource) MetricsSnapshot() sessionkit.MetricsSnapshot { return f.snap }

func TestExporterRendersTextFormat(t *testing.T) {
	exp := &Exporter{source: fakeSource{snap: sessionkit.MetricsSnapshot{
		Counters: map[sessionkit.MetricID]uint64{
			sessionkit.MetricLoginSuccess:      3,
			sessionkit.MetricBootstrapRejected: 1,
		},
	}}}

	rec := httptest.NewRecorder()
	exp.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "# TYPE sessionkit_login_success_total counter") {
		t.Fatalf("missing TYPE line:\n%s", body)
	}
	if !strings.Contains(body, "sessionkit_login_success_total 3") {
		t.Fatalf("missing counter value:\n%s", body)
	}
	if !strings.Contains(body, "sessionkit_bootstrap_rejected_total 1") {
		t.Fatalf("missing counter value:\n%s", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q", ct)
	}
}
