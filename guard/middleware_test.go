package guard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/novexa/sessionkit"
)

type staticSource struct {
	snap sessionkit.Snapshot
}

func (s staticSource) Snapshot() sessionkit.Snapshot { return s.snap }

func serveGuarded(snap sessionkit.Snapshot, path string) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := IdentityFromContext(r.Context()); ok {
			w.Write([]byte("view for " + id.Username))
			return
		}
		w.Write([]byte("view"))
	})

	handler := Middleware(staticSource{snap: snap}, testRoutes())(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMiddlewareRedirects(t *testing.T) {
	rec := serveGuarded(snapAnonymous(), "/funds")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}

	rec = serveGuarded(snapUser(false), "/admin")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}

	rec = serveGuarded(snapUser(false), "/login")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestMiddlewareHoldsWhileLoading(t *testing.T) {
	rec := serveGuarded(snapLoading(), "/funds")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Loading") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestMiddlewareNotFound(t *testing.T) {
	rec := serveGuarded(snapUser(true), "/no-such-page")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `href="/dashboard"`) {
		t.Fatalf("not-found page missing landing link: %q", rec.Body.String())
	}
}

func TestMiddlewareRendersWithIdentity(t *testing.T) {
	rec := serveGuarded(snapUser(false), "/funds")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "view for ana" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
