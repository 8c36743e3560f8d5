package guard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/novexa/sessionkit"
)

// SnapshotSource yields the current session snapshot; *sessionkit.Store
// satisfies it.
type SnapshotSource interface {
	Snapshot() sessionkit.Snapshot
}

type identityContextKey struct{}

// IdentityFromContext returns the identity the middleware attached for a
// rendered protected view.
func IdentityFromContext(ctx context.Context) (*sessionkit.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*sessionkit.Identity)
	return id, ok
}

// Middleware adapts the decision table to net/http for server-composed
// fronts: redirects become 302s, Hold serves a self-refreshing placeholder,
// unknown paths get the not-found page.
func Middleware(source SnapshotSource, routes *Routes) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := source.Snapshot()

			switch routes.DecideRoute(snap, r.URL.Path) {
			case Hold:
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusServiceUnavailable)
				fmt.Fprint(w, loadingPage)
			case RedirectLogin:
				http.Redirect(w, r, routes.LoginPath(), http.StatusFound)
			case RedirectHome:
				http.Redirect(w, r, routes.HomePath(), http.StatusFound)
			case NotFound:
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprintf(w, notFoundPage, routes.HomePath())
			default:
				ctx := r.Context()
				if snap.User != nil {
					ctx = context.WithValue(ctx, identityContextKey{}, snap.User)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}

const loadingPage = `<!doctype html><meta http-equiv="refresh" content="1"><p>Loading...</p>`

const notFoundPage = `<!doctype html><h1>Page not found</h1><p><a href="%s">Back to dashboard</a></p>`
