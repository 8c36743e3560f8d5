// Package main composes sessionkit against a real platform backend and
// serves a minimal guarded front on :8080.
//
// Configuration comes from the environment (a .env file is honored):
//
//	API_BASE_URL   backend base URL, e.g. https://api.novexa.example/api
//	CRED_FILE      credential file path (default ~/.novexa-session.json)
//	REDIS_ADDR     optional; use Redis-backed credentials instead of a file
//	DEMO_EMAIL     optional; log in at startup with DEMO_PASSWORD
//	DEMO_PASSWORD
//
// Run:
//
//	go run ./cmd/sessionkit-demo
//
// Then:
//
//	curl -i localhost:8080/dashboard   # 302 to /login until authenticated
//	curl -i localhost:8080/metrics
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/novexa/sessionkit"
	"github.com/novexa/sessionkit/credstore"
	"github.com/novexa/sessionkit/export/prometheus"
	"github.com/novexa/sessionkit/guard"
	"github.com/novexa/sessionkit/restapi"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		logger.Fatal("API_BASE_URL is required")
	}

	store, err := buildStore(baseURL, logger)
	if err != nil {
		logger.Fatal("store build failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.Bootstrap(ctx); err != nil {
		logger.Fatal("bootstrap failed", zap.Error(err))
	}
	snap := store.Snapshot()
	logger.Info("bootstrap complete", zap.Bool("authenticated", snap.Authenticated))

	if email := os.Getenv("DEMO_EMAIL"); email != "" && !snap.Authenticated {
		res, err := store.Login(ctx, email, os.Getenv("DEMO_PASSWORD"))
		if err != nil {
			logger.Fatal("login call failed", zap.Error(err))
		}
		if !res.Success {
			logger.Warn("login rejected", zap.String("message", res.Error))
		} else {
			logger.Info("logged in", zap.String("user", res.User.Username))
		}
	}

	serve(store, logger)
}

func buildStore(baseURL string, logger *zap.Logger) (*sessionkit.Store, error) {
	var creds credstore.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		creds = credstore.NewRedis(rdb, "novexa:session", 30*24*time.Hour)
	} else {
		path := os.Getenv("CRED_FILE")
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(home, ".novexa-session.json")
		}
		creds = credstore.NewFile(path)
	}

	builder := sessionkit.New().
		WithCredentialStore(creds).
		WithLogger(logger)

	// The API client reads the bearer token back from the store, so wire
	// the token source after Build.
	var store *sessionkit.Store
	api := restapi.New(baseURL,
		restapi.WithLogger(logger),
		restapi.WithTokenSource(tokenSourceFunc(func() string {
			if store == nil {
				return ""
			}
			return store.AccessToken()
		})),
	)

	store, err := builder.WithAPI(api).Build()
	return store, err
}

type tokenSourceFunc func() string

func (f tokenSourceFunc) AccessToken() string { return f() }

func serve(store *sessionkit.Store, logger *zap.Logger) {
	routes := guard.NewRoutes(sessionkit.RouteConfig{
		LoginPath: "/login",
		HomePath:  "/dashboard",
	}).
		Add("/register", guard.Public).
		Add("/funds", guard.Protected).
		Add("/referrals", guard.Protected).
		Add("/admin", guard.ProtectedAdmin)

	page := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := guard.IdentityFromContext(r.Context()); ok {
			fmt.Fprintf(w, "%s as %s\n", r.URL.Path, id.Username)
			return
		}
		fmt.Fprintf(w, "%s\n", r.URL.Path)
	})

	mux := http.NewServeMux()
	mux.Handle("/", guard.Middleware(store, routes)(page))
	mux.Handle("/metrics", prometheus.NewExporter(store))

	logger.Info("listening", zap.String("addr", ":8080"))
	if err := http.ListenAndServe(":8080", mux); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
