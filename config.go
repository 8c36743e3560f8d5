package sessionkit

import (
	"errors"
	"strings"
	"time"
)

// Config carries the tunables of the session state machine. Configure it
// before Build; it is treated as immutable afterwards.
type Config struct {
	Toast     ToastConfig
	Bootstrap BootstrapConfig
	Routes    RouteConfig
}

/*
====================================
TOAST CONFIG
====================================
*/

// ToastConfig controls the notifications emitted by Store operations.
type ToastConfig struct {
	// DefaultDuration is how long an auto-dismissed toast stays visible.
	// Zero means toasts persist until dismissed.
	DefaultDuration time.Duration
}

/*
====================================
BOOTSTRAP CONFIG
====================================
*/

// BootstrapConfig controls the cold-start credential check.
type BootstrapConfig struct {
	// SkipExpiredToken short-circuits the current-user round trip when the
	// stored access token is already past its exp claim. The observable end
	// state is identical to a server rejection.
	SkipExpiredToken bool
	// ClockSkew widens the local expiry check so a token about to expire on
	// the server is not optimistically sent.
	ClockSkew time.Duration
}

/*
====================================
ROUTE CONFIG
====================================
*/

// RouteConfig names the two redirect targets of the route guard.
type RouteConfig struct {
	// LoginPath receives unauthenticated requests for protected views.
	LoginPath string
	// HomePath is the default authenticated landing page. It receives
	// authenticated requests for public views and non-admin requests for
	// admin-only views.
	HomePath string
}

func defaultConfig() Config {
	return Config{
		Toast: ToastConfig{
			DefaultDuration: 5 * time.Second,
		},
		Bootstrap: BootstrapConfig{
			SkipExpiredToken: true,
			ClockSkew:        30 * time.Second,
		},
		Routes: RouteConfig{
			LoginPath: "/login",
			HomePath:  "/dashboard",
		},
	}
}

// Validate rejects configurations the state machine cannot honor.
func (c Config) Validate() error {
	if c.Toast.DefaultDuration < 0 {
		return errors.New("toast duration must not be negative")
	}
	if c.Bootstrap.ClockSkew < 0 || c.Bootstrap.ClockSkew > 5*time.Minute {
		return errors.New("bootstrap clock skew out of range")
	}
	if !strings.HasPrefix(c.Routes.LoginPath, "/") {
		return errors.New("login path must be absolute")
	}
	if !strings.HasPrefix(c.Routes.HomePath, "/") {
		return errors.New("home path must be absolute")
	}
	return nil
}
