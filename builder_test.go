package sessionkit

import (
	"errors"
	"testing"

	"github.com/novexa/sessionkit/credstore"
)

func TestBuilderRequiresAPI(t *testing.T) {
	_, err := New().WithCredentialStore(credstore.NewMemory()).Build()
	if !errors.Is(err, ErrAPIRequired) {
		t.Fatalf("err = %v, want ErrAPIRequired", err)
	}
}

func TestBuilderRequiresCredentialStore(t *testing.T) {
	_, err := New().WithAPI(&fakeAPI{}).Build()
	if !errors.Is(err, ErrCredentialStoreRequired) {
		t.Fatalf("err = %v, want ErrCredentialStoreRequired", err)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithAPI(&fakeAPI{}).WithCredentialStore(credstore.NewMemory())
	if _, err := b.Build(); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := b.Build(); !errors.Is(err, ErrBuilderUsed) {
		t.Fatalf("second build err = %v, want ErrBuilderUsed", err)
	}
}

func TestBuilderRejectsInvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Routes.LoginPath = "login"

	_, err := New().
		WithConfig(cfg).
		WithAPI(&fakeAPI{}).
		WithCredentialStore(credstore.NewMemory()).
		Build()
	if err == nil {
		t.Fatal("expected validation error for relative login path")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"negative toast duration", func(c *Config) { c.Toast.DefaultDuration = -1 }, false},
		{"negative skew", func(c *Config) { c.Bootstrap.ClockSkew = -1 }, false},
		{"huge skew", func(c *Config) { c.Bootstrap.ClockSkew = 1 << 40 }, false},
		{"relative home path", func(c *Config) { c.Routes.HomePath = "dashboard" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
