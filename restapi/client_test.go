package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/novexa/sessionkit"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, opts...)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("request body: %v", err)
	}
	return body
}

func TestLoginFullUserObject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login/" {
			t.Fatalf("%s %s", r.Method, r.URL.Path)
		}
		body := decodeBody(t, r)
		if body["email_or_user_id"] != "ana@x.com" || body["password"] != "secret" {
			t.Fatalf("body = %v", body)
		}
		w.Write([]byte(`{"access":"A","refresh":"R","user":{"id":7,"username":"ana","is_admin":true}}`))
	})

	resp, err := c.Login(context.Background(), "ana@x.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Access != "A" || resp.Refresh != "R" {
		t.Fatalf("tokens = %q/%q", resp.Access, resp.Refresh)
	}
	if resp.User == nil || !resp.User.Admin || resp.User.Username != "ana" {
		t.Fatalf("user = %+v", resp.User)
	}
}

func TestLoginSynthesisFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		// Backend variant that returns only enough to synthesize a user.
		w.Write([]byte(`{"access":"A","refresh":"R","user_id":42,"is_admin":true}`))
	})

	resp, err := c.Login(context.Background(), "ana@x.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User != nil {
		t.Fatalf("user should be absent, got %+v", resp.User)
	}
	if resp.UserID != "42" || !resp.IsAdmin {
		t.Fatalf("user_id=%q is_admin=%v", resp.UserID, resp.IsAdmin)
	}
}

func TestLoginRejectionMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid credentials"}`))
	})

	_, err := c.Login(context.Background(), "ana@x.com", "wrong")
	var apiErr *sessionkit.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid credentials" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestRegisterFieldErrorDecode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"email":["already taken"],"username":"required"}`))
	})

	_, err := c.Register(context.Background(), map[string]any{"email": "dup@x.com"})
	var apiErr *sessionkit.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v", err)
	}
	if got := apiErr.Fields["email"]; len(got) != 1 || got[0] != "already taken" {
		t.Fatalf("email errors = %v", apiErr.Fields)
	}
	// A bare string value is promoted to a single-message list.
	if got := apiErr.Fields["username"]; len(got) != 1 || got[0] != "required" {
		t.Fatalf("username errors = %v", apiErr.Fields)
	}
	if apiErr.FieldSummary() != "email: already taken, username: required" {
		t.Fatalf("summary = %q", apiErr.FieldSummary())
	}
}

func TestCurrentUserBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-A" {
			t.Fatalf("authorization = %q", got)
		}
		w.Write([]byte(`{"id":1,"username":"ana","isAdmin":true}`))
	})

	user, err := c.CurrentUser(context.Background(), "tok-A")
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if !user.Admin || user.Username != "ana" {
		t.Fatalf("user = %+v", user)
	}
}

func TestRefreshWire(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token/refresh/" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		if body := decodeBody(t, r); body["refresh"] != "R1" {
			t.Fatalf("body = %v", body)
		}
		w.Write([]byte(`{"access":"A2","refresh":"R2"}`))
	})

	access, refresh, err := c.Refresh(context.Background(), "R1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access != "A2" || refresh != "R2" {
		t.Fatalf("rotated = %q/%q", access, refresh)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/forgot-password/":
			if body := decodeBody(t, r); body["email"] != "ana@x.com" {
				t.Fatalf("body = %v", body)
			}
			w.Write([]byte(`{"message":"Reset email sent","token":"stg-token"}`))
		case "/auth/reset-password/":
			body := decodeBody(t, r)
			if body["token"] != "stg-token" || body["password"] != "newpass" {
				t.Fatalf("body = %v", body)
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("path = %s", r.URL.Path)
		}
	})

	intent, err := c.ForgotPassword(context.Background(), "ana@x.com")
	if err != nil {
		t.Fatalf("forgot: %v", err)
	}
	if intent.Message != "Reset email sent" || intent.Token != "stg-token" {
		t.Fatalf("intent = %+v", intent)
	}
	if err := c.ResetPassword(context.Background(), "stg-token", "newpass"); err != nil {
		t.Fatalf("reset: %v", err)
	}
}

func TestMalformedErrorBodyStillStructured(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>upstream exploded</html>`))
	})

	_, err := c.Login(context.Background(), "a", "b")
	var apiErr *sessionkit.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Message != "" || apiErr.Fields != nil {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}
