package sessionkit

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Snapshot is an immutable view of the session, taken under lock. The guard
// package evaluates one on every navigation decision.
//
// Invariant: Authenticated == (User != nil) at rest after every Store
// operation completes.
type Snapshot struct {
	User          *Identity
	Loading       bool
	Authenticated bool
}

// LoginResponse is the decoded payload of the platform login endpoint. The
// backend may return a full user object or only enough fields to synthesize
// one (UserID plus IsAdmin).
type LoginResponse struct {
	Access  string
	Refresh string
	User    *Identity
	UserID  string
	IsAdmin bool
}

// PasswordResetIntent is the decoded payload of the forgot-password
// endpoint. Token is only populated by backends that short-circuit email
// delivery (e.g. staging).
type PasswordResetIntent struct {
	Message string
	Token   string
}

// API is the external platform contract consumed by Store. The canonical
// implementation is restapi.Client; tests substitute fakes.
type API interface {
	Login(ctx context.Context, identifier, password string) (*LoginResponse, error)
	Register(ctx context.Context, userData map[string]any) (map[string]any, error)
	CurrentUser(ctx context.Context, accessToken string) (*Identity, error)
	Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, email string) (*PasswordResetIntent, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// LoginResult is the total outcome of Store.Login. Exactly one of User or
// Error is meaningful.
type LoginResult struct {
	Success bool
	User    *Identity
	Error   string
}

// RegisterResult is the total outcome of Store.Register. FieldErrors carries
// the server's per-field validation map for inline form display; Error holds
// the same information joined into one human-readable message.
type RegisterResult struct {
	Success     bool
	Data        map[string]any
	Error       string
	FieldErrors map[string][]string
}

// OpResult is the outcome of the password-recovery operations, which mutate
// no session state.
type OpResult struct {
	Success bool
	Message string
	Error   string
}

// APIError is a structured non-2xx response from the platform backend.
// restapi returns it for every request-level failure so callers can
// distinguish a server rejection from a transport fault.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: status %d", e.Status)
}

// FieldSummary joins field-level validation errors into one line, first
// message per field, fields in stable order: "email: already taken,
// username: required".
func (e *APIError) FieldSummary() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs := e.Fields[k]
		if len(msgs) == 0 {
			continue
		}
		parts = append(parts, k+": "+msgs[0])
	}
	return strings.Join(parts, ", ")
}
