// Package restapi is the HTTP client for the platform backend. It owns no
// business logic: every balance, referral tier and approval decision lives
// on the server. The client translates calls into the backend's wire shapes
// and non-2xx responses into structured [sessionkit.APIError] values.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/novexa/sessionkit"
)

// maxErrorBody bounds how much of an error response is parsed for messages.
const maxErrorBody = 1 << 20

// TokenSource supplies the bearer token for authenticated endpoints.
// *sessionkit.Store satisfies it.
type TokenSource interface {
	AccessToken() string
}

// Client talks to the platform REST API. Construct once and share; it is
// safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource wires bearer injection for the authenticated service
// wrappers (funds, referrals, profile, investments, payments, dashboard).
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for the given base URL, e.g.
// "https://api.novexa.example/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

/*
====================================
AUTH ENDPOINTS
====================================
*/

type loginWire struct {
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
	User    json.RawMessage `json:"user"`
	UserID  json.RawMessage `json:"user_id"`
	IsAdmin bool            `json:"is_admin"`
}

// Login implements sessionkit.API. The backend accepts an email or an
// opaque user id in the same field.
func (c *Client) Login(ctx context.Context, identifier, password string) (*sessionkit.LoginResponse, error) {
	var wire loginWire
	err := c.do(ctx, http.MethodPost, "/auth/login/", "", map[string]any{
		"email_or_user_id": identifier,
		"password":         password,
	}, &wire)
	if err != nil {
		return nil, err
	}

	resp := &sessionkit.LoginResponse{
		Access:  wire.Access,
		Refresh: wire.Refresh,
		UserID:  rawString(wire.UserID),
		IsAdmin: wire.IsAdmin,
	}
	if len(wire.User) > 0 && string(wire.User) != "null" {
		user, err := sessionkit.NormalizeIdentity(wire.User)
		if err != nil {
			return nil, err
		}
		resp.User = user
	}
	return resp, nil
}

// Register implements sessionkit.API.
func (c *Client) Register(ctx context.Context, userData map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodPost, "/auth/register/", "", userData, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CurrentUser implements sessionkit.API. The token is passed explicitly so
// the session store can probe a stored token before trusting it.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*sessionkit.Identity, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/auth/user/", accessToken, nil, &raw); err != nil {
		return nil, err
	}
	return sessionkit.NormalizeIdentity(raw)
}

// Refresh implements sessionkit.API. Backends that do not rotate the
// refresh token return it empty.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	var wire struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/token/refresh/", "", map[string]any{
		"refresh": refreshToken,
	}, &wire)
	if err != nil {
		return "", "", err
	}
	return wire.Access, wire.Refresh, nil
}

// Logout implements sessionkit.API. Callers treat it as best-effort.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout/", "", map[string]any{
		"refresh": refreshToken,
	}, nil)
}

// ForgotPassword implements sessionkit.API.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*sessionkit.PasswordResetIntent, error) {
	var wire struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/forgot-password/", "", map[string]any{
		"email": email,
	}, &wire)
	if err != nil {
		return nil, err
	}
	return &sessionkit.PasswordResetIntent{Message: wire.Message, Token: wire.Token}, nil
}

// ResetPassword implements sessionkit.API.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password/", "", map[string]any{
		"token":    token,
		"password": newPassword,
	}, nil)
}

/*
====================================
TRANSPORT
====================================
*/

// do performs one request. token overrides the TokenSource when non-empty;
// an empty token with a nil TokenSource sends no Authorization header.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("restapi: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("restapi: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token == "" && c.tokens != nil {
		token = c.tokens.AccessToken()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("restapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("api rejection",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("restapi: decode response: %w", err)
	}
	return nil
}

// download performs an authenticated GET and returns the body verbatim,
// for endpoints that serve file attachments rather than JSON.
func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("restapi: build request: %w", err)
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("restapi: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, io.LimitReader(resp.Body, maxErrorBody))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("restapi: read download: %w", err)
	}
	return data, nil
}

// decodeError mirrors the front end's response interceptor: "detail" or
// "message" becomes the user-facing message, and any remaining keys mapping
// to strings or string arrays are treated as field validation errors.
func decodeError(status int, body io.Reader) *sessionkit.APIError {
	apiErr := &sessionkit.APIError{Status: status}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return apiErr
	}

	if msg := rawString(payload["detail"]); msg != "" {
		apiErr.Message = msg
	} else if msg := rawString(payload["message"]); msg != "" {
		apiErr.Message = msg
	}

	for field, raw := range payload {
		if field == "detail" || field == "message" {
			continue
		}
		if msgs := rawMessages(raw); len(msgs) > 0 {
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[field] = msgs
		}
	}
	return apiErr
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func rawMessages(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	if s := rawString(raw); s != "" {
		return []string{s}
	}
	return nil
}
