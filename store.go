package sessionkit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/novexa/sessionkit/credstore"
	"github.com/novexa/sessionkit/notify"
)

// logoutCallTimeout bounds the best-effort server logout call, which runs
// detached from the caller's context.
const logoutCallTimeout = 5 * time.Second

// Store is the single source of truth for "who is logged in". It is built
// via [Builder] and starts in the bootstrapping state: Loading is true until
// the first [Store.Bootstrap] completes.
//
// All public operations are total: API failures come back inside result
// values and are surfaced to the user through the notify channel, never as a
// panic or an unwrapped transport error.
type Store struct {
	config   Config
	api      API
	creds    credstore.Store
	notifier *notify.Center
	logger   *zap.Logger
	metrics  *Metrics
	now      func() time.Time

	mu            sync.Mutex
	user          *Identity
	pair          credstore.Pair
	loading       bool
	bootstrapping bool
	busy          bool
}

// Snapshot returns an immutable view of the session for guard decisions and
// view rendering.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		User:          s.user,
		Loading:       s.loading,
		Authenticated: s.user != nil,
	}
}

// AccessToken returns the current bearer token, or "" when unauthenticated.
// It satisfies restapi.TokenSource so the service wrappers can attach
// Authorization headers.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair.Access
}

// Notifier exposes the toast channel so the display layer can subscribe and
// other callers can post.
func (s *Store) Notifier() *notify.Center {
	return s.notifier
}

// MetricsSnapshot copies the session counters.
func (s *Store) MetricsSnapshot() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// Bootstrap restores a persisted session, once, at process start.
//
// With no (or a partial) stored credential pair it settles into the
// unauthenticated state without any server call. With a complete pair it
// asks the API for the current user; a rejection is handled exactly like
// logout and is never surfaced as an error or a toast, since a stale token
// on cold start is an expected steady-state occurrence.
//
// Loading stays true for the whole call and is set false exactly once, as
// the last step. A concurrent second call is rejected with
// [ErrBootstrapInFlight]. Bootstrap also holds the mutating-operation slot,
// so a login racing a slow restore gets [ErrOperationInFlight] instead of
// having its fresher session overwritten by the restored one.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	if s.bootstrapping {
		s.mu.Unlock()
		return ErrBootstrapInFlight
	}
	if s.busy {
		s.mu.Unlock()
		return ErrOperationInFlight
	}
	s.bootstrapping = true
	s.busy = true
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.bootstrapping = false
		s.busy = false
		s.loading = false
		s.mu.Unlock()
	}()

	pair, rawIdentity, err := s.creds.Load(ctx)
	if err != nil {
		s.logger.Warn("credential load failed, starting unauthenticated", zap.Error(err))
		pair, rawIdentity = credstore.Pair{}, nil
	}

	// One token without the other is a remnant of a torn write. Never use
	// it; drop it and start clean.
	if !pair.Empty() && !pair.Complete() {
		s.logger.Warn("partial credential pair found, clearing")
		if err := s.creds.Clear(ctx); err != nil {
			s.logger.Warn("credential clear failed", zap.Error(err))
		}
		pair, rawIdentity = credstore.Pair{}, nil
	}

	if !pair.Complete() || len(rawIdentity) == 0 {
		s.metrics.Inc(MetricBootstrapAnonymous)
		return nil
	}

	if s.config.Bootstrap.SkipExpiredToken && tokenExpired(pair.Access, s.now(), s.config.Bootstrap.ClockSkew) {
		s.logger.Info("stored access token expired, discarding session")
		s.clearSession(ctx, pair.Refresh, true)
		s.metrics.Inc(MetricBootstrapRejected)
		return nil
	}

	user, err := s.api.CurrentUser(ctx, pair.Access)
	if err != nil {
		s.logger.Info("auth check failed, discarding session", zap.Error(err))
		s.clearSession(ctx, pair.Refresh, true)
		s.metrics.Inc(MetricBootstrapRejected)
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.pair = pair
	s.mu.Unlock()
	s.metrics.Inc(MetricBootstrapAuthenticated)
	return nil
}

// Login authenticates against the platform. identifier is an email address
// or an opaque user id; its shape is the server's business.
//
// On success the token pair and normalized identity are persisted together,
// the snapshot flips to authenticated, and a success toast is posted. On
// rejection nothing about the session changes, no partial credentials are
// written, and an error toast carries the server message or a generic
// fallback. The only non-nil error is [ErrOperationInFlight].
func (s *Store) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	resp, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		msg := userMessage(err, msgLoginFailed)
		s.logger.Info("login rejected", zap.Error(err))
		s.notifier.Error(msg)
		s.metrics.Inc(MetricLoginFailure)
		return &LoginResult{Success: false, Error: msg}, nil
	}

	user := resp.User
	if user == nil {
		user = NewIdentity(resp.UserID, usernamePart(identifier), identifier, resp.IsAdmin)
	}
	pair := credstore.Pair{Access: resp.Access, Refresh: resp.Refresh}

	s.persist(ctx, pair, user)

	s.mu.Lock()
	s.user = user
	s.pair = pair
	s.mu.Unlock()

	s.notifier.Success(msgLoginOK)
	s.metrics.Inc(MetricLoginSuccess)
	return &LoginResult{Success: true, User: user}, nil
}

// Register creates an account. Registration is not login in this system:
// session state never changes here, whatever the outcome.
//
// Server-side field validation errors are joined "field: message" into one
// toast and also returned structurally for inline form display. The only
// non-nil error is [ErrOperationInFlight].
func (s *Store) Register(ctx context.Context, userData map[string]any) (*RegisterResult, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	data, err := s.api.Register(ctx, userData)
	if err != nil {
		res := &RegisterResult{Success: false, Error: msgRegisterFail}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if apiErr.Message != "" {
				res.Error = apiErr.Message
			}
			if summary := apiErr.FieldSummary(); summary != "" {
				res.Error = summary
				res.FieldErrors = apiErr.Fields
			}
		}
		s.logger.Info("registration rejected", zap.Error(err))
		s.notifier.Error(res.Error)
		s.metrics.Inc(MetricRegisterFailure)
		return res, nil
	}

	s.notifier.Success(msgRegisterOK)
	s.metrics.Inc(MetricRegisterSuccess)
	return &RegisterResult{Success: true, Data: data}, nil
}

// Logout tears the session down. The server call is fire-and-forget (its
// failure is only logged); the storage clear is issued before the in-memory
// fields are dropped, so a subsequent Bootstrap can never resurrect stale
// credentials. Calling Logout when already logged out is a no-op beyond a
// redundant storage clear.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	refresh := s.pair.Refresh
	s.mu.Unlock()

	s.clearSession(ctx, refresh, true)
	s.metrics.Inc(MetricLogout)
	return nil
}

// Refresh rotates the token pair using the stored refresh token. A rejected
// rotation downgrades to unauthenticated exactly like a failed bootstrap;
// the observable outcome is the snapshot, not an error. Returns
// [ErrNotAuthenticated] when no session exists.
func (s *Store) Refresh(ctx context.Context) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	refresh := s.pair.Refresh
	user := s.user
	s.mu.Unlock()

	if user == nil || refresh == "" {
		return ErrNotAuthenticated
	}

	access, rotated, err := s.api.Refresh(ctx, refresh)
	if err != nil {
		s.logger.Info("token refresh rejected, discarding session", zap.Error(err))
		s.clearSession(ctx, refresh, true)
		s.metrics.Inc(MetricRefreshFailure)
		return nil
	}
	if rotated == "" {
		// Backend variants that do not rotate keep the old refresh token.
		rotated = refresh
	}

	pair := credstore.Pair{Access: access, Refresh: rotated}
	s.persist(ctx, pair, user)

	s.mu.Lock()
	s.pair = pair
	s.mu.Unlock()
	s.metrics.Inc(MetricRefreshSuccess)
	return nil
}

// ForgotPassword starts password recovery. No session state changes; the
// outcome is surfaced as a toast and returned as a result.
func (s *Store) ForgotPassword(ctx context.Context, email string) *OpResult {
	intent, err := s.api.ForgotPassword(ctx, email)
	if err != nil {
		msg := userMessage(err, msgForgotFail)
		s.logger.Info("forgot-password rejected", zap.Error(err))
		s.notifier.Error(msg)
		return &OpResult{Success: false, Error: msg}
	}

	msg := intent.Message
	if msg == "" {
		msg = "Password reset instructions sent."
	}
	s.notifier.Success(msg)
	return &OpResult{Success: true, Message: msg}
}

// ResetPassword completes password recovery with a reset token. No session
// state changes.
func (s *Store) ResetPassword(ctx context.Context, token, newPassword string) *OpResult {
	if err := s.api.ResetPassword(ctx, token, newPassword); err != nil {
		msg := userMessage(err, msgResetFail)
		s.logger.Info("password reset rejected", zap.Error(err))
		s.notifier.Error(msg)
		return &OpResult{Success: false, Error: msg}
	}

	s.notifier.Success(msgResetOK)
	return &OpResult{Success: true, Message: msgResetOK}
}

// acquire takes the single mutating-operation slot. Calling forms are
// expected to disable their submit controls while a call is outstanding;
// this guard backstops the ones that do not.
func (s *Store) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrOperationInFlight
	}
	s.busy = true
	return nil
}

func (s *Store) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// clearSession is the shared logout cleanup: optional fire-and-forget server
// call, storage clear, then in-memory clear, in that order.
func (s *Store) clearSession(ctx context.Context, refresh string, serverLogout bool) {
	if serverLogout && refresh != "" {
		detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutCallTimeout)
		go func() {
			defer cancel()
			if err := s.api.Logout(detached, refresh); err != nil {
				s.logger.Warn("server logout failed", zap.Error(err))
			}
		}()
	}

	if err := s.creds.Clear(ctx); err != nil {
		s.logger.Warn("credential clear failed", zap.Error(err))
	}

	s.mu.Lock()
	s.user = nil
	s.pair = credstore.Pair{}
	s.mu.Unlock()
}

// persist writes the pair and identity together. Persistence failure keeps
// the in-memory session authoritative; it only costs the user a re-login on
// the next cold start.
func (s *Store) persist(ctx context.Context, pair credstore.Pair, user *Identity) {
	identityJSON, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn("identity encode failed, session not persisted", zap.Error(err))
		return
	}
	if err := s.creds.Save(ctx, pair, identityJSON); err != nil {
		s.logger.Warn("credential save failed, session not persisted", zap.Error(err))
	}
}

// userMessage extracts a server-supplied message or falls back.
func userMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// usernamePart synthesizes a username from a login identifier: everything
// before the '@' of an email, or the identifier itself.
func usernamePart(identifier string) string {
	if i := strings.IndexByte(identifier, '@'); i > 0 {
		return identifier[:i]
	}
	return identifier
}
