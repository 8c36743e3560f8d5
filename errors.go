package sessionkit

import "errors"

var (
	// ErrBootstrapInFlight is returned when Bootstrap is called while a
	// previous Bootstrap has not completed.
	ErrBootstrapInFlight = errors.New("bootstrap already in flight")
	// ErrOperationInFlight is returned when a mutating session operation
	// (login, register, logout, refresh) is started while another one is
	// still outstanding.
	ErrOperationInFlight = errors.New("session operation already in flight")
	// ErrNotAuthenticated is returned by operations that require a live
	// session, such as Refresh, when no user is logged in.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrAPIRequired is returned by Builder.Build when no API client was
	// provided.
	ErrAPIRequired = errors.New("api client required")
	// ErrCredentialStoreRequired is returned by Builder.Build when no
	// credential store was provided.
	ErrCredentialStoreRequired = errors.New("credential store required")
	// ErrBuilderUsed is returned by Builder.Build on reuse.
	ErrBuilderUsed = errors.New("builder already used")
)

// Fallback user-facing messages, used when the server does not supply one.
// The exact wording is part of the front-end contract and is asserted by
// consuming views.
const (
	msgLoginOK       = "Login successful!"
	msgLoginFailed   = "Login failed. Please check your credentials."
	msgRegisterOK    = "Registration successful!"
	msgRegisterFail  = "Registration failed. Please try again."
	msgResetOK       = "Password has been reset."
	msgResetFail     = "Password reset failed. Please try again."
	msgForgotFail    = "Unable to process the request. Please try again."
	msgGenericRemote = "Something went wrong. Please try again."
)
