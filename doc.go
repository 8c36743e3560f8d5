// Package sessionkit is the client-side session and authentication state
// machine for the Novexa investment platform front end. It owns the answer to
// "who is logged in": token lifecycle, user normalization, route protection
// decisions, and toast-driven error surfacing. All business logic (balances,
// KYC, withdrawal approval, referral accounting) lives behind the platform
// REST API, which this package merely calls.
//
// The package is the public surface. It exposes [Store], [Builder], [Config],
// and value types (Identity, Snapshot, LoginResult, etc.). Pluggable parts
// live in sub-packages: credstore (durable token persistence), restapi (the
// HTTP client), guard (route protection), and notify (the toast channel).
//
// # Architecture boundaries
//
//   - Store never lets an error escape its public operations as a panic; API
//     failures come back as result values, and user-visible failure goes
//     exclusively through the notify channel or a guard redirect.
//   - Store methods are safe to call from multiple goroutines after
//     construction through [Builder.Build]; concurrent mutating calls are
//     rejected rather than interleaved.
//   - Construction via Builder is allocation-only; no I/O happens until
//     [Store.Bootstrap].
package sessionkit
