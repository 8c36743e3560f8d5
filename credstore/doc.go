// Package credstore persists the credential pair (access + refresh token)
// and the cached identity record across process restarts. It is the Go
// analogue of the browser localStorage slots the platform front end used:
// three independent values, written together on login and cleared together
// on logout.
//
// A partially present pair (one token without the other) is a bug condition
// left behind by a crash mid-write; stores report it as-is and the session
// store treats it as absent.
package credstore
