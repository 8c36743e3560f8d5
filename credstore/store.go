package credstore

import "context"

// Pair is the access/refresh bearer token pair. Both tokens are written and
// erased together; either both exist or neither does.
type Pair struct {
	Access  string
	Refresh string
}

// Complete reports whether both tokens are present.
func (p Pair) Complete() bool {
	return p.Access != "" && p.Refresh != ""
}

// Empty reports whether neither token is present.
func (p Pair) Empty() bool {
	return p.Access == "" && p.Refresh == ""
}

// Store is the durable persistence contract consumed by the session store.
//
// Save writes the pair and the serialized identity together. Load returns
// whatever is currently stored; absence is a zero Pair and nil identity, not
// an error. Clear removes all three slots unconditionally and never errors
// on already-absent state.
type Store interface {
	Save(ctx context.Context, pair Pair, identity []byte) error
	Load(ctx context.Context) (Pair, []byte, error)
	Clear(ctx context.Context) error
}
