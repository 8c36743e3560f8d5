package sessionkit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Identity is the normalized user record held by the session. It is replaced
// wholesale on every login or refresh and treated as immutable once built.
//
// The platform backend is inconsistent about the admin flag: depending on the
// endpoint it arrives as "is_admin" or "isAdmin". Normalization folds both
// into one boolean and re-emits it under BOTH names at every serialization
// boundary, because downstream consumers read either. All other
// server-supplied fields pass through unmodified.
type Identity struct {
	ID       string
	Username string
	Email    string
	Admin    bool

	// fields holds the original payload (admin keys excluded) so unknown
	// server fields survive a round trip byte-for-byte.
	fields map[string]json.RawMessage
}

// NewIdentity builds an Identity from explicit values, for callers that have
// no raw server payload (e.g. a login response without a user object).
func NewIdentity(id, username, email string, admin bool) *Identity {
	fields := map[string]json.RawMessage{
		"id":       mustRaw(id),
		"username": mustRaw(username),
		"email":    mustRaw(email),
	}
	return &Identity{
		ID:       id,
		Username: username,
		Email:    email,
		Admin:    admin,
		fields:   fields,
	}
}

// NormalizeIdentity decodes a raw server user payload into a normalized
// Identity. Admin state is computed as truthy(is_admin) OR truthy(isAdmin).
func NormalizeIdentity(raw []byte) (*Identity, error) {
	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, fmt.Errorf("normalize identity: %w", err)
	}
	return &id, nil
}

// UnmarshalJSON implements the normalization algorithm. It never fails on
// unknown fields; only malformed JSON is an error.
func (id *Identity) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	admin := truthy(m["is_admin"]) || truthy(m["isAdmin"])
	delete(m, "is_admin")
	delete(m, "isAdmin")

	id.fields = m
	id.Admin = admin
	id.ID = stringField(m["id"])
	id.Username = stringField(m["username"])
	id.Email = stringField(m["email"])
	return nil
}

// MarshalJSON emits every original field unmodified plus the admin flag under
// both "is_admin" and "isAdmin", always equal.
func (id *Identity) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(id.fields)+2)
	for k, v := range id.fields {
		out[k] = v
	}
	if len(id.fields) == 0 {
		out["id"] = mustRaw(id.ID)
		out["username"] = mustRaw(id.Username)
		out["email"] = mustRaw(id.Email)
	}
	adminRaw := json.RawMessage("false")
	if id.Admin {
		adminRaw = json.RawMessage("true")
	}
	out["is_admin"] = adminRaw
	out["isAdmin"] = adminRaw
	return json.Marshal(out)
}

// Field returns the raw JSON value of an arbitrary server-supplied field.
func (id *Identity) Field(name string) (json.RawMessage, bool) {
	switch name {
	case "is_admin", "isAdmin":
		if id.Admin {
			return json.RawMessage("true"), true
		}
		return json.RawMessage("false"), true
	}
	v, ok := id.fields[name]
	return v, ok
}

// truthy mirrors JavaScript Boolean coercion for the admin flag: absent,
// null, false, 0 and "" are false, everything else is true.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// stringField renders an opaque identifier field as a string. Numeric IDs
// (the backend sends both) are formatted without a decimal point.
func stringField(raw json.RawMessage) string {
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
	return strings.TrimSpace(string(raw))
}

func mustRaw(s string) json.RawMessage {
	b, err := json.Marshal(s)
	if err != nil {
		// strings never fail to marshal
		panic(err)
	}
	return json.RawMessage(b)
}
