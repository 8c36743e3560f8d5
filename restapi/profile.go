package restapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/novexa/sessionkit"
)

// ProfileService wraps the user-profile endpoints.
type ProfileService struct {
	c *Client
}

// Profile returns the profile endpoint wrapper.
func (c *Client) Profile() *ProfileService {
	return &ProfileService{c: c}
}

// Get fetches the caller's profile as a normalized identity.
func (s *ProfileService) Get(ctx context.Context) (*sessionkit.Identity, error) {
	var raw json.RawMessage
	if err := s.c.do(ctx, http.MethodGet, "/users/profile/", "", nil, &raw); err != nil {
		return nil, err
	}
	return sessionkit.NormalizeIdentity(raw)
}

// Update patches profile fields and returns the normalized result.
func (s *ProfileService) Update(ctx context.Context, data map[string]any) (*sessionkit.Identity, error) {
	var raw json.RawMessage
	if err := s.c.do(ctx, http.MethodPatch, "/users/profile/", "", data, &raw); err != nil {
		return nil, err
	}
	return sessionkit.NormalizeIdentity(raw)
}

// ChangePassword rotates the account password. The backend expects the new
// password twice.
func (s *ProfileService) ChangePassword(ctx context.Context, oldPassword, newPassword string) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodPost, "/users/change-password/", "", map[string]any{
		"old_password":     oldPassword,
		"new_password":     newPassword,
		"confirm_password": newPassword,
	}, &out)
	return out, err
}
