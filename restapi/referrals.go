package restapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ReferralsService wraps the referral-program endpoints. Tier accounting is
// a backend concern; responses pass through untyped.
type ReferralsService struct {
	c *Client
}

// Referrals returns the referral endpoint wrapper.
func (c *Client) Referrals() *ReferralsService {
	return &ReferralsService{c: c}
}

// Stats fetches the caller's referral statistics.
func (s *ReferralsService) Stats(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/referrals/stats/", "", nil, &out)
	return out, err
}

// Code fetches the caller's referral code.
func (s *ReferralsService) Code(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/referrals/code/", "", nil, &out)
	return out, err
}

// MyReferrals lists the users the caller referred.
func (s *ReferralsService) MyReferrals(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/referrals/my-referrals/", "", nil, &out)
	return out, err
}

// Analytics fetches referral analytics for a period such as "30d".
func (s *ReferralsService) Analytics(ctx context.Context, period string) (map[string]any, error) {
	q := url.Values{"period": {period}}
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/referrals/analytics/?"+q.Encode(), "", nil, &out)
	return out, err
}

// Leaderboard fetches the top referrers.
func (s *ReferralsService) Leaderboard(ctx context.Context, limit int) (map[string]any, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/referrals/leaderboard/?"+q.Encode(), "", nil, &out)
	return out, err
}
