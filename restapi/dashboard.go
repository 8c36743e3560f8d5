package restapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DashboardService wraps the dashboard read endpoints. All aggregation
// happens on the server; responses pass through untyped.
type DashboardService struct {
	c *Client
}

// Dashboard returns the dashboard endpoint wrapper.
func (c *Client) Dashboard() *DashboardService {
	return &DashboardService{c: c}
}

// Stats fetches the headline dashboard figures.
func (s *DashboardService) Stats(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/dashboard/stats/", "", nil, &out)
	return out, err
}

// Performance fetches performance data for a period such as "7d".
func (s *DashboardService) Performance(ctx context.Context, period string) (map[string]any, error) {
	q := url.Values{"period": {period}}
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/dashboard/performance/?"+q.Encode(), "", nil, &out)
	return out, err
}

// FundAllocation fetches the portfolio allocation breakdown.
func (s *DashboardService) FundAllocation(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/dashboard/fund-allocation/", "", nil, &out)
	return out, err
}

// RecentTransactions fetches the most recent ledger entries.
func (s *DashboardService) RecentTransactions(ctx context.Context, limit int) (map[string]any, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/dashboard/transactions/?"+q.Encode(), "", nil, &out)
	return out, err
}
