package restapi

import (
	"context"
	"net/http"
	"net/url"
)

// InvestmentsService wraps the investment plan endpoints. Plan terms, yield
// schedules and allocation splits are owned by the backend and pass through
// untyped.
type InvestmentsService struct {
	c *Client
}

// Investments returns the investment endpoint wrapper.
func (c *Client) Investments() *InvestmentsService {
	return &InvestmentsService{c: c}
}

// List fetches the caller's investments.
func (s *InvestmentsService) List(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/investments/", "", nil, &out)
	return out, err
}

// Get fetches one investment by id.
func (s *InvestmentsService) Get(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/investments/"+url.PathEscape(id)+"/", "", nil, &out)
	return out, err
}

// Create opens a new investment. The payload shape is dictated by the plan.
func (s *InvestmentsService) Create(ctx context.Context, data map[string]any) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodPost, "/investments/", "", data, &out)
	return out, err
}

// Update patches an existing investment.
func (s *InvestmentsService) Update(ctx context.Context, id string, data map[string]any) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodPatch, "/investments/"+url.PathEscape(id)+"/", "", data, &out)
	return out, err
}

// Allocations fetches the asset allocation breakdown for an investment.
func (s *InvestmentsService) Allocations(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/investments/"+url.PathEscape(id)+"/allocations/", "", nil, &out)
	return out, err
}

// PaymentsService wraps the granular payment endpoints: per-record deposit
// and withdrawal lookups plus the transaction ledger. [FundsService] is the
// coarse request-oriented counterpart.
type PaymentsService struct {
	c *Client
}

// Payments returns the payment endpoint wrapper.
func (c *Client) Payments() *PaymentsService {
	return &PaymentsService{c: c}
}

// Balance fetches the account balance.
func (s *PaymentsService) Balance(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/balance/", "", nil, &out)
	return out, err
}

// Deposits lists the caller's deposits.
func (s *PaymentsService) Deposits(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/deposits/", "", nil, &out)
	return out, err
}

// Deposit fetches one deposit by id.
func (s *PaymentsService) Deposit(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/deposits/"+url.PathEscape(id)+"/", "", nil, &out)
	return out, err
}

// CreateDeposit submits a new deposit request.
func (s *PaymentsService) CreateDeposit(ctx context.Context, data map[string]any) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodPost, "/deposits/", "", data, &out)
	return out, err
}

// Withdrawals lists the caller's withdrawals.
func (s *PaymentsService) Withdrawals(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/withdrawals/", "", nil, &out)
	return out, err
}

// Withdrawal fetches one withdrawal by id.
func (s *PaymentsService) Withdrawal(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/withdrawals/"+url.PathEscape(id)+"/", "", nil, &out)
	return out, err
}

// CreateWithdrawal submits a new withdrawal request; approval is a backend
// concern.
func (s *PaymentsService) CreateWithdrawal(ctx context.Context, data map[string]any) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodPost, "/withdrawals/", "", data, &out)
	return out, err
}

// Transactions fetches the transaction ledger. filter keys such as "type"
// and "status" are forwarded as query parameters; nil fetches everything.
func (s *PaymentsService) Transactions(ctx context.Context, filter url.Values) (map[string]any, error) {
	path := "/transactions/"
	if len(filter) > 0 {
		path += "?" + filter.Encode()
	}
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, path, "", nil, &out)
	return out, err
}

// ExportTransactions downloads the ledger export (typically CSV) as raw
// bytes.
func (s *PaymentsService) ExportTransactions(ctx context.Context, filter url.Values) ([]byte, error) {
	path := "/transactions/export/"
	if len(filter) > 0 {
		path += "?" + filter.Encode()
	}
	return s.c.download(ctx, path)
}
