package restapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// FundsService wraps the deposit/withdrawal endpoints. Payload shapes are
// owned by the server and passed through untyped; approval and balance
// computation happen entirely on the backend.
type FundsService struct {
	c *Client
}

// Funds returns the funds endpoint wrapper.
func (c *Client) Funds() *FundsService {
	return &FundsService{c: c}
}

// Deposit requests a deposit via the given payment method.
func (s *FundsService) Deposit(ctx context.Context, amount float64, method string) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodPost, "/funds/deposit/", "", map[string]any{
		"amount":         amount,
		"payment_method": method,
	}, &out)
	return out, err
}

// Withdraw requests a withdrawal; approval is a backend concern.
func (s *FundsService) Withdraw(ctx context.Context, amount float64, method string) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodPost, "/funds/withdraw/", "", map[string]any{
		"amount":         amount,
		"payment_method": method,
	}, &out)
	return out, err
}

// Transactions pages through the transaction history.
func (s *FundsService) Transactions(ctx context.Context, page, limit int) (map[string]any, error) {
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/funds/transactions/?"+q.Encode(), "", nil, &out)
	return out, err
}

// Balance fetches the current balances.
func (s *FundsService) Balance(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := s.c.do(ctx, http.MethodGet, "/funds/balance/", "", nil, &out)
	return out, err
}
