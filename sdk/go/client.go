// Package bpofinance provides a Go client for the bpo-finance API
package bpofinance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the bpo-finance API client
type Client struct {
	baseURL     string
	apiKey      string
	bearerToken string
	httpClient  *http.Client
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBearerToken authenticates with a JWT instead of the raw API key
func WithBearerToken(token string) ClientOption {
	return func(c *Client) {
		c.bearerToken = token
	}
}

// NewClient creates a new bpo-finance client. The apiKey may be empty when the
// server runs without authentication.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListPayables lists payables matching the given filters
func (c *Client) ListPayables(ctx context.Context, opts *PayableListOptions) ([]Payable, error) {
	query := url.Values{}
	if opts != nil {
		setIfPresent(query, "status", opts.Status)
		setIfPresent(query, "vendor", opts.Vendor)
		setIfPresent(query, "dueFrom", opts.DueFrom)
		setIfPresent(query, "dueTo", opts.DueTo)
	}

	var result []Payable
	if err := c.do(ctx, "GET", "/api/payables", query, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetPayable fetches a single payable by ID
func (c *Client) GetPayable(ctx context.Context, id string) (*Payable, error) {
	var result Payable
	if err := c.do(ctx, "GET", "/api/payables/"+id, nil, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreatePayable creates a new payable. The record starts as PENDING.
func (c *Client) CreatePayable(ctx context.Context, req *PayableRequest) (*Payable, error) {
	var result Payable
	if err := c.do(ctx, "POST", "/api/payables", nil, req, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePayable replaces the editable fields of an existing payable
func (c *Client) UpdatePayable(ctx context.Context, id string, req *PayableRequest) (*Payable, error) {
	var result Payable
	if err := c.do(ctx, "PUT", "/api/payables/"+id, nil, req, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePayable removes a payable
func (c *Client) DeletePayable(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/api/payables/"+id, nil, nil, http.StatusNoContent, nil)
}

// PayPayable marks a payable as paid
func (c *Client) PayPayable(ctx context.Context, id string) (*Payable, error) {
	var result Payable
	if err := c.do(ctx, "PATCH", "/api/payables/"+id+"/pay", nil, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListReceivables lists receivables matching the given filters
func (c *Client) ListReceivables(ctx context.Context, opts *ReceivableListOptions) ([]Receivable, error) {
	query := url.Values{}
	if opts != nil {
		setIfPresent(query, "status", opts.Status)
		setIfPresent(query, "customer", opts.Customer)
		setIfPresent(query, "dueFrom", opts.DueFrom)
		setIfPresent(query, "dueTo", opts.DueTo)
	}

	var result []Receivable
	if err := c.do(ctx, "GET", "/api/receivables", query, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetReceivable fetches a single receivable by ID
func (c *Client) GetReceivable(ctx context.Context, id string) (*Receivable, error) {
	var result Receivable
	if err := c.do(ctx, "GET", "/api/receivables/"+id, nil, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateReceivable creates a new receivable. The record starts as PENDING.
func (c *Client) CreateReceivable(ctx context.Context, req *ReceivableRequest) (*Receivable, error) {
	var result Receivable
	if err := c.do(ctx, "POST", "/api/receivables", nil, req, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateReceivable replaces the editable fields of an existing receivable
func (c *Client) UpdateReceivable(ctx context.Context, id string, req *ReceivableRequest) (*Receivable, error) {
	var result Receivable
	if err := c.do(ctx, "PUT", "/api/receivables/"+id, nil, req, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteReceivable removes a receivable
func (c *Client) DeleteReceivable(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/api/receivables/"+id, nil, nil, http.StatusNoContent, nil)
}

// ReceiveReceivable marks a receivable as received
func (c *Client) ReceiveReceivable(ctx context.Context, id string) (*Receivable, error) {
	var result Receivable
	if err := c.do(ctx, "PATCH", "/api/receivables/"+id+"/receive", nil, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, wantStatus int, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case c.bearerToken != "":
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	case c.apiKey != "":
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return parseAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func parseAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var apiErr APIError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Label != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return fmt.Errorf("API error: %s (status %d)", string(raw), resp.StatusCode)
}

func setIfPresent(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
