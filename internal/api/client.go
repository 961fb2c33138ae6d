// Package api wraps the shop backend's REST endpoints. It is a thin I/O
// layer: request building, status checks, JSON decoding, and error
// classification. All policy (caching, validation, aggregation) lives with
// the callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kunalgarg/bahi/internal/common"
	"github.com/kunalgarg/bahi/internal/filter"
	"github.com/kunalgarg/bahi/internal/model"
)

// Client talks to the ledger backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	retry      common.RetryOptions
}

// New creates a backend client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		retry:      common.RetryOptions{MaxAttempts: 3},
	}
}

// FetchClients returns the full client directory.
func (c *Client) FetchClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := c.getWithRetry(ctx, "/api/clients/all", "", &clients); err != nil {
		return nil, common.NewFetchError("clients", err)
	}
	return clients, nil
}

// CreateClient adds a directory entry. The caller refreshes the cache
// afterwards.
func (c *Client) CreateClient(ctx context.Context, client model.Client) error {
	if err := c.send(ctx, http.MethodPost, "/api/clients/add", client); err != nil {
		return common.NewWriteError("client create", err)
	}
	return nil
}

// UpdateClient edits a directory entry.
func (c *Client) UpdateClient(ctx context.Context, id int64, client model.Client) error {
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/api/clients/edit/%d", id), client); err != nil {
		return common.NewWriteError("client update", err)
	}
	return nil
}

// DeleteClient removes a directory entry.
func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	if err := c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/clients/delete/%d", id), nil); err != nil {
		return common.NewWriteError("client delete", err)
	}
	return nil
}

// FetchSales lists sale entries, optionally narrowed to one client. The
// backend exposes per-client narrowing as a path, not a query parameter.
func (c *Client) FetchSales(ctx context.Context, clientID *int64) ([]model.Sale, error) {
	path := "/api/sales/all-sales/all"
	if clientID != nil {
		path = fmt.Sprintf("/api/sales/by-client/%d", *clientID)
	}
	var sales []model.Sale
	if err := c.getWithRetry(ctx, path, "", &sales); err != nil {
		return nil, common.NewFetchError("sales", err)
	}
	return sales, nil
}

// CreateSale records a new sale or return entry.
func (c *Client) CreateSale(ctx context.Context, sale model.Sale) error {
	if err := c.send(ctx, http.MethodPost, "/api/sales/sale-entry/add", sale); err != nil {
		return common.NewWriteError("sale create", err)
	}
	return nil
}

// UpdateSale edits a sale entry in place.
func (c *Client) UpdateSale(ctx context.Context, id int64, sale model.Sale) error {
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/api/sales/edit/%d", id), sale); err != nil {
		return common.NewWriteError("sale update", err)
	}
	return nil
}

// DeleteSale removes a sale entry.
func (c *Client) DeleteSale(ctx context.Context, id int64) error {
	if err := c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/sales/delete/%d", id), nil); err != nil {
		return common.NewWriteError("sale delete", err)
	}
	return nil
}

// FetchProfit returns the profit summary for a validated parameter set.
func (c *Client) FetchProfit(ctx context.Context, params filter.Params) (model.ProfitSummary, error) {
	var summary model.ProfitSummary
	if err := c.getWithRetry(ctx, "/api/sales/profit/by-date-range", params.Encode(), &summary); err != nil {
		return model.ProfitSummary{}, common.NewFetchError("profit", err)
	}
	return summary, nil
}

// FetchDeposits lists all deposit entries.
func (c *Client) FetchDeposits(ctx context.Context) ([]model.Deposit, error) {
	var deposits []model.Deposit
	if err := c.getWithRetry(ctx, "/api/deposits/all", "", &deposits); err != nil {
		return nil, common.NewFetchError("deposits", err)
	}
	return deposits, nil
}

// CreateDeposit records a new deposit.
func (c *Client) CreateDeposit(ctx context.Context, deposit model.Deposit) error {
	if err := c.send(ctx, http.MethodPost, "/api/deposits/add", deposit); err != nil {
		return common.NewWriteError("deposit create", err)
	}
	return nil
}

// UpdateDeposit edits a deposit's amount and note.
func (c *Client) UpdateDeposit(ctx context.Context, id int64, patch model.DepositDraft) error {
	body := struct {
		Amount decimal.Decimal `json:"amount"`
		Note   string          `json:"note"`
	}{Note: patch.Note}
	if patch.Amount != nil {
		body.Amount = *patch.Amount
	}
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/api/deposits/update/%d", id), body); err != nil {
		return common.NewWriteError("deposit update", err)
	}
	return nil
}

// DeleteDeposit removes a deposit entry.
func (c *Client) DeleteDeposit(ctx context.Context, id int64) error {
	if err := c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/deposits/delete/%d", id), nil); err != nil {
		return common.NewWriteError("deposit delete", err)
	}
	return nil
}

// GenerateSalesPDF asks the backend to render the filtered sales report and
// returns the raw document bytes. The blob is opaque here.
func (c *Client) GenerateSalesPDF(ctx context.Context, params filter.Params) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/pdf/sales", params.Encode(), nil)
	if err != nil {
		return nil, common.NewFetchError("pdf", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.NewFetchError("pdf", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, common.NewFetchError("pdf", statusError(resp))
	}
	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, common.NewFetchError("pdf", err)
	}
	return blob, nil
}

// Login posts credentials. The backend's response body is opaque; only the
// status matters here.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/login", "", body)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return common.ErrUnauthorized
	default:
		return statusError(resp)
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, query string, body any) (*http.Request, error) {
	url := c.baseURL + path
	if query != "" {
		url += "?" + query
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// get issues a single JSON GET.
func (c *Client) get(ctx context.Context, path, query string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}

	slog.Debug("backend request", "method", http.MethodGet, "path", path, "query", query)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getWithRetry retries idempotent reads with backoff. Writes never come
// through here.
func (c *Client) getWithRetry(ctx context.Context, path, query string, out any) error {
	return common.WithRetry(ctx, func() error {
		return c.get(ctx, path, query, out)
	}, c.retry)
}

// send issues a single-shot mutation: it either succeeds or fails, no
// retries.
func (c *Client) send(ctx context.Context, method, path string, body any) error {
	req, err := c.newRequest(ctx, method, path, "", body)
	if err != nil {
		return err
	}

	slog.Debug("backend request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(resp)
	}
	// Mutation responses are plain-text acknowledgements; drain and drop.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("backend returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
}
