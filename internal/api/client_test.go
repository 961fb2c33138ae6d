package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunalgarg/bahi/internal/common"
	"github.com/kunalgarg/bahi/internal/filter"
	"github.com/kunalgarg/bahi/internal/model"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(srv.URL, 5*time.Second)
	c.retry = common.RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond}
	return c
}

func TestClient_FetchClients(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clients/all", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]model.Client{{ID: 1, Name: "Asha Traders"}})
	}))

	clients, err := c.FetchClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Asha Traders", clients[0].Name)
}

func TestClient_FetchClients_BackendFailureIsFetchError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.FetchClients(context.Background())
	require.Error(t, err)
	assert.True(t, common.IsFetch(err))
}

func TestClient_FetchClients_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode([]model.Client{{ID: 1, Name: "Asha Traders"}})
	}))

	clients, err := c.FetchClients(context.Background())
	require.NoError(t, err)
	assert.Len(t, clients, 1)
	assert.Equal(t, 2, attempts)
}

func TestClient_FetchSales_PathPerClient(t *testing.T) {
	var gotPath string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode([]model.Sale{})
	}))

	_, err := c.FetchSales(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/sales/all-sales/all", gotPath)

	id := int64(12)
	_, err = c.FetchSales(context.Background(), &id)
	require.NoError(t, err)
	assert.Equal(t, "/api/sales/by-client/12", gotPath)
}

func TestClient_UpdateDeposit_SendsPatchPayload(t *testing.T) {
	var got map[string]any
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/deposits/update/42", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))

	amount := decimal.NewFromInt(2000)
	err := c.UpdateDeposit(context.Background(), 42, model.DepositDraft{Amount: &amount, Note: "updated"})
	require.NoError(t, err)
	assert.Equal(t, "updated", got["note"])
	assert.Equal(t, "2000", got["amount"])
}

func TestClient_UpdateDeposit_FailureIsWriteError(t *testing.T) {
	attempts := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		http.Error(w, "nope", http.StatusBadGateway)
	}))

	amount := decimal.NewFromInt(2000)
	err := c.UpdateDeposit(context.Background(), 42, model.DepositDraft{Amount: &amount})
	require.Error(t, err)
	assert.True(t, common.IsWrite(err))
	// Mutations are single-shot, never retried.
	assert.Equal(t, 1, attempts)
}

func TestClient_FetchProfit_PassesValidatedParams(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		assert.Equal(t, "3", r.URL.Query().Get("clientId"))
		_ = json.NewEncoder(w).Encode(map[string]string{"sale": "4500", "profit": "900"})
	}))

	id := int64(3)
	params, err := filter.Spec{ClientID: &id, Days: 7}.Validate()
	require.NoError(t, err)

	summary, err := c.FetchProfit(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, summary.Sale.Equal(decimal.NewFromInt(4500)))
	assert.True(t, summary.Profit.Equal(decimal.NewFromInt(900)))
}

func TestClient_GenerateSalesPDF(t *testing.T) {
	blob := []byte("%PDF-1.4 fake")
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pdf/sales", r.URL.Path)
		assert.Equal(t, "2025-08-01 00:00:00", r.URL.Query().Get("from"))
		_, _ = w.Write(blob)
	}))

	params, err := filter.Spec{FromDate: "2025-08-01", ToDate: "2025-08-14"}.Validate()
	require.NoError(t, err)

	got, err := c.GenerateSalesPDF(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestClient_Login(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "success", status: http.StatusOK},
		{name: "bad credentials", status: http.StatusUnauthorized, wantErr: common.ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: common.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var creds map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
				assert.Equal(t, "owner", creds["username"])
				w.WriteHeader(tt.status)
			}))

			err := c.Login(context.Background(), "owner", "secret")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
