package service

import (
	"context"
	"sync"

	"github.com/kunalgarg/bahi/internal/filter"
	"github.com/kunalgarg/bahi/internal/model"
)

// mockDirectory is a test implementation of ClientDirectory that records
// every call for verification.
type mockDirectory struct {
	clients    []model.Client
	fetchErr   error
	createErr  error
	updateErr  error
	deleteErr  error
	fetchCalls int
	created    []model.Client
	updated    []model.Client
	deleted    []int64
	mu         sync.Mutex
}

func (m *mockDirectory) FetchClients(_ context.Context) ([]model.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	out := make([]model.Client, len(m.clients))
	copy(out, m.clients)
	return out, nil
}

func (m *mockDirectory) CreateClient(_ context.Context, client model.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, client)
	m.clients = append(m.clients, client)
	return nil
}

func (m *mockDirectory) UpdateClient(_ context.Context, id int64, client model.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, client)
	for i := range m.clients {
		if m.clients[i].ID == id {
			m.clients[i] = client
		}
	}
	return nil
}

func (m *mockDirectory) DeleteClient(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockSalesAPI is a test implementation of SalesAPI.
type mockSalesAPI struct {
	sales       []model.Sale
	profit      model.ProfitSummary
	fetchErr    error
	createErr   error
	updateErr   error
	deleteErr   error
	profitErr   error
	created     []model.Sale
	updated     []model.Sale
	deleted     []int64
	fetchedFor  []*int64
	profitCalls []filter.Params
}

func (m *mockSalesAPI) FetchSales(_ context.Context, clientID *int64) ([]model.Sale, error) {
	m.fetchedFor = append(m.fetchedFor, clientID)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	out := make([]model.Sale, len(m.sales))
	copy(out, m.sales)
	return out, nil
}

func (m *mockSalesAPI) CreateSale(_ context.Context, sale model.Sale) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, sale)
	return nil
}

func (m *mockSalesAPI) UpdateSale(_ context.Context, _ int64, sale model.Sale) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, sale)
	return nil
}

func (m *mockSalesAPI) DeleteSale(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockSalesAPI) FetchProfit(_ context.Context, params filter.Params) (model.ProfitSummary, error) {
	m.profitCalls = append(m.profitCalls, params)
	if m.profitErr != nil {
		return model.ProfitSummary{}, m.profitErr
	}
	return m.profit, nil
}

// mockDepositAPI is a test implementation of DepositAPI.
type mockDepositAPI struct {
	deposits  []model.Deposit
	fetchErr  error
	createErr error
	updateErr error
	deleteErr error
	created   []model.Deposit
	patched   []model.DepositDraft
	deleted   []int64
}

func (m *mockDepositAPI) FetchDeposits(_ context.Context) ([]model.Deposit, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	out := make([]model.Deposit, len(m.deposits))
	copy(out, m.deposits)
	return out, nil
}

func (m *mockDepositAPI) CreateDeposit(_ context.Context, deposit model.Deposit) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, deposit)
	return nil
}

func (m *mockDepositAPI) UpdateDeposit(_ context.Context, _ int64, patch model.DepositDraft) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.patched = append(m.patched, patch)
	return nil
}

func (m *mockDepositAPI) DeleteDeposit(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockDocumentAPI records the params of every render request.
type mockDocumentAPI struct {
	blob  []byte
	err   error
	calls []filter.Params
}

func (m *mockDocumentAPI) GenerateSalesPDF(_ context.Context, params filter.Params) ([]byte, error) {
	m.calls = append(m.calls, params)
	if m.err != nil {
		return nil, m.err
	}
	return m.blob, nil
}
