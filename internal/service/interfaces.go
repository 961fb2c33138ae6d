// Package service defines the collaborator contracts the core consumes and
// the orchestration that ties cache, filters, edits, and aggregation
// together. Everything behind these interfaces is a thin HTTP wrapper.
package service

import (
	"context"

	"github.com/kunalgarg/bahi/internal/filter"
	"github.com/kunalgarg/bahi/internal/model"
)

// ClientDirectory is the backend surface for the client list.
type ClientDirectory interface {
	FetchClients(ctx context.Context) ([]model.Client, error)
	CreateClient(ctx context.Context, client model.Client) error
	UpdateClient(ctx context.Context, id int64, client model.Client) error
	DeleteClient(ctx context.Context, id int64) error
}

// SalesAPI is the backend surface for sale entries and their reports.
type SalesAPI interface {
	FetchSales(ctx context.Context, clientID *int64) ([]model.Sale, error)
	CreateSale(ctx context.Context, sale model.Sale) error
	UpdateSale(ctx context.Context, id int64, sale model.Sale) error
	DeleteSale(ctx context.Context, id int64) error
	FetchProfit(ctx context.Context, params filter.Params) (model.ProfitSummary, error)
}

// DepositAPI is the backend surface for deposit entries.
type DepositAPI interface {
	FetchDeposits(ctx context.Context) ([]model.Deposit, error)
	CreateDeposit(ctx context.Context, deposit model.Deposit) error
	UpdateDeposit(ctx context.Context, id int64, patch model.DepositDraft) error
	DeleteDeposit(ctx context.Context, id int64) error
}

// DocumentAPI renders filtered reports into opaque document blobs.
type DocumentAPI interface {
	GenerateSalesPDF(ctx context.Context, params filter.Params) ([]byte, error)
}
