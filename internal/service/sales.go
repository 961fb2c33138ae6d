package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kunalgarg/bahi/internal/aggregate"
	"github.com/kunalgarg/bahi/internal/clock"
	"github.com/kunalgarg/bahi/internal/common"
	"github.com/kunalgarg/bahi/internal/editsession"
	"github.com/kunalgarg/bahi/internal/filter"
	"github.com/kunalgarg/bahi/internal/model"
)

// SalesService orchestrates the sale views: listing with local filters and
// grouping, entry, in-place edits, profit queries, the dashboard, and PDF
// export.
type SalesService struct {
	api      SalesAPI
	docs     DocumentAPI
	clients  *ClientService
	clock    *clock.Clock
	editor   *editsession.Editor[model.SaleDraft]
	validate *validator.Validate
}

// NewSalesService wires the sales collaborators.
func NewSalesService(api SalesAPI, docs DocumentAPI, clients *ClientService, clk *clock.Clock) *SalesService {
	return &SalesService{
		api:      api,
		docs:     docs,
		clients:  clients,
		clock:    clk,
		editor:   editsession.NewEditor[model.SaleDraft](),
		validate: newValidator(),
	}
}

// List fetches sale entries, resolves client names against the shared
// cache, applies the optional inclusive date window locally, and groups the
// result into date buckets for display.
func (s *SalesService) List(ctx context.Context, clientID *int64, fromDay, toDay string) ([]aggregate.Bucket[model.Sale], error) {
	s.ensureClients(ctx)

	sales, err := s.api.FetchSales(ctx, clientID)
	if err != nil {
		return nil, err
	}

	directory := s.clients.Cache().Get()
	for i := range sales {
		sales[i].ClientName = model.ResolveClientName(directory, sales[i].ClientID)
	}

	sales = aggregate.FilterByDateWindow(sales, func(e model.Sale) string { return e.SaleDateTime }, fromDay, toDay)
	return aggregate.GroupByDate(sales, func(e model.Sale) string { return e.SaleDateTime }), nil
}

// Add validates and records a new sale or return entry. A missing timestamp
// defaults to the current wall clock at second precision; minute-precision
// input is completed with seconds before transmission.
func (s *SalesService) Add(ctx context.Context, in SaleInput) error {
	if err := s.validate.Struct(in); err != nil {
		return asValidationError(err)
	}

	ts := in.SaleDateTime
	if ts == "" {
		ts = s.clock.Format(s.clock.Now(), clock.Second)
	} else {
		parsed, err := s.clock.ParseWire(ts)
		if err != nil {
			return common.NewValidationError("sale date-time is malformed", "saleDateTime")
		}
		ts = s.clock.Format(parsed, clock.Second)
	}

	sale := model.NewSale(in.ClientID, in.AccessoryName, in.Quantity, in.TotalPrice, in.Profit, ts, in.ReturnFlag)
	sale.Note = in.Note
	return s.api.CreateSale(ctx, sale)
}

// BeginEdit opens (or resumes) the edit session for a sale and returns the
// buffer to mutate.
func (s *SalesService) BeginEdit(sale model.Sale) *model.SaleDraft {
	return s.editor.Begin(sale.ID, sale.Draft())
}

// DiscardEdit abandons the in-progress edit; the record keeps its stored
// values.
func (s *SalesService) DiscardEdit(id int64) error {
	return s.editor.Discard(id)
}

// EditState reports whether the sale currently has an edit in progress.
func (s *SalesService) EditState(id int64) editsession.State {
	return s.editor.State(id)
}

// CommitEdit validates the buffer, writes the patch, and applies it to the
// record only after the backend confirms. A failed write keeps the session
// editing so the user can retry.
func (s *SalesService) CommitEdit(ctx context.Context, sale *model.Sale) error {
	return s.editor.Commit(ctx, sale.ID,
		func(d model.SaleDraft) error {
			if d.TotalPrice == nil {
				return common.NewValidationError("amount cannot be empty", "totalPrice")
			}
			return nil
		},
		func(ctx context.Context, d model.SaleDraft) error {
			patch := *sale
			patch.Apply(d)
			// Fractional seconds never go back to the backend.
			patch.SaleDateTime, _, _ = strings.Cut(patch.SaleDateTime, ".")
			return s.api.UpdateSale(ctx, sale.ID, patch)
		},
		func(d model.SaleDraft) { sale.Apply(d) },
	)
}

// Delete removes a sale entry. The caller refetches its list on success.
func (s *SalesService) Delete(ctx context.Context, id int64) error {
	return s.api.DeleteSale(ctx, id)
}

// Profit validates the filter and asks the backend for the period's
// totals.
func (s *SalesService) Profit(ctx context.Context, spec filter.Spec) (model.ProfitSummary, error) {
	params, err := spec.Validate()
	if err != nil {
		return model.ProfitSummary{}, err
	}
	return s.api.FetchProfit(ctx, params)
}

// Dashboard fetches all sales and reshapes them into the period's chart
// data and statistics.
func (s *SalesService) Dashboard(ctx context.Context, period aggregate.Period) (aggregate.DashboardSummary, error) {
	sales, err := s.api.FetchSales(ctx, nil)
	if err != nil {
		return aggregate.DashboardSummary{}, err
	}
	return aggregate.BuildDashboard(sales, period, s.clock)
}

// ExportPDF validates the filter and returns the rendered report blob.
func (s *SalesService) ExportPDF(ctx context.Context, spec filter.Spec) ([]byte, error) {
	params, err := spec.Validate()
	if err != nil {
		return nil, err
	}
	return s.docs.GenerateSalesPDF(ctx, params)
}

// ensureClients triggers the lazy directory load. A fetch failure is not
// fatal to the view: names degrade to "Unknown" and the last snapshot
// stays.
func (s *SalesService) ensureClients(ctx context.Context) {
	if err := s.clients.Ensure(ctx); err != nil {
		slog.WarnContext(ctx, "client directory load failed, using last snapshot", "error", err)
	}
}
