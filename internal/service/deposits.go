package service

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/kunalgarg/bahi/internal/aggregate"
	"github.com/kunalgarg/bahi/internal/clock"
	"github.com/kunalgarg/bahi/internal/common"
	"github.com/kunalgarg/bahi/internal/editsession"
	"github.com/kunalgarg/bahi/internal/model"
)

// DepositService orchestrates the deposit ledger view: listing with client
// name resolution, entry, in-place edits of amount and note, and deletes.
type DepositService struct {
	api      DepositAPI
	clients  *ClientService
	clock    *clock.Clock
	editor   *editsession.Editor[model.DepositDraft]
	validate *validator.Validate
}

// NewDepositService wires the deposit collaborators.
func NewDepositService(api DepositAPI, clients *ClientService, clk *clock.Clock) *DepositService {
	return &DepositService{
		api:      api,
		clients:  clients,
		clock:    clk,
		editor:   editsession.NewEditor[model.DepositDraft](),
		validate: newValidator(),
	}
}

// List fetches all deposits, resolves client names against the shared
// cache, and applies the optional client filter locally, preserving order.
func (s *DepositService) List(ctx context.Context, clientID *int64) ([]model.Deposit, error) {
	if err := s.clients.Ensure(ctx); err != nil {
		slog.WarnContext(ctx, "client directory load failed, using last snapshot", "error", err)
	}

	deposits, err := s.api.FetchDeposits(ctx)
	if err != nil {
		return nil, err
	}

	directory := s.clients.Cache().Get()
	for i := range deposits {
		deposits[i].ClientName = model.ResolveClientName(directory, deposits[i].ClientID)
	}

	return aggregate.FilterByClient(deposits, func(d model.Deposit) int64 { return d.ClientID }, clientID), nil
}

// Add validates and records a new deposit. A missing date defaults to the
// current wall clock at minute precision, matching the entry form.
func (s *DepositService) Add(ctx context.Context, in DepositInput) error {
	if err := s.validate.Struct(in); err != nil {
		return asValidationError(err)
	}

	date := in.DepositDate
	if date == "" {
		date = s.clock.Format(s.clock.Now(), clock.Minute)
	} else if _, err := s.clock.ParseWire(date); err != nil {
		return common.NewValidationError("deposit date is malformed", "depositDate")
	}

	return s.api.CreateDeposit(ctx, model.NewDeposit(in.ClientID, date, in.Amount, in.Note))
}

// BeginEdit opens (or resumes) the edit session for a deposit.
func (s *DepositService) BeginEdit(dep model.Deposit) *model.DepositDraft {
	return s.editor.Begin(dep.ID, dep.Draft())
}

// DiscardEdit abandons the in-progress edit, leaving the record untouched.
func (s *DepositService) DiscardEdit(id int64) error {
	return s.editor.Discard(id)
}

// EditState reports whether the deposit currently has an edit in progress.
func (s *DepositService) EditState(id int64) editsession.State {
	return s.editor.State(id)
}

// CommitEdit validates the buffered amount, writes the patch, and applies
// it locally only after the backend confirms.
func (s *DepositService) CommitEdit(ctx context.Context, dep *model.Deposit) error {
	return s.editor.Commit(ctx, dep.ID,
		func(d model.DepositDraft) error {
			if d.Amount == nil {
				return common.NewValidationError("amount cannot be empty", "amount")
			}
			return nil
		},
		func(ctx context.Context, d model.DepositDraft) error {
			return s.api.UpdateDeposit(ctx, dep.ID, d)
		},
		func(d model.DepositDraft) { dep.Apply(d) },
	)
}

// Delete removes a deposit entry. The caller drops it from its local list
// on success.
func (s *DepositService) Delete(ctx context.Context, id int64) error {
	return s.api.DeleteDeposit(ctx, id)
}

// DisplayDate renders a deposit's wire timestamp for humans, e.g.
// "14 May 2025 12:43 AM". Malformed timestamps fall back to the raw wire
// string rather than failing the whole view.
func (s *DepositService) DisplayDate(dep model.Deposit) string {
	ts, err := s.clock.ParseWire(dep.DepositDate)
	if err != nil {
		return dep.DepositDate
	}
	return s.clock.ToDisplay(ts)
}
