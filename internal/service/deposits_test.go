package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunalgarg/bahi/internal/clock"
	"github.com/kunalgarg/bahi/internal/common"
	"github.com/kunalgarg/bahi/internal/editsession"
	"github.com/kunalgarg/bahi/internal/model"
	"github.com/kunalgarg/bahi/internal/refcache"
)

func newDepositFixture(api *mockDepositAPI, dir *mockDirectory) *DepositService {
	clients := NewClientService(dir, refcache.NewClientCache())
	clk := clock.NewFrozen(clock.DefaultOffsetMinutes, frozenInstant)
	return NewDepositService(api, clients, clk)
}

func TestDepositListResolvesNamesAndFilters(t *testing.T) {
	api := &mockDepositAPI{deposits: []model.Deposit{
		{ID: 1, ClientID: 1, DepositDate: "2025-08-14T10:00", Amount: decimal.NewFromInt(500)},
		{ID: 2, ClientID: 2, DepositDate: "2025-08-14T11:00", Amount: decimal.NewFromInt(700)},
		{ID: 3, ClientID: 1, DepositDate: "2025-08-15T09:00", Amount: decimal.NewFromInt(200)},
	}}
	dir := &mockDirectory{clients: []model.Client{{ID: 1, Name: "Asha"}, {ID: 2, Name: "Bilal"}}}
	svc := newDepositFixture(api, dir)

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Asha", all[0].ClientName)
	assert.Equal(t, "Bilal", all[1].ClientName)

	id := int64(1)
	mine, err := svc.List(context.Background(), &id)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, int64(1), mine[0].ID)
	assert.Equal(t, int64(3), mine[1].ID)
}

func TestDepositAdd(t *testing.T) {
	tests := []struct {
		name     string
		input    DepositInput
		wantErr  bool
		wantDate string
	}{
		{
			name:     "missing date defaults to now at minute precision",
			input:    DepositInput{ClientID: 1, Amount: decimal.NewFromInt(500)},
			wantDate: "2025-08-15T18:30",
		},
		{
			name:     "explicit date kept as entered",
			input:    DepositInput{ClientID: 1, Amount: decimal.NewFromInt(500), DepositDate: "2025-08-10T09:45"},
			wantDate: "2025-08-10T09:45",
		},
		{
			name:    "malformed date rejected",
			input:   DepositInput{ClientID: 1, Amount: decimal.NewFromInt(500), DepositDate: "yesterday"},
			wantErr: true,
		},
		{
			name:    "zero amount rejected",
			input:   DepositInput{ClientID: 1},
			wantErr: true,
		},
		{
			name:    "missing client rejected",
			input:   DepositInput{Amount: decimal.NewFromInt(500)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockDepositAPI{}
			svc := newDepositFixture(api, &mockDirectory{})

			err := svc.Add(context.Background(), tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, common.IsValidation(err))
				assert.Empty(t, api.created)
				return
			}
			require.NoError(t, err)
			require.Len(t, api.created, 1)
			assert.Equal(t, tt.wantDate, api.created[0].DepositDate)
		})
	}
}

func TestDepositEditLifecycle(t *testing.T) {
	api := &mockDepositAPI{}
	svc := newDepositFixture(api, &mockDirectory{})

	dep := model.Deposit{ID: 5, ClientID: 1, Amount: decimal.NewFromInt(500), DepositDate: "2025-08-14T10:00"}

	draft := svc.BeginEdit(dep)
	assert.Equal(t, editsession.Editing, svc.EditState(dep.ID))

	newAmount := decimal.NewFromInt(750)
	draft.Amount = &newAmount
	draft.Note = "adjusted"

	require.NoError(t, svc.CommitEdit(context.Background(), &dep))
	assert.Equal(t, editsession.Viewing, svc.EditState(dep.ID))
	assert.True(t, dep.Amount.Equal(newAmount))
	assert.Equal(t, "adjusted", dep.Note)
	require.Len(t, api.patched, 1)
	assert.True(t, api.patched[0].Amount.Equal(newAmount))
}

func TestDepositCommitRejectsClearedAmount(t *testing.T) {
	api := &mockDepositAPI{}
	svc := newDepositFixture(api, &mockDirectory{})

	dep := model.Deposit{ID: 5, Amount: decimal.NewFromInt(500), DepositDate: "2025-08-14T10:00"}
	draft := svc.BeginEdit(dep)
	draft.Amount = nil

	err := svc.CommitEdit(context.Background(), &dep)
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
	assert.Equal(t, editsession.Editing, svc.EditState(dep.ID))
	assert.True(t, dep.Amount.Equal(decimal.NewFromInt(500)))
	assert.Empty(t, api.patched)
}

func TestDepositCommitKeepsBufferOnFailedWrite(t *testing.T) {
	api := &mockDepositAPI{updateErr: errors.New("backend down")}
	svc := newDepositFixture(api, &mockDirectory{})

	dep := model.Deposit{ID: 5, Amount: decimal.NewFromInt(500), DepositDate: "2025-08-14T10:00"}
	draft := svc.BeginEdit(dep)
	newAmount := decimal.NewFromInt(900)
	draft.Amount = &newAmount

	require.Error(t, svc.CommitEdit(context.Background(), &dep))
	assert.Equal(t, editsession.Editing, svc.EditState(dep.ID))
	assert.True(t, dep.Amount.Equal(decimal.NewFromInt(500)))

	api.updateErr = nil
	require.NoError(t, svc.CommitEdit(context.Background(), &dep))
	assert.True(t, dep.Amount.Equal(newAmount))
}

func TestDepositDiscardEdit(t *testing.T) {
	svc := newDepositFixture(&mockDepositAPI{}, &mockDirectory{})

	dep := model.Deposit{ID: 5, Amount: decimal.NewFromInt(500), DepositDate: "2025-08-14T10:00"}
	draft := svc.BeginEdit(dep)
	cleared := decimal.NewFromInt(999)
	draft.Amount = &cleared

	require.NoError(t, svc.DiscardEdit(dep.ID))
	assert.Equal(t, editsession.Viewing, svc.EditState(dep.ID))
	assert.True(t, dep.Amount.Equal(decimal.NewFromInt(500)))

	err := svc.DiscardEdit(dep.ID)
	require.Error(t, err, "discarding with no session open is a caller bug")
}

func TestDepositDisplayDate(t *testing.T) {
	svc := newDepositFixture(&mockDepositAPI{}, &mockDirectory{})

	assert.Equal(t, "14 May 2025 12:43 AM",
		svc.DisplayDate(model.Deposit{DepositDate: "2025-05-14T00:43"}))
	assert.Equal(t, "14 May 2025 12:43 PM",
		svc.DisplayDate(model.Deposit{DepositDate: "2025-05-14T12:43:00"}))
	assert.Equal(t, "not-a-date",
		svc.DisplayDate(model.Deposit{DepositDate: "not-a-date"}))
}

func TestDepositDelete(t *testing.T) {
	api := &mockDepositAPI{}
	svc := newDepositFixture(api, &mockDirectory{})

	require.NoError(t, svc.Delete(context.Background(), 8))
	assert.Equal(t, []int64{8}, api.deleted)
}
