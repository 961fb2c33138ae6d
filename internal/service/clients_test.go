package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunalgarg/bahi/internal/common"
	"github.com/kunalgarg/bahi/internal/model"
	"github.com/kunalgarg/bahi/internal/refcache"
)

func newClientService(dir *mockDirectory) *ClientService {
	return NewClientService(dir, refcache.NewClientCache())
}

func TestClientServiceEnsureLoadsOnce(t *testing.T) {
	dir := &mockDirectory{clients: []model.Client{{ID: 1, Name: "Asha"}}}
	svc := newClientService(dir)

	require.NoError(t, svc.Ensure(context.Background()))
	require.NoError(t, svc.Ensure(context.Background()))

	assert.Equal(t, 1, dir.fetchCalls, "a warm cache should not refetch")
	assert.Equal(t, []model.Client{{ID: 1, Name: "Asha"}}, svc.Cache().Get())
}

func TestClientServiceEnsureFailureLeavesCacheCold(t *testing.T) {
	dir := &mockDirectory{fetchErr: errors.New("connection refused")}
	svc := newClientService(dir)

	require.Error(t, svc.Ensure(context.Background()))
	assert.False(t, svc.Cache().Loaded())

	// The next view's Ensure tries again.
	dir.fetchErr = nil
	dir.clients = []model.Client{{ID: 2, Name: "Bilal"}}
	require.NoError(t, svc.Ensure(context.Background()))
	assert.True(t, svc.Cache().Loaded())
}

func TestClientServiceMutationsRefreshCache(t *testing.T) {
	dir := &mockDirectory{clients: []model.Client{{ID: 1, Name: "Asha"}}}
	svc := newClientService(dir)
	require.NoError(t, svc.Ensure(context.Background()))

	var seen [][]model.Client
	svc.Cache().Subscribe(func(clients []model.Client) {
		seen = append(seen, clients)
	})

	require.NoError(t, svc.Add(context.Background(), ClientInput{Name: "Bilal"}))
	require.NoError(t, svc.Rename(context.Background(), 1, ClientInput{Name: "Asha Verma"}))
	require.NoError(t, svc.Remove(context.Background(), 1))

	// Replay plus one notification per mutation.
	require.Len(t, seen, 4)
	assert.Contains(t, seen[1], model.Client{Name: "Bilal"})
	assert.Equal(t, 4, dir.fetchCalls)
}

func TestClientServiceAddRejectsEmptyName(t *testing.T) {
	dir := &mockDirectory{}
	svc := newClientService(dir)

	err := svc.Add(context.Background(), ClientInput{})
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
	assert.Empty(t, dir.created, "nothing should reach the backend")
}

func TestClientServiceMutationErrorSkipsRefresh(t *testing.T) {
	dir := &mockDirectory{createErr: errors.New("boom")}
	svc := newClientService(dir)

	require.Error(t, svc.Add(context.Background(), ClientInput{Name: "Asha"}))
	assert.Equal(t, 0, dir.fetchCalls)
}
