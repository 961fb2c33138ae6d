package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/kunalgarg/bahi/internal/model"
	"github.com/kunalgarg/bahi/internal/refcache"
)

// ClientService owns the write path of the shared client cache: it triggers
// the initial load when a view finds the cache cold and refreshes the
// snapshot after every directory mutation. Views themselves only ever read.
type ClientService struct {
	dir      ClientDirectory
	cache    *refcache.ClientCache
	validate *validator.Validate
}

// NewClientService wires the directory collaborator to the shared cache.
func NewClientService(dir ClientDirectory, cache *refcache.ClientCache) *ClientService {
	return &ClientService{dir: dir, cache: cache, validate: newValidator()}
}

// Cache exposes the shared cache for subscribers.
func (s *ClientService) Cache() *refcache.ClientCache {
	return s.cache
}

// Ensure loads the directory if it has never been loaded. Two views racing
// here may both fetch; that is harmless, the last Set wins and the cache is
// never left corrupted.
func (s *ClientService) Ensure(ctx context.Context) error {
	if s.cache.Loaded() {
		return nil
	}
	return s.Refresh(ctx)
}

// Refresh fetches the directory and replaces the snapshot. On failure the
// cache keeps its last known value.
func (s *ClientService) Refresh(ctx context.Context) error {
	clients, err := s.dir.FetchClients(ctx)
	if err != nil {
		return err
	}
	s.cache.Set(clients)
	return nil
}

// Add creates a directory entry and refreshes the cache.
func (s *ClientService) Add(ctx context.Context, in ClientInput) error {
	if err := s.validate.Struct(in); err != nil {
		return asValidationError(err)
	}
	if err := s.dir.CreateClient(ctx, model.Client{Name: in.Name}); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Rename edits a directory entry and refreshes the cache.
func (s *ClientService) Rename(ctx context.Context, id int64, in ClientInput) error {
	if err := s.validate.Struct(in); err != nil {
		return asValidationError(err)
	}
	if err := s.dir.UpdateClient(ctx, id, model.Client{ID: id, Name: in.Name}); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Remove deletes a directory entry and refreshes the cache.
func (s *ClientService) Remove(ctx context.Context, id int64) error {
	if err := s.dir.DeleteClient(ctx, id); err != nil {
		return err
	}
	return s.Refresh(ctx)
}
