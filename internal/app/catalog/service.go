package catalog

import (
	"context"

	"yantratune/internal/models"
	"yantratune/internal/store"
)

// Store captures the cross-entity reads used by search and the admin views.
type Store interface {
	Search(ctx context.Context, query string, limit int) models.SearchResults
	Stats(ctx context.Context) models.Stats
	ListAdminLogs(ctx context.Context, opts store.ListOptions) ([]models.AdminLog, error)
}

// Service exposes search, catalog statistics and the admin log.
type Service interface {
	Search(ctx context.Context, query string, limit int) (models.SearchResults, error)
	Stats(ctx context.Context) (models.Stats, error)
	AdminLogs(ctx context.Context, opts store.ListOptions) ([]models.AdminLog, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

// Search never fails on backend errors; only a cancelled context is reported.
func (s *service) Search(ctx context.Context, query string, limit int) (models.SearchResults, error) {
	if err := ctx.Err(); err != nil {
		return models.SearchResults{}, err
	}
	return s.store.Search(ctx, query, limit), nil
}

func (s *service) Stats(ctx context.Context) (models.Stats, error) {
	if err := ctx.Err(); err != nil {
		return models.Stats{}, err
	}
	return s.store.Stats(ctx), nil
}

func (s *service) AdminLogs(ctx context.Context, opts store.ListOptions) ([]models.AdminLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListAdminLogs(ctx, opts)
}
