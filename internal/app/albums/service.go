package albums

import (
	"context"

	"yantratune/internal/app/audit"
	"yantratune/internal/models"
	"yantratune/internal/store"
)

// Store captures the persistence needs for album workflows.
type Store interface {
	audit.Logger
	ListAlbums(ctx context.Context, opts store.ListOptions) ([]models.Album, error)
	AlbumByID(ctx context.Context, id string) (models.Album, error)
	CreateAlbum(ctx context.Context, input models.AlbumCreate) (models.Album, error)
	UpdateAlbum(ctx context.Context, id string, patch models.AlbumUpdate) (models.Album, error)
	DeleteAlbum(ctx context.Context, id string) error
}

// Service coordinates album-related operations.
type Service interface {
	List(ctx context.Context, opts store.ListOptions) ([]models.Album, error)
	Get(ctx context.Context, id string) (models.Album, error)
	Create(ctx context.Context, input models.AlbumCreate) (models.Album, error)
	Update(ctx context.Context, id string, patch models.AlbumUpdate) (models.Album, error)
	Delete(ctx context.Context, existing models.Album) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, opts store.ListOptions) ([]models.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListAlbums(ctx, opts)
}

func (s *service) Get(ctx context.Context, id string) (models.Album, error) {
	if err := ctx.Err(); err != nil {
		return models.Album{}, err
	}
	return s.store.AlbumByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input models.AlbumCreate) (models.Album, error) {
	if err := ctx.Err(); err != nil {
		return models.Album{}, err
	}
	album, err := s.store.CreateAlbum(ctx, input)
	if err != nil {
		return models.Album{}, err
	}
	audit.Record(ctx, s.store, models.AdminActionAdd, models.EntityAlbum, album.ID, album.Title)
	return album, nil
}

func (s *service) Update(ctx context.Context, id string, patch models.AlbumUpdate) (models.Album, error) {
	if err := ctx.Err(); err != nil {
		return models.Album{}, err
	}
	album, err := s.store.UpdateAlbum(ctx, id, patch)
	if err != nil {
		return models.Album{}, err
	}
	audit.Record(ctx, s.store, models.AdminActionUpdate, models.EntityAlbum, album.ID, album.Title)
	return album, nil
}

func (s *service) Delete(ctx context.Context, existing models.Album) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteAlbum(ctx, existing.ID); err != nil {
		return err
	}
	audit.Record(ctx, s.store, models.AdminActionDelete, models.EntityAlbum, existing.ID, existing.Title)
	return nil
}
