package artists

import (
	"context"

	"yantratune/internal/app/audit"
	"yantratune/internal/models"
	"yantratune/internal/store"
)

// Store captures the persistence needs for artist workflows.
type Store interface {
	audit.Logger
	ListArtists(ctx context.Context, opts store.ListOptions) ([]models.Artist, error)
	ArtistByID(ctx context.Context, id string) (models.Artist, error)
	CreateArtist(ctx context.Context, input models.ArtistCreate) (models.Artist, error)
	UpdateArtist(ctx context.Context, id string, patch models.ArtistUpdate) (models.Artist, error)
	DeleteArtist(ctx context.Context, id string) error
}

// Service coordinates artist-related operations.
type Service interface {
	List(ctx context.Context, opts store.ListOptions) ([]models.Artist, error)
	Get(ctx context.Context, id string) (models.Artist, error)
	Create(ctx context.Context, input models.ArtistCreate) (models.Artist, error)
	Update(ctx context.Context, id string, patch models.ArtistUpdate) (models.Artist, error)
	// Delete removes existing, which the caller has already looked up.
	Delete(ctx context.Context, existing models.Artist) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, opts store.ListOptions) ([]models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx, opts)
}

func (s *service) Get(ctx context.Context, id string) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	return s.store.ArtistByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input models.ArtistCreate) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	artist, err := s.store.CreateArtist(ctx, input)
	if err != nil {
		return models.Artist{}, err
	}
	audit.Record(ctx, s.store, models.AdminActionAdd, models.EntityArtist, artist.ID, artist.Name)
	return artist, nil
}

func (s *service) Update(ctx context.Context, id string, patch models.ArtistUpdate) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	artist, err := s.store.UpdateArtist(ctx, id, patch)
	if err != nil {
		return models.Artist{}, err
	}
	audit.Record(ctx, s.store, models.AdminActionUpdate, models.EntityArtist, artist.ID, artist.Name)
	return artist, nil
}

func (s *service) Delete(ctx context.Context, existing models.Artist) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteArtist(ctx, existing.ID); err != nil {
		return err
	}
	audit.Record(ctx, s.store, models.AdminActionDelete, models.EntityArtist, existing.ID, existing.Name)
	return nil
}
