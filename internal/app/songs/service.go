package songs

import (
	"context"

	"yantratune/internal/app/audit"
	"yantratune/internal/models"
	"yantratune/internal/store"
)

// Store captures the persistence needs for song workflows.
type Store interface {
	audit.Logger
	ListSongs(ctx context.Context, filter store.SongFilter) ([]models.Song, error)
	SongByID(ctx context.Context, id string) (models.Song, error)
	CreateSong(ctx context.Context, input models.SongCreate) (models.Song, error)
	UpdateSong(ctx context.Context, id string, patch models.SongUpdate) (models.Song, error)
	DeleteSong(ctx context.Context, id string) error
}

// Service coordinates song-related operations.
type Service interface {
	List(ctx context.Context, filter store.SongFilter) ([]models.Song, error)
	Get(ctx context.Context, id string) (models.Song, error)
	Create(ctx context.Context, input models.SongCreate) (models.Song, error)
	Update(ctx context.Context, id string, patch models.SongUpdate) (models.Song, error)
	Delete(ctx context.Context, existing models.Song) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, filter store.SongFilter) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx, filter)
}

func (s *service) Get(ctx context.Context, id string) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	return s.store.SongByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input models.SongCreate) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	song, err := s.store.CreateSong(ctx, input)
	if err != nil {
		return models.Song{}, err
	}
	audit.Record(ctx, s.store, models.AdminActionAdd, models.EntitySong, song.ID, song.Title)
	return song, nil
}

func (s *service) Update(ctx context.Context, id string, patch models.SongUpdate) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	song, err := s.store.UpdateSong(ctx, id, patch)
	if err != nil {
		return models.Song{}, err
	}
	audit.Record(ctx, s.store, models.AdminActionUpdate, models.EntitySong, song.ID, song.Title)
	return song, nil
}

func (s *service) Delete(ctx context.Context, existing models.Song) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteSong(ctx, existing.ID); err != nil {
		return err
	}
	audit.Record(ctx, s.store, models.AdminActionDelete, models.EntitySong, existing.ID, existing.Title)
	return nil
}
