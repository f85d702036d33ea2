package playlists

import (
	"context"

	"yantratune/internal/app/audit"
	"yantratune/internal/models"
	"yantratune/internal/store"
)

// Store captures the persistence needs for playlist workflows.
type Store interface {
	audit.Logger
	ListPlaylists(ctx context.Context, opts store.ListOptions) ([]models.Playlist, error)
	PlaylistByID(ctx context.Context, id string) (models.Playlist, error)
	CreatePlaylist(ctx context.Context, input models.PlaylistCreate) (models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id string, patch models.PlaylistUpdate) (models.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error
	AddSongToPlaylist(ctx context.Context, playlistID, songID string, orderIndex *int) (models.PlaylistSong, error)
	RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string) error
}

// Service coordinates playlist operations, including membership changes.
type Service interface {
	List(ctx context.Context, opts store.ListOptions) ([]models.Playlist, error)
	Get(ctx context.Context, id string) (models.Playlist, error)
	Create(ctx context.Context, input models.PlaylistCreate) (models.Playlist, error)
	Update(ctx context.Context, id string, patch models.PlaylistUpdate) (models.Playlist, error)
	Delete(ctx context.Context, existing models.Playlist) error
	AddSong(ctx context.Context, playlistID, songID string, orderIndex *int) (models.PlaylistSong, error)
	RemoveSong(ctx context.Context, playlistID, songID string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, opts store.ListOptions) ([]models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylists(ctx, opts)
}

func (s *service) Get(ctx context.Context, id string) (models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return models.Playlist{}, err
	}
	return s.store.PlaylistByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input models.PlaylistCreate) (models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return models.Playlist{}, err
	}
	playlist, err := s.store.CreatePlaylist(ctx, input)
	if err != nil {
		return models.Playlist{}, err
	}
	audit.Record(ctx, s.store, models.AdminActionAdd, models.EntityPlaylist, playlist.ID, playlist.Name)
	return playlist, nil
}

func (s *service) Update(ctx context.Context, id string, patch models.PlaylistUpdate) (models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return models.Playlist{}, err
	}
	playlist, err := s.store.UpdatePlaylist(ctx, id, patch)
	if err != nil {
		return models.Playlist{}, err
	}
	audit.Record(ctx, s.store, models.AdminActionUpdate, models.EntityPlaylist, playlist.ID, playlist.Name)
	return playlist, nil
}

func (s *service) Delete(ctx context.Context, existing models.Playlist) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeletePlaylist(ctx, existing.ID); err != nil {
		return err
	}
	audit.Record(ctx, s.store, models.AdminActionDelete, models.EntityPlaylist, existing.ID, existing.Name)
	return nil
}

// Membership changes are not audited.
func (s *service) AddSong(ctx context.Context, playlistID, songID string, orderIndex *int) (models.PlaylistSong, error) {
	if err := ctx.Err(); err != nil {
		return models.PlaylistSong{}, err
	}
	return s.store.AddSongToPlaylist(ctx, playlistID, songID, orderIndex)
}

func (s *service) RemoveSong(ctx context.Context, playlistID, songID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RemoveSongFromPlaylist(ctx, playlistID, songID)
}
