package preferences

import (
	"context"
	"time"

	"yantratune/internal/logging"
	"yantratune/internal/models"
)

// DefaultPageSize applies when a list call has no positive limit.
const DefaultPageSize = 50

// Repository persists user preference documents and the action trail.
type Repository interface {
	Get(ctx context.Context, userID string) (models.UserPreferences, error)
	Toggle(ctx context.Context, userID string, list models.PreferenceList, entityID string) (bool, error)
	RecordAction(ctx context.Context, action models.UserAction) error
}

// Catalog resolves preference ids into catalog entities.
type Catalog interface {
	SongsByIDs(ctx context.Context, ids []string) ([]models.Song, error)
	ArtistsByIDs(ctx context.Context, ids []string) ([]models.Artist, error)
	AlbumsByIDs(ctx context.Context, ids []string) ([]models.Album, error)
}

// Service manages likes, follows and saves.
type Service interface {
	Get(ctx context.Context, userID string) (models.UserPreferences, error)
	ToggleLike(ctx context.Context, userID, songID string) (bool, error)
	ToggleFollow(ctx context.Context, userID, artistID string) (bool, error)
	ToggleSave(ctx context.Context, userID, albumID string) (bool, error)
	LikedSongs(ctx context.Context, userID string, skip, limit int) ([]models.Song, int, error)
	FollowedArtists(ctx context.Context, userID string, skip, limit int) ([]models.Artist, int, error)
	SavedAlbums(ctx context.Context, userID string, skip, limit int) ([]models.Album, int, error)
}

type service struct {
	repo    Repository
	catalog Catalog
}

// New constructs a Service over repo, resolving ids through catalog.
func New(repo Repository, catalog Catalog) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) Get(ctx context.Context, userID string) (models.UserPreferences, error) {
	if err := ctx.Err(); err != nil {
		return models.UserPreferences{}, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) ToggleLike(ctx context.Context, userID, songID string) (bool, error) {
	return s.toggle(ctx, userID, models.LikedSongs, models.EntitySong, songID, "like_song", "unlike_song")
}

func (s *service) ToggleFollow(ctx context.Context, userID, artistID string) (bool, error) {
	return s.toggle(ctx, userID, models.FollowedArtists, models.EntityArtist, artistID, "follow_artist", "unfollow_artist")
}

func (s *service) ToggleSave(ctx context.Context, userID, albumID string) (bool, error) {
	return s.toggle(ctx, userID, models.SavedAlbums, models.EntityAlbum, albumID, "save_album", "unsave_album")
}

func (s *service) toggle(ctx context.Context, userID string, list models.PreferenceList, entity models.EntityType, id, onAdd, onRemove string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	added, err := s.repo.Toggle(ctx, userID, list, id)
	if err != nil {
		return false, err
	}

	action := models.UserAction{
		UserID:     userID,
		ActionType: onRemove,
		EntityType: entity,
		EntityID:   id,
		Timestamp:  time.Now().UTC(),
	}
	if added {
		action.ActionType = onAdd
	}
	if err := s.repo.RecordAction(ctx, action); err != nil {
		logging.WithContext(ctx).Warn().Err(err).
			Str("user_id", userID).
			Str("action_type", action.ActionType).
			Msg("user action write failed")
	}
	return added, nil
}

func (s *service) LikedSongs(ctx context.Context, userID string, skip, limit int) ([]models.Song, int, error) {
	ids, err := s.ids(ctx, userID, models.LikedSongs)
	if err != nil || len(ids) == 0 {
		return []models.Song{}, 0, err
	}
	songs, err := s.catalog.SongsByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return page(inIDOrder(ids, songs, func(s models.Song) string { return s.ID }), skip, limit), len(ids), nil
}

func (s *service) FollowedArtists(ctx context.Context, userID string, skip, limit int) ([]models.Artist, int, error) {
	ids, err := s.ids(ctx, userID, models.FollowedArtists)
	if err != nil || len(ids) == 0 {
		return []models.Artist{}, 0, err
	}
	artists, err := s.catalog.ArtistsByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return page(inIDOrder(ids, artists, func(a models.Artist) string { return a.ID }), skip, limit), len(ids), nil
}

func (s *service) SavedAlbums(ctx context.Context, userID string, skip, limit int) ([]models.Album, int, error) {
	ids, err := s.ids(ctx, userID, models.SavedAlbums)
	if err != nil || len(ids) == 0 {
		return []models.Album{}, 0, err
	}
	albums, err := s.catalog.AlbumsByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return page(inIDOrder(ids, albums, func(a models.Album) string { return a.ID }), skip, limit), len(ids), nil
}

func (s *service) ids(ctx context.Context, userID string, list models.PreferenceList) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return prefs.IDs(list), nil
}

// inIDOrder arranges items in the order their ids appear in ids. Ids with no
// matching item (deleted entities) are skipped.
func inIDOrder[T any](ids []string, items []T, key func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[key(item)] = item
	}
	out := make([]T, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out
}

func page[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
