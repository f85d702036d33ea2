package store

import (
	"context"
	"fmt"
	"sync"

	"yantratune/internal/logging"
	"yantratune/internal/models"
)

// Search runs four independent case-insensitive substring matches, each
// capped at limit. A failing sub-search yields an empty list for that entity
// type and never aborts the others.
func (s *Store) Search(ctx context.Context, query string, limit int) models.SearchResults {
	if limit <= 0 {
		limit = 50
	}
	like := "%" + query + "%"

	results := models.SearchResults{
		Songs:     []models.Song{},
		Artists:   []models.Artist{},
		Albums:    []models.Album{},
		Playlists: []models.Playlist{},
	}

	var wg sync.WaitGroup
	run := func(kind string, fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				logging.WithContext(ctx).Error().Err(err).Str("entity", kind).Str("query", query).Msg("search failed")
			}
		}()
	}

	run("songs", func() error {
		songs, err := s.searchSongs(ctx, like, limit)
		if err == nil {
			results.Songs = songs
		}
		return err
	})
	run("artists", func() error {
		artists, err := s.searchArtists(ctx, like, limit)
		if err == nil {
			results.Artists = artists
		}
		return err
	})
	run("albums", func() error {
		albums, err := s.searchAlbums(ctx, like, limit)
		if err == nil {
			results.Albums = albums
		}
		return err
	})
	run("playlists", func() error {
		playlists, err := s.searchPlaylists(ctx, like, limit)
		if err == nil {
			results.Playlists = playlists
		}
		return err
	})

	wg.Wait()
	return results
}

func (s *Store) searchSongs(ctx context.Context, like string, limit int) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, selectSongs+`
		WHERE s.title ILIKE $1 OR s.genre ILIKE $1
		ORDER BY s.created_at DESC, s.id
		LIMIT $2
	`, like, limit)
	if err != nil {
		return nil, fmt.Errorf("search songs: %w", err)
	}
	defer rows.Close()
	return scanSongRows(rows)
}

func (s *Store) searchArtists(ctx context.Context, like string, limit int) ([]models.Artist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+artistColumns+`
		FROM artists ar
		WHERE ar.name ILIKE $1
		ORDER BY ar.name ASC
		LIMIT $2
	`, like, limit)
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	defer rows.Close()
	return scanArtistRows(rows)
}

func (s *Store) searchAlbums(ctx context.Context, like string, limit int) ([]models.Album, error) {
	rows, err := s.db.QueryContext(ctx, selectAlbums+`
		WHERE al.title ILIKE $1
		ORDER BY al.title ASC
		LIMIT $2
	`, like, limit)
	if err != nil {
		return nil, fmt.Errorf("search albums: %w", err)
	}
	defer rows.Close()
	return scanAlbumRows(rows)
}

func (s *Store) searchPlaylists(ctx context.Context, like string, limit int) ([]models.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+playlistColumns+`
		FROM playlists p
		WHERE p.name ILIKE $1 OR p.description ILIKE $1
		ORDER BY p.name ASC
		LIMIT $2
	`, like, limit)
	if err != nil {
		return nil, fmt.Errorf("search playlists: %w", err)
	}
	defer rows.Close()
	return scanPlaylistRows(rows)
}
