package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"yantratune/internal/models"
)

var (
	// ErrInvalidPlaylist indicates validation failure for playlist data.
	ErrInvalidPlaylist = errors.New("invalid playlist")
	// ErrPlaylistNotFound signals a missing playlist record.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrSongAlreadyInPlaylist is returned when a (playlist, song) pair already exists.
	ErrSongAlreadyInPlaylist = errors.New("song already in playlist")
)

// song_count comes from the same subquery on every read path.
const playlistColumns = `p.id, p.name, p.cover_url, p.description, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM playlist_songs ps WHERE ps.playlist_id = p.id) AS song_count`

// ListPlaylists returns a page of playlists with song_count filled in. Member
// songs are only loaded by PlaylistByID.
func (s *Store) ListPlaylists(ctx context.Context, opts ListOptions) ([]models.Playlist, error) {
	opts = opts.normalized()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+playlistColumns+`
		FROM playlists p
		ORDER BY p.created_at DESC, p.id
		LIMIT $1 OFFSET $2
	`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("select playlists: %w", err)
	}
	defer rows.Close()

	return scanPlaylistRows(rows)
}

// PlaylistByID returns a playlist with its member songs in order_index order.
func (s *Store) PlaylistByID(ctx context.Context, id string) (models.Playlist, error) {
	if !validID(id) {
		return models.Playlist{}, ErrPlaylistNotFound
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+playlistColumns+`
		FROM playlists p
		WHERE p.id = $1
	`, id)

	playlist, err := scanPlaylistRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Playlist{}, ErrPlaylistNotFound
		}
		return models.Playlist{}, err
	}

	songs, err := s.listPlaylistSongs(ctx, id)
	if err != nil {
		return models.Playlist{}, err
	}
	playlist.Songs = songs
	return playlist, nil
}

// CreatePlaylist inserts an empty playlist.
func (s *Store) CreatePlaylist(ctx context.Context, input models.PlaylistCreate) (models.Playlist, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return models.Playlist{}, fmt.Errorf("%w: name is required", ErrInvalidPlaylist)
	}

	var id string
	if err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlists (name, cover_url, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, input.Name, input.CoverURL, input.Description).Scan(&id); err != nil {
		return models.Playlist{}, fmt.Errorf("insert playlist: %w", err)
	}

	return s.PlaylistByID(ctx, id)
}

// UpdatePlaylist applies the non-nil fields of patch and bumps updated_at.
func (s *Store) UpdatePlaylist(ctx context.Context, id string, patch models.PlaylistUpdate) (models.Playlist, error) {
	if !validID(id) {
		return models.Playlist{}, ErrPlaylistNotFound
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Playlist{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidPlaylist)
	}

	var u updateBuilder
	u.set("name", patch.Name)
	u.set("cover_url", patch.CoverURL)
	u.set("description", patch.Description)
	query, args := u.build("playlists", id)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("update playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Playlist{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return models.Playlist{}, ErrPlaylistNotFound
	}

	return s.PlaylistByID(ctx, id)
}

// DeletePlaylist removes a playlist and, by cascade, its memberships.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	return nil
}

// AddSongToPlaylist appends songID to the playlist. A nil orderIndex places
// the song after the current highest index (or at 1 for an empty playlist).
func (s *Store) AddSongToPlaylist(ctx context.Context, playlistID, songID string, orderIndex *int) (models.PlaylistSong, error) {
	if !validID(playlistID) {
		return models.PlaylistSong{}, ErrPlaylistNotFound
	}
	if !validID(songID) {
		return models.PlaylistSong{}, ErrSongNotFound
	}

	var ps models.PlaylistSong
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id, order_index)
		SELECT $1, $2, COALESCE($3::integer, COALESCE(MAX(order_index), 0) + 1)
		FROM playlist_songs
		WHERE playlist_id = $1
		RETURNING id, playlist_id, song_id, order_index, created_at
	`, playlistID, songID, orderIndex).Scan(&ps.ID, &ps.PlaylistID, &ps.SongID, &ps.OrderIndex, &ps.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return models.PlaylistSong{}, ErrSongAlreadyInPlaylist
		case isForeignKeyViolation(err):
			return models.PlaylistSong{}, fmt.Errorf("%w: playlist or song", ErrInvalidReference)
		}
		return models.PlaylistSong{}, fmt.Errorf("insert playlist song: %w", err)
	}
	return ps, nil
}

// RemoveSongFromPlaylist deletes the membership row if present. Removing a
// song that is not in the playlist is not an error.
func (s *Store) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string) error {
	if !validID(playlistID) || !validID(songID) {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID); err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	return nil
}

func (s *Store) listPlaylistSongs(ctx context.Context, playlistID string) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+songColumns+`, `+artistColumns+`, `+albumColumns+`
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		LEFT JOIN artists ar ON ar.id = s.artist_id
		LEFT JOIN albums al ON al.id = s.album_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.order_index ASC, ps.created_at ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("select playlist songs: %w", err)
	}
	defer rows.Close()

	return scanSongRows(rows)
}

func scanPlaylistRow(scanner rowScanner) (models.Playlist, error) {
	var (
		p           models.Playlist
		coverURL    sql.NullString
		description sql.NullString
	)
	if err := scanner.Scan(&p.ID, &p.Name, &coverURL, &description, &p.CreatedAt, &p.UpdatedAt, &p.SongCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Playlist{}, err
		}
		return models.Playlist{}, fmt.Errorf("scan playlist: %w", err)
	}
	p.CoverURL = stringPtr(coverURL)
	p.Description = stringPtr(description)
	p.Songs = []models.Song{}
	return p, nil
}

func scanPlaylistRows(rows *sql.Rows) ([]models.Playlist, error) {
	playlists := make([]models.Playlist, 0)
	for rows.Next() {
		p, err := scanPlaylistRow(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}
