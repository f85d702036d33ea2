package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"yantratune/internal/models"
)

var (
	// ErrInvalidSong indicates validation failure for song data.
	ErrInvalidSong = errors.New("invalid song")
	// ErrSongNotFound signals a missing song record.
	ErrSongNotFound = errors.New("song not found")
)

const songColumns = `s.id, s.title, s.artist_id, s.album_id, s.duration, s.genre, s.audio_url, s.cover_url, s.created_at, s.updated_at`

const selectSongs = `
	SELECT ` + songColumns + `, ` + artistColumns + `, ` + albumColumns + `
	FROM songs s
	LEFT JOIN artists ar ON ar.id = s.artist_id
	LEFT JOIN albums al ON al.id = s.album_id
`

// SongFilter constrains the results returned by ListSongs.
type SongFilter struct {
	ListOptions
	// Genre is an exact match when non-empty.
	Genre string
}

// ListSongs returns a page of songs, newest first, with artist and album embedded.
func (s *Store) ListSongs(ctx context.Context, filter SongFilter) ([]models.Song, error) {
	opts := filter.ListOptions.normalized()

	query := selectSongs
	var args []any

	if genre := strings.TrimSpace(filter.Genre); genre != "" {
		args = append(args, genre)
		query += fmt.Sprintf(" WHERE s.genre = $%d", len(args))
	}

	args = append(args, opts.Limit, opts.Offset)
	query += fmt.Sprintf(" ORDER BY s.created_at DESC, s.id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select songs: %w", err)
	}
	defer rows.Close()

	return scanSongRows(rows)
}

// SongByID returns a single song by its identifier.
func (s *Store) SongByID(ctx context.Context, id string) (models.Song, error) {
	if !validID(id) {
		return models.Song{}, ErrSongNotFound
	}

	row := s.db.QueryRowContext(ctx, selectSongs+`
		WHERE s.id = $1
	`, id)

	song, err := scanSongRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Song{}, ErrSongNotFound
		}
		return models.Song{}, err
	}
	return song, nil
}

// SongsByIDs returns the songs whose ids appear in ids, in no particular order.
func (s *Store) SongsByIDs(ctx context.Context, ids []string) ([]models.Song, error) {
	ids = filterValidIDs(ids)
	if len(ids) == 0 {
		return []models.Song{}, nil
	}

	rows, err := s.db.QueryContext(ctx, selectSongs+`
		WHERE s.id = ANY($1::uuid[])
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select songs by id: %w", err)
	}
	defer rows.Close()

	return scanSongRows(rows)
}

// CreateSong inserts a song and reads it back with its relations embedded.
func (s *Store) CreateSong(ctx context.Context, input models.SongCreate) (models.Song, error) {
	if err := validateSong(input); err != nil {
		return models.Song{}, err
	}

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO songs (title, artist_id, album_id, duration, genre, audio_url, cover_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, strings.TrimSpace(input.Title), input.ArtistID, input.AlbumID, input.Duration, input.Genre, input.AudioURL, input.CoverURL).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Song{}, fmt.Errorf("%w: artist or album", ErrInvalidReference)
		}
		return models.Song{}, fmt.Errorf("insert song: %w", err)
	}

	return s.SongByID(ctx, id)
}

// UpdateSong applies the non-nil fields of patch and bumps updated_at.
func (s *Store) UpdateSong(ctx context.Context, id string, patch models.SongUpdate) (models.Song, error) {
	if !validID(id) {
		return models.Song{}, ErrSongNotFound
	}
	switch {
	case patch.Title != nil && strings.TrimSpace(*patch.Title) == "":
		return models.Song{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidSong)
	case patch.ArtistID != nil && !validID(*patch.ArtistID):
		return models.Song{}, fmt.Errorf("%w: artist %q", ErrInvalidReference, *patch.ArtistID)
	case patch.AlbumID != nil && !validID(*patch.AlbumID):
		return models.Song{}, fmt.Errorf("%w: album %q", ErrInvalidReference, *patch.AlbumID)
	}

	var u updateBuilder
	u.set("title", patch.Title)
	u.set("artist_id", patch.ArtistID)
	u.set("album_id", patch.AlbumID)
	u.set("duration", patch.Duration)
	u.set("genre", patch.Genre)
	u.set("audio_url", patch.AudioURL)
	u.set("cover_url", patch.CoverURL)
	query, args := u.build("songs", id)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Song{}, fmt.Errorf("%w: artist or album", ErrInvalidReference)
		}
		return models.Song{}, fmt.Errorf("update song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Song{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return models.Song{}, ErrSongNotFound
	}

	return s.SongByID(ctx, id)
}

// DeleteSong removes a song and, by cascade, its playlist memberships.
func (s *Store) DeleteSong(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	return nil
}

func validateSong(input models.SongCreate) error {
	switch {
	case strings.TrimSpace(input.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidSong)
	case strings.TrimSpace(input.ArtistID) == "":
		return fmt.Errorf("%w: artist_id is required", ErrInvalidSong)
	case !validID(input.ArtistID):
		return fmt.Errorf("%w: artist %q", ErrInvalidReference, input.ArtistID)
	case input.AlbumID != nil && !validID(*input.AlbumID):
		return fmt.Errorf("%w: album %q", ErrInvalidReference, *input.AlbumID)
	}
	return nil
}

func scanSongRow(scanner rowScanner) (models.Song, error) {
	var (
		song                     models.Song
		albumID, duration, genre sql.NullString
		audioURL, coverURL       sql.NullString
		artist                   joinedArtist
		album                    joinedAlbum
	)

	dest := []any{&song.ID, &song.Title, &song.ArtistID, &albumID, &duration, &genre, &audioURL, &coverURL, &song.CreatedAt, &song.UpdatedAt}
	dest = append(dest, artist.dest()...)
	dest = append(dest, album.dest()...)

	if err := scanner.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Song{}, err
		}
		return models.Song{}, fmt.Errorf("scan song: %w", err)
	}

	song.AlbumID = stringPtr(albumID)
	song.Duration = stringPtr(duration)
	song.Genre = stringPtr(genre)
	song.AudioURL = stringPtr(audioURL)
	song.CoverURL = stringPtr(coverURL)
	song.Artist = artist.artist()
	song.Album = album.album()
	return song, nil
}

func scanSongRows(rows *sql.Rows) ([]models.Song, error) {
	songs := make([]models.Song, 0)
	for rows.Next() {
		song, err := scanSongRow(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}
