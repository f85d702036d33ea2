package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"yantratune/internal/models"
)

var (
	// ErrInvalidAlbum indicates validation failure for album data.
	ErrInvalidAlbum = errors.New("invalid album")
	// ErrAlbumNotFound signals a missing album record.
	ErrAlbumNotFound = errors.New("album not found")
)

const albumColumns = `al.id, al.title, al.artist_id, al.cover_url, to_char(al.release_date, 'YYYY-MM-DD'), al.created_at, al.updated_at`

const selectAlbums = `
	SELECT ` + albumColumns + `, ` + artistColumns + `
	FROM albums al
	LEFT JOIN artists ar ON ar.id = al.artist_id
`

// ListAlbums returns a page of albums with their artist embedded.
func (s *Store) ListAlbums(ctx context.Context, opts ListOptions) ([]models.Album, error) {
	opts = opts.normalized()

	rows, err := s.db.QueryContext(ctx, selectAlbums+`
		ORDER BY al.created_at DESC, al.id
		LIMIT $1 OFFSET $2
	`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("select albums: %w", err)
	}
	defer rows.Close()

	return scanAlbumRows(rows)
}

// AlbumByID returns a single album by its identifier.
func (s *Store) AlbumByID(ctx context.Context, id string) (models.Album, error) {
	if !validID(id) {
		return models.Album{}, ErrAlbumNotFound
	}

	row := s.db.QueryRowContext(ctx, selectAlbums+`
		WHERE al.id = $1
	`, id)

	album, err := scanAlbumRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Album{}, ErrAlbumNotFound
		}
		return models.Album{}, err
	}
	return album, nil
}

// AlbumsByIDs returns the albums whose ids appear in ids, in no particular order.
func (s *Store) AlbumsByIDs(ctx context.Context, ids []string) ([]models.Album, error) {
	ids = filterValidIDs(ids)
	if len(ids) == 0 {
		return []models.Album{}, nil
	}

	rows, err := s.db.QueryContext(ctx, selectAlbums+`
		WHERE al.id = ANY($1::uuid[])
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select albums by id: %w", err)
	}
	defer rows.Close()

	return scanAlbumRows(rows)
}

// CreateAlbum inserts an album and reads it back with its artist embedded.
func (s *Store) CreateAlbum(ctx context.Context, input models.AlbumCreate) (models.Album, error) {
	if err := validateAlbum(input); err != nil {
		return models.Album{}, err
	}
	if !validID(input.ArtistID) {
		return models.Album{}, fmt.Errorf("%w: artist %q", ErrInvalidReference, input.ArtistID)
	}

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO albums (title, artist_id, cover_url, release_date)
		VALUES ($1, $2, $3, $4::date)
		RETURNING id
	`, strings.TrimSpace(input.Title), input.ArtistID, input.CoverURL, input.ReleaseDate).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Album{}, fmt.Errorf("%w: artist %q", ErrInvalidReference, input.ArtistID)
		}
		return models.Album{}, fmt.Errorf("insert album: %w", err)
	}

	return s.AlbumByID(ctx, id)
}

// UpdateAlbum applies the non-nil fields of patch and bumps updated_at.
func (s *Store) UpdateAlbum(ctx context.Context, id string, patch models.AlbumUpdate) (models.Album, error) {
	if !validID(id) {
		return models.Album{}, ErrAlbumNotFound
	}
	switch {
	case patch.Title != nil && strings.TrimSpace(*patch.Title) == "":
		return models.Album{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidAlbum)
	case patch.ArtistID != nil && !validID(*patch.ArtistID):
		return models.Album{}, fmt.Errorf("%w: artist %q", ErrInvalidReference, *patch.ArtistID)
	case patch.ReleaseDate != nil && !validDate(*patch.ReleaseDate):
		return models.Album{}, fmt.Errorf("%w: release_date must be YYYY-MM-DD", ErrInvalidAlbum)
	}

	var u updateBuilder
	u.set("title", patch.Title)
	u.set("artist_id", patch.ArtistID)
	u.set("cover_url", patch.CoverURL)
	u.setCast("release_date", "date", patch.ReleaseDate)
	query, args := u.build("albums", id)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Album{}, fmt.Errorf("%w: artist", ErrInvalidReference)
		}
		return models.Album{}, fmt.Errorf("update album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Album{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return models.Album{}, ErrAlbumNotFound
	}

	return s.AlbumByID(ctx, id)
}

// DeleteAlbum removes an album; its songs keep existing with album_id cleared.
func (s *Store) DeleteAlbum(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	return nil
}

func validateAlbum(input models.AlbumCreate) error {
	switch {
	case strings.TrimSpace(input.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidAlbum)
	case strings.TrimSpace(input.ArtistID) == "":
		return fmt.Errorf("%w: artist_id is required", ErrInvalidAlbum)
	case input.ReleaseDate != nil && !validDate(*input.ReleaseDate):
		return fmt.Errorf("%w: release_date must be YYYY-MM-DD", ErrInvalidAlbum)
	}
	return nil
}

func validDate(value string) bool {
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}

func scanAlbumRow(scanner rowScanner) (models.Album, error) {
	var (
		a           models.Album
		coverURL    sql.NullString
		releaseDate sql.NullString
		artist      joinedArtist
	)

	dest := append([]any{&a.ID, &a.Title, &a.ArtistID, &coverURL, &releaseDate, &a.CreatedAt, &a.UpdatedAt}, artist.dest()...)
	if err := scanner.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Album{}, err
		}
		return models.Album{}, fmt.Errorf("scan album: %w", err)
	}

	a.CoverURL = stringPtr(coverURL)
	a.ReleaseDate = stringPtr(releaseDate)
	a.Artist = artist.artist()
	return a, nil
}

func scanAlbumRows(rows *sql.Rows) ([]models.Album, error) {
	albums := make([]models.Album, 0)
	for rows.Next() {
		a, err := scanAlbumRow(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return albums, nil
}

// joinedAlbum receives album columns from a LEFT JOIN.
type joinedAlbum struct {
	id, title, artistID, coverURL, releaseDate sql.NullString
	createdAt, updatedAt                       sql.NullTime
}

func (j *joinedAlbum) dest() []any {
	return []any{&j.id, &j.title, &j.artistID, &j.coverURL, &j.releaseDate, &j.createdAt, &j.updatedAt}
}

func (j *joinedAlbum) album() *models.Album {
	if !j.id.Valid {
		return nil
	}
	return &models.Album{
		ID:          j.id.String,
		Title:       j.title.String,
		ArtistID:    j.artistID.String,
		CoverURL:    stringPtr(j.coverURL),
		ReleaseDate: stringPtr(j.releaseDate),
		CreatedAt:   j.createdAt.Time,
		UpdatedAt:   j.updatedAt.Time,
	}
}
