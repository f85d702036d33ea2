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
	// ErrInvalidArtist indicates validation failure for artist data.
	ErrInvalidArtist = errors.New("invalid artist")
	// ErrArtistNotFound signals a missing artist record.
	ErrArtistNotFound = errors.New("artist not found")
)

const artistColumns = `ar.id, ar.name, ar.bio, ar.avatar_url, ar.created_at, ar.updated_at`

// ListArtists returns a page of artists, newest first.
func (s *Store) ListArtists(ctx context.Context, opts ListOptions) ([]models.Artist, error) {
	opts = opts.normalized()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+artistColumns+`
		FROM artists ar
		ORDER BY ar.created_at DESC, ar.id
		LIMIT $1 OFFSET $2
	`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	return scanArtistRows(rows)
}

// ArtistByID returns a single artist by its identifier.
func (s *Store) ArtistByID(ctx context.Context, id string) (models.Artist, error) {
	if !validID(id) {
		return models.Artist{}, ErrArtistNotFound
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+artistColumns+`
		FROM artists ar
		WHERE ar.id = $1
	`, id)

	artist, err := scanArtistRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Artist{}, ErrArtistNotFound
		}
		return models.Artist{}, err
	}
	return artist, nil
}

// ArtistsByIDs returns the artists whose ids appear in ids, in no particular order.
func (s *Store) ArtistsByIDs(ctx context.Context, ids []string) ([]models.Artist, error) {
	ids = filterValidIDs(ids)
	if len(ids) == 0 {
		return []models.Artist{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+artistColumns+`
		FROM artists ar
		WHERE ar.id = ANY($1::uuid[])
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select artists by id: %w", err)
	}
	defer rows.Close()

	return scanArtistRows(rows)
}

// CreateArtist inserts a new artist.
func (s *Store) CreateArtist(ctx context.Context, input models.ArtistCreate) (models.Artist, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return models.Artist{}, fmt.Errorf("%w: name is required", ErrInvalidArtist)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO artists AS ar (name, bio, avatar_url)
		VALUES ($1, $2, $3)
		RETURNING `+artistColumns,
		input.Name, input.Bio, input.AvatarURL)

	artist, err := scanArtistRow(row)
	if err != nil {
		return models.Artist{}, fmt.Errorf("insert artist: %w", err)
	}
	return artist, nil
}

// UpdateArtist applies the non-nil fields of patch and bumps updated_at.
func (s *Store) UpdateArtist(ctx context.Context, id string, patch models.ArtistUpdate) (models.Artist, error) {
	if !validID(id) {
		return models.Artist{}, ErrArtistNotFound
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Artist{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidArtist)
	}

	var u updateBuilder
	u.set("name", patch.Name)
	u.set("bio", patch.Bio)
	u.set("avatar_url", patch.AvatarURL)
	query, args := u.build("artists AS ar", id)

	row := s.db.QueryRowContext(ctx, query+" RETURNING "+artistColumns, args...)
	artist, err := scanArtistRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Artist{}, ErrArtistNotFound
		}
		return models.Artist{}, fmt.Errorf("update artist: %w", err)
	}
	return artist, nil
}

// DeleteArtist removes an artist; albums and songs cascade.
func (s *Store) DeleteArtist(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	return nil
}

func scanArtistRow(scanner rowScanner) (models.Artist, error) {
	var (
		a         models.Artist
		bio       sql.NullString
		avatarURL sql.NullString
	)
	if err := scanner.Scan(&a.ID, &a.Name, &bio, &avatarURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Artist{}, err
		}
		return models.Artist{}, fmt.Errorf("scan artist: %w", err)
	}
	a.Bio = stringPtr(bio)
	a.AvatarURL = stringPtr(avatarURL)
	return a, nil
}

func scanArtistRows(rows *sql.Rows) ([]models.Artist, error) {
	artists := make([]models.Artist, 0)
	for rows.Next() {
		a, err := scanArtistRow(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}

// joinedArtist receives artist columns from a LEFT JOIN, where every field
// may be NULL.
type joinedArtist struct {
	id, name, bio, avatarURL sql.NullString
	createdAt, updatedAt     sql.NullTime
}

func (j *joinedArtist) dest() []any {
	return []any{&j.id, &j.name, &j.bio, &j.avatarURL, &j.createdAt, &j.updatedAt}
}

func (j *joinedArtist) artist() *models.Artist {
	if !j.id.Valid {
		return nil
	}
	return &models.Artist{
		ID:        j.id.String,
		Name:      j.name.String,
		Bio:       stringPtr(j.bio),
		AvatarURL: stringPtr(j.avatarURL),
		CreatedAt: j.createdAt.Time,
		UpdatedAt: j.updatedAt.Time,
	}
}

func filterValidIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}

// updateBuilder accumulates "col = $n" assignments for a partial update.
type updateBuilder struct {
	sets []string
	args []any
}

func (u *updateBuilder) set(column string, value *string) {
	if value == nil {
		return
	}
	u.args = append(u.args, *value)
	u.sets = append(u.sets, fmt.Sprintf("%s = $%d", column, len(u.args)))
}

func (u *updateBuilder) setCast(column, cast string, value *string) {
	if value == nil {
		return
	}
	u.args = append(u.args, *value)
	u.sets = append(u.sets, fmt.Sprintf("%s = $%d::%s", column, len(u.args), cast))
}

// build always stamps updated_at and targets the row with the given id.
func (u *updateBuilder) build(table, id string) (string, []any) {
	args := append(u.args, now())
	sets := append(u.sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(args)), args
}
