// Package memstore keeps the catalog, preferences and uploaded objects in
// process memory. It backs the mock server and mirrors the behaviour of the
// Postgres store, including cascades and relation expansion.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"yantratune/internal/models"
	"yantratune/internal/store"
)

type record[T any] struct {
	seq int64
	row T
}

// Catalog stores artists, albums, songs, playlists and admin logs.
type Catalog struct {
	mu        sync.RWMutex
	seq       int64
	artists   map[string]*record[models.Artist]
	albums    map[string]*record[models.Album]
	songs     map[string]*record[models.Song]
	playlists map[string]*record[models.Playlist]
	members   []models.PlaylistSong
	logs      []models.AdminLog
	clock     func() time.Time
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		artists:   make(map[string]*record[models.Artist]),
		albums:    make(map[string]*record[models.Album]),
		songs:     make(map[string]*record[models.Song]),
		playlists: make(map[string]*record[models.Playlist]),
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

func (c *Catalog) next() int64 {
	c.seq++
	return c.seq
}

// ListArtists returns a page of artists, newest first.
func (c *Catalog) ListArtists(_ context.Context, opts store.ListOptions) ([]models.Artist, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Artist, 0, len(c.artists))
	for _, r := range newestFirst(c.artists) {
		out = append(out, r.row)
	}
	return window(out, opts), nil
}

// ArtistByID returns a single artist.
func (c *Catalog) ArtistByID(_ context.Context, id string) (models.Artist, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.artists[id]
	if !ok {
		return models.Artist{}, store.ErrArtistNotFound
	}
	return r.row, nil
}

// ArtistsByIDs returns the artists present in ids.
func (c *Catalog) ArtistsByIDs(_ context.Context, ids []string) ([]models.Artist, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Artist, 0, len(ids))
	for _, id := range ids {
		if r, ok := c.artists[id]; ok {
			out = append(out, r.row)
		}
	}
	return out, nil
}

// CreateArtist inserts an artist.
func (c *Catalog) CreateArtist(_ context.Context, input models.ArtistCreate) (models.Artist, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Artist{}, fmt.Errorf("%w: name is required", store.ErrInvalidArtist)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	a := models.Artist{
		ID:        uuid.NewString(),
		Name:      name,
		Bio:       copyString(input.Bio),
		AvatarURL: copyString(input.AvatarURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.artists[a.ID] = &record[models.Artist]{seq: c.next(), row: a}
	return a, nil
}

// UpdateArtist applies the non-nil fields of patch.
func (c *Catalog) UpdateArtist(_ context.Context, id string, patch models.ArtistUpdate) (models.Artist, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Artist{}, fmt.Errorf("%w: name cannot be empty", store.ErrInvalidArtist)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.artists[id]
	if !ok {
		return models.Artist{}, store.ErrArtistNotFound
	}
	if patch.Name != nil {
		r.row.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Bio != nil {
		r.row.Bio = copyString(patch.Bio)
	}
	if patch.AvatarURL != nil {
		r.row.AvatarURL = copyString(patch.AvatarURL)
	}
	r.row.UpdatedAt = c.clock()
	return r.row, nil
}

// DeleteArtist removes an artist along with its albums and songs.
func (c *Catalog) DeleteArtist(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.artists, id)
	for albumID, r := range c.albums {
		if r.row.ArtistID == id {
			c.deleteAlbumLocked(albumID)
		}
	}
	for songID, r := range c.songs {
		if r.row.ArtistID == id {
			c.deleteSongLocked(songID)
		}
	}
	return nil
}

// ListAlbums returns a page of albums with their artist embedded.
func (c *Catalog) ListAlbums(_ context.Context, opts store.ListOptions) ([]models.Album, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Album, 0, len(c.albums))
	for _, r := range newestFirst(c.albums) {
		out = append(out, c.expandAlbum(r.row))
	}
	return window(out, opts), nil
}

// AlbumByID returns a single album.
func (c *Catalog) AlbumByID(_ context.Context, id string) (models.Album, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.albums[id]
	if !ok {
		return models.Album{}, store.ErrAlbumNotFound
	}
	return c.expandAlbum(r.row), nil
}

// AlbumsByIDs returns the albums present in ids.
func (c *Catalog) AlbumsByIDs(_ context.Context, ids []string) ([]models.Album, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Album, 0, len(ids))
	for _, id := range ids {
		if r, ok := c.albums[id]; ok {
			out = append(out, c.expandAlbum(r.row))
		}
	}
	return out, nil
}

// CreateAlbum inserts an album for an existing artist.
func (c *Catalog) CreateAlbum(_ context.Context, input models.AlbumCreate) (models.Album, error) {
	title := strings.TrimSpace(input.Title)
	switch {
	case title == "":
		return models.Album{}, fmt.Errorf("%w: title is required", store.ErrInvalidAlbum)
	case strings.TrimSpace(input.ArtistID) == "":
		return models.Album{}, fmt.Errorf("%w: artist_id is required", store.ErrInvalidAlbum)
	case input.ReleaseDate != nil && !validDate(*input.ReleaseDate):
		return models.Album{}, fmt.Errorf("%w: release_date must be YYYY-MM-DD", store.ErrInvalidAlbum)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.artists[input.ArtistID]; !ok {
		return models.Album{}, fmt.Errorf("%w: artist %q", store.ErrInvalidReference, input.ArtistID)
	}

	now := c.clock()
	a := models.Album{
		ID:          uuid.NewString(),
		Title:       title,
		ArtistID:    input.ArtistID,
		CoverURL:    copyString(input.CoverURL),
		ReleaseDate: copyString(input.ReleaseDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.albums[a.ID] = &record[models.Album]{seq: c.next(), row: a}
	return c.expandAlbum(a), nil
}

// UpdateAlbum applies the non-nil fields of patch.
func (c *Catalog) UpdateAlbum(_ context.Context, id string, patch models.AlbumUpdate) (models.Album, error) {
	switch {
	case patch.Title != nil && strings.TrimSpace(*patch.Title) == "":
		return models.Album{}, fmt.Errorf("%w: title cannot be empty", store.ErrInvalidAlbum)
	case patch.ReleaseDate != nil && !validDate(*patch.ReleaseDate):
		return models.Album{}, fmt.Errorf("%w: release_date must be YYYY-MM-DD", store.ErrInvalidAlbum)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.albums[id]
	if !ok {
		return models.Album{}, store.ErrAlbumNotFound
	}
	if patch.ArtistID != nil {
		if _, ok := c.artists[*patch.ArtistID]; !ok {
			return models.Album{}, fmt.Errorf("%w: artist %q", store.ErrInvalidReference, *patch.ArtistID)
		}
		r.row.ArtistID = *patch.ArtistID
	}
	if patch.Title != nil {
		r.row.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.CoverURL != nil {
		r.row.CoverURL = copyString(patch.CoverURL)
	}
	if patch.ReleaseDate != nil {
		r.row.ReleaseDate = copyString(patch.ReleaseDate)
	}
	r.row.UpdatedAt = c.clock()
	return c.expandAlbum(r.row), nil
}

// DeleteAlbum removes an album and clears album_id on its songs.
func (c *Catalog) DeleteAlbum(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deleteAlbumLocked(id)
	return nil
}

func (c *Catalog) deleteAlbumLocked(id string) {
	delete(c.albums, id)
	for _, r := range c.songs {
		if r.row.AlbumID != nil && *r.row.AlbumID == id {
			r.row.AlbumID = nil
		}
	}
}

// ListSongs returns a page of songs, optionally restricted to one genre.
func (c *Catalog) ListSongs(_ context.Context, filter store.SongFilter) ([]models.Song, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	genre := strings.TrimSpace(filter.Genre)
	out := make([]models.Song, 0, len(c.songs))
	for _, r := range newestFirst(c.songs) {
		if genre != "" && (r.row.Genre == nil || *r.row.Genre != genre) {
			continue
		}
		out = append(out, c.expandSong(r.row))
	}
	return window(out, filter.ListOptions), nil
}

// SongByID returns a single song.
func (c *Catalog) SongByID(_ context.Context, id string) (models.Song, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.songs[id]
	if !ok {
		return models.Song{}, store.ErrSongNotFound
	}
	return c.expandSong(r.row), nil
}

// SongsByIDs returns the songs present in ids.
func (c *Catalog) SongsByIDs(_ context.Context, ids []string) ([]models.Song, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Song, 0, len(ids))
	for _, id := range ids {
		if r, ok := c.songs[id]; ok {
			out = append(out, c.expandSong(r.row))
		}
	}
	return out, nil
}

// CreateSong inserts a song for an existing artist and optional album.
func (c *Catalog) CreateSong(_ context.Context, input models.SongCreate) (models.Song, error) {
	title := strings.TrimSpace(input.Title)
	switch {
	case title == "":
		return models.Song{}, fmt.Errorf("%w: title is required", store.ErrInvalidSong)
	case strings.TrimSpace(input.ArtistID) == "":
		return models.Song{}, fmt.Errorf("%w: artist_id is required", store.ErrInvalidSong)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkSongRefsLocked(&input.ArtistID, input.AlbumID); err != nil {
		return models.Song{}, err
	}

	now := c.clock()
	s := models.Song{
		ID:        uuid.NewString(),
		Title:     title,
		ArtistID:  input.ArtistID,
		AlbumID:   copyString(input.AlbumID),
		Duration:  copyString(input.Duration),
		Genre:     copyString(input.Genre),
		AudioURL:  copyString(input.AudioURL),
		CoverURL:  copyString(input.CoverURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.songs[s.ID] = &record[models.Song]{seq: c.next(), row: s}
	return c.expandSong(s), nil
}

// UpdateSong applies the non-nil fields of patch.
func (c *Catalog) UpdateSong(_ context.Context, id string, patch models.SongUpdate) (models.Song, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Song{}, fmt.Errorf("%w: title cannot be empty", store.ErrInvalidSong)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.songs[id]
	if !ok {
		return models.Song{}, store.ErrSongNotFound
	}
	if err := c.checkSongRefsLocked(patch.ArtistID, patch.AlbumID); err != nil {
		return models.Song{}, err
	}

	if patch.Title != nil {
		r.row.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.ArtistID != nil {
		r.row.ArtistID = *patch.ArtistID
	}
	if patch.AlbumID != nil {
		r.row.AlbumID = copyString(patch.AlbumID)
	}
	if patch.Duration != nil {
		r.row.Duration = copyString(patch.Duration)
	}
	if patch.Genre != nil {
		r.row.Genre = copyString(patch.Genre)
	}
	if patch.AudioURL != nil {
		r.row.AudioURL = copyString(patch.AudioURL)
	}
	if patch.CoverURL != nil {
		r.row.CoverURL = copyString(patch.CoverURL)
	}
	r.row.UpdatedAt = c.clock()
	return c.expandSong(r.row), nil
}

// DeleteSong removes a song and its playlist memberships.
func (c *Catalog) DeleteSong(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deleteSongLocked(id)
	return nil
}

func (c *Catalog) deleteSongLocked(id string) {
	delete(c.songs, id)
	kept := c.members[:0]
	for _, m := range c.members {
		if m.SongID != id {
			kept = append(kept, m)
		}
	}
	c.members = kept
}

func (c *Catalog) checkSongRefsLocked(artistID, albumID *string) error {
	if artistID != nil {
		if _, ok := c.artists[*artistID]; !ok {
			return fmt.Errorf("%w: artist %q", store.ErrInvalidReference, *artistID)
		}
	}
	if albumID != nil {
		if _, ok := c.albums[*albumID]; !ok {
			return fmt.Errorf("%w: album %q", store.ErrInvalidReference, *albumID)
		}
	}
	return nil
}

func (c *Catalog) expandAlbum(a models.Album) models.Album {
	if r, ok := c.artists[a.ArtistID]; ok {
		artist := r.row
		a.Artist = &artist
	}
	return a
}

func (c *Catalog) expandSong(s models.Song) models.Song {
	if r, ok := c.artists[s.ArtistID]; ok {
		artist := r.row
		s.Artist = &artist
	}
	if s.AlbumID != nil {
		if r, ok := c.albums[*s.AlbumID]; ok {
			album := r.row
			s.Album = &album
		}
	}
	return s
}

func newestFirst[T any](rows map[string]*record[T]) []*record[T] {
	out := make([]*record[T], 0, len(rows))
	for _, r := range rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq > out[j].seq })
	return out
}

func window[T any](items []T, opts store.ListOptions) []T {
	if opts.Limit <= 0 {
		opts.Limit = store.DefaultLimit
	}
	if opts.Limit > store.MaxLimit {
		opts.Limit = store.MaxLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.Offset >= len(items) {
		return []T{}
	}
	end := opts.Offset + opts.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[opts.Offset:end]
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

func validDate(value string) bool {
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}
