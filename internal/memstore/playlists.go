package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"yantratune/internal/models"
	"yantratune/internal/store"
)

// ListPlaylists returns a page of playlists with song_count filled in.
func (c *Catalog) ListPlaylists(_ context.Context, opts store.ListOptions) ([]models.Playlist, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Playlist, 0, len(c.playlists))
	for _, r := range newestFirst(c.playlists) {
		out = append(out, c.summarizePlaylist(r.row))
	}
	return window(out, opts), nil
}

// PlaylistByID returns a playlist with its member songs in order.
func (c *Catalog) PlaylistByID(_ context.Context, id string) (models.Playlist, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.playlists[id]
	if !ok {
		return models.Playlist{}, store.ErrPlaylistNotFound
	}
	p := c.summarizePlaylist(r.row)
	p.Songs = c.playlistSongs(id)
	return p, nil
}

// CreatePlaylist inserts an empty playlist.
func (c *Catalog) CreatePlaylist(_ context.Context, input models.PlaylistCreate) (models.Playlist, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Playlist{}, fmt.Errorf("%w: name is required", store.ErrInvalidPlaylist)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	p := models.Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		CoverURL:    copyString(input.CoverURL),
		Description: copyString(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.playlists[p.ID] = &record[models.Playlist]{seq: c.next(), row: p}
	return c.summarizePlaylist(p), nil
}

// UpdatePlaylist applies the non-nil fields of patch.
func (c *Catalog) UpdatePlaylist(_ context.Context, id string, patch models.PlaylistUpdate) (models.Playlist, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Playlist{}, fmt.Errorf("%w: name cannot be empty", store.ErrInvalidPlaylist)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.playlists[id]
	if !ok {
		return models.Playlist{}, store.ErrPlaylistNotFound
	}
	if patch.Name != nil {
		r.row.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.CoverURL != nil {
		r.row.CoverURL = copyString(patch.CoverURL)
	}
	if patch.Description != nil {
		r.row.Description = copyString(patch.Description)
	}
	r.row.UpdatedAt = c.clock()

	p := c.summarizePlaylist(r.row)
	p.Songs = c.playlistSongs(id)
	return p, nil
}

// DeletePlaylist removes a playlist and its memberships.
func (c *Catalog) DeletePlaylist(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.playlists, id)
	kept := c.members[:0]
	for _, m := range c.members {
		if m.PlaylistID != id {
			kept = append(kept, m)
		}
	}
	c.members = kept
	return nil
}

// AddSongToPlaylist appends songID to the playlist, or places it at
// orderIndex when given.
func (c *Catalog) AddSongToPlaylist(_ context.Context, playlistID, songID string, orderIndex *int) (models.PlaylistSong, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.playlists[playlistID]; !ok {
		return models.PlaylistSong{}, fmt.Errorf("%w: playlist %q", store.ErrInvalidReference, playlistID)
	}
	if _, ok := c.songs[songID]; !ok {
		return models.PlaylistSong{}, fmt.Errorf("%w: song %q", store.ErrInvalidReference, songID)
	}

	highest := 0
	for _, m := range c.members {
		if m.PlaylistID != playlistID {
			continue
		}
		if m.SongID == songID {
			return models.PlaylistSong{}, store.ErrSongAlreadyInPlaylist
		}
		if m.OrderIndex > highest {
			highest = m.OrderIndex
		}
	}

	ps := models.PlaylistSong{
		ID:         uuid.NewString(),
		PlaylistID: playlistID,
		SongID:     songID,
		OrderIndex: highest + 1,
		CreatedAt:  c.clock(),
	}
	if orderIndex != nil {
		ps.OrderIndex = *orderIndex
	}
	c.members = append(c.members, ps)
	return ps, nil
}

// RemoveSongFromPlaylist drops the membership if present.
func (c *Catalog) RemoveSongFromPlaylist(_ context.Context, playlistID, songID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.members[:0]
	for _, m := range c.members {
		if m.PlaylistID == playlistID && m.SongID == songID {
			continue
		}
		kept = append(kept, m)
	}
	c.members = kept
	return nil
}

func (c *Catalog) summarizePlaylist(p models.Playlist) models.Playlist {
	p.Songs = []models.Song{}
	p.SongCount = 0
	for _, m := range c.members {
		if m.PlaylistID == p.ID {
			p.SongCount++
		}
	}
	return p
}

// playlistSongs orders members by order_index, then by insertion.
func (c *Catalog) playlistSongs(playlistID string) []models.Song {
	members := make([]models.PlaylistSong, 0)
	for _, m := range c.members {
		if m.PlaylistID == playlistID {
			members = append(members, m)
		}
	}
	sort.SliceStable(members, func(i, j int) bool { return members[i].OrderIndex < members[j].OrderIndex })

	songs := make([]models.Song, 0, len(members))
	for _, m := range members {
		if r, ok := c.songs[m.SongID]; ok {
			songs = append(songs, c.expandSong(r.row))
		}
	}
	return songs
}
