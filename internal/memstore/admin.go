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

// LogAdminAction appends one audit entry.
func (c *Catalog) LogAdminAction(_ context.Context, entry models.AdminLogCreate) (models.AdminLog, error) {
	if entry.Action == "" || entry.EntityType == "" || entry.EntityID == "" {
		return models.AdminLog{}, fmt.Errorf("%w: action, entity_type and entity_id are required", store.ErrInvalidAdminLog)
	}
	if entry.AdminName == "" {
		entry.AdminName = models.DefaultAdminName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	l := models.AdminLog{
		ID:         uuid.NewString(),
		AdminName:  entry.AdminName,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Timestamp:  c.clock(),
	}
	if entry.EntityName != "" {
		name := entry.EntityName
		l.EntityName = &name
	}
	c.logs = append(c.logs, l)
	return l, nil
}

// ListAdminLogs returns a page of audit entries, most recent first.
func (c *Catalog) ListAdminLogs(_ context.Context, opts store.ListOptions) ([]models.AdminLog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.AdminLog, len(c.logs))
	for i, l := range c.logs {
		out[len(c.logs)-1-i] = l
	}
	return window(out, opts), nil
}

// Search matches query case-insensitively against the same fields as the
// Postgres store.
func (c *Catalog) Search(_ context.Context, query string, limit int) models.SearchResults {
	if limit <= 0 {
		limit = 50
	}
	q := strings.ToLower(query)
	match := func(values ...*string) bool {
		for _, v := range values {
			if v != nil && strings.Contains(strings.ToLower(*v), q) {
				return true
			}
		}
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	results := models.SearchResults{
		Songs:     []models.Song{},
		Artists:   []models.Artist{},
		Albums:    []models.Album{},
		Playlists: []models.Playlist{},
	}

	for _, r := range newestFirst(c.songs) {
		if len(results.Songs) < limit && match(&r.row.Title, r.row.Genre) {
			results.Songs = append(results.Songs, c.expandSong(r.row))
		}
	}
	for _, r := range newestFirst(c.artists) {
		if match(&r.row.Name) {
			results.Artists = append(results.Artists, r.row)
		}
	}
	for _, r := range newestFirst(c.albums) {
		if match(&r.row.Title) {
			results.Albums = append(results.Albums, c.expandAlbum(r.row))
		}
	}
	for _, r := range newestFirst(c.playlists) {
		if match(&r.row.Name, r.row.Description) {
			results.Playlists = append(results.Playlists, c.summarizePlaylist(r.row))
		}
	}

	sort.SliceStable(results.Artists, func(i, j int) bool { return results.Artists[i].Name < results.Artists[j].Name })
	sort.SliceStable(results.Albums, func(i, j int) bool { return results.Albums[i].Title < results.Albums[j].Title })
	sort.SliceStable(results.Playlists, func(i, j int) bool { return results.Playlists[i].Name < results.Playlists[j].Name })

	results.Artists = truncate(results.Artists, limit)
	results.Albums = truncate(results.Albums, limit)
	results.Playlists = truncate(results.Playlists, limit)
	return results
}

// Stats reports the size of each catalog collection.
func (c *Catalog) Stats(_ context.Context) models.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return models.Stats{
		TotalSongs:     len(c.songs),
		TotalArtists:   len(c.artists),
		TotalAlbums:    len(c.albums),
		TotalPlaylists: len(c.playlists),
	}
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
