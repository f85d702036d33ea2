package store

import (
	"context"

	"yantratune/internal/logging"
	"yantratune/internal/models"
)

// Stats counts each catalog table independently. A failed count is logged
// and reported as zero.
func (s *Store) Stats(ctx context.Context) models.Stats {
	return models.Stats{
		TotalSongs:     s.count(ctx, "songs"),
		TotalArtists:   s.count(ctx, "artists"),
		TotalAlbums:    s.count(ctx, "albums"),
		TotalPlaylists: s.count(ctx, "playlists"),
	}
}

// count is only called with the fixed table names above.
func (s *Store) count(ctx context.Context, table string) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		logging.WithContext(ctx).Error().Err(err).Str("table", table).Msg("count failed")
		return 0
	}
	return n
}
