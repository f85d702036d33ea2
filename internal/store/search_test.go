package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSearchDegradesPerEntity(t *testing.T) {
	s, mock := newMockStore(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.title ILIKE $1 OR s.genre ILIKE $1`)).
		WithArgs("%queen%", 10).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE ar.name ILIKE $1`)).
		WithArgs("%queen%", 10).
		WillReturnRows(sqlmock.NewRows(artistCols).
			AddRow(artistID, "Queen", nil, nil, fixedTime, fixedTime))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE al.title ILIKE $1`)).
		WithArgs("%queen%", 10).
		WillReturnRows(sqlmock.NewRows(albumCols))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.name ILIKE $1 OR p.description ILIKE $1`)).
		WithArgs("%queen%", 10).
		WillReturnRows(sqlmock.NewRows(playlistCols))

	results := s.Search(context.Background(), "queen", 10)

	if results.Songs == nil || len(results.Songs) != 0 {
		t.Fatalf("expected empty songs after failure, got %#v", results.Songs)
	}
	if len(results.Artists) != 1 || results.Artists[0].Name != "Queen" {
		t.Fatalf("unexpected artists: %#v", results.Artists)
	}
	if results.Albums == nil || results.Playlists == nil {
		t.Fatalf("expected non-nil empty lists")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStatsReportsZeroForFailedCount(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM songs`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM artists`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM albums`)).
		WillReturnError(errors.New("relation does not exist"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM playlists`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	stats := s.Stats(context.Background())

	if stats.TotalSongs != 5 || stats.TotalArtists != 3 || stats.TotalAlbums != 0 || stats.TotalPlaylists != 3 {
		t.Fatalf("unexpected stats: %#v", stats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
