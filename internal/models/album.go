package models

import "time"

// Album belongs to exactly one artist and embeds it when read back.
type Album struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	ArtistID    string    `json:"artist_id" db:"artist_id"`
	CoverURL    *string   `json:"cover_url" db:"cover_url"`
	ReleaseDate *string   `json:"release_date" db:"release_date"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	Artist      *Artist   `json:"artist"`
}

// AlbumCreate is the payload accepted when adding an album.
type AlbumCreate struct {
	Title       string  `json:"title"`
	ArtistID    string  `json:"artist_id"`
	CoverURL    *string `json:"cover_url"`
	ReleaseDate *string `json:"release_date"`
}

// AlbumUpdate is a partial update; nil fields are left untouched.
type AlbumUpdate struct {
	Title       *string `json:"title"`
	ArtistID    *string `json:"artist_id"`
	CoverURL    *string `json:"cover_url"`
	ReleaseDate *string `json:"release_date"`
}
