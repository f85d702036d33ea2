package models

import "time"

// Playlist is a curated, ordered list of songs. Songs and SongCount are
// derived from the playlist_songs junction table and never stored on the row.
type Playlist struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	CoverURL    *string   `json:"cover_url" db:"cover_url"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	Songs       []Song    `json:"songs"`
	SongCount   int       `json:"song_count" db:"song_count"`
}

// PlaylistCreate is the payload accepted when adding a playlist.
type PlaylistCreate struct {
	Name        string  `json:"name"`
	CoverURL    *string `json:"cover_url"`
	Description *string `json:"description"`
}

// PlaylistUpdate is a partial update; nil fields are left untouched.
type PlaylistUpdate struct {
	Name        *string `json:"name"`
	CoverURL    *string `json:"cover_url"`
	Description *string `json:"description"`
}

// PlaylistSong is a row of the playlist/song junction table.
type PlaylistSong struct {
	ID         string    `json:"id" db:"id"`
	PlaylistID string    `json:"playlist_id" db:"playlist_id"`
	SongID     string    `json:"song_id" db:"song_id"`
	OrderIndex int       `json:"order_index" db:"order_index"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
