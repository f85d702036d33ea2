package models

import "time"

// Song is a single track. Duration is free text such as "3:20".
type Song struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	ArtistID  string    `json:"artist_id" db:"artist_id"`
	AlbumID   *string   `json:"album_id" db:"album_id"`
	Duration  *string   `json:"duration" db:"duration"`
	Genre     *string   `json:"genre" db:"genre"`
	AudioURL  *string   `json:"audio_url" db:"audio_url"`
	CoverURL  *string   `json:"cover_url" db:"cover_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Artist    *Artist   `json:"artist"`
	Album     *Album    `json:"album"`
}

// SongCreate is the payload accepted when adding a song.
type SongCreate struct {
	Title    string  `json:"title"`
	ArtistID string  `json:"artist_id"`
	AlbumID  *string `json:"album_id"`
	Duration *string `json:"duration"`
	Genre    *string `json:"genre"`
	AudioURL *string `json:"audio_url"`
	CoverURL *string `json:"cover_url"`
}

// SongUpdate is a partial update; nil fields are left untouched.
type SongUpdate struct {
	Title    *string `json:"title"`
	ArtistID *string `json:"artist_id"`
	AlbumID  *string `json:"album_id"`
	Duration *string `json:"duration"`
	Genre    *string `json:"genre"`
	AudioURL *string `json:"audio_url"`
	CoverURL *string `json:"cover_url"`
}
