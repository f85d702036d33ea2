package models

import "time"

// Artist is a performer in the catalog. Deleting an artist cascades to its
// albums and songs.
type Artist struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Bio       *string   `json:"bio" db:"bio"`
	AvatarURL *string   `json:"avatar_url" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ArtistCreate is the payload accepted when adding an artist.
type ArtistCreate struct {
	Name      string  `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// ArtistUpdate is a partial update; nil fields are left untouched.
type ArtistUpdate struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}
