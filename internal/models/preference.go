package models

import "time"

// UserPreferences holds the per-user sets of liked songs, followed artists
// and saved albums. It lives in the document store keyed by user id.
type UserPreferences struct {
	UserID          string    `json:"user_id" bson:"user_id"`
	LikedSongs      []string  `json:"liked_songs" bson:"liked_songs"`
	FollowedArtists []string  `json:"followed_artists" bson:"followed_artists"`
	SavedAlbums     []string  `json:"saved_albums" bson:"saved_albums"`
	CreatedAt       time.Time `json:"-" bson:"created_at"`
	UpdatedAt       time.Time `json:"-" bson:"updated_at"`
}

// UserAction is one audit record per preference toggle.
type UserAction struct {
	UserID     string     `json:"user_id" bson:"user_id"`
	ActionType string     `json:"action_type" bson:"action_type"`
	EntityType EntityType `json:"entity_type" bson:"entity_type"`
	EntityID   string     `json:"entity_id" bson:"entity_id"`
	Timestamp  time.Time  `json:"timestamp" bson:"timestamp"`
}

// PreferenceList names one of the id sets held in UserPreferences. The value
// is the stored field name.
type PreferenceList string

const (
	LikedSongs      PreferenceList = "liked_songs"
	FollowedArtists PreferenceList = "followed_artists"
	SavedAlbums     PreferenceList = "saved_albums"
)

// IDs returns the ids held in list.
func (p UserPreferences) IDs(list PreferenceList) []string {
	switch list {
	case LikedSongs:
		return p.LikedSongs
	case FollowedArtists:
		return p.FollowedArtists
	case SavedAlbums:
		return p.SavedAlbums
	}
	return nil
}
