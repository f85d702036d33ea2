package models

import "time"

// DefaultAdminName is recorded when a log entry carries no admin name.
const DefaultAdminName = "Admin"

// AdminAction enumerates the catalog mutations that are audited.
type AdminAction string

const (
	AdminActionAdd    AdminAction = "add"
	AdminActionUpdate AdminAction = "update"
	AdminActionDelete AdminAction = "delete"
)

// EntityType names a catalog entity kind.
type EntityType string

const (
	EntitySong     EntityType = "song"
	EntityAlbum    EntityType = "album"
	EntityPlaylist EntityType = "playlist"
	EntityArtist   EntityType = "artist"
)

// AdminLog is an append-only audit row written after each successful
// catalog mutation.
type AdminLog struct {
	ID         string      `json:"id" db:"id"`
	AdminName  string      `json:"admin_name" db:"admin_name"`
	Action     AdminAction `json:"action" db:"action"`
	EntityType EntityType  `json:"entity_type" db:"entity_type"`
	EntityID   string      `json:"entity_id" db:"entity_id"`
	EntityName *string     `json:"entity_name" db:"entity_name"`
	Timestamp  time.Time   `json:"timestamp" db:"timestamp"`
}

// AdminLogCreate is the input to the admin log writer.
type AdminLogCreate struct {
	AdminName  string
	Action     AdminAction
	EntityType EntityType
	EntityID   string
	EntityName string
}
