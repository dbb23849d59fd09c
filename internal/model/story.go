package model

import "time"

// StoryTTL is the fixed lifetime of a story. DeletedAt is set to
// creation time plus this value and feed queries exclude rows whose
// DeletedAt is in the past. There is no reaping process.
const StoryTTL = 24 * time.Hour

// Story is an ephemeral post in the `stories` table. DeletedAt is an
// expiry timestamp, not a tombstone: an expired story still exists and
// remains visible to its owner until the owner removes it.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – story owner.
//  Body      – text content.
//  Image     – relative path of the uploaded image (nullable).
//  DeletedAt – expiry timestamp (created + StoryTTL).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Story struct {
	ID        uint64    // stories.id
	UserID    uint64    // stories.user_id
	Body      string    // stories.body
	Image     *string   // stories.image (nullable)
	DeletedAt time.Time // stories.deleted_at (expiry, not tombstone)
	CreatedAt time.Time // stories.created_at
	UpdatedAt time.Time // stories.updated_at
}
