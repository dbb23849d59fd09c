package model

import "time"

// Room statuses. Rooms are soft-deleted: status flips to deleted and
// deleted_at records when, the row is never removed.
const (
	RoomStatusActive   = "active"
	RoomStatusInactive = "inactive"
	RoomStatusDeleted  = "deleted"
	RoomStatusBanned   = "banned"
)

// Room represents a chat room in the `rooms` table. The creator is
// recorded in CreatedBy and is implicitly authorized for every room
// operation without a membership row.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name (3–255 characters).
//  Description – optional free-form description (nullable).
//  Thumbnail   – relative path of the uploaded thumbnail (nullable).
//  Status      – room status (active/inactive/deleted/banned).
//  CreatedBy   – owner user id, immutable after creation.
//  DeletedAt   – soft-delete timestamp (nullable).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
	ID          uint64     // rooms.id
	Name        string     // rooms.name
	Description *string    // rooms.description (nullable)
	Thumbnail   *string    // rooms.thumbnail (nullable)
	Status      string     // rooms.status
	CreatedBy   uint64     // rooms.created_by
	DeletedAt   *time.Time // rooms.deleted_at (nullable)
	CreatedAt   time.Time  // rooms.created_at
	UpdatedAt   time.Time  // rooms.updated_at
}
