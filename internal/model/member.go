package model

import "time"

// Membership statuses. `pending` and `banned` are reserved for a
// future invitation/moderation flow; no current operation sets them.
const (
	MemberStatusPending = "pending"
	MemberStatusActive  = "active"
	MemberStatusDeleted = "deleted"
	MemberStatusBanned  = "banned"
)

// Member links a user to a room in the `members` table. Room owners
// do not get a member row; their access derives from rooms.created_by.
// A user has at most one membership row per room.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – room the membership belongs to.
//  UserID    – member user id.
//  Status    – membership status (pending/active/deleted/banned).
//  CreatedBy – user that added this member (owner on add).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Member struct {
	ID        uint64    // members.id
	RoomID    uint64    // members.room_id
	UserID    uint64    // members.user_id
	Status    string    // members.status
	CreatedBy uint64    // members.created_by
	CreatedAt time.Time // members.created_at
	UpdatedAt time.Time // members.updated_at
}
