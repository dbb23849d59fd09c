package model

import "time"

// Friend edge statuses. A mutual friendship is stored as two active
// edges, one per direction. `restricted` and `deleted` exist in the
// schema but no operation currently transitions into them.
const (
	FriendStatusPending    = "pending"
	FriendStatusActive     = "active"
	FriendStatusBlocked    = "blocked"
	FriendStatusRestricted = "restricted"
	FriendStatusDeleted    = "deleted"
)

// Friend is a directed relationship edge in the `friends` table.
// A pending edge points from the requester to the recipient; an
// accepted friendship is represented by two active edges. The
// (user_id, friend_id) pair is unique and self-edges are rejected
// before insert.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – the owning side of the edge.
//  FriendID  – the user the edge points at.
//  Status    – edge status (pending/active/blocked/restricted/deleted).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Friend struct {
	ID        uint64    // friends.id
	UserID    uint64    // friends.user_id
	FriendID  uint64    // friends.friend_id
	Status    string    // friends.status
	CreatedAt time.Time // friends.created_at
	UpdatedAt time.Time // friends.updated_at
}
