package model

import "time"

// Message is an append-only room message in the `messages` table.
// Messages are never edited or deleted by the current API.
//
// Fields:
//  ID        – primary key identifier; listing is ordered by it.
//  RoomID    – room the message was posted in.
//  Message   – text body.
//  CreatedBy – author user id.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Message struct {
	ID        uint64    // messages.id
	RoomID    uint64    // messages.room_id
	Message   string    // messages.message
	CreatedBy uint64    // messages.created_by
	CreatedAt time.Time // messages.created_at
	UpdatedAt time.Time // messages.updated_at
}
