package repository

import (
	"context"
	"database/sql"

	"github.com/mateen/socialnet/internal/model"
)

// MessageRepo encapsulates the append-only messages table. Messages
// are never updated or deleted through the API.
type MessageRepo struct{ db *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

// Create appends a message row and populates its ID.
func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (room_id, message, created_by) VALUES (?,?,?)",
		m.RoomID, m.Message, m.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// ListByRoom returns every message of a room in insertion order.
func (r *MessageRepo) ListByRoom(ctx context.Context, roomID uint64) ([]*model.Message, error) {
	const q = `SELECT id, room_id, message, created_by, created_at, updated_at
	           FROM messages WHERE room_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Message
	for rows.Next() {
		m := new(model.Message)
		if err := rows.Scan(&m.ID, &m.RoomID, &m.Message, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
