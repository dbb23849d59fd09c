package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mateen/socialnet/internal/model"
)

// ErrMemberNotFound is returned when a membership row cannot be found.
var ErrMemberNotFound = errors.New("member not found")

// RoomMember is a row from the members/users join returned by
// ListByRoom: the membership columns plus the member's profile fields.
type RoomMember struct {
	ID         uint64    `json:"id"`
	RoomID     uint64    `json:"room_id"`
	UserID     uint64    `json:"user_id"`
	Status     string    `json:"status"`
	CreatedBy  uint64    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Username   *string   `json:"username"`
	Firstname  string    `json:"firstname"`
	Lastname   string    `json:"lastname"`
	Email      string    `json:"email"`
	UserStatus string    `json:"user_status"`
}

// MemberRepo encapsulates all database queries on the members table.
// Room owners never have a member row; ownership is checked against
// rooms.created_by by the callers.
type MemberRepo struct{ db *sql.DB }

func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{db: db} }

// GetByRoomAndUser fetches the membership of a user in a room
// regardless of status. ErrMemberNotFound when no row exists.
func (r *MemberRepo) GetByRoomAndUser(ctx context.Context, roomID, userID uint64) (*model.Member, error) {
	const q = `SELECT id, room_id, user_id, status, created_by, created_at, updated_at
	           FROM members WHERE room_id = ? AND user_id = ? LIMIT 1`
	var m model.Member
	err := r.db.QueryRowContext(ctx, q, roomID, userID).Scan(
		&m.ID, &m.RoomID, &m.UserID, &m.Status, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByRoom returns every membership of a room joined with the
// member's profile fields.
func (r *MemberRepo) ListByRoom(ctx context.Context, roomID uint64) ([]*RoomMember, error) {
	const q = `SELECT members.id, members.room_id, members.user_id, members.status, members.created_by,
	                  members.created_at, members.updated_at,
	                  users.username, users.firstname, users.lastname, users.email, users.status
	           FROM members
	           JOIN users ON users.id = members.user_id
	           WHERE members.room_id = ?`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*RoomMember
	for rows.Next() {
		m := new(RoomMember)
		if err := rows.Scan(&m.ID, &m.RoomID, &m.UserID, &m.Status, &m.CreatedBy,
			&m.CreatedAt, &m.UpdatedAt, &m.Username, &m.Firstname, &m.Lastname, &m.Email, &m.UserStatus); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a membership row with status active. The
// (room_id, user_id) unique key turns a racing duplicate into
// ErrConflict.
func (r *MemberRepo) Create(ctx context.Context, m *model.Member) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO members (room_id, user_id, status, created_by) VALUES (?,?,?,?)",
		m.RoomID, m.UserID, model.MemberStatusActive, m.CreatedBy)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	m.Status = model.MemberStatusActive
	return nil
}

// Delete removes a membership row by id.
func (r *MemberRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMemberNotFound
	}
	return nil
}
