package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mateen/socialnet/internal/model"
)

// ErrRoomNotFound is returned when a room cannot be found in the DB.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo encapsulates all database queries related to rooms.
type RoomRepo struct{ db *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a new room with status active and populates the ID
// and timestamp fields with what the database generated.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO rooms (name, description, thumbnail, status, created_by) VALUES (?,?,?,?,?)",
		rm.Name, rm.Description, rm.Thumbnail, model.RoomStatusActive, rm.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)

	const q = `SELECT status, created_at, updated_at FROM rooms WHERE id = ?`
	return r.db.QueryRowContext(ctx, q, rm.ID).Scan(&rm.Status, &rm.CreatedAt, &rm.UpdatedAt)
}

// GetByID fetches a room by id. Deliberately no status filter: a
// soft-deleted room is still returned on single-get, matching the
// product behavior. ErrRoomNotFound only when the row is absent.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, name, description, thumbnail, status, created_by, deleted_at, created_at, updated_at
	           FROM rooms WHERE id = ? LIMIT 1`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rm.ID, &rm.Name, &rm.Description, &rm.Thumbnail, &rm.Status, &rm.CreatedBy,
		&rm.DeletedAt, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// ListByOwner returns all non-deleted rooms created by the owner.
func (r *RoomRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Room, error) {
	const q = `SELECT id, name, description, thumbnail, status, created_by, deleted_at, created_at, updated_at
	           FROM rooms WHERE created_by = ? AND status != ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, ownerID, model.RoomStatusDeleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Room
	for rows.Next() {
		rm := new(model.Room)
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Description, &rm.Thumbnail, &rm.Status,
			&rm.CreatedBy, &rm.DeletedAt, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces name, description and thumbnail of a room. Callers
// pass the existing thumbnail when no new file was uploaded.
func (r *RoomRepo) Update(ctx context.Context, id uint64, name string, description, thumbnail *string) error {
	const q = `UPDATE rooms
	           SET name = ?, description = ?, thumbnail = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, name, description, thumbnail, id)
	return err
}

// SoftDelete marks a room deleted and records when. The row stays.
func (r *RoomRepo) SoftDelete(ctx context.Context, id uint64) error {
	const q = `UPDATE rooms SET status = ?, deleted_at = NOW() WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, model.RoomStatusDeleted, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
