package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mateen/socialnet/internal/model"
)

// ErrStoryNotFound is returned when a story cannot be found in the DB.
var ErrStoryNotFound = errors.New("story not found")

// StoryRepo encapsulates all database queries on the stories table.
// The deleted_at column holds the expiry timestamp; feed queries
// compare it against NOW() instead of a background reaper removing rows.
type StoryRepo struct{ db *sql.DB }

func NewStoryRepo(db *sql.DB) *StoryRepo { return &StoryRepo{db: db} }

// Create inserts a story with the fixed 24h expiry and populates the
// ID and timestamp fields.
func (r *StoryRepo) Create(ctx context.Context, s *model.Story) error {
	s.DeletedAt = time.Now().UTC().Add(model.StoryTTL)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO stories (user_id, body, image, deleted_at) VALUES (?,?,?,?)",
		s.UserID, s.Body, s.Image, s.DeletedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a story by id regardless of expiry.
func (r *StoryRepo) GetByID(ctx context.Context, id uint64) (*model.Story, error) {
	const q = `SELECT id, user_id, body, image, deleted_at, created_at, updated_at
	           FROM stories WHERE id = ? LIMIT 1`
	var s model.Story
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.UserID, &s.Body, &s.Image, &s.DeletedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListFeed returns unexpired stories whose owner the viewer holds an
// active friend edge to, newest first. The expiry column itself is
// not selected; feeds never expose it.
func (r *StoryRepo) ListFeed(ctx context.Context, viewerID uint64) ([]*model.Story, error) {
	const q = `SELECT stories.id, stories.user_id, stories.body, stories.image, stories.created_at, stories.updated_at
	           FROM stories
	           JOIN friends ON friends.friend_id = stories.user_id
	           WHERE friends.user_id = ? AND friends.status = ? AND stories.deleted_at > NOW()
	           ORDER BY stories.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, viewerID, model.FriendStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Story
	for rows.Next() {
		s := new(model.Story)
		if err := rows.Scan(&s.ID, &s.UserID, &s.Body, &s.Image, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByOwner returns every story of a user, expired ones included.
// Owners keep seeing their stories past expiry until they remove them.
func (r *StoryRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Story, error) {
	const q = `SELECT id, user_id, body, image, deleted_at, created_at, updated_at
	           FROM stories WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Story
	for rows.Next() {
		s := new(model.Story)
		if err := rows.Scan(&s.ID, &s.UserID, &s.Body, &s.Image, &s.DeletedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces body and image of a story. Callers pass the
// existing image when no new file was uploaded. Expiry is untouched.
func (r *StoryRepo) Update(ctx context.Context, id uint64, body string, image *string) error {
	const q = `UPDATE stories SET body = ?, image = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, body, image, id)
	return err
}

// Delete removes a story row. This is the only hard delete in the
// system; stories are the one entity without a soft-delete lifecycle.
func (r *StoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM stories WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoryNotFound
	}
	return nil
}
