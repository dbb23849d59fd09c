package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mateen/socialnet/internal/model"
)

// ErrFriendNotFound is returned when no matching friend edge exists.
var ErrFriendNotFound = errors.New("friend not found")

// FriendUser is a row from the friends/users join returned by
// ListFriends. It carries the profile fields exposed in friend
// listings, not the edge itself.
type FriendUser struct {
	ID        uint64  `json:"id"`
	Username  *string `json:"username"`
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Email     string  `json:"email"`
	Mobile    *string `json:"mobile"`
	Status    string  `json:"status"`
}

// FriendRequest is a pending-request row: the requesting user's
// profile fields plus the edge status and creation time.
type FriendRequest struct {
	ID        uint64    `json:"id"`
	Username  *string   `json:"username"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendRepo encapsulates all database queries on the friends table.
// An active friendship is always two rows, one per direction; the
// repository methods keep that invariant.
type FriendRepo struct{ DB *sql.DB }

func NewFriendRepo(db *sql.DB) *FriendRepo { return &FriendRepo{DB: db} }

// GetEdge fetches the directed edge userID -> friendID regardless of
// status. ErrFriendNotFound is returned when no such edge exists.
func (r *FriendRepo) GetEdge(ctx context.Context, userID, friendID uint64) (*model.Friend, error) {
	const q = `SELECT id, user_id, friend_id, status, created_at, updated_at
	           FROM friends WHERE user_id = ? AND friend_id = ? LIMIT 1`
	var f model.Friend
	err := r.DB.QueryRowContext(ctx, q, userID, friendID).Scan(
		&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFriendNotFound
		}
		return nil, err
	}
	return &f, nil
}

// CreatePending inserts a pending edge from the requester to the
// target. The (user_id, friend_id) unique key turns a racing
// duplicate into ErrConflict.
func (r *FriendRepo) CreatePending(ctx context.Context, userID, friendID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO friends (user_id, friend_id, status) VALUES (?,?,?)",
		userID, friendID, model.FriendStatusPending)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Accept transitions the pending edge requester -> accepter to active
// and inserts the reverse edge, inside one transaction so the graph
// can never be left asymmetric. ErrFriendNotFound is returned when no
// pending request from the requester exists.
func (r *FriendRepo) Accept(ctx context.Context, requesterID, accepterID uint64) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE friends SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ? AND friend_id = ? AND status = ?",
		model.FriendStatusActive, requesterID, accepterID, model.FriendStatusPending)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFriendNotFound
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO friends (user_id, friend_id, status) VALUES (?,?,?)",
		accepterID, requesterID, model.FriendStatusActive)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	return nil
}

// RemoveBetween deletes both directions of the relation between the
// two users in one statement. ErrFriendNotFound is returned when no
// edge existed in either direction; removing an already half-removed
// relation succeeds.
func (r *FriendRepo) RemoveBetween(ctx context.Context, userID, otherID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM friends WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userID, otherID, otherID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFriendNotFound
	}
	return nil
}

// ListFriends returns the users this user holds an active edge to,
// newest friendship first, with offset paging.
func (r *FriendRepo) ListFriends(ctx context.Context, userID uint64, limit, offset int) ([]*FriendUser, error) {
	const q = `SELECT users.id, users.username, users.firstname, users.lastname, users.email, users.mobile, users.status
	           FROM friends
	           JOIN users ON users.id = friends.friend_id
	           WHERE friends.user_id = ? AND friends.status = ?
	           ORDER BY friends.created_at DESC
	           LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, q, userID, model.FriendStatusActive, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*FriendUser
	for rows.Next() {
		f := new(FriendUser)
		if err := rows.Scan(&f.ID, &f.Username, &f.Firstname, &f.Lastname, &f.Email, &f.Mobile, &f.Status); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPendingRequests returns the users that sent this user a friend
// request which is still pending.
func (r *FriendRepo) ListPendingRequests(ctx context.Context, userID uint64) ([]*FriendRequest, error) {
	const q = `SELECT users.id, users.username, users.firstname, users.lastname, friends.status, friends.created_at
	           FROM friends
	           JOIN users ON users.id = friends.user_id
	           WHERE friends.friend_id = ? AND friends.status = ?`
	rows, err := r.DB.QueryContext(ctx, q, userID, model.FriendStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*FriendRequest
	for rows.Next() {
		f := new(FriendRequest)
		if err := rows.Scan(&f.ID, &f.Username, &f.Firstname, &f.Lastname, &f.Status, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
