package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mateen/socialnet/internal/model"
)

// ErrUserNotFound is returned when a user cannot be found in the DB.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when the email unique key is violated.
var ErrEmailExists = errors.New("email already exists")

// UserRepo encapsulates all database queries related to users.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new user and populates its ID. The password field
// must already be a bcrypt hash; status defaults to active in the DB.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, firstname, lastname, email, password) VALUES (?,?,?,?,?)",
		u.Username, u.Firstname, u.Lastname, u.Email, u.Password)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT id, username, status, firstname, lastname, email, password, created_at, updated_at
	           FROM users WHERE email = ? LIMIT 1`
	var u model.User
	err := r.DB.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.Username, &u.Status, &u.Firstname, &u.Lastname, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID fetches the full profile of a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, username, status, firstname, lastname, dob, address, city, state, country, zip,
	                  latitude, longitude, mobile, avatar, email, password, created_at, updated_at
	           FROM users WHERE id = ? LIMIT 1`
	var u model.User
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Username, &u.Status, &u.Firstname, &u.Lastname, &u.Dob, &u.Address, &u.City, &u.State,
		&u.Country, &u.Zip, &u.Latitude, &u.Longitude, &u.Mobile, &u.Avatar, &u.Email, &u.Password,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ListAll returns id, username, name and signup date for every user.
// Only the directory fields are selected; the rest stay zero.
func (r *UserRepo) ListAll(ctx context.Context) ([]*model.User, error) {
	const q = `SELECT id, username, firstname, lastname, created_at FROM users ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u := new(model.User)
		if err := rows.Scan(&u.ID, &u.Username, &u.Firstname, &u.Lastname, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsByEmail reports whether a user with the given email exists.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&n)
	return n > 0, err
}

// ExistsByUsername reports whether a user with the given username exists.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE username = ?", username).Scan(&n)
	return n > 0, err
}

// UpdatePassword replaces the stored bcrypt hash for a user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", hash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
