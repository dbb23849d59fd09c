package model

import "time"

// User statuses. Accounts are never hard-deleted; the status column
// transitions instead.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusBlocked  = "blocked"
	UserStatusDeleted  = "deleted"
)

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID        – primary key identifier of the user.
//  Username  – optional unique handle (nullable).
//  Status    – account status (active/inactive/blocked/deleted).
//  Firstname – given name.
//  Lastname  – family name.
//  Dob       – date of birth (nullable).
//  Address, City, State, Country, Zip – postal profile fields (nullable).
//  Latitude, Longitude – last known coordinates (nullable).
//  Mobile    – optional unique phone number (nullable).
//  Avatar    – relative path of the profile image (nullable).
//  Email     – unique email address.
//  Password  – bcrypt hash of the password.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type User struct {
	ID        uint64     // users.id
	Username  *string    // users.username (nullable)
	Status    string     // users.status
	Firstname string     // users.firstname
	Lastname  string     // users.lastname
	Dob       *time.Time // users.dob (nullable)
	Address   *string    // users.address (nullable)
	City      *string    // users.city (nullable)
	State     *string    // users.state (nullable)
	Country   *string    // users.country (nullable)
	Zip       *string    // users.zip (nullable)
	Latitude  *float64   // users.latitude (nullable)
	Longitude *float64   // users.longitude (nullable)
	Mobile    *string    // users.mobile (nullable)
	Avatar    *string    // users.avatar (nullable)
	Email     string     // users.email
	Password  string     // users.password (bcrypt hash)
	CreatedAt time.Time  // users.created_at
	UpdatedAt time.Time  // users.updated_at
}
