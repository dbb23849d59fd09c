// Package repository contains data access logic separated from HTTP
// handlers. Each entity has its own repository struct exposing typed
// query methods over *sql.DB. This file defines error values reused
// across repositories; sentinel errors let handlers distinguish
// failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrConflict is returned when an insert cannot proceed because the
// state it would create already exists, such as a duplicate friend
// request or membership row. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")
