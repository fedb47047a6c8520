// Package repository implements persistence for reservations, date
// overrides, private events and admin accounts on top of database/sql.
// This file defines sentinel error values shared across repositories so
// that handlers can translate failure scenarios into HTTP statuses
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrOrderNotFound is returned when a reservation ID does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrOrderNotFound = errors.New("reservation not found")

// ErrAdminNotFound is returned when no admin account matches the given
// username.  Handlers should respond with 401 rather than leaking which
// part of the credential pair was wrong.
var ErrAdminNotFound = errors.New("admin not found")
