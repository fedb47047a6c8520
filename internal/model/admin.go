package model

import "time"

// Admin is an administrative account allowed to manage overrides, private
// events and reservations.  Passwords are stored as bcrypt hashes only.
type Admin struct {
	ID           uint64    // admins.id
	Username     string    // admins.username (unique)
	PasswordHash string    // admins.password_hash (bcrypt)
	CreatedAt    time.Time // admins.created_at
}
