package repository

import (
	"context"
	"database/sql"

	"github.com/dmarren/guesthouse-booking/internal/model"
)

// AdminRepo provides access to the admins table used for administrative
// authentication.  Only bcrypt hashes are stored.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByUsername returns the admin account for a username, or
// ErrAdminNotFound when none exists.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	const q = `SELECT id, username, password_hash, created_at FROM admins WHERE username = ?`
	var a model.Admin
	err := r.db.QueryRowContext(ctx, q, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}

// EnsureSeed creates an admin account with the given username and hash if
// the username does not exist yet.  Used at startup so a fresh deployment
// has a working login.  The insert ignores duplicates so concurrent starts
// are safe.
func (r *AdminRepo) EnsureSeed(ctx context.Context, username, passwordHash string) error {
	const q = `INSERT IGNORE INTO admins (username, password_hash) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, username, passwordHash)
	return err
}
