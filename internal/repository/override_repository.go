package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmarren/guesthouse-booking/internal/model"
)

// OverrideRepo provides access to the date_overrides table, the per-room
// per-date administrative status/price store.  Absence of a row means the
// room is free on that date.
//
// Writes are serialized behind a repository-level mutex and every mutation
// is a single-row upsert or delete.  The source system this replaces kept
// the whole collection in one serialized blob updated by read-modify-write,
// where two concurrent admin edits to different keys could silently drop
// one edit; keyed rows plus the write lock close that hole.
type OverrideRepo struct {
	db *sql.DB
	mu sync.Mutex
}

// NewOverrideRepo returns a new OverrideRepo bound to the given database.
func NewOverrideRepo(db *sql.DB) *OverrideRepo { return &OverrideRepo{db: db} }

// Set writes an override for (room, date), replacing any existing record
// for the key.  Setting the same value twice is a harmless no-op change.
func (r *OverrideRepo) Set(ctx context.Context, ov model.DateOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	const q = `INSERT INTO date_overrides
	           (room_id, date, status, reason, custom_price_cents, set_by, origin_order_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             status = VALUES(status), reason = VALUES(reason),
	             custom_price_cents = VALUES(custom_price_cents),
	             set_by = VALUES(set_by), origin_order_id = VALUES(origin_order_id)`
	var price sql.NullInt64
	if ov.CustomPriceCents != nil {
		price = sql.NullInt64{Int64: *ov.CustomPriceCents, Valid: true}
	}
	var origin sql.NullInt64
	if ov.OriginOrderID != nil {
		origin = sql.NullInt64{Int64: int64(*ov.OriginOrderID), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, q,
		ov.RoomID, ov.Date.Format(dateLayout), string(ov.Status), ov.Reason, price, ov.SetBy, origin)
	return err
}

// Clear removes the override for (room, date).  Clearing a key with no
// record leaves the store unchanged and is not an error.
func (r *OverrideRepo) Clear(ctx context.Context, roomID int, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM date_overrides WHERE room_id = ? AND date = ?`,
		roomID, date.Format(dateLayout))
	return err
}

// Range returns all overrides whose date falls in the inclusive range
// [from, to], ordered by date then room.
func (r *OverrideRepo) Range(ctx context.Context, from, to time.Time) ([]model.DateOverride, error) {
	const q = `SELECT room_id, date, status, reason, custom_price_cents, set_by, set_at, origin_order_id
	           FROM date_overrides
	           WHERE date >= ? AND date <= ?
	           ORDER BY date, room_id`
	rows, err := r.db.QueryContext(ctx, q, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.DateOverride, 0)
	for rows.Next() {
		var ov model.DateOverride
		var status string
		var price, origin sql.NullInt64
		var reason, setBy sql.NullString
		if err := rows.Scan(&ov.RoomID, &ov.Date, &status, &reason, &price, &setBy, &ov.SetAt, &origin); err != nil {
			return nil, err
		}
		ov.Status = model.OverrideStatus(status)
		ov.Date = ov.Date.UTC()
		if reason.Valid {
			ov.Reason = reason.String
		}
		if setBy.Valid {
			ov.SetBy = setBy.String
		}
		if price.Valid {
			p := price.Int64
			ov.CustomPriceCents = &p
		}
		if origin.Valid {
			oid := uint64(origin.Int64)
			ov.OriginOrderID = &oid
		}
		out = append(out, ov)
	}
	return out, rows.Err()
}

// ReleaseByOrder deletes every override whose origin_order_id matches the
// given reservation.  Overrides created by other reservations or by direct
// admin action are untouched.  Called on cancellation and deletion.
func (r *OverrideRepo) ReleaseByOrder(ctx context.Context, orderID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM date_overrides WHERE origin_order_id = ?`, orderID)
	return err
}
