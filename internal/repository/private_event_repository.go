package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmarren/guesthouse-booking/internal/model"
)

// PrivateEventRepo provides access to the private_events table, the
// per-date property-wide rule store.  At most one event exists per date.
// Writes are serialized behind a repository-level mutex for the same
// lost-update reason documented on OverrideRepo.
type PrivateEventRepo struct {
	db *sql.DB
	mu sync.Mutex
}

// NewPrivateEventRepo returns a new PrivateEventRepo bound to the given database.
func NewPrivateEventRepo(db *sql.DB) *PrivateEventRepo { return &PrivateEventRepo{db: db} }

// Set writes the event rule for a date, replacing any existing rule.
// Setting the same value twice is a harmless no-op change.
func (r *PrivateEventRepo) Set(ctx context.Context, ev model.PrivateEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	const q = `INSERT INTO private_events (date, name, mode, price_cents)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             name = VALUES(name), mode = VALUES(mode), price_cents = VALUES(price_cents)`
	_, err := r.db.ExecContext(ctx, q,
		ev.Date.Format(dateLayout), ev.Name, string(ev.Mode), ev.PriceCents)
	return err
}

// Clear removes the event rule for a date.  Clearing a date with no rule
// leaves the store unchanged and is not an error.
func (r *PrivateEventRepo) Clear(ctx context.Context, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM private_events WHERE date = ?`, date.Format(dateLayout))
	return err
}

// Range returns all event rules whose date falls in the inclusive range
// [from, to], ordered by date.
func (r *PrivateEventRepo) Range(ctx context.Context, from, to time.Time) ([]model.PrivateEvent, error) {
	const q = `SELECT date, name, mode, price_cents FROM private_events
	           WHERE date >= ? AND date <= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, q, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PrivateEvent, 0)
	for rows.Next() {
		var ev model.PrivateEvent
		var mode string
		if err := rows.Scan(&ev.Date, &ev.Name, &mode, &ev.PriceCents); err != nil {
			return nil, err
		}
		ev.Mode = model.EventMode(mode)
		ev.Date = ev.Date.UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}
