package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dmarren/guesthouse-booking/internal/model"
)

const dateLayout = "2006-01-02"

// OrderRepo provides CRUD operations for reservations and their room
// assignments.  Rooms assigned to a reservation live in the order_rooms
// table; a reservation flagged private_all has no rows there because it
// implicitly occupies the whole inventory.  All timestamps are UTC.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions that
// span repositories.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// Create inserts a reservation together with its room assignments in one
// transaction, so a failure leaves no partial order behind.  The generated
// ID and database-populated timestamps are written back onto o.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO orders
	           (status, check_in, check_out, private_all, total_cents, deposit_cents, currency,
	            first_name, last_name, email, phone, age, note)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var age sql.NullInt64
	if o.Guest.Age != nil {
		age = sql.NullInt64{Int64: int64(*o.Guest.Age), Valid: true}
	}
	result, err := tx.ExecContext(ctx, q,
		string(o.Status), o.CheckIn.Format(dateLayout), o.CheckOut.Format(dateLayout),
		o.PrivateAll, o.TotalCents, o.DepositCents, o.Currency,
		o.Guest.FirstName, o.Guest.LastName, o.Guest.Email, o.Guest.Phone, age, o.Guest.Note,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)

	if !o.PrivateAll && len(o.RoomIDs) > 0 {
		query := `INSERT INTO order_rooms (order_id, room_id) VALUES `
		args := make([]interface{}, 0, len(o.RoomIDs)*2)
		for i, roomID := range o.RoomIDs {
			if i > 0 {
				query += ","
			}
			query += "(?, ?)"
			args = append(args, o.ID, roomID)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	// Query back the row so database defaults (timestamps) are reflected.
	const sel = `SELECT created_at, updated_at FROM orders WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, o.ID).Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns a single reservation with its room assignments.  It
// returns ErrOrderNotFound when the ID does not exist.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	const q = `SELECT id, status, check_in, check_out, private_all, total_cents, deposit_cents, currency,
	                  first_name, last_name, email, phone, age, note, created_at, updated_at
	           FROM orders WHERE id = ?`
	o, err := scanOrder(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if err := r.loadRooms(ctx, []*model.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListActiveOverlapping returns all PENDING and PAID reservations whose
// half-open interval [check_in, check_out) contains at least one night in
// the inclusive date range [from, to].  Room assignments are populated.
func (r *OrderRepo) ListActiveOverlapping(ctx context.Context, from, to time.Time) ([]model.Order, error) {
	// Overlap: check_in <= to AND check_out > from.  check_out equal to a
	// date does not occupy that date (half-open semantics).
	const q = `SELECT id, status, check_in, check_out, private_all, total_cents, deposit_cents, currency,
	                  first_name, last_name, email, phone, age, note, created_at, updated_at
	           FROM orders
	           WHERE status IN ('PENDING', 'PAID') AND check_in <= ? AND check_out > ?
	           ORDER BY check_in, id`
	rows, err := r.db.QueryContext(ctx, q, to.Format(dateLayout), from.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectOrders(ctx, rows)
}

// ListAll returns every reservation ordered by creation time descending.
// Used by the admin listing endpoint.
func (r *OrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	const q = `SELECT id, status, check_in, check_out, private_all, total_cents, deposit_cents, currency,
	                  first_name, last_name, email, phone, age, note, created_at, updated_at
	           FROM orders ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectOrders(ctx, rows)
}

// Cancel transitions a reservation to CANCELLED and removes its room
// assignments in one transaction.  It returns ErrOrderNotFound when the
// reservation does not exist.  Cancelling an already-cancelled order is a
// no-op change, not an error.
func (r *OrderRepo) Cancel(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	result, err := tx.ExecContext(ctx, `UPDATE orders SET status = 'CANCELLED' WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is 0 both for a missing row and for an order that is
		// already cancelled; distinguish with an existence check.
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE id = ?`, id).Scan(&exists); err != nil {
			if err == sql.ErrNoRows {
				return ErrOrderNotFound
			}
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_rooms WHERE order_id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes a reservation and its room assignments entirely.  It
// returns ErrOrderNotFound when the reservation does not exist.
func (r *OrderRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_rooms WHERE order_id = ?`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SetStatus updates a reservation's status, used by the payment
// confirmation collaborator to flip PENDING to PAID.
func (r *OrderRepo) SetStatus(ctx context.Context, id uint64, status model.OrderStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE id = ?`, id).Scan(&exists); err != nil {
			if err == sql.ErrNoRows {
				return ErrOrderNotFound
			}
			return err
		}
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s rowScanner) (*model.Order, error) {
	var o model.Order
	var status string
	var age sql.NullInt64
	var note sql.NullString
	if err := s.Scan(
		&o.ID, &status, &o.CheckIn, &o.CheckOut, &o.PrivateAll,
		&o.TotalCents, &o.DepositCents, &o.Currency,
		&o.Guest.FirstName, &o.Guest.LastName, &o.Guest.Email, &o.Guest.Phone,
		&age, &note, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.Status = model.OrderStatus(status)
	if age.Valid {
		a := int(age.Int64)
		o.Guest.Age = &a
	}
	if note.Valid {
		o.Guest.Note = note.String
	}
	o.CheckIn = o.CheckIn.UTC()
	o.CheckOut = o.CheckOut.UTC()
	return &o, nil
}

// collectOrders drains rows and populates room assignments for the whole
// batch with a single IN query.
func (r *OrderRepo) collectOrders(ctx context.Context, rows *sql.Rows) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	ptrs := make([]*model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
		ptrs = append(ptrs, &orders[len(orders)-1])
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadRooms(ctx, ptrs); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadRooms fills RoomIDs for every order in one query.
func (r *OrderRepo) loadRooms(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	index := make(map[uint64]*model.Order, len(orders))
	ids := make([]interface{}, 0, len(orders))
	placeholders := make([]string, 0, len(orders))
	for _, o := range orders {
		index[o.ID] = o
		ids = append(ids, o.ID)
		placeholders = append(placeholders, "?")
	}
	query := `SELECT order_id, room_id FROM order_rooms
	          WHERE order_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY order_id, room_id`
	rows, err := r.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var orderID uint64
		var roomID int
		if err := rows.Scan(&orderID, &roomID); err != nil {
			return err
		}
		if o, ok := index[orderID]; ok {
			o.RoomIDs = append(o.RoomIDs, roomID)
		}
	}
	return rows.Err()
}
