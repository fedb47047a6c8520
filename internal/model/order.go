package model

import "time"

// OrderStatus enumerates the lifecycle states of a reservation.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"   // created by the hold workflow, awaiting payment
	OrderPaid      OrderStatus = "PAID"      // payment confirmed by the external gateway
	OrderCancelled OrderStatus = "CANCELLED" // cancelled by administrative action
)

// Occupies reports whether a reservation in this status counts against
// room capacity.  Cancelled reservations never do.
func (s OrderStatus) Occupies() bool {
	return s == OrderPending || s == OrderPaid
}

// Guest carries the contact fields collected by the booking form.  The
// engine inspects only the required identity fields and the optional age;
// everything else passes through to collaborators untouched.
type Guest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Age       *int   `json:"age,omitempty"`
	Note      string `json:"note,omitempty"`
}

// Order records a reservation of one or more rooms, or of the entire
// property, over a half-open date interval [CheckIn, CheckOut).  The
// check-out date itself is not an occupied night.
//
// Fields:
//
//	ID           – orders.id, primary key.
//	Status       – orders.status (PENDING, PAID, CANCELLED).
//	CheckIn      – orders.check_in, first occupied night (UTC midnight).
//	CheckOut     – orders.check_out, exclusive upper bound.
//	PrivateAll   – when true the reservation occupies every room in the
//	               inventory; RoomIDs is empty and ignored.
//	RoomIDs      – assigned room IDs from order_rooms; meaningful only when
//	               PrivateAll is false, then non-empty.
//	TotalCents   – orders.total_cents, authoritative computed total.
//	DepositCents – orders.deposit_cents, rounded to whole cents.
//	Currency     – orders.currency, ISO 4217 code.
//	Guest        – buyer contact fields.
//	CreatedAt    – orders.created_at.
//	UpdatedAt    – orders.updated_at.
type Order struct {
	ID           uint64
	Status       OrderStatus
	CheckIn      time.Time
	CheckOut     time.Time
	PrivateAll   bool
	RoomIDs      []int
	TotalCents   int64
	DepositCents int64
	Currency     string
	Guest        Guest
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Covers reports whether date d is an occupied night of the order, using
// the half-open interval semantics: check-in inclusive, check-out exclusive.
func (o *Order) Covers(d time.Time) bool {
	return !d.Before(o.CheckIn) && d.Before(o.CheckOut)
}

// Nights returns the number of nights in the stay.
func (o *Order) Nights() int {
	return int(o.CheckOut.Sub(o.CheckIn).Hours() / 24)
}
