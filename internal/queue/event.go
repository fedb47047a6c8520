// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when the hold workflow completes.
// It carries the full normalized request so downstream consumers
// (notifications, external-calendar push) never need to query the primary
// database.
type ReservationCreatedEvent struct {
	OrderID      uint64 `json:"order_id"`
	Status       string `json:"status"`
	CheckIn      string `json:"check_in"`  // YYYY-MM-DD
	CheckOut     string `json:"check_out"` // YYYY-MM-DD, exclusive
	PrivateAll   bool   `json:"private_all"`
	RoomIDs      []int  `json:"room_ids,omitempty"`
	TotalCents   int64  `json:"total_cents"`
	DepositCents int64  `json:"deposit_cents"`
	Currency     string `json:"currency"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Note         string `json:"note,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// ReservationCancelledEvent is published when a reservation is cancelled or
// deleted by administrative action, after its originated overrides have
// been released.
type ReservationCancelledEvent struct {
	OrderID     uint64 `json:"order_id"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	PrivateAll  bool   `json:"private_all"`
	RoomIDs     []int  `json:"room_ids,omitempty"`
	Deleted     bool   `json:"deleted"` // true when the row was removed, not just cancelled
	CancelledAt string `json:"cancelled_at"`
}
