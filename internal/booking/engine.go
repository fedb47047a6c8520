// Package booking implements the availability and pricing engine: the
// merge of reservations, administrative date overrides and property-wide
// private events into an occupancy/pricing view, the pricing precedence
// for prospective stays, the hold workflow that validates and persists a
// reservation, and the per-cell derivation used to render a room-by-date
// calendar grid.
package booking

import (
	"context"
	"log"
	"time"

	"github.com/dmarren/guesthouse-booking/internal/inventory"
	"github.com/dmarren/guesthouse-booking/internal/model"
	"github.com/dmarren/guesthouse-booking/internal/queue"
)

// OverrideStore is the engine's view of the per-(room, date) override
// collection.  Range covers the inclusive date interval [from, to];
// ReleaseByOrder deletes only rows whose origin order matches.
type OverrideStore interface {
	Range(ctx context.Context, from, to time.Time) ([]model.DateOverride, error)
	ReleaseByOrder(ctx context.Context, orderID uint64) error
}

// EventStore is the engine's view of the per-date private event collection.
type EventStore interface {
	Range(ctx context.Context, from, to time.Time) ([]model.PrivateEvent, error)
}

// OrderStore is the engine's view of reservation persistence.  Create must
// persist the order and its room assignments atomically; Cancel must flip
// the status and drop the assignments atomically.
type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	GetByID(ctx context.Context, id uint64) (*model.Order, error)
	ListActiveOverlapping(ctx context.Context, from, to time.Time) ([]model.Order, error)
	Cancel(ctx context.Context, id uint64) error
	Delete(ctx context.Context, id uint64) error
}

// Publisher is the domain-event sink consumed by notification and
// external-calendar collaborators.  Publish failures are logged, never
// surfaced to guests: the reservation is already durable by the time an
// event is emitted.
type Publisher interface {
	ReservationCreated(ctx context.Context, ev queue.ReservationCreatedEvent) error
	ReservationCancelled(ctx context.Context, ev queue.ReservationCancelledEvent) error
}

// Engine wires the stores together.  All methods are safe for concurrent
// use; the engine itself holds no mutable state.
type Engine struct {
	inv       inventory.Provider
	overrides OverrideStore
	events    EventStore
	orders    OrderStore
	publisher Publisher
	onFault   func(Fault)
}

// Option customizes an Engine.
type Option func(*Engine)

// WithFaultHook installs a hook invoked for every data-integrity fault
// found during availability aggregation.  The default hook logs.
func WithFaultHook(fn func(Fault)) Option {
	return func(e *Engine) { e.onFault = fn }
}

// NewEngine builds an Engine over the given inventory and stores.  The
// publisher may be nil, in which case completed holds and cancellations
// emit nothing.
func NewEngine(inv inventory.Provider, overrides OverrideStore, events EventStore, orders OrderStore, pub Publisher, opts ...Option) *Engine {
	e := &Engine{
		inv:       inv,
		overrides: overrides,
		events:    events,
		orders:    orders,
		publisher: pub,
		onFault: func(f Fault) {
			log.Printf("booking: data integrity fault: %s", f)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) reportFault(f Fault) {
	if e.onFault != nil {
		e.onFault(f)
	}
}
