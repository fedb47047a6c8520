package booking

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/dmarren/guesthouse-booking/internal/model"
	"github.com/dmarren/guesthouse-booking/internal/queue"
)

// HoldRequest is a prospective booking to be validated, priced and
// persisted.  Dates are UTC midnights; the stay occupies the half-open
// interval [CheckIn, CheckOut).
type HoldRequest struct {
	CheckIn    time.Time
	CheckOut   time.Time
	PrivateAll bool
	RoomIDs    []int
	Guest      model.Guest
}

// HoldResult is returned to the caller when a hold completes.
type HoldResult struct {
	OrderID      uint64 `json:"order_id"`
	TotalCents   int64  `json:"total_cents"`
	DepositCents int64  `json:"deposit_cents"`
	Currency     string `json:"currency"`
}

// CreateHold runs the hold workflow: validate the request, price the stay,
// persist a PENDING reservation with its room assignments, and emit a
// ReservationCreated event.  Validation and pricing failures return before
// any write; a persistence failure aborts atomically with no partial order.
//
// CreateHold does not re-verify room availability under a lock.  Callers
// are expected to consult GetAvailability immediately beforehand; two
// near-simultaneous holds for the same room and night can both succeed.
// This mirrors the source system and is a documented limitation, not a
// guarantee.
func (e *Engine) CreateHold(ctx context.Context, req HoldRequest) (*HoldResult, error) {
	snap := e.inv.Snapshot()

	// Validating.
	req.CheckIn, req.CheckOut = Day(req.CheckIn), Day(req.CheckOut)
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrInvalidRange
	}
	if err := validateGuest(snap.MinGuestAge, req.Guest); err != nil {
		return nil, err
	}
	rooms, err := normalizeRooms(snap.Count(), req.PrivateAll, req.RoomIDs)
	if err != nil {
		return nil, err
	}
	if err := e.checkPrivateOnly(ctx, req); err != nil {
		return nil, err
	}

	// Pricing.
	sel := Selection{Rooms: rooms, Entire: req.PrivateAll}
	total, err := e.Price(ctx, req.CheckIn, req.CheckOut, sel)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, ErrInvalidTotal
	}
	deposit := depositCents(total, snap.DepositPercent)

	// Persisting + AssigningRooms (atomic in the store).
	order := &model.Order{
		Status:       model.OrderPending,
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		PrivateAll:   req.PrivateAll,
		RoomIDs:      rooms,
		TotalCents:   total,
		DepositCents: deposit,
		Currency:     snap.Currency,
		Guest:        req.Guest,
	}
	if err := e.orders.Create(ctx, order); err != nil {
		return nil, &StorageError{Op: "create reservation", Err: err}
	}

	// Completed.
	e.publishCreated(ctx, order)
	return &HoldResult{
		OrderID:      order.ID,
		TotalCents:   order.TotalCents,
		DepositCents: order.DepositCents,
		Currency:     order.Currency,
	}, nil
}

// CancelOrder transitions a reservation to CANCELLED, releases every
// override originated by it, and emits a ReservationCancelled event.  The
// status flip and assignment removal are atomic; the override release
// follows, so a crash in between leaves stale blocked dates (over-blocking,
// never a double-booking).
func (e *Engine) CancelOrder(ctx context.Context, id uint64) (*model.Order, error) {
	return e.retire(ctx, id, false)
}

// DeleteOrder removes a reservation entirely with the same release and
// event semantics as CancelOrder.
func (e *Engine) DeleteOrder(ctx context.Context, id uint64) (*model.Order, error) {
	return e.retire(ctx, id, true)
}

func (e *Engine) retire(ctx context.Context, id uint64, remove bool) (*model.Order, error) {
	order, err := e.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if remove {
		err = e.orders.Delete(ctx, id)
	} else {
		err = e.orders.Cancel(ctx, id)
	}
	if err != nil {
		return nil, &StorageError{Op: "retire reservation", Err: err}
	}
	if err := e.overrides.ReleaseByOrder(ctx, id); err != nil {
		return nil, &StorageError{Op: "release overrides", Err: err}
	}
	if e.publisher != nil {
		ev := queue.ReservationCancelledEvent{
			OrderID:     order.ID,
			CheckIn:     DateKey(order.CheckIn),
			CheckOut:    DateKey(order.CheckOut),
			PrivateAll:  order.PrivateAll,
			RoomIDs:     order.RoomIDs,
			Deleted:     remove,
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := e.publisher.ReservationCancelled(ctx, ev); err != nil {
			log.Printf("booking: publish reservation.cancelled for order %d failed: %v", order.ID, err)
		}
	}
	order.Status = model.OrderCancelled
	return order, nil
}

// checkPrivateOnly rejects partial bookings touching a private-only date.
func (e *Engine) checkPrivateOnly(ctx context.Context, req HoldRequest) error {
	if req.PrivateAll {
		return nil
	}
	lastNight := req.CheckOut.AddDate(0, 0, -1)
	events, err := e.events.Range(ctx, req.CheckIn, lastNight)
	if err != nil {
		return &StorageError{Op: "list private events", Err: err}
	}
	for _, ev := range events {
		if ev.Mode == model.EventPrivateOnly {
			return &PrivateEventConflictError{EventName: ev.Name, Date: ev.Date}
		}
	}
	return nil
}

func (e *Engine) publishCreated(ctx context.Context, o *model.Order) {
	if e.publisher == nil {
		return
	}
	ev := queue.ReservationCreatedEvent{
		OrderID:      o.ID,
		Status:       string(o.Status),
		CheckIn:      DateKey(o.CheckIn),
		CheckOut:     DateKey(o.CheckOut),
		PrivateAll:   o.PrivateAll,
		RoomIDs:      o.RoomIDs,
		TotalCents:   o.TotalCents,
		DepositCents: o.DepositCents,
		Currency:     o.Currency,
		FirstName:    o.Guest.FirstName,
		LastName:     o.Guest.LastName,
		Email:        o.Guest.Email,
		Phone:        o.Guest.Phone,
		Note:         o.Guest.Note,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := e.publisher.ReservationCreated(ctx, ev); err != nil {
		log.Printf("booking: publish reservation.created for order %d failed: %v", o.ID, err)
	}
}

// validateGuest enforces the required contact fields and, when both a
// minimum age is configured and an age was supplied, the age policy.
func validateGuest(minAge int, g model.Guest) error {
	switch {
	case g.FirstName == "":
		return &ValidationError{Field: "first_name", Msg: "required"}
	case g.LastName == "":
		return &ValidationError{Field: "last_name", Msg: "required"}
	case g.Email == "":
		return &ValidationError{Field: "email", Msg: "required"}
	case g.Phone == "":
		return &ValidationError{Field: "phone", Msg: "required"}
	}
	if minAge > 0 && g.Age != nil && *g.Age < minAge {
		return &ValidationError{Field: "age", Msg: "below the minimum age for booking"}
	}
	return nil
}

// normalizeRooms deduplicates and sorts the selection and checks every ID
// against the inventory.  Entire-property requests carry no explicit rooms.
func normalizeRooms(inventorySize int, privateAll bool, ids []int) ([]int, error) {
	if privateAll {
		return nil, nil
	}
	seen := make(map[int]struct{}, len(ids))
	rooms := make([]int, 0, len(ids))
	for _, id := range ids {
		if id < 1 || id > inventorySize {
			return nil, &ValidationError{Field: "room_ids", Msg: "unknown room id"}
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		rooms = append(rooms, id)
	}
	if len(rooms) == 0 {
		return nil, &ValidationError{Field: "room_ids", Msg: "select at least one room or book the entire property"}
	}
	sort.Ints(rooms)
	return rooms, nil
}

// depositCents computes the deposit from the total at the configured
// percentage, rounded half-up to whole cents.
func depositCents(totalCents int64, percent int) int64 {
	if percent <= 0 {
		return 0
	}
	return (totalCents*int64(percent) + 50) / 100
}
