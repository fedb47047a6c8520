package booking

import (
	"context"
	"sort"
	"time"

	"github.com/dmarren/guesthouse-booking/internal/inventory"
	"github.com/dmarren/guesthouse-booking/internal/model"
)

// PrivateEventInfo is the per-date event view returned alongside
// availability so the booking form can explain restricted dates.
type PrivateEventInfo struct {
	Name       string          `json:"name"`
	Mode       model.EventMode `json:"mode"`
	PriceCents int64           `json:"price_cents"`
}

// Availability is the merged occupancy and pricing view over an inclusive
// date range.  Map keys are YYYY-MM-DD strings.
type Availability struct {
	From          time.Time                   `json:"-"`
	To            time.Time                   `json:"-"`
	OccupiedDates []string                    `json:"occupied_dates"`
	NightlyPrice  map[string]int64            `json:"nightly_price_cents"`
	PrivateEvents map[string]PrivateEventInfo `json:"private_events"`
}

// dayFacts gathers everything known about a single date: which active
// reservations occupy it, which stays end on it (their check-out day, not
// an occupied night), which rooms carry overrides, and the private event
// rule, if any.
type dayFacts struct {
	orders  []*model.Order
	endings []*model.Order
	byRoom  map[int]*model.DateOverride
	event   *model.PrivateEvent
}

// GetAvailability merges the reservation, override and private event
// stores into an occupancy and display-pricing view for every date in the
// inclusive range [from, to].  It is a pure read: no store is mutated.
//
// A date is occupied when reservation-held rooms plus admin-blocked rooms
// reach the inventory size.  A room assigned to two active reservations on
// the same night is a data-integrity fault: it is reported through the
// fault hook and counted once (occupied), never silently summed away.
func (e *Engine) GetAvailability(ctx context.Context, from, to time.Time) (*Availability, error) {
	from, to = Day(from), Day(to)
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	snap := e.inv.Snapshot()
	facts, err := e.loadFacts(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &Availability{
		From:          from,
		To:            to,
		OccupiedDates: make([]string, 0),
		NightlyPrice:  make(map[string]int64),
		PrivateEvents: make(map[string]PrivateEventInfo),
	}
	eachDate(from, to, func(d time.Time) {
		key := DateKey(d)
		f := facts[key]
		if e.dateOccupied(snap.Count(), d, f) {
			out.OccupiedDates = append(out.OccupiedDates, key)
		}
		out.NightlyPrice[key] = displayPrice(snap, f)
		if f.event != nil {
			out.PrivateEvents[key] = PrivateEventInfo{
				Name:       f.event.Name,
				Mode:       f.event.Mode,
				PriceCents: f.event.PriceCents,
			}
		}
	})
	sort.Strings(out.OccupiedDates)
	return out, nil
}

// loadFacts fetches the three stores once for the whole range and indexes
// the results by date key.
func (e *Engine) loadFacts(ctx context.Context, from, to time.Time) (map[string]dayFacts, error) {
	orders, err := e.orders.ListActiveOverlapping(ctx, from, to)
	if err != nil {
		return nil, &StorageError{Op: "list reservations", Err: err}
	}
	overrides, err := e.overrides.Range(ctx, from, to)
	if err != nil {
		return nil, &StorageError{Op: "list overrides", Err: err}
	}
	events, err := e.events.Range(ctx, from, to)
	if err != nil {
		return nil, &StorageError{Op: "list private events", Err: err}
	}

	facts := make(map[string]dayFacts)
	get := func(d time.Time) dayFacts {
		f, ok := facts[DateKey(d)]
		if !ok {
			f = dayFacts{byRoom: make(map[int]*model.DateOverride)}
		}
		return f
	}
	for i := range orders {
		o := &orders[i]
		eachNight(o.CheckIn, o.CheckOut, func(d time.Time) {
			if d.Before(from) || d.After(to) {
				return
			}
			f := get(d)
			f.orders = append(f.orders, o)
			facts[DateKey(d)] = f
		})
		if !o.CheckOut.Before(from) && !o.CheckOut.After(to) {
			f := get(o.CheckOut)
			f.endings = append(f.endings, o)
			facts[DateKey(o.CheckOut)] = f
		}
	}
	for i := range overrides {
		ov := &overrides[i]
		f := get(ov.Date)
		f.byRoom[ov.RoomID] = ov
		facts[DateKey(ov.Date)] = f
	}
	for i := range events {
		ev := events[i]
		f := get(ev.Date)
		f.event = &ev
		facts[DateKey(ev.Date)] = f
	}
	return facts, nil
}

// dateOccupied applies the capacity rule for one date.  With no inventory
// configured every date reads occupied.
func (e *Engine) dateOccupied(inventorySize int, d time.Time, f dayFacts) bool {
	if inventorySize <= 0 {
		return true
	}
	booked := e.bookedRooms(inventorySize, d, f.orders)
	blocked := 0
	for _, ov := range f.byRoom {
		if ov.Status.Occupies() {
			blocked++
		}
	}
	return booked+blocked >= inventorySize
}

// bookedRooms counts rooms held by active reservations on date d.  An
// entire-property reservation contributes the full inventory.  The same
// room appearing in two reservations is reported as a fault and counted
// once, keeping the result monotone in the safe direction.
func (e *Engine) bookedRooms(inventorySize int, d time.Time, orders []*model.Order) int {
	seen := make(map[int][]uint64)
	entire := false
	for _, o := range orders {
		if o.PrivateAll {
			entire = true
			continue
		}
		for _, roomID := range o.RoomIDs {
			seen[roomID] = append(seen[roomID], o.ID)
		}
	}
	for roomID, ids := range seen {
		if len(ids) > 1 {
			e.reportFault(Fault{RoomID: roomID, Date: d, OrderIDs: ids})
		}
	}
	if entire {
		return inventorySize
	}
	return len(seen)
}

// displayPrice derives the nightly price shown for a date: the minimum
// explicit custom price across rooms, else the base price; a
// special-pricing event replaces that value outright, while a private-only
// event keeps it (the event price for private-only dates only surfaces
// when pricing an entire-property stay).
func displayPrice(snap *inventory.Snapshot, f dayFacts) int64 {
	price, hasCustom := minCustomPrice(f.byRoom)
	if !hasCustom {
		price = snap.BasePriceCents()
	}
	if f.event != nil && f.event.Mode == model.EventSpecialPricing {
		return f.event.PriceCents
	}
	return price
}

// minCustomPrice returns the cheapest explicit custom price among the
// date's overrides, across every status.  A custom price is authoritative
// for pricing regardless of the status that carries it.
func minCustomPrice(byRoom map[int]*model.DateOverride) (int64, bool) {
	var min int64
	found := false
	for _, ov := range byRoom {
		if ov.CustomPriceCents == nil || *ov.CustomPriceCents < 0 {
			continue
		}
		if !found || *ov.CustomPriceCents < min {
			min = *ov.CustomPriceCents
			found = true
		}
	}
	return min, found
}
