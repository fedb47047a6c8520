package booking

import (
	"context"
	"time"

	"github.com/dmarren/guesthouse-booking/internal/model"
)

// Selection names the rooms a price is computed for.  Entire selects every
// configured room as an entire-property stay; Rooms is ignored then.
type Selection struct {
	Rooms  []int
	Entire bool
}

// EntireProperty is the selection covering the whole inventory.
var EntireProperty = Selection{Entire: true}

// SelectRooms builds a selection for an explicit set of room IDs.
func SelectRooms(ids ...int) Selection { return Selection{Rooms: ids} }

// Price computes the total cost in cents of a stay over the half-open
// interval [checkIn, checkOut) for the given room selection.  It is
// deterministic for a given store snapshot and mutates nothing.
//
// Per night and room the contribution is, in precedence order: the
// override custom price when present and non-negative, else the
// special-pricing event price, else the room's standard price falling back
// to the global default.  A private-only event night on an entire-property
// stay charges the event price once for the whole property instead.
//
// Pricing does not reject non-positive totals; the hold workflow does.
func (e *Engine) Price(ctx context.Context, checkIn, checkOut time.Time, sel Selection) (int64, error) {
	checkIn, checkOut = Day(checkIn), Day(checkOut)
	if !checkOut.After(checkIn) {
		return 0, ErrInvalidRange
	}
	snap := e.inv.Snapshot()
	lastNight := checkOut.AddDate(0, 0, -1)
	facts, err := e.loadFacts(ctx, checkIn, lastNight)
	if err != nil {
		return 0, err
	}

	rooms := sel.Rooms
	if sel.Entire {
		rooms = make([]int, snap.Count())
		for i := range rooms {
			rooms[i] = i + 1
		}
	}

	var total int64
	eachNight(checkIn, checkOut, func(d time.Time) {
		f := facts[DateKey(d)]
		if sel.Entire && f.event != nil && f.event.Mode == model.EventPrivateOnly {
			// Single charge for the whole property that night, not
			// multiplied by room count.
			total += f.event.PriceCents
			return
		}
		for _, roomID := range rooms {
			total += nightlyContribution(snap, f, roomID)
		}
	})
	return total, nil
}

// nightlyContribution prices one room for one night under the merge
// precedence: custom override price, then special-pricing event, then the
// room's effective standard price.
func nightlyContribution(snap snapshotPricer, f dayFacts, roomID int) int64 {
	if ov, ok := f.byRoom[roomID]; ok && ov.CustomPriceCents != nil && *ov.CustomPriceCents >= 0 {
		return *ov.CustomPriceCents
	}
	if f.event != nil && f.event.Mode == model.EventSpecialPricing {
		return f.event.PriceCents
	}
	return snap.RoomPriceCents(roomID)
}

// snapshotPricer is the slice of the inventory snapshot pricing needs.
type snapshotPricer interface {
	RoomPriceCents(id int) int64
}
