package booking

import (
	"context"
	"time"

	"github.com/dmarren/guesthouse-booking/internal/model"
)

// OverrideTag discriminates the admin sub-status shown on a locked cell.
type OverrideTag string

const (
	TagNone         OverrideTag = ""
	TagBlocked      OverrideTag = "BLOCKED"
	TagAdminBooked  OverrideTag = "ADMIN_BOOKED"
	TagAdminPending OverrideTag = "ADMIN_PENDING"
	TagExternal     OverrideTag = "EXTERNAL"
)

// CellState is the render state for one room on one date.  All flags are
// reported so the UI can layer them; Locked is the aggregate "not
// selectable" verdict.
type CellState struct {
	RoomID         int         `json:"room_id"`
	Date           string      `json:"date"`
	Locked         bool        `json:"locked"`
	CheckIn        bool        `json:"check_in"`
	CheckOut       bool        `json:"check_out"`
	CarryOver      bool        `json:"carry_over"`
	Override       OverrideTag `json:"override,omitempty"`
	PrivateOnly    bool        `json:"private_only"`
	SpecialPricing bool        `json:"special_pricing"`
}

// CellState derives the render state for a single cell.  It loads the
// facts for the date and its predecessor; the predecessor matters only for
// the carry-over flag, the one place adjacent dates influence each other.
func (e *Engine) CellState(ctx context.Context, roomID int, date time.Time) (*CellState, error) {
	date = Day(date)
	if roomID < 1 || roomID > e.inv.Snapshot().Count() {
		return nil, &ValidationError{Field: "room_id", Msg: "unknown room id"}
	}
	// Load from two days back: the predecessor's own check-out flag needs
	// stays ending on it, which the overlap query only returns when the
	// range starts before their check-out date.
	prev := date.AddDate(0, 0, -1)
	facts, err := e.loadFacts(ctx, date.AddDate(0, 0, -2), date)
	if err != nil {
		return nil, err
	}
	cell := deriveCell(roomID, date, facts[DateKey(date)], facts[DateKey(prev)])
	return &cell, nil
}

// CellRange derives the full grid for every room over the inclusive date
// range [from, to] in one pass, loading each store once.  Rows are keyed
// by room ID; cells are ordered by date.
func (e *Engine) CellRange(ctx context.Context, from, to time.Time) (map[int][]CellState, error) {
	from, to = Day(from), Day(to)
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	snap := e.inv.Snapshot()
	facts, err := e.loadFacts(ctx, from.AddDate(0, 0, -2), to)
	if err != nil {
		return nil, err
	}
	grid := make(map[int][]CellState, snap.Count())
	for roomID := 1; roomID <= snap.Count(); roomID++ {
		cells := make([]CellState, 0)
		eachDate(from, to, func(d time.Time) {
			p := d.AddDate(0, 0, -1)
			cells = append(cells, deriveCell(roomID, d, facts[DateKey(d)], facts[DateKey(p)]))
		})
		grid[roomID] = cells
	}
	return grid, nil
}

// deriveCell is the pure mapping from one date's facts (and its
// predecessor's) to a render state.  Precedence, lowest first: free,
// reservation coverage, admin override, carry-over, private event overlay.
func deriveCell(roomID int, date time.Time, f, prevFacts dayFacts) CellState {
	cell := CellState{RoomID: roomID, Date: DateKey(date)}

	// Reservation coverage.  The check-out day itself is not locked by its
	// reservation (half-open interval) but is flagged for rendering.
	for _, o := range f.orders {
		if !orderTouchesRoom(o, roomID) {
			continue
		}
		if o.Covers(date) {
			cell.Locked = true
			if date.Equal(o.CheckIn) {
				cell.CheckIn = true
			}
		}
	}
	for _, o := range f.endings {
		if orderTouchesRoom(o, roomID) {
			cell.CheckOut = true
		}
	}

	// Admin override.
	if ov, ok := f.byRoom[roomID]; ok && ov.Status.Occupies() {
		cell.Locked = true
		cell.Override = overrideTag(ov.Status)
	}

	// Carry-over: a locked previous day that was not itself a boundary
	// continues visually into the first half of this cell.
	prev := deriveCellShallow(roomID, date.AddDate(0, 0, -1), prevFacts)
	if prev.Locked && !prev.CheckIn && !prev.CheckOut {
		cell.CarryOver = true
	}

	// Private event overlay.
	if f.event != nil {
		switch f.event.Mode {
		case model.EventPrivateOnly:
			cell.Locked = true
			cell.PrivateOnly = true
		case model.EventSpecialPricing:
			cell.SpecialPricing = true
		}
	}
	return cell
}

// deriveCellShallow computes the lock and boundary flags of a cell without
// recursing into its own predecessor.  Used only for the carry-over check,
// which by definition looks one day back and no further.
func deriveCellShallow(roomID int, date time.Time, f dayFacts) CellState {
	cell := CellState{RoomID: roomID, Date: DateKey(date)}
	for _, o := range f.orders {
		if !orderTouchesRoom(o, roomID) {
			continue
		}
		if o.Covers(date) {
			cell.Locked = true
			if date.Equal(o.CheckIn) {
				cell.CheckIn = true
			}
		}
	}
	for _, o := range f.endings {
		if orderTouchesRoom(o, roomID) {
			cell.CheckOut = true
		}
	}
	if ov, ok := f.byRoom[roomID]; ok && ov.Status.Occupies() {
		cell.Locked = true
	}
	if f.event != nil && f.event.Mode == model.EventPrivateOnly {
		cell.Locked = true
	}
	return cell
}

func orderTouchesRoom(o *model.Order, roomID int) bool {
	if o.PrivateAll {
		return true
	}
	for _, id := range o.RoomIDs {
		if id == roomID {
			return true
		}
	}
	return false
}

func overrideTag(s model.OverrideStatus) OverrideTag {
	switch s {
	case model.OverrideBlocked:
		return TagBlocked
	case model.OverrideBooked:
		return TagAdminBooked
	case model.OverridePending:
		return TagAdminPending
	case model.OverrideExternal:
		return TagExternal
	}
	return TagNone
}
