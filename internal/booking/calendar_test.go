package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarren/guesthouse-booking/internal/model"
)

func cellAt(t *testing.T, grid map[int][]CellState, roomID int, day string) CellState {
	t.Helper()
	for _, c := range grid[roomID] {
		if c.Date == day {
			return c
		}
	}
	t.Fatalf("no cell for room %d on %s", roomID, day)
	return CellState{}
}

func TestCellRange_StayBoundariesAndCarryOver(t *testing.T) {
	// A three-night stay: check-in day locked with the boundary flag,
	// middle nights locked plain, the check-out day unlocked but flagged
	// and carrying over from the locked middle night.
	orders := newFakeOrders(activeOrder(1, model.OrderPaid, "2025-07-01", "2025-07-04", false, 1))
	e := newEngine(testInventory(10000, 10000), nil, nil, orders)

	grid, err := e.CellRange(context.Background(), date("2025-06-30"), date("2025-07-05"))
	require.NoError(t, err)

	before := cellAt(t, grid, 1, "2025-06-30")
	assert.False(t, before.Locked)

	checkIn := cellAt(t, grid, 1, "2025-07-01")
	assert.True(t, checkIn.Locked)
	assert.True(t, checkIn.CheckIn)
	assert.False(t, checkIn.CarryOver)

	middle := cellAt(t, grid, 1, "2025-07-02")
	assert.True(t, middle.Locked)
	assert.False(t, middle.CheckIn)
	// The predecessor was the check-in boundary, so no carry-over yet.
	assert.False(t, middle.CarryOver)

	last := cellAt(t, grid, 1, "2025-07-03")
	assert.True(t, last.Locked)
	assert.True(t, last.CarryOver)

	checkOut := cellAt(t, grid, 1, "2025-07-04")
	assert.False(t, checkOut.Locked)
	assert.True(t, checkOut.CheckOut)
	assert.True(t, checkOut.CarryOver)

	after := cellAt(t, grid, 1, "2025-07-05")
	assert.False(t, after.Locked)
	assert.False(t, after.CarryOver)

	// The other room is untouched throughout.
	for _, c := range grid[2] {
		assert.False(t, c.Locked, "room 2 on %s", c.Date)
	}
}

func TestCellRange_SingleNightStayNoCarryOver(t *testing.T) {
	// A one-night stay's only locked day is a check-in boundary, so the
	// check-out day does not carry over.
	orders := newFakeOrders(activeOrder(1, model.OrderPaid, "2025-07-01", "2025-07-02", false, 1))
	e := newEngine(testInventory(10000), nil, nil, orders)

	grid, err := e.CellRange(context.Background(), date("2025-07-01"), date("2025-07-02"))
	require.NoError(t, err)

	checkOut := cellAt(t, grid, 1, "2025-07-02")
	assert.True(t, checkOut.CheckOut)
	assert.False(t, checkOut.CarryOver)
}

func TestCellRange_OverrideSubStatuses(t *testing.T) {
	ovs := &fakeOverrides{items: []model.DateOverride{
		{RoomID: 1, Date: date("2025-07-01"), Status: model.OverrideBlocked},
		{RoomID: 1, Date: date("2025-07-02"), Status: model.OverrideBooked},
		{RoomID: 1, Date: date("2025-07-03"), Status: model.OverridePending},
		{RoomID: 1, Date: date("2025-07-04"), Status: model.OverrideExternal},
		{RoomID: 1, Date: date("2025-07-05"), Status: model.OverrideFree, CustomPriceCents: cents(5000)},
	}}
	e := newEngine(testInventory(10000), ovs, nil, nil)

	grid, err := e.CellRange(context.Background(), date("2025-07-01"), date("2025-07-05"))
	require.NoError(t, err)

	assert.Equal(t, TagBlocked, cellAt(t, grid, 1, "2025-07-01").Override)
	assert.Equal(t, TagAdminBooked, cellAt(t, grid, 1, "2025-07-02").Override)
	assert.Equal(t, TagAdminPending, cellAt(t, grid, 1, "2025-07-03").Override)
	assert.Equal(t, TagExternal, cellAt(t, grid, 1, "2025-07-04").Override)

	// A FREE-status override carries only a price and never locks.
	free := cellAt(t, grid, 1, "2025-07-05")
	assert.False(t, free.Locked)
	assert.Equal(t, TagNone, free.Override)
}

func TestCellRange_OverrideCarriesOverLikeAStay(t *testing.T) {
	// An admin-blocked day is locked without boundaries, so the next day
	// carries over.
	ovs := &fakeOverrides{items: []model.DateOverride{
		{RoomID: 1, Date: date("2025-07-01"), Status: model.OverrideBlocked},
	}}
	e := newEngine(testInventory(10000), ovs, nil, nil)

	grid, err := e.CellRange(context.Background(), date("2025-07-01"), date("2025-07-02"))
	require.NoError(t, err)

	next := cellAt(t, grid, 1, "2025-07-02")
	assert.False(t, next.Locked)
	assert.True(t, next.CarryOver)
}

func TestCellRange_PrivateEventOverlay(t *testing.T) {
	evs := &fakeEvents{items: []model.PrivateEvent{
		{Date: date("2025-09-01"), Name: "Retreat", Mode: model.EventPrivateOnly, PriceCents: 50000},
		{Date: date("2025-09-02"), Name: "Harvest", Mode: model.EventSpecialPricing, PriceCents: 6000},
	}}
	e := newEngine(testInventory(10000, 10000), nil, evs, nil)

	grid, err := e.CellRange(context.Background(), date("2025-09-01"), date("2025-09-02"))
	require.NoError(t, err)

	private := cellAt(t, grid, 1, "2025-09-01")
	assert.True(t, private.Locked)
	assert.True(t, private.PrivateOnly)

	special := cellAt(t, grid, 2, "2025-09-02")
	assert.False(t, special.Locked)
	assert.True(t, special.SpecialPricing)
}

func TestCellRange_EntirePropertyLocksEveryRoom(t *testing.T) {
	orders := newFakeOrders(activeOrder(1, model.OrderPending, "2025-07-01", "2025-07-02", true))
	e := newEngine(testInventory(10000, 10000, 10000), nil, nil, orders)

	grid, err := e.CellRange(context.Background(), date("2025-07-01"), date("2025-07-01"))
	require.NoError(t, err)
	for roomID := 1; roomID <= 3; roomID++ {
		c := cellAt(t, grid, roomID, "2025-07-01")
		assert.True(t, c.Locked)
		assert.True(t, c.CheckIn)
	}
}

func TestCellState_SingleCell(t *testing.T) {
	orders := newFakeOrders(activeOrder(1, model.OrderPaid, "2025-07-01", "2025-07-03", false, 1))
	e := newEngine(testInventory(10000, 10000), nil, nil, orders)

	// The check-out day: unlocked, flagged, carrying over from the locked
	// final night.
	cell, err := e.CellState(context.Background(), 1, date("2025-07-03"))
	require.NoError(t, err)
	assert.False(t, cell.Locked)
	assert.True(t, cell.CheckOut)
	assert.True(t, cell.CarryOver)

	_, err = e.CellState(context.Background(), 9, date("2025-07-03"))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
