package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarren/guesthouse-booking/internal/inventory"
	"github.com/dmarren/guesthouse-booking/internal/model"
)

func newEngine(inv inventory.Provider, ovs *fakeOverrides, evs *fakeEvents, ords *fakeOrders, opts ...Option) *Engine {
	if ovs == nil {
		ovs = &fakeOverrides{}
	}
	if evs == nil {
		evs = &fakeEvents{}
	}
	if ords == nil {
		ords = newFakeOrders()
	}
	return NewEngine(inv, ovs, evs, ords, nil, opts...)
}

func TestGetAvailability_SingleRoomReservationLeavesDatesFree(t *testing.T) {
	// Two rooms, one reserved: room 2 keeps every night free.
	orders := newFakeOrders(activeOrder(1, model.OrderPaid, "2025-07-01", "2025-07-04", false, 1))
	e := newEngine(testInventory(10000, 10000), nil, nil, orders)

	av, err := e.GetAvailability(context.Background(), date("2025-07-01"), date("2025-07-04"))
	require.NoError(t, err)
	assert.Empty(t, av.OccupiedDates)
}

func TestGetAvailability_EntirePropertyOccupiesEveryDate(t *testing.T) {
	orders := newFakeOrders(activeOrder(1, model.OrderPaid, "2025-07-01", "2025-07-04", true))
	e := newEngine(testInventory(10000, 10000), nil, nil, orders)

	av, err := e.GetAvailability(context.Background(), date("2025-07-01"), date("2025-07-04"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-01", "2025-07-02", "2025-07-03"}, av.OccupiedDates)
	// The check-out date itself stays free under half-open semantics.
	assert.NotContains(t, av.OccupiedDates, "2025-07-04")
}

func TestGetAvailability_HalfOpenInterval(t *testing.T) {
	// One room total, so the reservation's nights fully occupy it.
	orders := newFakeOrders(activeOrder(1, model.OrderPaid, "2025-06-01", "2025-06-03", false, 1))
	e := newEngine(testInventory(10000), nil, nil, orders)

	av, err := e.GetAvailability(context.Background(), date("2025-06-01"), date("2025-06-03"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, av.OccupiedDates)
}

func TestGetAvailability_BlockedOverrideFillsLastRoom(t *testing.T) {
	// Capacity monotonicity: with one of two rooms reserved, adding a
	// blocked override for the other flips the date to occupied.
	orders := newFakeOrders(activeOrder(1, model.OrderPending, "2025-07-10", "2025-07-11", false, 1))
	ovs := &fakeOverrides{}
	e := newEngine(testInventory(10000, 10000), ovs, nil, orders)

	av, err := e.GetAvailability(context.Background(), date("2025-07-10"), date("2025-07-10"))
	require.NoError(t, err)
	assert.Empty(t, av.OccupiedDates)

	ovs.items = append(ovs.items, model.DateOverride{
		RoomID: 2, Date: date("2025-07-10"), Status: model.OverrideBlocked,
	})
	av, err = e.GetAvailability(context.Background(), date("2025-07-10"), date("2025-07-10"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-10"}, av.OccupiedDates)
}

func TestGetAvailability_FreeOverrideDoesNotOccupy(t *testing.T) {
	ovs := &fakeOverrides{items: []model.DateOverride{
		{RoomID: 1, Date: date("2025-07-10"), Status: model.OverrideFree, CustomPriceCents: cents(4500)},
	}}
	e := newEngine(testInventory(10000), ovs, nil, nil)

	av, err := e.GetAvailability(context.Background(), date("2025-07-10"), date("2025-07-10"))
	require.NoError(t, err)
	assert.Empty(t, av.OccupiedDates)
	// The price-only override still drives the displayed nightly price.
	assert.Equal(t, int64(4500), av.NightlyPrice["2025-07-10"])
}

func TestGetAvailability_NoInventoryMeansFullyOccupied(t *testing.T) {
	e := newEngine(testInventory(), nil, nil, nil)

	av, err := e.GetAvailability(context.Background(), date("2025-07-01"), date("2025-07-02"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-01", "2025-07-02"}, av.OccupiedDates)
}

func TestGetAvailability_NightlyPricePrecedence(t *testing.T) {
	ovs := &fakeOverrides{items: []model.DateOverride{
		{RoomID: 1, Date: date("2025-08-01"), Status: model.OverrideBlocked, CustomPriceCents: cents(7000)},
		{RoomID: 2, Date: date("2025-08-01"), Status: model.OverrideBooked, CustomPriceCents: cents(5000)},
	}}
	evs := &fakeEvents{items: []model.PrivateEvent{
		{Date: date("2025-08-02"), Name: "Harvest", Mode: model.EventSpecialPricing, PriceCents: 6000},
		{Date: date("2025-08-03"), Name: "Retreat", Mode: model.EventPrivateOnly, PriceCents: 90000},
	}}
	e := newEngine(testInventory(10000, 12000), ovs, evs, nil)

	av, err := e.GetAvailability(context.Background(), date("2025-08-01"), date("2025-08-04"))
	require.NoError(t, err)
	// Cheapest custom price wins across rooms.
	assert.Equal(t, int64(5000), av.NightlyPrice["2025-08-01"])
	// Special pricing replaces the base price.
	assert.Equal(t, int64(6000), av.NightlyPrice["2025-08-02"])
	// Private-only keeps the base price; the event price only surfaces when
	// pricing an entire-property stay.
	assert.Equal(t, int64(10000), av.NightlyPrice["2025-08-03"])
	// No sources at all: minimum standard price across rooms.
	assert.Equal(t, int64(10000), av.NightlyPrice["2025-08-04"])

	require.Contains(t, av.PrivateEvents, "2025-08-03")
	assert.Equal(t, "Retreat", av.PrivateEvents["2025-08-03"].Name)
}

func TestGetAvailability_SpecialPricingBeatsCustomPriceForDisplay(t *testing.T) {
	ovs := &fakeOverrides{items: []model.DateOverride{
		{RoomID: 1, Date: date("2025-08-10"), Status: model.OverrideFree, CustomPriceCents: cents(5000)},
	}}
	evs := &fakeEvents{items: []model.PrivateEvent{
		{Date: date("2025-08-10"), Name: "Festival", Mode: model.EventSpecialPricing, PriceCents: 8000},
	}}
	e := newEngine(testInventory(10000), ovs, evs, nil)

	av, err := e.GetAvailability(context.Background(), date("2025-08-10"), date("2025-08-10"))
	require.NoError(t, err)
	assert.Equal(t, int64(8000), av.NightlyPrice["2025-08-10"])
}

func TestGetAvailability_DefaultPriceFallback(t *testing.T) {
	// A room configured without a price falls back to the global default,
	// and the base price is the minimum across effective prices.
	e := newEngine(testInventory(10000, 0), nil, nil, nil)

	av, err := e.GetAvailability(context.Background(), date("2025-09-01"), date("2025-09-01"))
	require.NoError(t, err)
	assert.Equal(t, int64(9000), av.NightlyPrice["2025-09-01"])
}

func TestGetAvailability_InvalidRange(t *testing.T) {
	e := newEngine(testInventory(10000), nil, nil, nil)

	_, err := e.GetAvailability(context.Background(), date("2025-07-02"), date("2025-07-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGetAvailability_DoubleAssignmentReportedAndCountedOnce(t *testing.T) {
	// Room 1 assigned to two active reservations for the same night: a
	// data-integrity fault is reported, the room counts once, and the
	// query still succeeds best-effort.
	orders := newFakeOrders(
		activeOrder(1, model.OrderPaid, "2025-07-01", "2025-07-02", false, 1),
		activeOrder(2, model.OrderPending, "2025-07-01", "2025-07-02", false, 1),
	)
	var faults []Fault
	e := newEngine(testInventory(10000, 10000), nil, nil, orders,
		WithFaultHook(func(f Fault) { faults = append(faults, f) }))

	av, err := e.GetAvailability(context.Background(), date("2025-07-01"), date("2025-07-01"))
	require.NoError(t, err)
	// One of two rooms held: the date is not fully occupied.
	assert.Empty(t, av.OccupiedDates)

	require.Len(t, faults, 1)
	assert.Equal(t, 1, faults[0].RoomID)
	assert.ElementsMatch(t, []uint64{1, 2}, faults[0].OrderIDs)
}

func TestGetAvailability_CancelledReservationsDoNotCount(t *testing.T) {
	orders := newFakeOrders(activeOrder(1, model.OrderCancelled, "2025-07-01", "2025-07-04", true))
	e := newEngine(testInventory(10000), nil, nil, orders)

	av, err := e.GetAvailability(context.Background(), date("2025-07-01"), date("2025-07-03"))
	require.NoError(t, err)
	assert.Empty(t, av.OccupiedDates)
}
