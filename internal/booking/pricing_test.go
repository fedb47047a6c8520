package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarren/guesthouse-booking/internal/model"
)

func TestPrice_OverrideBeatsEventBeatsStandard(t *testing.T) {
	// Standard 100.00, special-pricing event 80.00, custom override 50.00:
	// the override wins.
	ovs := &fakeOverrides{items: []model.DateOverride{
		{RoomID: 1, Date: date("2025-08-10"), Status: model.OverrideFree, CustomPriceCents: cents(5000)},
	}}
	evs := &fakeEvents{items: []model.PrivateEvent{
		{Date: date("2025-08-10"), Name: "Festival", Mode: model.EventSpecialPricing, PriceCents: 8000},
	}}
	e := newEngine(testInventory(10000), ovs, evs, nil)

	total, err := e.Price(context.Background(), date("2025-08-10"), date("2025-08-11"), SelectRooms(1))
	require.NoError(t, err)
	assert.Equal(t, int64(5000), total)
}

func TestPrice_SpecialPricingAppliesPerRoom(t *testing.T) {
	evs := &fakeEvents{items: []model.PrivateEvent{
		{Date: date("2025-08-10"), Name: "Festival", Mode: model.EventSpecialPricing, PriceCents: 6000},
	}}
	e := newEngine(testInventory(10000, 10000, 10000), nil, evs, nil)

	total, err := e.Price(context.Background(), date("2025-08-10"), date("2025-08-11"), SelectRooms(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(12000), total)
}

func TestPrice_PrivateOnlyEntirePropertySingleCharge(t *testing.T) {
	// A private-only night on an entire-property stay charges the event
	// price once, not per room.
	evs := &fakeEvents{items: []model.PrivateEvent{
		{Date: date("2025-09-01"), Name: "Retreat", Mode: model.EventPrivateOnly, PriceCents: 50000},
	}}
	e := newEngine(testInventory(10000, 10000, 10000), nil, evs, nil)

	total, err := e.Price(context.Background(), date("2025-09-01"), date("2025-09-03"), EntireProperty)
	require.NoError(t, err)
	// Night one: event price once.  Night two: three rooms at standard.
	assert.Equal(t, int64(50000+30000), total)
}

func TestPrice_PrivateOnlyPartialSelectionUsesNormalPrecedence(t *testing.T) {
	// Pricing itself does not enforce the private-only restriction; the
	// hold workflow rejects such requests before pricing matters.
	evs := &fakeEvents{items: []model.PrivateEvent{
		{Date: date("2025-09-01"), Name: "Retreat", Mode: model.EventPrivateOnly, PriceCents: 50000},
	}}
	e := newEngine(testInventory(10000, 12000), nil, evs, nil)

	total, err := e.Price(context.Background(), date("2025-09-01"), date("2025-09-02"), SelectRooms(2))
	require.NoError(t, err)
	assert.Equal(t, int64(12000), total)
}

func TestPrice_DefaultPriceFallback(t *testing.T) {
	// Room 2 has no configured price and falls back to the global default.
	e := newEngine(testInventory(10000, 0), nil, nil, nil)

	total, err := e.Price(context.Background(), date("2025-10-01"), date("2025-10-03"), SelectRooms(2))
	require.NoError(t, err)
	assert.Equal(t, int64(18000), total)
}

func TestPrice_NegativeCustomPriceIgnored(t *testing.T) {
	ovs := &fakeOverrides{items: []model.DateOverride{
		{RoomID: 1, Date: date("2025-10-01"), Status: model.OverrideFree, CustomPriceCents: cents(-1)},
	}}
	e := newEngine(testInventory(10000), ovs, nil, nil)

	total, err := e.Price(context.Background(), date("2025-10-01"), date("2025-10-02"), SelectRooms(1))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), total)
}

func TestPrice_ZeroCustomPriceIsAuthoritative(t *testing.T) {
	ovs := &fakeOverrides{items: []model.DateOverride{
		{RoomID: 1, Date: date("2025-10-01"), Status: model.OverrideFree, CustomPriceCents: cents(0)},
	}}
	e := newEngine(testInventory(10000), ovs, nil, nil)

	total, err := e.Price(context.Background(), date("2025-10-01"), date("2025-10-02"), SelectRooms(1))
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestPrice_MultiNightMultiRoom(t *testing.T) {
	// Two rooms over three nights with one discounted night for room 1.
	ovs := &fakeOverrides{items: []model.DateOverride{
		{RoomID: 1, Date: date("2025-10-02"), Status: model.OverrideFree, CustomPriceCents: cents(8000)},
	}}
	e := newEngine(testInventory(10000, 12000), ovs, nil, nil)

	total, err := e.Price(context.Background(), date("2025-10-01"), date("2025-10-04"), SelectRooms(1, 2))
	require.NoError(t, err)
	// Room 1: 10000 + 8000 + 10000; room 2: 3 x 12000.
	assert.Equal(t, int64(28000+36000), total)
}

func TestPrice_InvalidRange(t *testing.T) {
	e := newEngine(testInventory(10000), nil, nil, nil)

	_, err := e.Price(context.Background(), date("2025-10-02"), date("2025-10-02"), SelectRooms(1))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = e.Price(context.Background(), date("2025-10-02"), date("2025-10-01"), SelectRooms(1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestPrice_Deterministic(t *testing.T) {
	ovs := &fakeOverrides{items: []model.DateOverride{
		{RoomID: 2, Date: date("2025-10-01"), Status: model.OverrideBooked, CustomPriceCents: cents(7500)},
	}}
	e := newEngine(testInventory(10000, 12000), ovs, nil, nil)

	first, err := e.Price(context.Background(), date("2025-10-01"), date("2025-10-03"), EntireProperty)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.Price(context.Background(), date("2025-10-01"), date("2025-10-03"), EntireProperty)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
