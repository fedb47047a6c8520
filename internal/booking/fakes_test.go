package booking

import (
	"context"
	"time"

	"github.com/dmarren/guesthouse-booking/internal/inventory"
	"github.com/dmarren/guesthouse-booking/internal/model"
	"github.com/dmarren/guesthouse-booking/internal/queue"
	"github.com/dmarren/guesthouse-booking/internal/repository"
)

// In-memory store fakes implementing the engine's interfaces.  They keep
// the same contracts as the SQL repositories so the engine can be tested
// without a database.

type fakeOverrides struct {
	items    []model.DateOverride
	released []uint64
}

func (f *fakeOverrides) Range(_ context.Context, from, to time.Time) ([]model.DateOverride, error) {
	out := make([]model.DateOverride, 0)
	for _, ov := range f.items {
		if !ov.Date.Before(from) && !ov.Date.After(to) {
			out = append(out, ov)
		}
	}
	return out, nil
}

func (f *fakeOverrides) ReleaseByOrder(_ context.Context, orderID uint64) error {
	f.released = append(f.released, orderID)
	kept := f.items[:0]
	for _, ov := range f.items {
		if ov.OriginOrderID != nil && *ov.OriginOrderID == orderID {
			continue
		}
		kept = append(kept, ov)
	}
	f.items = kept
	return nil
}

type fakeEvents struct {
	items []model.PrivateEvent
}

func (f *fakeEvents) Range(_ context.Context, from, to time.Time) ([]model.PrivateEvent, error) {
	out := make([]model.PrivateEvent, 0)
	for _, ev := range f.items {
		if !ev.Date.Before(from) && !ev.Date.After(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeOrders struct {
	items     map[uint64]*model.Order
	nextID    uint64
	createErr error
	cancelErr error
	cancelled []uint64
	deleted   []uint64
}

func newFakeOrders(orders ...model.Order) *fakeOrders {
	f := &fakeOrders{items: make(map[uint64]*model.Order)}
	for _, o := range orders {
		cp := o
		if cp.ID == 0 {
			f.nextID++
			cp.ID = f.nextID
		} else if cp.ID > f.nextID {
			f.nextID = cp.ID
		}
		f.items[cp.ID] = &cp
	}
	return f
}

func (f *fakeOrders) Create(_ context.Context, o *model.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	o.ID = f.nextID
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	f.items[cp.ID] = &cp
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id uint64) (*model.Order, error) {
	o, ok := f.items[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) ListActiveOverlapping(_ context.Context, from, to time.Time) ([]model.Order, error) {
	out := make([]model.Order, 0)
	for _, o := range f.items {
		if o.Status.Occupies() && !o.CheckIn.After(to) && o.CheckOut.After(from) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) Cancel(_ context.Context, id uint64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	o, ok := f.items[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.Status = model.OrderCancelled
	o.RoomIDs = nil
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeOrders) Delete(_ context.Context, id uint64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePublisher struct {
	created   []queue.ReservationCreatedEvent
	cancelled []queue.ReservationCancelledEvent
}

func (f *fakePublisher) ReservationCreated(_ context.Context, ev queue.ReservationCreatedEvent) error {
	f.created = append(f.created, ev)
	return nil
}

func (f *fakePublisher) ReservationCancelled(_ context.Context, ev queue.ReservationCancelledEvent) error {
	f.cancelled = append(f.cancelled, ev)
	return nil
}

// Test fixture helpers.

func date(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func cents(v int64) *int64 { return &v }

func uid(v uint64) *uint64 { return &v }

func testInventory(roomPrices ...int64) inventory.Provider {
	rooms := make([]model.RoomConfig, len(roomPrices))
	for i, p := range roomPrices {
		rooms[i] = model.RoomConfig{ID: i + 1, Title: "Room", Type: "room", PriceCents: p}
	}
	return inventory.Static(inventory.Snapshot{
		Rooms:             rooms,
		DefaultPriceCents: 9000,
		Currency:          "EUR",
		DepositPercent:    20,
	})
}

func staticFrom(s inventory.Snapshot) inventory.Provider { return inventory.Static(s) }

func guest() model.Guest {
	return model.Guest{FirstName: "Ada", LastName: "Lindqvist", Email: "ada@example.com", Phone: "+4670000001"}
}

func activeOrder(id uint64, status model.OrderStatus, checkIn, checkOut string, privateAll bool, rooms ...int) model.Order {
	return model.Order{
		ID:         id,
		Status:     status,
		CheckIn:    date(checkIn),
		CheckOut:   date(checkOut),
		PrivateAll: privateAll,
		RoomIDs:    rooms,
		Currency:   "EUR",
		Guest:      guest(),
	}
}
