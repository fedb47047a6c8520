// Package inventory exposes the static room pool and the global pricing
// defaults to the rest of the application.  The pool is configuration, not
// data: it is loaded once at startup from a JSON file and never mutated, so
// readers share a single immutable snapshot.
package inventory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmarren/guesthouse-booking/internal/model"
)

// Snapshot is an immutable view of the configured room pool plus the
// global defaults that apply when a room leaves a value unset.
type Snapshot struct {
	Rooms             []model.RoomConfig // units in ID order, IDs 1..len(Rooms)
	DefaultPriceCents int64              // nightly price for rooms without one
	Currency          string             // ISO 4217 code for all amounts
	DepositPercent    int                // deposit as a percentage of the total
	MinGuestAge       int                // 0 disables the age policy
}

// Provider hands out the current inventory snapshot.  The engine takes this
// interface rather than a concrete loader so tests can supply a fixture.
type Provider interface {
	Snapshot() *Snapshot
}

// Count returns the number of configured rooms.
func (s *Snapshot) Count() int { return len(s.Rooms) }

// Room returns the configuration for the given 1-based room ID.
func (s *Snapshot) Room(id int) (model.RoomConfig, bool) {
	if id < 1 || id > len(s.Rooms) {
		return model.RoomConfig{}, false
	}
	return s.Rooms[id-1], true
}

// RoomPriceCents returns the effective standard nightly price for a room,
// falling back to the global default when the room has none configured.
// Unknown room IDs also price at the default.
func (s *Snapshot) RoomPriceCents(id int) int64 {
	if r, ok := s.Room(id); ok && r.PriceCents > 0 {
		return r.PriceCents
	}
	return s.DefaultPriceCents
}

// BasePriceCents returns the cheapest effective standard price across the
// pool.  It is the displayed nightly price for dates without any custom
// price override.  With no rooms configured it degrades to the default.
func (s *Snapshot) BasePriceCents() int64 {
	if len(s.Rooms) == 0 {
		return s.DefaultPriceCents
	}
	min := s.RoomPriceCents(1)
	for id := 2; id <= len(s.Rooms); id++ {
		if p := s.RoomPriceCents(id); p < min {
			min = p
		}
	}
	return min
}

// roomsFile is the on-disk shape of the inventory file.
type roomsFile struct {
	Rooms []model.RoomConfig `json:"rooms"`
}

// Load reads the room pool from the JSON file at path and combines it with
// the supplied global defaults into a static Provider.  Room IDs in the
// file are ignored; positions assign IDs 1..N so the pool is always densely
// index-addressed.
func Load(path string, defaultPriceCents int64, currency string, depositPercent, minGuestAge int) (Provider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inventory: read %s: %w", path, err)
	}
	var f roomsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("inventory: parse %s: %w", path, err)
	}
	for i := range f.Rooms {
		f.Rooms[i].ID = i + 1
		if f.Rooms[i].Type == "" {
			f.Rooms[i].Type = "room"
		}
	}
	return Static(Snapshot{
		Rooms:             f.Rooms,
		DefaultPriceCents: defaultPriceCents,
		Currency:          currency,
		DepositPercent:    depositPercent,
		MinGuestAge:       minGuestAge,
	}), nil
}

// Static wraps a fixed snapshot in a Provider.  Used by Load and by tests.
func Static(s Snapshot) Provider { return &staticProvider{snap: s} }

type staticProvider struct{ snap Snapshot }

func (p *staticProvider) Snapshot() *Snapshot { return &p.snap }
