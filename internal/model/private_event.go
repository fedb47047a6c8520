package model

import "time"

// EventMode selects how a private event affects the property on its date.
type EventMode string

const (
	// EventPrivateOnly forbids any partial booking touching the date; only
	// entire-property reservations may include it.
	EventPrivateOnly EventMode = "PRIVATE_ONLY"
	// EventSpecialPricing changes the nightly price only and has no effect
	// on availability.
	EventSpecialPricing EventMode = "SPECIAL_PRICING"
)

// Valid reports whether m is a known event mode.
func (m EventMode) Valid() bool {
	return m == EventPrivateOnly || m == EventSpecialPricing
}

// PrivateEvent is a property-wide rule for a single date.  At most one
// event exists per date.
type PrivateEvent struct {
	Date       time.Time // private_events.date (UTC midnight)
	Name       string    // private_events.name, shown to guests on conflicts
	Mode       EventMode // private_events.mode
	PriceCents int64     // private_events.price_cents
}
