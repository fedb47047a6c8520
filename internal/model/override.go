package model

import "time"

// OverrideStatus enumerates the administrative states a single room can be
// pinned to on a single date.  The zero value of the store is "no record",
// which reads as FREE; a FREE row may still exist purely to carry a custom
// price.
type OverrideStatus string

const (
	OverrideFree     OverrideStatus = "FREE"     // no occupancy effect, price-only override
	OverrideBooked   OverrideStatus = "BOOKED"   // admin marked the room as booked
	OverridePending  OverrideStatus = "PENDING"  // admin marked the room as pending payment
	OverrideExternal OverrideStatus = "EXTERNAL" // imported from an external calendar feed
	OverrideBlocked  OverrideStatus = "BLOCKED"  // room closed for the date (maintenance etc.)
)

// Valid reports whether s is one of the known override statuses.
func (s OverrideStatus) Valid() bool {
	switch s {
	case OverrideFree, OverrideBooked, OverridePending, OverrideExternal, OverrideBlocked:
		return true
	}
	return false
}

// Occupies reports whether the status removes the room from the free pool
// for its date.  FREE does not; every other status does.
func (s OverrideStatus) Occupies() bool {
	return s.Valid() && s != OverrideFree
}

// DateOverride is one administrative status/price record keyed by
// (room, date).  At most one record exists per key.
//
// Fields:
//
//	RoomID           – date_overrides.room_id, 1..N from the inventory.
//	Date             – date_overrides.date, the night being overridden (UTC midnight).
//	Status           – date_overrides.status.
//	Reason           – free-text note entered by the administrator.
//	CustomPriceCents – optional nightly price pinned to this room/date.  When
//	                   present it is authoritative for pricing regardless of
//	                   Status.
//	SetBy            – username of the administrator who wrote the record.
//	SetAt            – date_overrides.set_at.
//	OriginOrderID    – set when the record exists only because of a specific
//	                   reservation; cancellation of that reservation releases
//	                   exactly these rows.
type DateOverride struct {
	RoomID           int            // date_overrides.room_id
	Date             time.Time      // date_overrides.date
	Status           OverrideStatus // date_overrides.status
	Reason           string         // date_overrides.reason
	CustomPriceCents *int64         // date_overrides.custom_price_cents (nullable)
	SetBy            string         // date_overrides.set_by
	SetAt            time.Time      // date_overrides.set_at
	OriginOrderID    *uint64        // date_overrides.origin_order_id (nullable)
}
