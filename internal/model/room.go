package model

// RoomConfig describes one bookable unit of the property.  Rooms are
// configuration, not database rows: the pool is loaded once per process
// from the inventory file and addressed by its stable 1-based ID.
//
// Fields:
//
//	ID                  – stable 1-based identifier of the unit.
//	Title               – display name shown on the booking form.
//	Type                – unit kind ("room", "house", "apartment", ...).
//	PriceCents          – standard nightly price in minor currency units.
//	                      Zero means "use the global default price".
//	EarlyBirdPriceCents – optional early-bird nightly price.  Informational
//	                      only: the authoritative total never consults it,
//	                      matching the source system where the discount is
//	                      computed client-side from a days-before-check-in
//	                      window.
type RoomConfig struct {
	ID                  int    `json:"id"`
	Title               string `json:"title"`
	Type                string `json:"type"`
	PriceCents          int64  `json:"price_cents"`
	EarlyBirdPriceCents *int64 `json:"early_bird_price_cents,omitempty"`
}
