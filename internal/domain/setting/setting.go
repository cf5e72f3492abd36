// Package setting defines the single-row business settings schema.
package setting

import (
	"context"
	"time"
)

// Settings is the one row of business configuration. BreakfastPrice is in
// cents per guest per night.
type Settings struct {
	ID                  int64     `json:"id"`
	CreatedAt           time.Time `json:"createdAt"`
	MinBookingLength    int       `json:"minBookingLength"`
	MaxBookingLength    int       `json:"maxBookingLength"`
	MaxGuestsPerBooking int       `json:"maxGuestsPerBooking"`
	BreakfastPrice      int64     `json:"breakfastPrice"`
}

// Update carries a partial settings update; nil fields are left untouched.
type Update struct {
	MinBookingLength    *int
	MaxBookingLength    *int
	MaxGuestsPerBooking *int
	BreakfastPrice      *int64
}

// Repository defines the persistence contract for settings.
type Repository interface {
	// Get retrieves the settings row.
	Get(ctx context.Context) (*Settings, error)

	// Update applies a partial update and returns the stored row.
	Update(ctx context.Context, upd Update) (*Settings, error)
}
