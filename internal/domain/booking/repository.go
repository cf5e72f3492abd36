package booking

import (
	"context"
	"time"

	"github.com/havenhq/service-lodging-admin/internal/query"
)

// Fields carries the writable attributes used when inserting a booking.
type Fields struct {
	StartDate    time.Time
	EndDate      time.Time
	NumNights    int
	NumGuests    int
	CabinPrice   int64
	ExtrasPrice  int64
	TotalPrice   int64
	Status       Status
	HasBreakfast bool
	IsPaid       bool
	Observations string
	CabinID      int64
	GuestID      int64
}

// Update carries a partial booking update; nil fields are left untouched.
type Update struct {
	Status       *Status
	IsPaid       *bool
	HasBreakfast *bool
	ExtrasPrice  *int64
	TotalPrice   *int64
	Observations *string
}

// Repository defines the persistence contract for bookings.
type Repository interface {
	// List retrieves bookings matching the spec with cabin and guest
	// summaries embedded. The count reflects the filtered set size, not the
	// page size, so callers can compute page counts.
	List(ctx context.Context, spec query.Spec) ([]Booking, int64, error)

	// FindByID retrieves one booking with its full cabin and guest rows.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// Create inserts a new booking and returns the stored row.
	Create(ctx context.Context, fields Fields) (*Booking, error)

	// Update applies a partial update and returns the stored row.
	Update(ctx context.Context, id int64, upd Update) (*Booking, error)

	// Delete removes a booking row.
	Delete(ctx context.Context, id int64) error

	// CreatedAfter returns revenue projections for bookings created between
	// date and the end of today, both bounds inclusive.
	CreatedAfter(ctx context.Context, date time.Time) ([]RevenueEntry, error)

	// StaysAfter returns bookings whose stay started between date and today,
	// both bounds inclusive, with the guest summary embedded.
	StaysAfter(ctx context.Context, date time.Time) ([]Booking, error)

	// TodayActivity returns the stays needing front-desk attention today:
	// unconfirmed bookings starting today plus checked-in bookings ending
	// today, ordered by creation time.
	TodayActivity(ctx context.Context) ([]Booking, error)

	// CountByStatus returns booking counts grouped by status.
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
