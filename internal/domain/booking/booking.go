// Package booking defines the booking row schema and its status lifecycle.
package booking

import (
	"fmt"
	"time"
)

// CabinSummary is the slice of the owning cabin embedded in booking reads.
type CabinSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GuestSummary is the slice of the guest identity embedded in booking reads.
type GuestSummary struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Nationality string `json:"nationality"`
	CountryFlag string `json:"countryFlag"`
}

// Booking is a stay at a cabin. Prices are stored in cents.
type Booking struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	NumNights    int       `json:"numNights"`
	NumGuests    int       `json:"numGuests"`
	CabinPrice   int64     `json:"cabinPrice"`
	ExtrasPrice  int64     `json:"extrasPrice"`
	TotalPrice   int64     `json:"totalPrice"`
	Status       Status    `json:"status"`
	HasBreakfast bool      `json:"hasBreakfast"`
	IsPaid       bool      `json:"isPaid"`
	Observations string    `json:"observations,omitempty"`
	CabinID      int64     `json:"cabinId"`
	GuestID      int64     `json:"guestId"`

	Cabin *CabinSummary `json:"cabin,omitempty"`
	Guest *GuestSummary `json:"guest,omitempty"`
}

// RevenueEntry is the projection used by the sales chart: when a booking was
// made and what it brought in.
type RevenueEntry struct {
	CreatedAt   time.Time `json:"createdAt"`
	TotalPrice  int64     `json:"totalPrice"`
	ExtrasPrice int64     `json:"extrasPrice"`
}

// CheckIn transitions the booking to checked-in and marks it paid. Breakfast
// can be added at the desk, which adjusts the extras and total prices.
func (b *Booking) CheckIn(addBreakfast bool, extrasPrice, totalPrice int64) error {
	if !b.Status.CanTransitionTo(StatusCheckedIn) {
		return fmt.Errorf("booking %d cannot be checked in from status %s", b.ID, b.Status)
	}
	b.Status = StatusCheckedIn
	b.IsPaid = true
	if addBreakfast {
		b.HasBreakfast = true
		b.ExtrasPrice = extrasPrice
		b.TotalPrice = totalPrice
	}
	return nil
}

// CheckOut transitions the booking to checked-out.
func (b *Booking) CheckOut() error {
	if !b.Status.CanTransitionTo(StatusCheckedOut) {
		return fmt.Errorf("booking %d cannot be checked out from status %s", b.ID, b.Status)
	}
	b.Status = StatusCheckedOut
	return nil
}
