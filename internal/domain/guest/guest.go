// Package guest defines the guest row schema.
package guest

import "time"

// Guest is a registered guest identity referenced by bookings.
type Guest struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	NationalID  string    `json:"nationalId"`
	Nationality string    `json:"nationality"`
	CountryFlag string    `json:"countryFlag"`
}
