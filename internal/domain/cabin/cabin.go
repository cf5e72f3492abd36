// Package cabin defines the cabin row schema. A cabin owns one image asset
// stored outside the relational backend and referenced by URL.
package cabin

import "time"

// Cabin is a rentable unit. Prices are stored in cents.
type Cabin struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	Name         string    `json:"name"`
	MaxCapacity  int       `json:"maxCapacity"`
	RegularPrice int64     `json:"regularPrice"`
	Discount     int64     `json:"discount"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
}
