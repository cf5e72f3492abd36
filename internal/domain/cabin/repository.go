package cabin

import "context"

// Fields carries the writable attributes of a cabin. The image value is
// either a reference into the asset store or a fresh URL synthesized by the
// dual-write coordinator before the row is written.
type Fields struct {
	Name         string
	MaxCapacity  int
	RegularPrice int64
	Discount     int64
	Description  string
	Image        string
}

// Repository defines the persistence contract for cabins.
type Repository interface {
	// List retrieves all cabins.
	List(ctx context.Context) ([]Cabin, error)

	// FindByID retrieves a cabin by id.
	FindByID(ctx context.Context, id int64) (*Cabin, error)

	// Create inserts a new cabin and returns the stored row.
	Create(ctx context.Context, fields Fields) (*Cabin, error)

	// Update overwrites the given cabin's fields and returns the stored row.
	Update(ctx context.Context, id int64, fields Fields) (*Cabin, error)

	// Delete removes a cabin row. The image asset is not cascade-deleted.
	Delete(ctx context.Context, id int64) error
}
