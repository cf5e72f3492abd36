package guest

import (
	"context"

	"github.com/havenhq/service-lodging-admin/internal/query"
)

// Fields carries the writable attributes of a guest.
type Fields struct {
	FullName    string
	Email       string
	NationalID  string
	Nationality string
	CountryFlag string
}

// Repository defines the persistence contract for guests.
type Repository interface {
	// List retrieves guests matching the spec. The count reflects the
	// filtered set size when the spec is paginated.
	List(ctx context.Context, spec query.Spec) ([]Guest, int64, error)

	// FindByID retrieves a guest by id.
	FindByID(ctx context.Context, id int64) (*Guest, error)

	// FindByEmail retrieves a guest by email, used by the check-in flow to
	// reuse an existing identity.
	FindByEmail(ctx context.Context, email string) (*Guest, error)

	// Create inserts a new guest and returns the stored row.
	Create(ctx context.Context, fields Fields) (*Guest, error)

	// Update overwrites the given guest's fields and returns the stored row.
	Update(ctx context.Context, id int64, fields Fields) (*Guest, error)

	// Delete removes a guest row.
	Delete(ctx context.Context, id int64) error
}
