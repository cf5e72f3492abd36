package application

import (
	"context"

	"github.com/havenhq/service-lodging-admin/internal/domain"
	guestDomain "github.com/havenhq/service-lodging-admin/internal/domain/guest"
	"github.com/havenhq/service-lodging-admin/internal/events"
	"github.com/havenhq/service-lodging-admin/internal/query"
	"go.uber.org/zap"
)

// GuestPage is one page of guests plus the filtered-set total.
type GuestPage struct {
	Items []guestDomain.Guest `json:"items"`
	Count int64               `json:"count"`
}

// GuestRequest holds the writable attributes of a guest.
type GuestRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	NationalID  string `json:"nationalId"`
	Nationality string `json:"nationality"`
	CountryFlag string `json:"countryFlag"`
}

// GuestService orchestrates guest use cases.
type GuestService struct {
	repo     guestDomain.Repository
	cache    listCache
	notifier events.Notifier
	logger   *zap.Logger
}

// NewGuestService creates a new GuestService. cache may be nil.
func NewGuestService(
	repo guestDomain.Repository,
	cache listCache,
	notifier events.Notifier,
	logger *zap.Logger,
) *GuestService {
	return &GuestService{repo: repo, cache: cache, notifier: notifier, logger: logger}
}

// ListGuests returns guests matching the spec, read through the cache.
func (s *GuestService) ListGuests(ctx context.Context, spec query.Spec) (*GuestPage, error) {
	key := spec.Key()
	if s.cache != nil {
		var page GuestPage
		if s.cache.Get(ctx, events.ResourceGuests, key, &page) {
			return &page, nil
		}
	}

	items, count, err := s.repo.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	page := &GuestPage{Items: items, Count: count}
	if s.cache != nil {
		s.cache.Set(ctx, events.ResourceGuests, key, page)
	}
	return page, nil
}

// GetGuest returns one guest.
func (s *GuestService) GetGuest(ctx context.Context, id int64) (*guestDomain.Guest, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateGuest registers a guest, reusing an existing identity when the email
// is already known. The check-in flow depends on this dedup.
func (s *GuestService) CreateGuest(ctx context.Context, req GuestRequest) (*guestDomain.Guest, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return existing, nil
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	row, err := s.repo.Create(ctx, toGuestFields(req))
	if err != nil {
		return nil, err
	}

	s.notifyChanged(ctx, events.OpCreated, row.ID)
	s.logger.Info("guest created", zap.Int64("guest_id", row.ID))
	return row, nil
}

// UpdateGuest overwrites a guest's fields.
func (s *GuestService) UpdateGuest(ctx context.Context, id int64, req GuestRequest) (*guestDomain.Guest, error) {
	row, err := s.repo.Update(ctx, id, toGuestFields(req))
	if err != nil {
		return nil, err
	}
	s.notifyChanged(ctx, events.OpUpdated, row.ID)
	return row, nil
}

// DeleteGuest removes a guest.
func (s *GuestService) DeleteGuest(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyChanged(ctx, events.OpDeleted, id)
	return nil
}

func (s *GuestService) notifyChanged(ctx context.Context, op events.Op, id int64) {
	s.notifier.ResourceChanged(ctx, events.ResourceChanged{
		Resource: events.ResourceGuests,
		Op:       op,
		ID:       id,
	})
}

func toGuestFields(req GuestRequest) guestDomain.Fields {
	return guestDomain.Fields{
		FullName:    req.FullName,
		Email:       req.Email,
		NationalID:  req.NationalID,
		Nationality: req.Nationality,
		CountryFlag: req.CountryFlag,
	}
}
