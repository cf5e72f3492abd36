package application

import (
	"context"
	"time"

	"github.com/havenhq/service-lodging-admin/internal/domain"
	bookingDomain "github.com/havenhq/service-lodging-admin/internal/domain/booking"
	"github.com/havenhq/service-lodging-admin/internal/events"
	"github.com/havenhq/service-lodging-admin/internal/query"
	"go.uber.org/zap"
)

// BookingPage is one page of bookings plus the filtered-set total.
type BookingPage struct {
	Items []bookingDomain.Booking `json:"items"`
	Count int64                   `json:"count"`
}

// CreateBookingRequest holds the data needed to insert a booking.
type CreateBookingRequest struct {
	StartDate    time.Time `json:"startDate" binding:"required"`
	EndDate      time.Time `json:"endDate" binding:"required"`
	NumNights    int       `json:"numNights" binding:"required"`
	NumGuests    int       `json:"numGuests" binding:"required"`
	CabinPrice   int64     `json:"cabinPrice" binding:"required"`
	ExtrasPrice  int64     `json:"extrasPrice"`
	TotalPrice   int64     `json:"totalPrice" binding:"required"`
	HasBreakfast bool      `json:"hasBreakfast"`
	IsPaid       bool      `json:"isPaid"`
	Observations string    `json:"observations"`
	CabinID      int64     `json:"cabinId" binding:"required"`
	GuestID      int64     `json:"guestId" binding:"required"`
}

// UpdateBookingRequest is a partial booking update.
type UpdateBookingRequest struct {
	Status       *string `json:"status"`
	IsPaid       *bool   `json:"isPaid"`
	HasBreakfast *bool   `json:"hasBreakfast"`
	ExtrasPrice  *int64  `json:"extrasPrice"`
	TotalPrice   *int64  `json:"totalPrice"`
	Observations *string `json:"observations"`
}

// Breakfast is the optional breakfast added at check-in time.
type Breakfast struct {
	HasBreakfast bool  `json:"hasBreakfast"`
	ExtrasPrice  int64 `json:"extrasPrice"`
	TotalPrice   int64 `json:"totalPrice"`
}

// listCache is the slice of the query cache the list path needs.
type listCache interface {
	Get(ctx context.Context, resource, key string, dest any) bool
	Set(ctx context.Context, resource, key string, val any)
}

// BookingService orchestrates booking use cases.
type BookingService struct {
	repo     bookingDomain.Repository
	cache    listCache
	notifier events.Notifier
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService. cache may be nil.
func NewBookingService(
	repo bookingDomain.Repository,
	cache listCache,
	notifier events.Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{repo: repo, cache: cache, notifier: notifier, logger: logger}
}

// ListBookings returns bookings matching the spec, read through the cache.
// A load failure is surfaced, never folded into an empty page.
func (s *BookingService) ListBookings(ctx context.Context, spec query.Spec) (*BookingPage, error) {
	key := spec.Key()
	if s.cache != nil {
		var page BookingPage
		if s.cache.Get(ctx, events.ResourceBookings, key, &page) {
			return &page, nil
		}
	}

	items, count, err := s.repo.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	page := &BookingPage{Items: items, Count: count}
	if s.cache != nil {
		s.cache.Set(ctx, events.ResourceBookings, key, page)
	}
	return page, nil
}

// GetBooking returns one booking with its cabin and guest rows.
func (s *BookingService) GetBooking(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateBooking inserts a new booking in unconfirmed status.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*bookingDomain.Booking, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, domain.NewValidation("Booking", "endDate must be after startDate")
	}

	row, err := s.repo.Create(ctx, bookingDomain.Fields{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		NumNights:    req.NumNights,
		NumGuests:    req.NumGuests,
		CabinPrice:   req.CabinPrice,
		ExtrasPrice:  req.ExtrasPrice,
		TotalPrice:   req.TotalPrice,
		Status:       bookingDomain.StatusUnconfirmed,
		HasBreakfast: req.HasBreakfast,
		IsPaid:       req.IsPaid,
		Observations: req.Observations,
		CabinID:      req.CabinID,
		GuestID:      req.GuestID,
	})
	if err != nil {
		return nil, err
	}

	s.notifyChanged(ctx, events.OpCreated, row.ID)
	s.logger.Info("booking created", zap.Int64("booking_id", row.ID))
	return row, nil
}

// UpdateBooking applies a partial update and returns the stored row.
func (s *BookingService) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*bookingDomain.Booking, error) {
	upd := bookingDomain.Update{
		IsPaid:       req.IsPaid,
		HasBreakfast: req.HasBreakfast,
		ExtrasPrice:  req.ExtrasPrice,
		TotalPrice:   req.TotalPrice,
		Observations: req.Observations,
	}
	if req.Status != nil {
		status, err := bookingDomain.ParseStatus(*req.Status)
		if err != nil {
			return nil, domain.NewValidation("Booking", err.Error())
		}
		upd.Status = &status
	}

	row, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.notifyChanged(ctx, events.OpUpdated, row.ID)
	return row, nil
}

// DeleteBooking removes a booking.
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyChanged(ctx, events.OpDeleted, id)
	return nil
}

// CheckIn transitions a booking to checked-in, marking it paid and adding
// breakfast when requested. The transition is validated against the status
// machine before the update is persisted.
func (s *BookingService) CheckIn(ctx context.Context, id int64, breakfast *Breakfast) (*bookingDomain.Booking, error) {
	bk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	addBreakfast := breakfast != nil && breakfast.HasBreakfast
	var extras, total int64
	if addBreakfast {
		extras, total = breakfast.ExtrasPrice, breakfast.TotalPrice
	}
	if err := bk.CheckIn(addBreakfast, extras, total); err != nil {
		return nil, domain.NewValidation("Booking", err.Error())
	}

	upd := bookingDomain.Update{
		Status: &bk.Status,
		IsPaid: &bk.IsPaid,
	}
	if addBreakfast {
		upd.HasBreakfast = &bk.HasBreakfast
		upd.ExtrasPrice = &bk.ExtrasPrice
		upd.TotalPrice = &bk.TotalPrice
	}
	row, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.notifyChanged(ctx, events.OpUpdated, row.ID)
	s.logger.Info("booking checked in",
		zap.Int64("booking_id", row.ID),
		zap.Bool("breakfast_added", addBreakfast),
	)
	return row, nil
}

// CheckOut transitions a booking to checked-out.
func (s *BookingService) CheckOut(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	bk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bk.CheckOut(); err != nil {
		return nil, domain.NewValidation("Booking", err.Error())
	}

	row, err := s.repo.Update(ctx, id, bookingDomain.Update{Status: &bk.Status})
	if err != nil {
		return nil, err
	}

	s.notifyChanged(ctx, events.OpUpdated, row.ID)
	s.logger.Info("booking checked out", zap.Int64("booking_id", row.ID))
	return row, nil
}

func (s *BookingService) notifyChanged(ctx context.Context, op events.Op, id int64) {
	s.notifier.ResourceChanged(ctx, events.ResourceChanged{
		Resource: events.ResourceBookings,
		Op:       op,
		ID:       id,
	})
}
