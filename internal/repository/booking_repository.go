package repository

import (
	"context"
	"errors"
	"time"

	"github.com/havenhq/service-lodging-admin/internal/domain"
	bookingDomain "github.com/havenhq/service-lodging-admin/internal/domain/booking"
	"github.com/havenhq/service-lodging-admin/internal/query"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt    time.Time `gorm:"not null;index"`
	StartDate    time.Time `gorm:"not null;index"`
	EndDate      time.Time `gorm:"not null;index"`
	NumNights    int       `gorm:"not null"`
	NumGuests    int       `gorm:"not null"`
	CabinPrice   int64     `gorm:"not null"`
	ExtrasPrice  int64     `gorm:"not null;default:0"`
	TotalPrice   int64     `gorm:"not null"`
	Status       string    `gorm:"not null;size:20;index"`
	HasBreakfast bool      `gorm:"not null;default:false"`
	IsPaid       bool      `gorm:"not null;default:false"`
	Observations string    `gorm:"size:1000"`
	CabinID      int64     `gorm:"not null;index"`
	GuestID      int64     `gorm:"not null;index"`

	Cabin CabinModel `gorm:"foreignKey:CabinID"`
	Guest GuestModel `gorm:"foreignKey:GuestID"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// List retrieves bookings matching the spec with cabin and guest summaries.
// The count is taken over the filtered set before range is applied, so it is
// invariant across pages of the same filter.
func (r *GormBookingRepository) List(ctx context.Context, spec query.Spec) ([]bookingDomain.Booking, int64, error) {
	if err := spec.Validate(); err != nil {
		return nil, 0, domain.NewValidation("Booking", err.Error())
	}

	var total int64
	if spec.Paginated() {
		if err := r.db.WithContext(ctx).Model(&BookingModel{}).
			Scopes(spec.FilterScope()).
			Count(&total).Error; err != nil {
			return nil, 0, domain.NewLoadFailure("Booking", err)
		}
	}

	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Scopes(spec.Scope()).
		Preload("Cabin").
		Preload("Guest").
		Find(&models).Error; err != nil {
		return nil, 0, domain.NewLoadFailure("Booking", err)
	}
	if !spec.Paginated() {
		total = int64(len(models))
	}

	bookings := make([]bookingDomain.Booking, len(models))
	for i, m := range models {
		bookings[i] = toDomainBooking(&m, true)
	}
	return bookings, total, nil
}

// FindByID retrieves one booking with its full cabin and guest rows.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Cabin").
		Preload("Guest").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Booking", id)
		}
		return nil, domain.NewLoadFailure("Booking", err)
	}
	bk := toDomainBooking(&model, true)
	return &bk, nil
}

// Create inserts a new booking and returns the stored row.
func (r *GormBookingRepository) Create(ctx context.Context, fields bookingDomain.Fields) (*bookingDomain.Booking, error) {
	model := BookingModel{
		CreatedAt:    time.Now().UTC(),
		StartDate:    fields.StartDate,
		EndDate:      fields.EndDate,
		NumNights:    fields.NumNights,
		NumGuests:    fields.NumGuests,
		CabinPrice:   fields.CabinPrice,
		ExtrasPrice:  fields.ExtrasPrice,
		TotalPrice:   fields.TotalPrice,
		Status:       string(fields.Status),
		HasBreakfast: fields.HasBreakfast,
		IsPaid:       fields.IsPaid,
		Observations: fields.Observations,
		CabinID:      fields.CabinID,
		GuestID:      fields.GuestID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, domain.NewWriteFailure("Booking", "created", err)
	}
	bk := toDomainBooking(&model, false)
	return &bk, nil
}

// Update applies a partial update and returns the stored row.
func (r *GormBookingRepository) Update(ctx context.Context, id int64, upd bookingDomain.Update) (*bookingDomain.Booking, error) {
	changes := map[string]interface{}{}
	if upd.Status != nil {
		changes["status"] = string(*upd.Status)
	}
	if upd.IsPaid != nil {
		changes["is_paid"] = *upd.IsPaid
	}
	if upd.HasBreakfast != nil {
		changes["has_breakfast"] = *upd.HasBreakfast
	}
	if upd.ExtrasPrice != nil {
		changes["extras_price"] = *upd.ExtrasPrice
	}
	if upd.TotalPrice != nil {
		changes["total_price"] = *upd.TotalPrice
	}
	if upd.Observations != nil {
		changes["observations"] = *upd.Observations
	}

	if len(changes) > 0 {
		result := r.db.WithContext(ctx).
			Model(&BookingModel{}).
			Where("id = ?", id).
			Updates(changes)
		if result.Error != nil {
			return nil, domain.NewWriteFailure("Booking", "updated", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, domain.NewNotFound("Booking", id)
		}
	}

	return r.FindByID(ctx, id)
}

// Delete removes a booking row.
func (r *GormBookingRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return domain.NewWriteFailure("Booking", "deleted", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFound("Booking", id)
	}
	return nil
}

// CreatedAfter returns revenue projections for bookings created between date
// and the end of today, both bounds inclusive.
func (r *GormBookingRepository) CreatedAfter(ctx context.Context, date time.Time) ([]bookingDomain.RevenueEntry, error) {
	var entries []bookingDomain.RevenueEntry
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Select("created_at", "total_price", "extras_price").
		Where("created_at >= ?", date).
		Where("created_at <= ?", endOfToday()).
		Find(&entries).Error; err != nil {
		return nil, domain.NewLoadFailure("Booking", err)
	}
	return entries, nil
}

// StaysAfter returns bookings whose stay started between date and today.
func (r *GormBookingRepository) StaysAfter(ctx context.Context, date time.Time) ([]bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("start_date >= ?", date).
		Where("start_date::date <= ?", today()).
		Preload("Guest").
		Find(&models).Error; err != nil {
		return nil, domain.NewLoadFailure("Booking", err)
	}

	bookings := make([]bookingDomain.Booking, len(models))
	for i, m := range models {
		bookings[i] = toDomainBooking(&m, true)
	}
	return bookings, nil
}

// TodayActivity returns unconfirmed stays starting today plus checked-in
// stays ending today, ordered by creation time. The disjunctive shape is a
// front-desk business rule, not a generic filter.
func (r *GormBookingRepository) TodayActivity(ctx context.Context) ([]bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("(status = ? AND start_date::date = ?) OR (status = ? AND end_date::date = ?)",
			bookingDomain.StatusUnconfirmed, today(),
			bookingDomain.StatusCheckedIn, today()).
		Order("created_at").
		Preload("Guest").
		Find(&models).Error; err != nil {
		return nil, domain.NewLoadFailure("Booking", err)
	}

	bookings := make([]bookingDomain.Booking, len(models))
	for i, m := range models {
		bookings[i] = toDomainBooking(&m, true)
	}
	return bookings, nil
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[bookingDomain.Status]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, domain.NewLoadFailure("Booking", err)
	}

	counts := make(map[bookingDomain.Status]int64)
	for _, sc := range results {
		counts[bookingDomain.Status(sc.Status)] = sc.Count
	}
	return counts, nil
}

// today returns the current date in UTC, truncated to midnight.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// endOfToday returns the last instant of the current UTC day.
func endOfToday() time.Time {
	return today().Add(24*time.Hour - time.Nanosecond)
}

// --- Conversion Helpers ---

func toDomainBooking(m *BookingModel, withRelations bool) bookingDomain.Booking {
	bk := bookingDomain.Booking{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		NumNights:    m.NumNights,
		NumGuests:    m.NumGuests,
		CabinPrice:   m.CabinPrice,
		ExtrasPrice:  m.ExtrasPrice,
		TotalPrice:   m.TotalPrice,
		Status:       bookingDomain.Status(m.Status),
		HasBreakfast: m.HasBreakfast,
		IsPaid:       m.IsPaid,
		Observations: m.Observations,
		CabinID:      m.CabinID,
		GuestID:      m.GuestID,
	}
	if withRelations {
		if m.Cabin.ID != 0 {
			bk.Cabin = &bookingDomain.CabinSummary{ID: m.Cabin.ID, Name: m.Cabin.Name}
		}
		if m.Guest.ID != 0 {
			bk.Guest = &bookingDomain.GuestSummary{
				ID:          m.Guest.ID,
				FullName:    m.Guest.FullName,
				Email:       m.Guest.Email,
				Nationality: m.Guest.Nationality,
				CountryFlag: m.Guest.CountryFlag,
			}
		}
	}
	return bk
}
