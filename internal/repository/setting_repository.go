package repository

import (
	"context"
	"errors"
	"time"

	"github.com/havenhq/service-lodging-admin/internal/domain"
	settingDomain "github.com/havenhq/service-lodging-admin/internal/domain/setting"
	"gorm.io/gorm"
)

// SettingModel is the GORM model for the settings table. The table holds
// exactly one row.
type SettingModel struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt           time.Time `gorm:"not null"`
	MinBookingLength    int       `gorm:"not null"`
	MaxBookingLength    int       `gorm:"not null"`
	MaxGuestsPerBooking int       `gorm:"not null"`
	BreakfastPrice      int64     `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (SettingModel) TableName() string {
	return "settings"
}

// GormSettingRepository is the GORM-based implementation of setting.Repository.
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository.
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// Get retrieves the settings row.
func (r *GormSettingRepository) Get(ctx context.Context) (*settingDomain.Settings, error) {
	var model SettingModel
	if err := r.db.WithContext(ctx).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Setting", "singleton")
		}
		return nil, domain.NewLoadFailure("Setting", err)
	}
	s := toDomainSettings(&model)
	return &s, nil
}

// Update applies a partial update to the settings row and returns it.
func (r *GormSettingRepository) Update(ctx context.Context, upd settingDomain.Update) (*settingDomain.Settings, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if upd.MinBookingLength != nil {
		changes["min_booking_length"] = *upd.MinBookingLength
	}
	if upd.MaxBookingLength != nil {
		changes["max_booking_length"] = *upd.MaxBookingLength
	}
	if upd.MaxGuestsPerBooking != nil {
		changes["max_guests_per_booking"] = *upd.MaxGuestsPerBooking
	}
	if upd.BreakfastPrice != nil {
		changes["breakfast_price"] = *upd.BreakfastPrice
	}
	if len(changes) == 0 {
		return current, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&SettingModel{}).
		Where("id = ?", current.ID).
		Updates(changes).Error; err != nil {
		return nil, domain.NewWriteFailure("Setting", "updated", err)
	}
	return r.Get(ctx)
}

func toDomainSettings(m *SettingModel) settingDomain.Settings {
	return settingDomain.Settings{
		ID:                  m.ID,
		CreatedAt:           m.CreatedAt,
		MinBookingLength:    m.MinBookingLength,
		MaxBookingLength:    m.MaxBookingLength,
		MaxGuestsPerBooking: m.MaxGuestsPerBooking,
		BreakfastPrice:      m.BreakfastPrice,
	}
}
