package repository

import (
	"context"
	"errors"
	"time"

	"github.com/havenhq/service-lodging-admin/internal/domain"
	guestDomain "github.com/havenhq/service-lodging-admin/internal/domain/guest"
	"github.com/havenhq/service-lodging-admin/internal/query"
	"gorm.io/gorm"
)

// GuestModel is the GORM model for the guests table.
type GuestModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt   time.Time `gorm:"not null"`
	FullName    string    `gorm:"not null;size:200"`
	Email       string    `gorm:"not null;size:200;index"`
	NationalID  string    `gorm:"size:50"`
	Nationality string    `gorm:"size:100"`
	CountryFlag string    `gorm:"size:200"`
}

// TableName returns the table name for the GORM model.
func (GuestModel) TableName() string {
	return "guests"
}

// GormGuestRepository is the GORM-based implementation of guest.Repository.
type GormGuestRepository struct {
	db *gorm.DB
}

// NewGormGuestRepository creates a new GormGuestRepository.
func NewGormGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{db: db}
}

// List retrieves guests matching the spec with the filtered-set count.
func (r *GormGuestRepository) List(ctx context.Context, spec query.Spec) ([]guestDomain.Guest, int64, error) {
	if err := spec.Validate(); err != nil {
		return nil, 0, domain.NewValidation("Guest", err.Error())
	}

	var total int64
	if spec.Paginated() {
		if err := r.db.WithContext(ctx).Model(&GuestModel{}).
			Scopes(spec.FilterScope()).
			Count(&total).Error; err != nil {
			return nil, 0, domain.NewLoadFailure("Guest", err)
		}
	}

	var models []GuestModel
	if err := r.db.WithContext(ctx).Scopes(spec.Scope()).Find(&models).Error; err != nil {
		return nil, 0, domain.NewLoadFailure("Guest", err)
	}
	if !spec.Paginated() {
		total = int64(len(models))
	}

	guests := make([]guestDomain.Guest, len(models))
	for i, m := range models {
		guests[i] = toDomainGuest(&m)
	}
	return guests, total, nil
}

// FindByID retrieves a guest by id.
func (r *GormGuestRepository) FindByID(ctx context.Context, id int64) (*guestDomain.Guest, error) {
	var model GuestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Guest", id)
		}
		return nil, domain.NewLoadFailure("Guest", err)
	}
	g := toDomainGuest(&model)
	return &g, nil
}

// FindByEmail retrieves a guest by email.
func (r *GormGuestRepository) FindByEmail(ctx context.Context, email string) (*guestDomain.Guest, error) {
	var model GuestModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Guest", email)
		}
		return nil, domain.NewLoadFailure("Guest", err)
	}
	g := toDomainGuest(&model)
	return &g, nil
}

// Create inserts a new guest and returns the stored row.
func (r *GormGuestRepository) Create(ctx context.Context, fields guestDomain.Fields) (*guestDomain.Guest, error) {
	model := GuestModel{
		CreatedAt:   time.Now().UTC(),
		FullName:    fields.FullName,
		Email:       fields.Email,
		NationalID:  fields.NationalID,
		Nationality: fields.Nationality,
		CountryFlag: fields.CountryFlag,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, domain.NewWriteFailure("Guest", "created", err)
	}
	g := toDomainGuest(&model)
	return &g, nil
}

// Update overwrites the given guest's fields and returns the stored row.
func (r *GormGuestRepository) Update(ctx context.Context, id int64, fields guestDomain.Fields) (*guestDomain.Guest, error) {
	result := r.db.WithContext(ctx).
		Model(&GuestModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"full_name":    fields.FullName,
			"email":        fields.Email,
			"national_id":  fields.NationalID,
			"nationality":  fields.Nationality,
			"country_flag": fields.CountryFlag,
		})
	if result.Error != nil {
		return nil, domain.NewWriteFailure("Guest", "updated", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.NewNotFound("Guest", id)
	}
	return r.FindByID(ctx, id)
}

// Delete removes a guest row.
func (r *GormGuestRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&GuestModel{})
	if result.Error != nil {
		return domain.NewWriteFailure("Guest", "deleted", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFound("Guest", id)
	}
	return nil
}

func toDomainGuest(m *GuestModel) guestDomain.Guest {
	return guestDomain.Guest{
		ID:          m.ID,
		CreatedAt:   m.CreatedAt,
		FullName:    m.FullName,
		Email:       m.Email,
		NationalID:  m.NationalID,
		Nationality: m.Nationality,
		CountryFlag: m.CountryFlag,
	}
}
