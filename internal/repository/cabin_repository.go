package repository

import (
	"context"
	"errors"
	"time"

	"github.com/havenhq/service-lodging-admin/internal/domain"
	cabinDomain "github.com/havenhq/service-lodging-admin/internal/domain/cabin"
	"gorm.io/gorm"
)

// CabinModel is the GORM model for the cabins table.
type CabinModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt    time.Time `gorm:"not null"`
	Name         string    `gorm:"not null;size:100"`
	MaxCapacity  int       `gorm:"not null"`
	RegularPrice int64     `gorm:"not null"`
	Discount     int64     `gorm:"not null;default:0"`
	Description  string    `gorm:"type:text"`
	Image        string    `gorm:"type:text"`
}

// TableName returns the table name for the GORM model.
func (CabinModel) TableName() string {
	return "cabins"
}

// GormCabinRepository is the GORM-based implementation of cabin.Repository.
type GormCabinRepository struct {
	db *gorm.DB
}

// NewGormCabinRepository creates a new GormCabinRepository.
func NewGormCabinRepository(db *gorm.DB) *GormCabinRepository {
	return &GormCabinRepository{db: db}
}

// List retrieves all cabins.
func (r *GormCabinRepository) List(ctx context.Context) ([]cabinDomain.Cabin, error) {
	var models []CabinModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, domain.NewLoadFailure("Cabin", err)
	}

	cabins := make([]cabinDomain.Cabin, len(models))
	for i, m := range models {
		cabins[i] = toDomainCabin(&m)
	}
	return cabins, nil
}

// FindByID retrieves a cabin by id.
func (r *GormCabinRepository) FindByID(ctx context.Context, id int64) (*cabinDomain.Cabin, error) {
	var model CabinModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("Cabin", id)
		}
		return nil, domain.NewLoadFailure("Cabin", err)
	}
	cb := toDomainCabin(&model)
	return &cb, nil
}

// Create inserts a new cabin and returns the stored row.
func (r *GormCabinRepository) Create(ctx context.Context, fields cabinDomain.Fields) (*cabinDomain.Cabin, error) {
	model := CabinModel{
		CreatedAt:    time.Now().UTC(),
		Name:         fields.Name,
		MaxCapacity:  fields.MaxCapacity,
		RegularPrice: fields.RegularPrice,
		Discount:     fields.Discount,
		Description:  fields.Description,
		Image:        fields.Image,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, domain.NewWriteFailure("Cabin", "created", err)
	}
	cb := toDomainCabin(&model)
	return &cb, nil
}

// Update overwrites the given cabin's fields and returns the stored row.
func (r *GormCabinRepository) Update(ctx context.Context, id int64, fields cabinDomain.Fields) (*cabinDomain.Cabin, error) {
	result := r.db.WithContext(ctx).
		Model(&CabinModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":          fields.Name,
			"max_capacity":  fields.MaxCapacity,
			"regular_price": fields.RegularPrice,
			"discount":      fields.Discount,
			"description":   fields.Description,
			"image":         fields.Image,
		})
	if result.Error != nil {
		return nil, domain.NewWriteFailure("Cabin", "updated", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.NewNotFound("Cabin", id)
	}
	return r.FindByID(ctx, id)
}

// Delete removes a cabin row. The image asset is left in the object store.
func (r *GormCabinRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CabinModel{})
	if result.Error != nil {
		return domain.NewWriteFailure("Cabin", "deleted", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFound("Cabin", id)
	}
	return nil
}

func toDomainCabin(m *CabinModel) cabinDomain.Cabin {
	return cabinDomain.Cabin{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		Name:         m.Name,
		MaxCapacity:  m.MaxCapacity,
		RegularPrice: m.RegularPrice,
		Discount:     m.Discount,
		Description:  m.Description,
		Image:        m.Image,
	}
}
