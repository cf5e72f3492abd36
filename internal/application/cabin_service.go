package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/havenhq/service-lodging-admin/internal/domain"
	cabinDomain "github.com/havenhq/service-lodging-admin/internal/domain/cabin"
	"github.com/havenhq/service-lodging-admin/internal/events"
	"github.com/havenhq/service-lodging-admin/internal/storage"
	"go.uber.org/zap"
)

// CabinImage is the image field of a cabin write. Exactly one of the two
// shapes is meaningful: Reference carries an existing store URL (edit, asset
// unchanged), Data carries fresh bytes to upload under Filename.
type CabinImage struct {
	Reference string
	Filename  string
	Data      []byte
}

// CabinFields is the writable attribute set of a cabin, minus the image.
type CabinFields struct {
	Name         string `json:"name" binding:"required"`
	MaxCapacity  int    `json:"maxCapacity" binding:"required"`
	RegularPrice int64  `json:"regularPrice" binding:"required"`
	Discount     int64  `json:"discount"`
	Description  string `json:"description"`
}

// CabinService orchestrates cabin use cases, including the dual write of a
// cabin row and its image asset. The two writes have no shared transaction;
// consistency is best effort via the compensating delete.
type CabinService struct {
	repo     cabinDomain.Repository
	store    storage.AssetStore
	notifier events.Notifier
	logger   *zap.Logger
}

// NewCabinService creates a new CabinService.
func NewCabinService(
	repo cabinDomain.Repository,
	store storage.AssetStore,
	notifier events.Notifier,
	logger *zap.Logger,
) *CabinService {
	return &CabinService{repo: repo, store: store, notifier: notifier, logger: logger}
}

// ListCabins returns all cabins.
func (s *CabinService) ListCabins(ctx context.Context) ([]cabinDomain.Cabin, error) {
	return s.repo.List(ctx)
}

// GetCabin returns one cabin.
func (s *CabinService) GetCabin(ctx context.Context, id int64) (*cabinDomain.Cabin, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateCabin writes a new cabin row and, when the image is fresh bytes,
// uploads the asset afterwards. The reference is synthesized before the row
// write so the row carries its final image URL in one step; if the upload
// then fails the just-written row is deleted so no row ever points at an
// asset that was never stored.
func (s *CabinService) CreateCabin(ctx context.Context, fields CabinFields, image CabinImage) (*cabinDomain.Cabin, error) {
	ref, plan, needUpload, err := s.resolveImage(image)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.Create(ctx, toCabinFields(fields, ref))
	if err != nil {
		// Nothing was written, nothing to compensate.
		return nil, err
	}

	if needUpload {
		if err := s.store.Upload(ctx, plan.Name, image.Data); err != nil {
			s.logger.Warn("cabin image upload failed, compensating",
				zap.Int64("cabin_id", row.ID),
				zap.String("object", plan.Name),
				zap.Error(err),
			)
			if delErr := s.repo.Delete(ctx, row.ID); delErr != nil {
				return nil, domain.NewCompensationFailure("Cabin", errors.Join(err, delErr))
			}
			return nil, domain.NewUploadFailure("Cabin", err)
		}
	}

	s.notifier.ResourceChanged(ctx, events.ResourceChanged{
		Resource: events.ResourceCabins,
		Op:       events.OpCreated,
		ID:       row.ID,
	})
	s.logger.Info("cabin created",
		zap.Int64("cabin_id", row.ID),
		zap.Bool("image_uploaded", needUpload),
	)
	return row, nil
}

// UpdateCabin edits a cabin row. An unchanged image reference passes through
// untouched and no upload happens. A replacement image is uploaded after the
// row write; if that upload fails the edit is not rolled back and the prior
// asset is not restored, matching the accepted asymmetry of the protocol.
func (s *CabinService) UpdateCabin(ctx context.Context, id int64, fields CabinFields, image CabinImage) (*cabinDomain.Cabin, error) {
	ref, plan, needUpload, err := s.resolveImage(image)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.Update(ctx, id, toCabinFields(fields, ref))
	if err != nil {
		return nil, err
	}

	if needUpload {
		if err := s.store.Upload(ctx, plan.Name, image.Data); err != nil {
			return nil, domain.NewUploadFailure("Cabin", err)
		}
	}

	s.notifier.ResourceChanged(ctx, events.ResourceChanged{
		Resource: events.ResourceCabins,
		Op:       events.OpUpdated,
		ID:       row.ID,
	})
	return row, nil
}

// DeleteCabin removes a cabin row. The image object is deliberately left in
// the store.
func (s *CabinService) DeleteCabin(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.ResourceChanged(ctx, events.ResourceChanged{
		Resource: events.ResourceCabins,
		Op:       events.OpDeleted,
		ID:       id,
	})
	return nil
}

// resolveImage decides between "pass the existing reference through" and
// "synthesize a new reference and upload after the row write".
func (s *CabinService) resolveImage(image CabinImage) (ref string, plan storage.UploadPlan, needUpload bool, err error) {
	if image.Reference != "" && s.store.Owns(image.Reference) {
		return image.Reference, storage.UploadPlan{}, false, nil
	}
	if len(image.Data) == 0 {
		return "", storage.UploadPlan{}, false,
			domain.NewValidation("Cabin", fmt.Sprintf("image must be either a stored reference or fresh bytes, got %q", image.Reference))
	}
	plan = s.store.Plan(image.Filename)
	return plan.URL, plan, true, nil
}

func toCabinFields(fields CabinFields, imageRef string) cabinDomain.Fields {
	return cabinDomain.Fields{
		Name:         fields.Name,
		MaxCapacity:  fields.MaxCapacity,
		RegularPrice: fields.RegularPrice,
		Discount:     fields.Discount,
		Description:  fields.Description,
		Image:        imageRef,
	}
}
