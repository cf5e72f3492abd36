package application

import (
	"context"

	settingDomain "github.com/havenhq/service-lodging-admin/internal/domain/setting"
	"github.com/havenhq/service-lodging-admin/internal/events"
	"go.uber.org/zap"
)

// UpdateSettingsRequest is a partial settings update.
type UpdateSettingsRequest struct {
	MinBookingLength    *int   `json:"minBookingLength"`
	MaxBookingLength    *int   `json:"maxBookingLength"`
	MaxGuestsPerBooking *int   `json:"maxGuestsPerBooking"`
	BreakfastPrice      *int64 `json:"breakfastPrice"`
}

// SettingService orchestrates the single-row business settings.
type SettingService struct {
	repo     settingDomain.Repository
	notifier events.Notifier
	logger   *zap.Logger
}

// NewSettingService creates a new SettingService.
func NewSettingService(repo settingDomain.Repository, notifier events.Notifier, logger *zap.Logger) *SettingService {
	return &SettingService{repo: repo, notifier: notifier, logger: logger}
}

// GetSettings returns the settings row.
func (s *SettingService) GetSettings(ctx context.Context) (*settingDomain.Settings, error) {
	return s.repo.Get(ctx)
}

// UpdateSettings applies a partial update and returns the stored row.
func (s *SettingService) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*settingDomain.Settings, error) {
	row, err := s.repo.Update(ctx, settingDomain.Update{
		MinBookingLength:    req.MinBookingLength,
		MaxBookingLength:    req.MaxBookingLength,
		MaxGuestsPerBooking: req.MaxGuestsPerBooking,
		BreakfastPrice:      req.BreakfastPrice,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ResourceChanged(ctx, events.ResourceChanged{
		Resource: events.ResourceSettings,
		Op:       events.OpUpdated,
		ID:       row.ID,
	})
	s.logger.Info("settings updated", zap.Int64("settings_id", row.ID))
	return row, nil
}
