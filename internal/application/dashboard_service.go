package application

import (
	"context"
	"time"

	bookingDomain "github.com/havenhq/service-lodging-admin/internal/domain/booking"
	"go.uber.org/zap"
)

// DashboardService serves the reporting reads behind the dashboard screens.
type DashboardService struct {
	repo   bookingDomain.Repository
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo bookingDomain.Repository, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: logger}
}

// RecentBookings returns revenue entries for bookings created in the last
// lastDays days, up to the end of today.
func (s *DashboardService) RecentBookings(ctx context.Context, lastDays int) ([]bookingDomain.RevenueEntry, error) {
	return s.repo.CreatedAfter(ctx, daysAgo(lastDays))
}

// RecentStays returns confirmed stays (checked in or checked out) that
// started in the last lastDays days.
func (s *DashboardService) RecentStays(ctx context.Context, lastDays int) ([]bookingDomain.Booking, error) {
	stays, err := s.repo.StaysAfter(ctx, daysAgo(lastDays))
	if err != nil {
		return nil, err
	}

	confirmed := stays[:0]
	for _, st := range stays {
		if st.Status == bookingDomain.StatusCheckedIn || st.Status == bookingDomain.StatusCheckedOut {
			confirmed = append(confirmed, st)
		}
	}
	return confirmed, nil
}

// TodayActivity returns the stays needing front-desk attention today.
func (s *DashboardService) TodayActivity(ctx context.Context) ([]bookingDomain.Booking, error) {
	return s.repo.TodayActivity(ctx)
}

// StatusCounts returns booking counts grouped by status.
func (s *DashboardService) StatusCounts(ctx context.Context) (map[bookingDomain.Status]int64, error) {
	return s.repo.CountByStatus(ctx)
}

func daysAgo(days int) time.Time {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 0, -days)
}
