//go:build integration

package main_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/havenhq/service-lodging-admin/internal/application"
	"github.com/havenhq/service-lodging-admin/internal/domain"
	bookingDomain "github.com/havenhq/service-lodging-admin/internal/domain/booking"
	cabinDomain "github.com/havenhq/service-lodging-admin/internal/domain/cabin"
	settingDomain "github.com/havenhq/service-lodging-admin/internal/domain/setting"
	"github.com/havenhq/service-lodging-admin/internal/events"
	"github.com/havenhq/service-lodging-admin/internal/query"
	"github.com/havenhq/service-lodging-admin/internal/repository"
	"github.com/havenhq/service-lodging-admin/internal/storage"
)

// TestBookingListFilterSortPaginate verifies the full query surface against a
// real database: equality filter, explicit sort, fixed-size pages and a total
// count that stays invariant across pages of the same filter.
func TestBookingListFilterSortPaginate(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	ctx := context.Background()

	cabinID := seedCabin(t, infra.DB, "001", 45000)
	guestID := seedGuest(t, infra.DB, "Nina Williams", "nina@example.com")

	// 15 unconfirmed with distinct prices, 5 checked-in.
	for i := 0; i < 15; i++ {
		seedBooking(t, infra.DB, cabinID, guestID, bookingDomain.StatusUnconfirmed,
			daysFromNow(i+1), daysFromNow(i+4), int64(10000+i*1000))
	}
	for i := 0; i < 5; i++ {
		seedBooking(t, infra.DB, cabinID, guestID, bookingDomain.StatusCheckedIn,
			daysFromNow(-3), daysFromNow(1), 99000)
	}

	repo := repository.NewGormBookingRepository(infra.DB)

	spec := query.Spec{
		Filter: &query.Filter{Field: "status", Value: string(bookingDomain.StatusUnconfirmed)},
		Sort:   &query.Sort{Field: "total_price", Direction: query.Desc},
		Page:   1,
	}
	page1, total, err := repo.List(ctx, spec)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total, "count reflects the filtered set, not the page")
	require.Len(t, page1, query.PageSize)
	assert.Equal(t, int64(24000), page1[0].TotalPrice, "rows come back in descending price order")
	require.NotNil(t, page1[0].Guest, "guest summary is embedded in list reads")
	assert.Equal(t, "Nina Williams", page1[0].Guest.FullName)
	require.NotNil(t, page1[0].Cabin)
	assert.Equal(t, "001", page1[0].Cabin.Name)

	spec.Page = 2
	page2, total, err := repo.List(ctx, spec)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total, "count must not change across pages")
	assert.Len(t, page2, 5)
	assert.Less(t, page2[0].TotalPrice, page1[len(page1)-1].TotalPrice)

	// Unpaginated read returns everything matching the filter.
	spec.Page = 0
	all, total, err := repo.List(ctx, spec)
	require.NoError(t, err)
	assert.Len(t, all, 15)
	assert.Equal(t, int64(15), total)
}

// TestBookingCrud walks a booking through its persistence lifecycle.
func TestBookingCrud(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	ctx := context.Background()

	cabinID := seedCabin(t, infra.DB, "002", 30000)
	guestID := seedGuest(t, infra.DB, "Jonas Mueller", "jonas@example.com")
	repo := repository.NewGormBookingRepository(infra.DB)

	row, err := repo.Create(ctx, bookingDomain.Fields{
		StartDate:  daysFromNow(2),
		EndDate:    daysFromNow(6),
		NumNights:  4,
		NumGuests:  2,
		CabinPrice: 120000,
		TotalPrice: 120000,
		Status:     bookingDomain.StatusUnconfirmed,
		CabinID:    cabinID,
		GuestID:    guestID,
	})
	require.NoError(t, err)
	assert.NotZero(t, row.ID)

	found, err := repo.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatusUnconfirmed, found.Status)
	require.NotNil(t, found.Guest)
	assert.Equal(t, "jonas@example.com", found.Guest.Email)

	paid := true
	status := bookingDomain.StatusCheckedIn
	updated, err := repo.Update(ctx, row.ID, bookingDomain.Update{Status: &status, IsPaid: &paid})
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatusCheckedIn, updated.Status)
	assert.True(t, updated.IsPaid)
	assert.Equal(t, int64(120000), updated.TotalPrice, "untouched fields survive a partial update")

	require.NoError(t, repo.Delete(ctx, row.ID))

	_, err = repo.FindByID(ctx, row.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = repo.Update(ctx, row.ID, bookingDomain.Update{IsPaid: &paid})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err), "updating a missing row reports not found")
}

// TestTodayActivity verifies the front-desk disjunction: unconfirmed stays
// starting today plus checked-in stays ending today, nothing else.
func TestTodayActivity(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	ctx := context.Background()

	cabinID := seedCabin(t, infra.DB, "003", 30000)
	guestID := seedGuest(t, infra.DB, "Aiko Tanaka", "aiko@example.com")
	repo := repository.NewGormBookingRepository(infra.DB)

	arriving := seedBooking(t, infra.DB, cabinID, guestID, bookingDomain.StatusUnconfirmed,
		daysFromNow(0), daysFromNow(3), 30000)
	departing := seedBooking(t, infra.DB, cabinID, guestID, bookingDomain.StatusCheckedIn,
		daysFromNow(-3), daysFromNow(0), 30000)

	// None of these qualify.
	seedBooking(t, infra.DB, cabinID, guestID, bookingDomain.StatusUnconfirmed,
		daysFromNow(1), daysFromNow(4), 30000) // arrives tomorrow
	seedBooking(t, infra.DB, cabinID, guestID, bookingDomain.StatusCheckedIn,
		daysFromNow(-3), daysFromNow(1), 30000) // departs tomorrow
	seedBooking(t, infra.DB, cabinID, guestID, bookingDomain.StatusCheckedOut,
		daysFromNow(-3), daysFromNow(0), 30000) // already gone

	activity, err := repo.TodayActivity(ctx)
	require.NoError(t, err)
	require.Len(t, activity, 2)

	ids := []int64{activity[0].ID, activity[1].ID}
	assert.Contains(t, ids, arriving)
	assert.Contains(t, ids, departing)
	for _, bk := range activity {
		require.NotNil(t, bk.Guest, "the desk needs the guest identity")
	}
}

// TestDashboardQueries covers the revenue and stays scans plus status counts.
func TestDashboardQueries(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	ctx := context.Background()

	cabinID := seedCabin(t, infra.DB, "004", 30000)
	guestID := seedGuest(t, infra.DB, "Maria Silva", "maria@example.com")
	repo := repository.NewGormBookingRepository(infra.DB)

	seedBooking(t, infra.DB, cabinID, guestID, bookingDomain.StatusCheckedOut,
		daysFromNow(-5), daysFromNow(-2), 50000)
	seedBooking(t, infra.DB, cabinID, guestID, bookingDomain.StatusCheckedIn,
		daysFromNow(-2), daysFromNow(2), 70000)
	seedBooking(t, infra.DB, cabinID, guestID, bookingDomain.StatusUnconfirmed,
		daysFromNow(3), daysFromNow(6), 90000)

	revenue, err := repo.CreatedAfter(ctx, daysFromNow(-7))
	require.NoError(t, err)
	assert.Len(t, revenue, 3, "all three were created within the window")

	stays, err := repo.StaysAfter(ctx, daysFromNow(-7))
	require.NoError(t, err)
	require.Len(t, stays, 2, "only stays that already started qualify")
	for _, bk := range stays {
		assert.False(t, bk.StartDate.After(time.Now().UTC()))
	}

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[bookingDomain.StatusUnconfirmed])
	assert.Equal(t, int64(1), counts[bookingDomain.StatusCheckedIn])
	assert.Equal(t, int64(1), counts[bookingDomain.StatusCheckedOut])
}

// TestCabinDualWriteEndToEnd runs the row-plus-asset protocol against a real
// database and a live object store stub.
func TestCabinDualWriteEndToEnd(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	ctx := context.Background()

	objects := newAssetServer(t)
	store := storage.NewHTTPAssetStore(objects.URL, objects.Client())
	repo := repository.NewGormCabinRepository(infra.DB)
	svc := application.NewCabinService(repo, store, events.NopNotifier{}, zap.NewNop())

	fields := application.CabinFields{
		Name:         "005",
		MaxCapacity:  6,
		RegularPrice: 55000,
		Discount:     5000,
		Description:  "Large cabin with mountain view",
	}

	row, err := svc.CreateCabin(ctx, fields, application.CabinImage{
		Filename: "mountain.jpg",
		Data:     []byte("jpegbytes"),
	})
	require.NoError(t, err)

	objectName := strings.TrimPrefix(row.Image, objects.URL+"/")
	assert.True(t, objects.has(objectName), "the object must be readable at the planned name")

	stored, err := repo.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.Image, stored.Image)

	// A rejected upload must compensate the row away.
	objects.setReject(true)
	_, err = svc.CreateCabin(ctx, fields, application.CabinImage{
		Filename: "lake.jpg",
		Data:     []byte("morebytes"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindUploadFailure, domain.KindOf(err))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "the orphaned row from the failed create is gone")

	// An edit that keeps the image must not touch the store.
	objects.setReject(true)
	fields.Discount = 0
	updated, err := svc.UpdateCabin(ctx, row.ID, fields, application.CabinImage{Reference: row.Image})
	require.NoError(t, err, "an unchanged reference needs no upload, so the broken store is invisible")
	assert.Equal(t, row.Image, updated.Image)
	assert.Equal(t, int64(0), updated.Discount)
}

// TestCabinCrud exercises the cabin repository directly.
func TestCabinCrud(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	ctx := context.Background()

	repo := repository.NewGormCabinRepository(infra.DB)

	row, err := repo.Create(ctx, cabinDomain.Fields{
		Name:         "006",
		MaxCapacity:  2,
		RegularPrice: 25000,
		Image:        "https://objects.test/cabin-images/006.jpg",
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, row.ID, cabinDomain.Fields{
		Name:         "006-renamed",
		MaxCapacity:  3,
		RegularPrice: 27000,
		Image:        row.Image,
	})
	require.NoError(t, err)
	assert.Equal(t, "006-renamed", updated.Name)
	assert.Equal(t, 3, updated.MaxCapacity)

	require.NoError(t, repo.Delete(ctx, row.ID))
	_, err = repo.FindByID(ctx, row.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

// TestGuestFindByEmail verifies the identity dedup lookup the check-in flow
// relies on.
func TestGuestFindByEmail(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	ctx := context.Background()

	repo := repository.NewGormGuestRepository(infra.DB)

	_, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	seedGuest(t, infra.DB, "Nina Williams", "nina@example.com")
	found, err := repo.FindByEmail(ctx, "nina@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Nina Williams", found.FullName)
}

// TestSettingsSingleton exercises the single-row settings table.
func TestSettingsSingleton(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	ctx := context.Background()

	repo := repository.NewGormSettingRepository(infra.DB)

	_, err := repo.Get(ctx)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err), "an unseeded settings table reports not found")

	require.NoError(t, infra.DB.Create(&repository.SettingModel{
		MinBookingLength:    3,
		MaxBookingLength:    30,
		MaxGuestsPerBooking: 8,
		BreakfastPrice:      1500,
	}).Error)

	current, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, current.MinBookingLength)

	price := int64(2000)
	updated, err := repo.Update(ctx, settingDomain.Update{BreakfastPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), updated.BreakfastPrice)
	assert.Equal(t, 30, updated.MaxBookingLength, "untouched fields survive a partial update")
}
