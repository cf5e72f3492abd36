//go:build integration

package main_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	bookingDomain "github.com/havenhq/service-lodging-admin/internal/domain/booking"
	"github.com/havenhq/service-lodging-admin/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// setupPostgres starts a PostgreSQL testcontainer, connects GORM to it and
// migrates the full schema.
func setupPostgres(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_lodging",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_lodging sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.CabinModel{},
		&repository.GuestModel{},
		&repository.BookingModel{},
		&repository.SettingModel{},
	))

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{DB: db, Cleanup: cleanup}
}

// assetServer is an in-memory object store speaking the PUT-and-read HTTP
// surface the asset store client expects.
type assetServer struct {
	*httptest.Server

	mu      sync.Mutex
	objects map[string][]byte
	reject  bool
}

// newAssetServer starts an object store stub.
func newAssetServer(t *testing.T) *assetServer {
	t.Helper()
	s := &assetServer{objects: make(map[string][]byte)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		name := r.URL.Path[1:]
		switch r.Method {
		case http.MethodPut:
			if s.reject {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			body, err := io.ReadAll(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			s.objects[name] = body
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			if obj, ok := s.objects[name]; ok {
				_, _ = w.Write(obj)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(s.Server.Close)
	return s
}

// has reports whether an object with the given name was stored.
func (s *assetServer) has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[name]
	return ok
}

// setReject makes subsequent uploads fail.
func (s *assetServer) setReject(reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reject = reject
}

// seedCabin inserts a cabin row directly.
func seedCabin(t *testing.T, db *gorm.DB, name string, price int64) int64 {
	t.Helper()
	model := repository.CabinModel{
		Name:         name,
		MaxCapacity:  4,
		RegularPrice: price,
		Discount:     0,
		Description:  "seeded cabin",
		Image:        "https://objects.test/cabin-images/seed.jpg",
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed cabin")
	return model.ID
}

// seedGuest inserts a guest row directly.
func seedGuest(t *testing.T, db *gorm.DB, fullName, email string) int64 {
	t.Helper()
	model := repository.GuestModel{
		FullName:    fullName,
		Email:       email,
		Nationality: "Portugal",
		CountryFlag: "https://flagcdn.com/pt.svg",
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed guest")
	return model.ID
}

// seedBooking inserts a booking row with the given status and stay window.
func seedBooking(t *testing.T, db *gorm.DB, cabinID, guestID int64, status bookingDomain.Status, start, end time.Time, totalPrice int64) int64 {
	t.Helper()
	nights := int(end.Sub(start).Hours() / 24)
	model := repository.BookingModel{
		StartDate:  start,
		EndDate:    end,
		NumNights:  nights,
		NumGuests:  2,
		CabinPrice: totalPrice,
		TotalPrice: totalPrice,
		Status:     string(status),
		CabinID:    cabinID,
		GuestID:    guestID,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed booking")
	return model.ID
}

// daysFromNow returns midnight UTC the given number of days from today.
// Negative values go into the past.
func daysFromNow(days int) time.Time {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, days)
}
