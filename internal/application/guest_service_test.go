package application

import (
	"context"
	"errors"
	"testing"

	"github.com/havenhq/service-lodging-admin/internal/domain"
	guestDomain "github.com/havenhq/service-lodging-admin/internal/domain/guest"
	"github.com/havenhq/service-lodging-admin/internal/events"
	"github.com/havenhq/service-lodging-admin/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGuestRepo is an in-memory guest.Repository.
type fakeGuestRepo struct {
	rows   map[int64]guestDomain.Guest
	nextID int64

	failFindByEmail bool
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{rows: make(map[int64]guestDomain.Guest), nextID: 1}
}

func (r *fakeGuestRepo) List(_ context.Context, _ query.Spec) ([]guestDomain.Guest, int64, error) {
	out := make([]guestDomain.Guest, 0, len(r.rows))
	for _, g := range r.rows {
		out = append(out, g)
	}
	return out, int64(len(out)), nil
}

func (r *fakeGuestRepo) FindByID(_ context.Context, id int64) (*guestDomain.Guest, error) {
	g, ok := r.rows[id]
	if !ok {
		return nil, domain.NewNotFound("Guest", id)
	}
	return &g, nil
}

func (r *fakeGuestRepo) FindByEmail(_ context.Context, email string) (*guestDomain.Guest, error) {
	if r.failFindByEmail {
		return nil, domain.NewLoadFailure("Guest", errors.New("connection reset"))
	}
	for _, g := range r.rows {
		if g.Email == email {
			return &g, nil
		}
	}
	return nil, domain.NewNotFound("Guest", email)
}

func (r *fakeGuestRepo) Create(_ context.Context, fields guestDomain.Fields) (*guestDomain.Guest, error) {
	g := guestDomain.Guest{
		ID:          r.nextID,
		FullName:    fields.FullName,
		Email:       fields.Email,
		NationalID:  fields.NationalID,
		Nationality: fields.Nationality,
		CountryFlag: fields.CountryFlag,
	}
	r.rows[g.ID] = g
	r.nextID++
	return &g, nil
}

func (r *fakeGuestRepo) Update(_ context.Context, id int64, fields guestDomain.Fields) (*guestDomain.Guest, error) {
	g, ok := r.rows[id]
	if !ok {
		return nil, domain.NewNotFound("Guest", id)
	}
	g.FullName = fields.FullName
	g.Email = fields.Email
	g.NationalID = fields.NationalID
	g.Nationality = fields.Nationality
	g.CountryFlag = fields.CountryFlag
	r.rows[id] = g
	return &g, nil
}

func (r *fakeGuestRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.NewNotFound("Guest", id)
	}
	delete(r.rows, id)
	return nil
}

func sampleGuestRequest() GuestRequest {
	return GuestRequest{
		FullName:    "Nina Williams",
		Email:       "nina@example.com",
		NationalID:  "3525436345",
		Nationality: "Ireland",
		CountryFlag: "https://flagcdn.com/ie.svg",
	}
}

func TestCreateGuestRegistersNewIdentity(t *testing.T) {
	repo := newFakeGuestRepo()
	notifier := &recordingNotifier{}
	svc := NewGuestService(repo, nil, notifier, zap.NewNop())

	row, err := svc.CreateGuest(context.Background(), sampleGuestRequest())
	require.NoError(t, err)
	assert.Equal(t, "nina@example.com", row.Email)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, events.ResourceGuests, notifier.events[0].Resource)
	assert.Equal(t, events.OpCreated, notifier.events[0].Op)
}

func TestCreateGuestReusesExistingEmail(t *testing.T) {
	repo := newFakeGuestRepo()
	notifier := &recordingNotifier{}
	svc := NewGuestService(repo, nil, notifier, zap.NewNop())

	first, err := svc.CreateGuest(context.Background(), sampleGuestRequest())
	require.NoError(t, err)

	again := sampleGuestRequest()
	again.FullName = "N. Williams"
	second, err := svc.CreateGuest(context.Background(), again)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "the known email must map to the existing identity")
	assert.Len(t, repo.rows, 1)
	assert.Len(t, notifier.events, 1, "a reused identity is not a new change")
}

func TestCreateGuestSurfacesLookupFailure(t *testing.T) {
	repo := newFakeGuestRepo()
	repo.failFindByEmail = true
	svc := NewGuestService(repo, nil, &recordingNotifier{}, zap.NewNop())

	_, err := svc.CreateGuest(context.Background(), sampleGuestRequest())
	require.Error(t, err)
	assert.Equal(t, domain.KindLoadFailure, domain.KindOf(err),
		"a failed dedup lookup must not fall through to an insert")
	assert.Empty(t, repo.rows)
}

func TestUpdateAndDeleteGuestNotify(t *testing.T) {
	repo := newFakeGuestRepo()
	notifier := &recordingNotifier{}
	svc := NewGuestService(repo, nil, notifier, zap.NewNop())

	row, err := svc.CreateGuest(context.Background(), sampleGuestRequest())
	require.NoError(t, err)

	req := sampleGuestRequest()
	req.Nationality = "Portugal"
	updated, err := svc.UpdateGuest(context.Background(), row.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Portugal", updated.Nationality)

	require.NoError(t, svc.DeleteGuest(context.Background(), row.ID))

	ops := make([]events.Op, 0, len(notifier.events))
	for _, evt := range notifier.events {
		ops = append(ops, evt.Op)
	}
	assert.Equal(t, []events.Op{events.OpCreated, events.OpUpdated, events.OpDeleted}, ops)
}
