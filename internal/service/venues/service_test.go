package venues

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	venueRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/venue"
	"github.com/nishigaki-sys/school-booking-v2/internal/service/venues/models"
)

type fakeVenueRepo struct {
	venues map[string]*domain.Venue
}

func (f *fakeVenueRepo) List(context.Context) ([]*domain.Venue, error) {
	out := make([]*domain.Venue, 0, len(f.venues))
	for _, v := range f.venues {
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVenueRepo) Get(_ context.Context, id string) (*domain.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, venueRepo.ErrVenueNotFound
	}
	return v, nil
}

func (f *fakeVenueRepo) Save(_ context.Context, v *domain.Venue) error {
	f.venues[v.ID] = v
	return nil
}

func (f *fakeVenueRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.venues[id]; !ok {
		return venueRepo.ErrVenueNotFound
	}
	delete(f.venues, id)
	return nil
}

type fakeScheduleRepo struct {
	docs map[string]*domain.ScheduleDocument
}

func (f *fakeScheduleRepo) Get(_ context.Context, venueID string) (*domain.ScheduleDocument, error) {
	doc, ok := f.docs[venueID]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return doc, nil
}

func (f *fakeScheduleRepo) Replace(_ context.Context, doc *domain.ScheduleDocument) error {
	f.docs[doc.VenueID] = doc
	return nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, venueID string) error {
	delete(f.docs, venueID)
	return nil
}

type fakeCascadeRepo struct {
	deleted []string
}

func (f *fakeCascadeRepo) DeleteByVenue(_ context.Context, venueID string) error {
	f.deleted = append(f.deleted, venueID)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeVenueRepo, *fakeScheduleRepo, *fakeCascadeRepo, *fakeCascadeRepo) {
	venues := &fakeVenueRepo{venues: map[string]*domain.Venue{}}
	schedules := &fakeScheduleRepo{docs: map[string]*domain.ScheduleDocument{}}
	reservations := &fakeCascadeRepo{}
	events := &fakeCascadeRepo{}
	svc := NewService(venues, schedules, reservations, events, fakeTxManager{}, nopLogger{})
	return svc, venues, schedules, reservations, events
}

func TestCreate_SeedsScheduleDocument(t *testing.T) {
	svc, venues, schedules, _, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateVenueRequest{ID: "shibuya", Name: "Shibuya School"})

	require.NoError(t, err)
	assert.Equal(t, "shibuya", resp.ID)
	assert.Equal(t, "Shibuya School", resp.Name)
	require.Contains(t, venues.venues, "shibuya")

	doc, ok := schedules.docs["shibuya"]
	require.True(t, ok)
	assert.Equal(t, "Shibuya School", doc.VenueName)
	assert.Empty(t, doc.Schedule)
}

func TestCreate_GeneratesIDWhenEmpty(t *testing.T) {
	svc, venues, _, _, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateVenueRequest{Name: "Meguro School"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Contains(t, venues.venues, resp.ID)
}

func TestCreate_DuplicateID(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateVenueRequest{ID: "shibuya", Name: "Shibuya School"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &models.CreateVenueRequest{ID: "shibuya", Name: "Another School"})
	assert.ErrorIs(t, err, ErrVenueExists)
}

func TestCreate_EmptyName(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateVenueRequest{ID: "shibuya", Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_RenamePropagatesToScheduleDocument(t *testing.T) {
	svc, venues, schedules, _, _ := newTestService()
	_, err := svc.Create(context.Background(), &models.CreateVenueRequest{ID: "shibuya", Name: "Shibuya School"})
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), "shibuya", &models.UpdateVenueRequest{Name: "Shibuya Kids Lab"})

	require.NoError(t, err)
	assert.Equal(t, "Shibuya Kids Lab", resp.Name)
	assert.Equal(t, "Shibuya Kids Lab", venues.venues["shibuya"].Name)
	assert.Equal(t, "Shibuya Kids Lab", schedules.docs["shibuya"].VenueName)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Update(context.Background(), "nowhere", &models.UpdateVenueRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestUpdatePageSettings_PartialUpdate(t *testing.T) {
	svc, _, schedules, _, _ := newTestService()
	_, err := svc.Create(context.Background(), &models.CreateVenueRequest{ID: "shibuya", Name: "Shibuya School"})
	require.NoError(t, err)
	schedules.docs["shibuya"].Address = "1-2-3 Jinnan"

	title := "Book a visit"
	err = svc.UpdatePageSettings(context.Background(), "shibuya", &models.PageSettingsRequest{PageTitle: &title})

	require.NoError(t, err)
	doc := schedules.docs["shibuya"]
	assert.Equal(t, "Book a visit", doc.PageTitle)
	assert.Equal(t, "1-2-3 Jinnan", doc.Address)
}

func TestDelete_CascadesDependentData(t *testing.T) {
	svc, venues, schedules, reservations, events := newTestService()
	_, err := svc.Create(context.Background(), &models.CreateVenueRequest{ID: "shibuya", Name: "Shibuya School"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "shibuya")

	require.NoError(t, err)
	assert.NotContains(t, venues.venues, "shibuya")
	assert.NotContains(t, schedules.docs, "shibuya")
	assert.Equal(t, []string{"shibuya"}, reservations.deleted)
	assert.Equal(t, []string{"shibuya"}, events.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _, reservations, _ := newTestService()

	err := svc.Delete(context.Background(), "nowhere")

	assert.ErrorIs(t, err, ErrVenueNotFound)
	assert.Empty(t, reservations.deleted)
}
