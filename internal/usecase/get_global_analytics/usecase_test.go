package get_global_analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

type fakeVenueRepo struct {
	venues []*domain.Venue
}

func (f *fakeVenueRepo) List(context.Context) ([]*domain.Venue, error) {
	return f.venues, nil
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

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	recent       []*domain.Reservation
	recentLimit  int
}

func (f *fakeReservationRepo) List(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0, len(f.reservations))
	for _, r := range f.reservations {
		if filter.StartDate != nil && r.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && filter.EndDate.Before(r.Date) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReservationRepo) ListRecent(_ context.Context, limit int) ([]*domain.Reservation, error) {
	f.recentLimit = limit
	return f.recent, nil
}

type fakeEventRepo struct {
	pageViews map[string]int
}

func (f *fakeEventRepo) CountTotal(context.Context, domain.EventKind) (map[string]int, error) {
	return f.pageViews, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func reservation(venueID string, date types.DateString, source domain.SourceType) *domain.Reservation {
	return &domain.Reservation{
		ID:         "r-" + venueID + "-" + string(date),
		VenueID:    venueID,
		VenueName:  venueID + " School",
		Date:       date,
		StartTime:  "10:00",
		ContentID:  "c1",
		CourseName: "Robotics",
		ChildName:  "Taro",
		SourceType: source,
		CreatedAt:  time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
	}
}

func docWithCapacity(venueID string, capacity int) *domain.ScheduleDocument {
	doc := domain.NewScheduleDocument(venueID, venueID+" School")
	doc.Schedule[types.DateString("2025-07-10")] = []domain.Slot{
		{ID: "s1", ContentID: "c1", StartTime: "10:00", EndTime: "11:00", Capacity: capacity, Grades: []domain.Grade{domain.GradeLower}},
	}
	return doc
}

func TestExecute_RollupAcrossVenues(t *testing.T) {
	venues := &fakeVenueRepo{venues: []*domain.Venue{
		{ID: "shibuya", Name: "Shibuya School"},
		{ID: "meguro", Name: "Meguro School"},
		{ID: "ueno", Name: "Ueno School"},
	}}
	schedules := &fakeScheduleRepo{docs: map[string]*domain.ScheduleDocument{
		"shibuya": docWithCapacity("shibuya", 10),
		"meguro":  docWithCapacity("meguro", 4),
	}}
	reservations := &fakeReservationRepo{reservations: []*domain.Reservation{
		reservation("shibuya", "2025-07-10", domain.SourceWeb),
		reservation("shibuya", "2025-07-11", domain.SourceWeb),
		reservation("shibuya", "2025-07-12", domain.SourceAdmin),
		reservation("meguro", "2025-07-10", domain.SourceWeb),
		reservation("meguro", "2025-08-10", domain.SourceWeb),
	}}
	events := &fakeEventRepo{pageViews: map[string]int{"shibuya": 120, "meguro": 30}}

	uc := NewUseCase(venues, schedules, reservations, events, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{StartDate: "2025-07-01", EndDate: "2025-07-31"})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.TotalBookings)
	require.Len(t, resp.Venues, 3)

	shibuya := resp.Venues[0]
	assert.Equal(t, "shibuya", shibuya.VenueID)
	assert.Equal(t, 3, shibuya.Bookings)
	assert.Equal(t, 2, shibuya.WebBookings)
	assert.Equal(t, 10, shibuya.Capacity)
	assert.Equal(t, 30, shibuya.UtilizationPct)
	assert.Equal(t, 120, shibuya.PageViews)

	meguro := resp.Venues[1]
	assert.Equal(t, "meguro", meguro.VenueID)
	assert.Equal(t, 1, meguro.Bookings)
	assert.Equal(t, 25, meguro.UtilizationPct)

	ueno := resp.Venues[2]
	assert.Equal(t, "ueno", ueno.VenueID)
	assert.Equal(t, 0, ueno.Bookings)
	assert.Equal(t, 0, ueno.Capacity)
	assert.Equal(t, 0, ueno.UtilizationPct)
	assert.Equal(t, 0, ueno.PageViews)
}

func TestExecute_DailySeriesStackedByVenue(t *testing.T) {
	venues := &fakeVenueRepo{venues: []*domain.Venue{
		{ID: "shibuya", Name: "Shibuya School"},
		{ID: "meguro", Name: "Meguro School"},
	}}
	schedules := &fakeScheduleRepo{docs: map[string]*domain.ScheduleDocument{}}
	reservations := &fakeReservationRepo{reservations: []*domain.Reservation{
		reservation("shibuya", "2025-07-10", domain.SourceWeb),
		reservation("shibuya", "2025-07-10", domain.SourceAdmin),
		reservation("meguro", "2025-07-11", domain.SourceWeb),
	}}
	events := &fakeEventRepo{}

	uc := NewUseCase(venues, schedules, reservations, events, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{StartDate: "2025-07-09", EndDate: "2025-07-11"})

	require.NoError(t, err)
	require.Len(t, resp.Daily, 3)
	assert.Equal(t, DailyVenueCount{Date: "2025-07-09", Total: 0, ByVenue: map[string]int{"shibuya": 0, "meguro": 0}}, resp.Daily[0])
	assert.Equal(t, DailyVenueCount{Date: "2025-07-10", Total: 2, ByVenue: map[string]int{"shibuya": 2, "meguro": 0}}, resp.Daily[1])
	assert.Equal(t, DailyVenueCount{Date: "2025-07-11", Total: 1, ByVenue: map[string]int{"shibuya": 0, "meguro": 1}}, resp.Daily[2])
}

func TestExecute_SortsByBookingsThenName(t *testing.T) {
	venues := &fakeVenueRepo{venues: []*domain.Venue{
		{ID: "ueno", Name: "Ueno School"},
		{ID: "meguro", Name: "Meguro School"},
	}}
	schedules := &fakeScheduleRepo{docs: map[string]*domain.ScheduleDocument{}}
	reservations := &fakeReservationRepo{}
	events := &fakeEventRepo{}

	uc := NewUseCase(venues, schedules, reservations, events, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{StartDate: "2025-07-01", EndDate: "2025-07-31"})

	require.NoError(t, err)
	require.Len(t, resp.Venues, 2)
	assert.Equal(t, "Meguro School", resp.Venues[0].VenueName)
	assert.Equal(t, "Ueno School", resp.Venues[1].VenueName)
}

func TestExecute_RecentFeed(t *testing.T) {
	venues := &fakeVenueRepo{venues: []*domain.Venue{{ID: "shibuya", Name: "Shibuya School"}}}
	schedules := &fakeScheduleRepo{docs: map[string]*domain.ScheduleDocument{}}
	reservations := &fakeReservationRepo{recent: []*domain.Reservation{
		reservation("shibuya", "2025-07-10", domain.SourceWeb),
	}}
	events := &fakeEventRepo{}

	uc := NewUseCase(venues, schedules, reservations, events, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{StartDate: "2025-07-01", EndDate: "2025-07-31", Recent: 5})

	require.NoError(t, err)
	assert.Equal(t, 5, reservations.recentLimit)
	require.Len(t, resp.Recent, 1)
	assert.Equal(t, "shibuya School", resp.Recent[0].VenueName)
	assert.Equal(t, "Robotics", resp.Recent[0].CourseName)
	assert.Equal(t, "web", resp.Recent[0].Source)
	assert.Equal(t, "2025-07-01T09:00:00Z", resp.Recent[0].CreatedAt)
}

func TestExecute_RecentDefaultsToTen(t *testing.T) {
	venues := &fakeVenueRepo{}
	schedules := &fakeScheduleRepo{docs: map[string]*domain.ScheduleDocument{}}
	reservations := &fakeReservationRepo{}
	events := &fakeEventRepo{}

	uc := NewUseCase(venues, schedules, reservations, events, nopLogger{})
	_, err := uc.Execute(context.Background(), &Request{StartDate: "2025-07-01", EndDate: "2025-07-31"})

	require.NoError(t, err)
	assert.Equal(t, 10, reservations.recentLimit)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeVenueRepo{}, &fakeScheduleRepo{}, &fakeReservationRepo{}, &fakeEventRepo{}, nopLogger{})

	cases := []struct {
		name string
		req  *Request
	}{
		{"bad start date", &Request{StartDate: "July 1", EndDate: "2025-07-31"}},
		{"bad end date", &Request{StartDate: "2025-07-01", EndDate: "31-07-2025"}},
		{"inverted range", &Request{StartDate: "2025-07-31", EndDate: "2025-07-01"}},
		{"unknown date field", &Request{StartDate: "2025-07-01", EndDate: "2025-07-31", DateField: "updated"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), c.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
