package get_analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
)

type fakeScheduleRepo struct {
	doc *domain.ScheduleDocument
}

func (f *fakeScheduleRepo) Get(_ context.Context, venueID string) (*domain.ScheduleDocument, error) {
	if f.doc == nil || f.doc.VenueID != venueID {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.doc, nil
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) List(_ context.Context, _ domain.ReservationFilter) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

type fakeEventRepo struct {
	counts map[domain.EventKind]int
}

func (f *fakeEventRepo) CountByKind(_ context.Context, _ string, _, _ time.Time) (map[domain.EventKind]int, error) {
	return f.counts, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDocument() *domain.ScheduleDocument {
	return &domain.ScheduleDocument{
		VenueID:   "shibuya",
		VenueName: "Shibuya School",
		Contents: []domain.ContentItem{
			{ID: "c1", Name: "Robotics", Category: domain.CategoryExperience, Price: 5000},
			{ID: "c2", Name: "Science Day", Category: domain.CategoryEvent, Price: 3000},
		},
		Schedule: domain.Schedule{
			"2025-07-10": {
				{ID: "s1", ContentID: "c1", StartTime: "10:00", EndTime: "11:00", Capacity: 6, Grades: []domain.Grade{domain.GradeLower}},
			},
			"2025-07-11": {
				{ID: "s2", ContentID: "c2", StartTime: "10:00", EndTime: "11:00", Capacity: 4, Grades: []domain.Grade{domain.GradeUpper}},
			},
			// Outside the requested period, must not count toward capacity.
			"2025-08-01": {
				{ID: "s3", ContentID: "c1", StartTime: "10:00", EndTime: "11:00", Capacity: 50, Grades: []domain.Grade{domain.GradeLower}},
			},
		},
	}
}

func reservation(id, contentID string, source domain.SourceType) *domain.Reservation {
	return &domain.Reservation{
		ID:         id,
		VenueID:    "shibuya",
		Date:       "2025-07-10",
		StartTime:  "10:00",
		ContentID:  contentID,
		SourceType: source,
		CreatedAt:  time.Date(2025, 7, 9, 12, 0, 0, 0, time.Local),
	}
}

func TestGetAnalyticsSummary(t *testing.T) {
	reservations := []*domain.Reservation{
		reservation("r1", "c1", domain.SourceWeb),
		reservation("r2", "c1", domain.SourceWeb),
		reservation("r3", "c2", domain.SourceAdmin),
		reservation("r4", "gone", domain.SourceAdmin),
	}
	uc := NewUseCase(
		&fakeScheduleRepo{doc: testDocument()},
		&fakeReservationRepo{reservations: reservations},
		&fakeEventRepo{counts: map[domain.EventKind]int{domain.EventPageView: 40}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID:   "shibuya",
		StartDate: "2025-07-01",
		EndDate:   "2025-07-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Summary.TotalBookings)
	assert.Equal(t, 2, resp.Summary.WebBookings)
	assert.Equal(t, 2, resp.Summary.AdminBookings)
	assert.Equal(t, 10, resp.Summary.TotalCapacity)
	// 4 of 10, rounded.
	assert.Equal(t, 40, resp.Summary.UtilizationPct)
	assert.Equal(t, 40, resp.Summary.PageViews)
	// 5000 + 5000 + 3000; the removed course contributes nothing.
	assert.Equal(t, 13000, resp.Summary.SalesTotal)
}

func TestGetAnalyticsZeroCapacity(t *testing.T) {
	doc := testDocument()
	doc.Schedule = domain.Schedule{}
	uc := NewUseCase(
		&fakeScheduleRepo{doc: doc},
		&fakeReservationRepo{reservations: []*domain.Reservation{reservation("r1", "c1", domain.SourceWeb)}},
		&fakeEventRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID: "shibuya", StartDate: "2025-07-01", EndDate: "2025-07-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Summary.UtilizationPct)
	assert.Equal(t, 0, resp.Summary.TotalCapacity)
}

func TestGetAnalyticsDailySeriesZeroFilled(t *testing.T) {
	uc := NewUseCase(
		&fakeScheduleRepo{doc: testDocument()},
		&fakeReservationRepo{reservations: []*domain.Reservation{reservation("r1", "c1", domain.SourceWeb)}},
		&fakeEventRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID: "shibuya", StartDate: "2025-07-09", EndDate: "2025-07-11",
	})
	require.NoError(t, err)

	require.Len(t, resp.Daily, 3)
	assert.Equal(t, DailyCount{Date: "2025-07-09", Total: 0, ByContent: map[string]int{"c1": 0, "c2": 0}}, resp.Daily[0])
	assert.Equal(t, DailyCount{Date: "2025-07-10", Total: 1, ByContent: map[string]int{"c1": 1, "c2": 0}}, resp.Daily[1])
	assert.Equal(t, DailyCount{Date: "2025-07-11", Total: 0, ByContent: map[string]int{"c1": 0, "c2": 0}}, resp.Daily[2])
}

func TestGetAnalyticsDailySeriesStackedByContent(t *testing.T) {
	reservations := []*domain.Reservation{
		reservation("r1", "c1", domain.SourceWeb),
		reservation("r2", "c2", domain.SourceWeb),
		reservation("r3", "goneA", domain.SourceAdmin),
		reservation("r4", "goneB", domain.SourceAdmin),
	}
	uc := NewUseCase(
		&fakeScheduleRepo{doc: testDocument()},
		&fakeReservationRepo{reservations: reservations},
		&fakeEventRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID: "shibuya", StartDate: "2025-07-10", EndDate: "2025-07-11",
	})
	require.NoError(t, err)

	require.Len(t, resp.Daily, 2)
	day := resp.Daily[0]
	assert.Equal(t, "2025-07-10", day.Date)
	assert.Equal(t, 4, day.Total)
	// Both removed courses share the one unknown key.
	assert.Equal(t, map[string]int{"c1": 1, "c2": 1, "unknown": 2}, day.ByContent)
	assert.Equal(t, map[string]int{"c1": 0, "c2": 0, "unknown": 0}, resp.Daily[1].ByContent)
}

func TestGetAnalyticsByContentCapacityAndBuckets(t *testing.T) {
	reservations := []*domain.Reservation{
		reservation("r1", "c1", domain.SourceWeb),
		reservation("r2", "goneA", domain.SourceAdmin),
		reservation("r3", "goneB", domain.SourceAdmin),
	}
	uc := NewUseCase(
		&fakeScheduleRepo{doc: testDocument()},
		&fakeReservationRepo{reservations: reservations},
		&fakeEventRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID: "shibuya", StartDate: "2025-07-01", EndDate: "2025-07-31",
	})
	require.NoError(t, err)

	byID := make(map[string]ContentCount)
	for _, row := range resp.ByContent {
		byID[row.ContentID] = row
	}
	require.Len(t, resp.ByContent, 3)

	// In-range scheduled capacity per course; the August slot is excluded.
	assert.Equal(t, ContentCount{ContentID: "c1", CourseName: "Robotics", Bookings: 1, Capacity: 6}, byID["c1"])
	// c2 has no bookings but scheduled capacity, so the row stays.
	assert.Equal(t, ContentCount{ContentID: "c2", CourseName: "Science Day", Bookings: 0, Capacity: 4}, byID["c2"])
	// Removed courses merge into one unknown row.
	assert.Equal(t, ContentCount{ContentID: "unknown", CourseName: "Unknown", Bookings: 2, Capacity: 0}, byID["unknown"])
}

func TestGetAnalyticsByContentOmitsIdleContent(t *testing.T) {
	doc := testDocument()
	doc.Contents = append(doc.Contents, domain.ContentItem{ID: "c3", Name: "Idle Course", Category: domain.CategoryEvent, Price: 1000})
	uc := NewUseCase(
		&fakeScheduleRepo{doc: doc},
		&fakeReservationRepo{reservations: []*domain.Reservation{reservation("r1", "c1", domain.SourceWeb)}},
		&fakeEventRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID: "shibuya", StartDate: "2025-07-01", EndDate: "2025-07-31",
	})
	require.NoError(t, err)

	for _, row := range resp.ByContent {
		assert.NotEqual(t, "c3", row.ContentID)
		assert.NotEqual(t, "unknown", row.ContentID)
	}
}

func TestGetAnalyticsFunnel(t *testing.T) {
	uc := NewUseCase(
		&fakeScheduleRepo{doc: testDocument()},
		&fakeReservationRepo{},
		&fakeEventRepo{counts: map[domain.EventKind]int{
			domain.EventPageView:   100,
			domain.EventDateClick:  25,
			domain.EventConversion: 7,
		}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID: "shibuya", StartDate: "2025-07-01", EndDate: "2025-07-31",
	})
	require.NoError(t, err)

	require.Len(t, resp.Funnel, len(domain.FunnelStages))
	assert.Equal(t, FunnelStage{Stage: "page_view", Count: 100, CVR: "100.00%"}, resp.Funnel[0])

	byStage := make(map[string]FunnelStage)
	for _, stage := range resp.Funnel {
		byStage[stage.Stage] = stage
	}
	assert.Equal(t, "25.00%", byStage["date_click"].CVR)
	assert.Equal(t, "7.00%", byStage["conversion"].CVR)
	assert.Equal(t, "0.00%", byStage["form_input"].CVR)
}

func TestGetAnalyticsFunnelNoTraffic(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{doc: testDocument()}, &fakeReservationRepo{}, &fakeEventRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID: "shibuya", StartDate: "2025-07-01", EndDate: "2025-07-31",
	})
	require.NoError(t, err)

	for _, stage := range resp.Funnel {
		assert.Equal(t, "0.00%", stage.CVR)
		assert.Zero(t, stage.Count)
	}
}

func TestGetAnalyticsValidation(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{doc: testDocument()}, &fakeReservationRepo{}, &fakeEventRepo{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{"missing venue", &Request{StartDate: "2025-07-01", EndDate: "2025-07-31"}, ErrInvalidInput},
		{"bad start", &Request{VenueID: "shibuya", StartDate: "bad", EndDate: "2025-07-31"}, ErrInvalidInput},
		{"reversed range", &Request{VenueID: "shibuya", StartDate: "2025-07-31", EndDate: "2025-07-01"}, ErrInvalidInput},
		{"unknown dateField", &Request{VenueID: "shibuya", StartDate: "2025-07-01", EndDate: "2025-07-31", DateField: "updated"}, ErrInvalidInput},
		{"unknown venue", &Request{VenueID: "ghost", StartDate: "2025-07-01", EndDate: "2025-07-31"}, ErrVenueNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
