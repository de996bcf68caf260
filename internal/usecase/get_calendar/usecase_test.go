package get_calendar

import (
	"context"
	"testing"

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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDocument() *domain.ScheduleDocument {
	return &domain.ScheduleDocument{
		VenueID:   "shibuya",
		VenueName: "Shibuya School",
		Contents:  []domain.ContentItem{{ID: "c1", Name: "Robotics", Category: domain.CategoryExperience, Price: 5000}},
		Schedule: domain.Schedule{
			"2025-07-20": {
				{ID: "s1", ContentID: "c1", StartTime: "10:00", EndTime: "11:00", Capacity: 5, Grades: []domain.Grade{domain.GradeLower}},
			},
			"2025-07-05": {
				{ID: "s2", ContentID: "c1", StartTime: "13:00", EndTime: "14:00", Capacity: 3, Grades: []domain.Grade{domain.GradePreschool, domain.GradeUpper}},
			},
			// Another month, must not appear.
			"2025-08-02": {
				{ID: "s3", ContentID: "c1", StartTime: "10:00", EndTime: "11:00", Capacity: 5, Grades: []domain.Grade{domain.GradeLower}},
			},
		},
	}
}

func webReservation(id string) *domain.Reservation {
	return &domain.Reservation{
		ID: id, VenueID: "shibuya", Date: "2025-07-20", StartTime: "10:00",
		ContentID: "c1", SourceType: domain.SourceWeb,
	}
}

func TestGetCalendarMonth(t *testing.T) {
	uc := NewUseCase(
		&fakeScheduleRepo{doc: testDocument()},
		&fakeReservationRepo{reservations: []*domain.Reservation{webReservation("r1"), webReservation("r2")}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: "shibuya", Month: "2025-07"})
	require.NoError(t, err)

	assert.Equal(t, "Shibuya School", resp.VenueName)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "2025-07-05", resp.Days[0].Date)
	assert.Equal(t, "2025-07-20", resp.Days[1].Date)

	slot := resp.Days[1].Slots[0]
	assert.Equal(t, "Robotics", slot.CourseName)
	assert.Equal(t, 2, slot.Booked)
	assert.Equal(t, 3, slot.Remaining)
}

func TestGetCalendarRemainingClampedAtZero(t *testing.T) {
	var overbooked []*domain.Reservation
	for i := 0; i < 7; i++ {
		overbooked = append(overbooked, webReservation("r"))
	}
	uc := NewUseCase(&fakeScheduleRepo{doc: testDocument()}, &fakeReservationRepo{reservations: overbooked}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: "shibuya", Month: "2025-07"})
	require.NoError(t, err)

	slot := resp.Days[1].Slots[0]
	assert.Equal(t, 7, slot.Booked)
	assert.Equal(t, 0, slot.Remaining)
}

func TestGetCalendarGradeColor(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{doc: testDocument()}, &fakeReservationRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: "shibuya", Month: "2025-07"})
	require.NoError(t, err)

	// Preschool wins when several grades are eligible.
	assert.Equal(t, string(domain.ColorForGrades([]domain.Grade{domain.GradePreschool})), resp.Days[0].Slots[0].Color)
}

func TestGetCalendarValidation(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{doc: testDocument()}, &fakeReservationRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: "shibuya", Month: "July 2025"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Month: "2025-07"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{VenueID: "ghost", Month: "2025-07"})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
