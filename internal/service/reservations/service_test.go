package reservations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	reservationRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/reservation"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	"github.com/nishigaki-sys/school-booking-v2/internal/service/reservations/models"
)

type fakeReservationRepo struct {
	byID   map[string]*domain.Reservation
	counts map[domain.SlotKey]int

	created *domain.Reservation
	updated *reservationRepo.UpdateFields
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.created = res
	return res, nil
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, id string, fields reservationRepo.UpdateFields) (*domain.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	f.updated = &fields
	if fields.ChildName != nil {
		res.ChildName = *fields.ChildName
	}
	if fields.MoveTo != nil {
		res.Date = fields.MoveTo.Date
		res.StartTime = fields.MoveTo.StartTime
		res.ContentID = fields.MoveTo.ContentID
		res.CourseName = fields.MoveTo.CourseName
	}
	return res, nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeReservationRepo) List(_ context.Context, _ domain.ReservationFilter) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range f.byID {
		out = append(out, res)
	}
	return out, nil
}

func (f *fakeReservationRepo) CountByKey(_ context.Context, key domain.SlotKey) (int, error) {
	return f.counts[key], nil
}

type fakeScheduleRepo struct {
	doc *domain.ScheduleDocument
}

func (f *fakeScheduleRepo) Get(_ context.Context, venueID string) (*domain.ScheduleDocument, error) {
	if f.doc == nil || f.doc.VenueID != venueID {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.doc, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
				{ID: "s1", ContentID: "c1", StartTime: "10:00", EndTime: "11:00", Capacity: 2, Grades: []domain.Grade{domain.GradeLower}},
			},
			"2025-07-12": {
				{ID: "s2", ContentID: "c2", StartTime: "14:00", EndTime: "15:00", Capacity: 5, Grades: []domain.Grade{domain.GradeUpper}},
			},
		},
	}
}

func createRequest() *models.CreateReservationRequest {
	return &models.CreateReservationRequest{
		VenueID:      "shibuya",
		Date:         "2025-07-10",
		StartTime:    "10:00",
		ContentID:    "c1",
		ChildName:    "Taro",
		GuardianName: "Hanako",
		Email:        "hanako@example.com",
		Grade:        "grade1_2",
		Source:       "web",
	}
}

func TestCreateReservation(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[string]*domain.Reservation{}}
	svc := NewService(repo, &fakeScheduleRepo{doc: testDocument()}, fakeTxManager{}, nopLogger{})

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Shibuya School", resp.VenueName)
	assert.Equal(t, "Robotics", resp.CourseName)
	assert.Equal(t, "web", resp.Source)
	require.NotNil(t, repo.created)
	assert.Equal(t, resp.ID, repo.created.ID)
}

func TestCreateReservationOverCapacityAccepted(t *testing.T) {
	repo := &fakeReservationRepo{
		byID: map[string]*domain.Reservation{},
		counts: map[domain.SlotKey]int{
			{VenueID: "shibuya", Date: "2025-07-10", StartTime: "10:00", ContentID: "c1"}: 2,
		},
	}
	svc := NewService(repo, &fakeScheduleRepo{doc: testDocument()}, fakeTxManager{}, nopLogger{})

	_, err := svc.Create(context.Background(), createRequest())
	assert.NoError(t, err)
	assert.NotNil(t, repo.created)
}

func TestCreateReservationSlotNotFound(t *testing.T) {
	svc := NewService(&fakeReservationRepo{}, &fakeScheduleRepo{doc: testDocument()}, fakeTxManager{}, nopLogger{})

	req := createRequest()
	req.StartTime = "23:00"

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCreateReservationInvalid(t *testing.T) {
	svc := NewService(&fakeReservationRepo{}, &fakeScheduleRepo{doc: testDocument()}, fakeTxManager{}, nopLogger{})

	req := createRequest()
	req.Grade = "grade99"

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateReservationMove(t *testing.T) {
	current := &domain.Reservation{
		ID: "r1", VenueID: "shibuya", Date: "2025-07-10", StartTime: "10:00",
		ContentID: "c1", CourseName: "Robotics", ChildName: "Taro",
	}
	repo := &fakeReservationRepo{byID: map[string]*domain.Reservation{"r1": current}}
	svc := NewService(repo, &fakeScheduleRepo{doc: testDocument()}, fakeTxManager{}, nopLogger{})

	resp, err := svc.Update(context.Background(), "r1", &models.UpdateReservationRequest{
		MoveTo: &models.SlotRef{Date: "2025-07-12", StartTime: "14:00", ContentID: "c2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-07-12", resp.Date)
	// The course-name snapshot follows the move.
	assert.Equal(t, "Science Day", resp.CourseName)
	require.NotNil(t, repo.updated)
	require.NotNil(t, repo.updated.MoveTo)
}

func TestUpdateReservationMoveToMissingSlot(t *testing.T) {
	current := &domain.Reservation{ID: "r1", VenueID: "shibuya", Date: "2025-07-10", StartTime: "10:00", ContentID: "c1"}
	repo := &fakeReservationRepo{byID: map[string]*domain.Reservation{"r1": current}}
	svc := NewService(repo, &fakeScheduleRepo{doc: testDocument()}, fakeTxManager{}, nopLogger{})

	_, err := svc.Update(context.Background(), "r1", &models.UpdateReservationRequest{
		MoveTo: &models.SlotRef{Date: "2025-07-12", StartTime: "09:00", ContentID: "c2"},
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.Nil(t, repo.updated)
}

func TestUpdateReservationNotFound(t *testing.T) {
	svc := NewService(&fakeReservationRepo{}, &fakeScheduleRepo{doc: testDocument()}, fakeTxManager{}, nopLogger{})

	_, err := svc.Update(context.Background(), "ghost", &models.UpdateReservationRequest{})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestDeleteReservation(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[string]*domain.Reservation{"r1": {ID: "r1"}}}
	svc := NewService(repo, &fakeScheduleRepo{doc: testDocument()}, fakeTxManager{}, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), "r1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "r1"), ErrReservationNotFound)
}

func TestAvailabilityClampsRemaining(t *testing.T) {
	repo := &fakeReservationRepo{counts: map[domain.SlotKey]int{
		{VenueID: "shibuya", Date: "2025-07-10", StartTime: "10:00", ContentID: "c1"}: 6,
	}}
	svc := NewService(repo, &fakeScheduleRepo{doc: testDocument()}, fakeTxManager{}, nopLogger{})

	slot := domain.Slot{ID: "s1", ContentID: "c1", StartTime: "10:00", EndTime: "11:00", Capacity: 5, Grades: []domain.Grade{domain.GradeLower}}
	resp, err := svc.Availability(context.Background(), "shibuya", "2025-07-10", slot)
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Capacity)
	assert.Equal(t, 6, resp.Booked)
	assert.Equal(t, 0, resp.Remaining)
}
