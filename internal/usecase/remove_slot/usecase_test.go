package remove_slot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

type fakeScheduleRepo struct {
	doc    *domain.ScheduleDocument
	merged map[types.DateString][]domain.Slot
}

func (f *fakeScheduleRepo) Get(_ context.Context, venueID string) (*domain.ScheduleDocument, error) {
	if f.doc == nil || f.doc.VenueID != venueID {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.doc, nil
}

func (f *fakeScheduleRepo) MergeDate(_ context.Context, _ string, date types.DateString, slots []domain.Slot) error {
	if f.merged == nil {
		f.merged = make(map[types.DateString][]domain.Slot)
	}
	f.merged[date] = slots
	return nil
}

type fakeReservationRepo struct {
	counts map[domain.SlotKey]int
}

func (f *fakeReservationRepo) CountByKey(_ context.Context, key domain.SlotKey) (int, error) {
	return f.counts[key], nil
}

type fakeTxManager struct{}

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
		Schedule: domain.Schedule{
			"2025-07-10": {
				{ID: "s1", ContentID: "c1", StartTime: "10:00", EndTime: "11:00", Capacity: 5, Grades: []domain.Grade{domain.GradeLower}},
				{ID: "s2", ContentID: "c1", StartTime: "13:00", EndTime: "14:00", Capacity: 5, Grades: []domain.Grade{domain.GradeUpper}},
			},
		},
	}
}

func TestRemoveSlot(t *testing.T) {
	repo := &fakeScheduleRepo{doc: testDocument()}
	uc := NewUseCase(repo, &fakeReservationRepo{}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: "shibuya", Date: "2025-07-10", SlotID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, "s1", resp.Slot.ID)
	require.Len(t, repo.merged["2025-07-10"], 1)
	assert.Equal(t, "s2", repo.merged["2025-07-10"][0].ID)
}

func TestRemoveSlotBlockedByReservations(t *testing.T) {
	doc := testDocument()
	reservations := &fakeReservationRepo{counts: map[domain.SlotKey]int{
		{VenueID: "shibuya", Date: "2025-07-10", StartTime: "10:00", ContentID: "c1"}: 2,
	}}
	repo := &fakeScheduleRepo{doc: doc}
	uc := NewUseCase(repo, reservations, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: "shibuya", Date: "2025-07-10", SlotID: "s1"})
	assert.ErrorIs(t, err, ErrSlotHasReservations)
	assert.Nil(t, repo.merged)
	assert.Len(t, doc.Schedule["2025-07-10"], 2)
}

func TestRemoveSlotNotFound(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{doc: testDocument()}, &fakeReservationRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: "shibuya", Date: "2025-07-10", SlotID: "missing"})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRemoveSlotVenueNotFound(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{}, &fakeReservationRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: "ghost", Date: "2025-07-10", SlotID: "s1"})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestRemoveSlotLastSlotClearsDate(t *testing.T) {
	doc := testDocument()
	doc.Schedule["2025-07-10"] = doc.Schedule["2025-07-10"][:1]
	repo := &fakeScheduleRepo{doc: doc}
	uc := NewUseCase(repo, &fakeReservationRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: "shibuya", Date: "2025-07-10", SlotID: "s1"})
	require.NoError(t, err)
	assert.Empty(t, repo.merged["2025-07-10"])
	assert.NotContains(t, doc.Schedule, types.DateString("2025-07-10"))
}
