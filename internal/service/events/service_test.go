package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
)

type fakeEventRepo struct {
	appended []domain.EventKind
	counts   map[domain.EventKind]int
}

func (f *fakeEventRepo) Append(_ context.Context, venueID string, kind domain.EventKind) (*domain.AccessEvent, error) {
	f.appended = append(f.appended, kind)
	return &domain.AccessEvent{ID: int64(len(f.appended)), VenueID: venueID, Kind: kind, CreatedAt: time.Now()}, nil
}

func (f *fakeEventRepo) CountByKind(context.Context, string, time.Time, time.Time) (map[domain.EventKind]int, error) {
	return f.counts, nil
}

type fakeScheduleRepo struct {
	venueID string
}

func (f *fakeScheduleRepo) Get(_ context.Context, venueID string) (*domain.ScheduleDocument, error) {
	if venueID != f.venueID {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return domain.NewScheduleDocument(venueID, "Shibuya School"), nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestRecord(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewService(repo, &fakeScheduleRepo{venueID: "shibuya"}, nopLogger{})

	err := svc.Record(context.Background(), "shibuya", domain.EventPageView)

	require.NoError(t, err)
	assert.Equal(t, []domain.EventKind{domain.EventPageView}, repo.appended)
}

func TestRecord_UnknownKind(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewService(repo, &fakeScheduleRepo{venueID: "shibuya"}, nopLogger{})

	err := svc.Record(context.Background(), "shibuya", domain.EventKind("scroll"))

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.appended)
}

func TestRecord_VenueNotFound(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewService(repo, &fakeScheduleRepo{venueID: "shibuya"}, nopLogger{})

	err := svc.Record(context.Background(), "nowhere", domain.EventPageView)

	assert.ErrorIs(t, err, ErrVenueNotFound)
	assert.Empty(t, repo.appended)
}

func TestFunnelCounts_ZeroFillsEveryStage(t *testing.T) {
	repo := &fakeEventRepo{counts: map[domain.EventKind]int{
		domain.EventPageView:   40,
		domain.EventConversion: 3,
	}}
	svc := NewService(repo, &fakeScheduleRepo{venueID: "shibuya"}, nopLogger{})

	counts, err := svc.FunnelCounts(context.Background(), "shibuya", time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.Len(t, counts, len(domain.FunnelStages))
	assert.Equal(t, 40, counts[domain.EventPageView])
	assert.Equal(t, 3, counts[domain.EventConversion])
	assert.Equal(t, 0, counts[domain.EventDateClick])
	assert.Equal(t, 0, counts[domain.EventFormInput])
}
