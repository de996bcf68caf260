package build_campaign_url

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
)

type fakeScheduleRepo struct {
	venueID string
}

func (f *fakeScheduleRepo) Get(_ context.Context, venueID string) (*domain.ScheduleDocument, error) {
	if venueID != f.venueID {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return &domain.ScheduleDocument{VenueID: venueID}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestBuildCampaignURL(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{venueID: "shibuya"}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BaseURL:  "https://booking.example.com",
		VenueID:  "shibuya",
		Source:   "instagram",
		Medium:   "social",
		Campaign: "summer2025",
	})
	require.NoError(t, err)
	assert.Equal(t,
		"https://booking.example.com/venues/shibuya?utm_campaign=summer2025&utm_medium=social&utm_source=instagram",
		resp.URL)
}

func TestBuildCampaignURLSourceOnly(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{venueID: "shibuya"}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BaseURL: "https://booking.example.com/",
		VenueID: "shibuya",
		Source:  "flyer",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://booking.example.com/venues/shibuya?utm_source=flyer", resp.URL)
}

func TestBuildCampaignURLErrors(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{venueID: "shibuya"}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{"missing source", &Request{BaseURL: "https://x.example.com", VenueID: "shibuya"}, ErrInvalidInput},
		{"relative base", &Request{BaseURL: "/booking", VenueID: "shibuya", Source: "flyer"}, ErrInvalidInput},
		{"unknown venue", &Request{BaseURL: "https://x.example.com", VenueID: "ghost", Source: "flyer"}, ErrVenueNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
