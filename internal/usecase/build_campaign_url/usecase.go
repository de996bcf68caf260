package build_campaign_url

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
)

var (
	// ErrVenueNotFound is returned when the venue has no schedule document.
	ErrVenueNotFound = errors.New("build_campaign_url: venue not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("build_campaign_url: invalid input data")

	// ErrInternal is returned for internal errors.
	ErrInternal = errors.New("build_campaign_url: internal error")
)

// ScheduleRepository verifies the venue before building its URL.
type ScheduleRepository interface {
	Get(ctx context.Context, venueID string) (*domain.ScheduleDocument, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Request describes the campaign link to build. BaseURL is the public site
// origin, e.g. "https://booking.example.com".
type Request struct {
	BaseURL  string
	VenueID  string
	Source   string
	Medium   string
	Campaign string
}

// Response carries the tagged public page URL.
type Response struct {
	URL string `json:"url"`
}

// UseCase builds tagged links to a venue's public booking page. Bookings
// arriving through the link carry the UTM tags into the acquisition report.
type UseCase struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

func NewUseCase(scheduleRepo ScheduleRepository, logger Logger) *UseCase {
	return &UseCase{scheduleRepo: scheduleRepo, logger: logger}
}

// Execute validates the venue and composes the URL.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BuildCampaignURL: venue=%s source=%s medium=%s campaign=%s",
		req.VenueID, req.Source, req.Medium, req.Campaign)

	if req.VenueID == "" || strings.TrimSpace(req.Source) == "" {
		uc.logger.Warn("BuildCampaignURL: missing venue or source")
		return nil, fmt.Errorf("%w: venueId and source are required", ErrInvalidInput)
	}
	base, err := url.Parse(req.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		uc.logger.Warn("BuildCampaignURL: invalid base url %q", req.BaseURL)
		return nil, fmt.Errorf("%w: baseUrl must be absolute", ErrInvalidInput)
	}

	if _, err := uc.scheduleRepo.Get(ctx, req.VenueID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("BuildCampaignURL: venue=%s not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("BuildCampaignURL: load schedule for venue=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: load schedule: %v", ErrInternal, err)
	}

	base.Path = strings.TrimRight(base.Path, "/") + "/venues/" + url.PathEscape(req.VenueID)

	query := base.Query()
	query.Set("utm_source", strings.TrimSpace(req.Source))
	if medium := strings.TrimSpace(req.Medium); medium != "" {
		query.Set("utm_medium", medium)
	}
	if campaign := strings.TrimSpace(req.Campaign); campaign != "" {
		query.Set("utm_campaign", campaign)
	}
	base.RawQuery = query.Encode()

	return &Response{URL: base.String()}, nil
}
