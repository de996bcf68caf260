package get_global_analytics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

const defaultRecentLimit = 10

// UseCase builds the cross-venue dashboard rollup: every venue's booking
// and capacity numbers for the period plus a recent bookings feed. Venues
// with zero activity stay in the list so a silent venue is visible.
type UseCase struct {
	venueRepo       VenueRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	eventRepo       AccessEventRepository
	logger          Logger
}

func NewUseCase(
	venueRepo VenueRepository,
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	eventRepo AccessEventRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:       venueRepo,
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		eventRepo:       eventRepo,
		logger:          logger,
	}
}

// Execute computes the rollup for the period.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetGlobalAnalytics: period=%s..%s dateField=%s", req.StartDate, req.EndDate, req.DateField)

	start, end, mode, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetGlobalAnalytics: validation failed: %v", err)
		return nil, err
	}

	venues, err := uc.venueRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GetGlobalAnalytics: list venues: %v", err)
		return nil, fmt.Errorf("%w: list venues: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		StartDate: &start,
		EndDate:   &end,
		DateField: mode,
	})
	if err != nil {
		uc.logger.Error("GetGlobalAnalytics: list reservations: %v", err)
		return nil, fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
	}

	pageViews, err := uc.eventRepo.CountTotal(ctx, domain.EventPageView)
	if err != nil {
		uc.logger.Error("GetGlobalAnalytics: count page views: %v", err)
		return nil, fmt.Errorf("%w: count page views: %v", ErrInternal, err)
	}

	bookings := make(map[string]int, len(venues))
	webBookings := make(map[string]int, len(venues))
	for _, r := range reservations {
		bookings[r.VenueID]++
		if r.SourceType == domain.SourceWeb {
			webBookings[r.VenueID]++
		}
	}

	stats := make([]VenueStats, 0, len(venues))
	for _, v := range venues {
		capacity, err := uc.venueCapacity(ctx, v.ID, start, end)
		if err != nil {
			return nil, err
		}

		utilization := 0
		if capacity > 0 {
			utilization = int(math.Round(float64(bookings[v.ID]) / float64(capacity) * 100))
		}

		stats = append(stats, VenueStats{
			VenueID:        v.ID,
			VenueName:      v.Name,
			Bookings:       bookings[v.ID],
			WebBookings:    webBookings[v.ID],
			Capacity:       capacity,
			UtilizationPct: utilization,
			PageViews:      pageViews[v.ID],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Bookings != stats[j].Bookings {
			return stats[i].Bookings > stats[j].Bookings
		}
		return stats[i].VenueName < stats[j].VenueName
	})

	recent, err := uc.recentBookings(ctx, req.Recent)
	if err != nil {
		return nil, err
	}

	return &Response{
		StartDate:     string(start),
		EndDate:       string(end),
		DateField:     string(mode),
		TotalBookings: len(reservations),
		Daily:         buildDaily(venues, reservations, start, end, mode),
		Venues:        stats,
		Recent:        recent,
	}, nil
}

// buildDaily produces the zero-filled per-day series over the whole period,
// stacked by venue id.
func buildDaily(venues []*domain.Venue, reservations []*domain.Reservation, start, end types.DateString, mode domain.DateFieldMode) []DailyVenueCount {
	counts := make(map[types.DateString]map[string]int)
	for _, r := range reservations {
		date := mode.EffectiveDate(r)
		if counts[date] == nil {
			counts[date] = make(map[string]int)
		}
		counts[date][r.VenueID]++
	}

	var daily []DailyVenueCount
	types.EachDate(start, end, func(date types.DateString) {
		byVenue := make(map[string]int, len(venues))
		total := 0
		for _, v := range venues {
			n := counts[date][v.ID]
			byVenue[v.ID] = n
			total += n
		}
		daily = append(daily, DailyVenueCount{Date: string(date), Total: total, ByVenue: byVenue})
	})
	return daily
}

func validateRequest(req *Request) (types.DateString, types.DateString, domain.DateFieldMode, error) {
	start, err := types.NewDateStringFromString(req.StartDate)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: startDate: %v", ErrInvalidInput, err)
	}
	end, err := types.NewDateStringFromString(req.EndDate)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: endDate: %v", ErrInvalidInput, err)
	}
	if end.Before(start) {
		return "", "", "", fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	mode := domain.DateFieldMode(req.DateField)
	if req.DateField == "" {
		mode = domain.DateFieldEvent
	}
	if !mode.Valid() {
		return "", "", "", fmt.Errorf("%w: unknown dateField %q", ErrInvalidInput, req.DateField)
	}
	return start, end, mode, nil
}

// venueCapacity sums scheduled capacity in the period. A venue without a
// schedule document counts as zero capacity rather than failing the rollup.
func (uc *UseCase) venueCapacity(ctx context.Context, venueID string, start, end types.DateString) (int, error) {
	doc, err := uc.scheduleRepo.Get(ctx, venueID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return 0, nil
		}
		uc.logger.Error("GetGlobalAnalytics: load schedule for venue=%s: %v", venueID, err)
		return 0, fmt.Errorf("%w: load schedule: %v", ErrInternal, err)
	}

	total := 0
	for date, slots := range doc.Schedule {
		if !date.InRange(start, end) {
			continue
		}
		for _, slot := range slots {
			total += slot.Capacity
		}
	}
	return total, nil
}

func (uc *UseCase) recentBookings(ctx context.Context, limit int) ([]RecentBooking, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	list, err := uc.reservationRepo.ListRecent(ctx, limit)
	if err != nil {
		uc.logger.Error("GetGlobalAnalytics: list recent bookings: %v", err)
		return nil, fmt.Errorf("%w: list recent bookings: %v", ErrInternal, err)
	}

	recent := make([]RecentBooking, 0, len(list))
	for _, r := range list {
		recent = append(recent, RecentBooking{
			ID:         r.ID,
			VenueID:    r.VenueID,
			VenueName:  r.VenueName,
			Date:       string(r.Date),
			StartTime:  string(r.StartTime),
			CourseName: r.CourseName,
			ChildName:  r.ChildName,
			Source:     string(r.SourceType),
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		})
	}
	return recent, nil
}
