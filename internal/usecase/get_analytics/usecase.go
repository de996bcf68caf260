package get_analytics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	"github.com/nishigaki-sys/school-booking-v2/pkg/ptr"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

// Bookings and slots whose course was later removed from the venue catalog
// merge into one bucket keyed unknownContentID.
const (
	unknownContentID    = "unknown"
	unknownContentLabel = "Unknown"
)

// UseCase builds the per-venue analytics report: booking volumes, capacity
// utilization, course and acquisition breakdowns and the visitor funnel.
type UseCase struct {
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	eventRepo       AccessEventRepository
	logger          Logger
}

func NewUseCase(
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	eventRepo AccessEventRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		eventRepo:       eventRepo,
		logger:          logger,
	}
}

// Execute computes the report for one venue and period.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAnalytics: venue=%s period=%s..%s dateField=%s",
		req.VenueID, req.StartDate, req.EndDate, req.DateField)

	start, end, mode, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAnalytics: validation failed: %v", err)
		return nil, err
	}

	doc, err := uc.scheduleRepo.Get(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("GetAnalytics: venue=%s not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAnalytics: load schedule for venue=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: load schedule: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		VenueID:   ptr.Ptr(req.VenueID),
		StartDate: &start,
		EndDate:   &end,
		DateField: mode,
	})
	if err != nil {
		uc.logger.Error("GetAnalytics: list reservations for venue=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
	}

	funnelCounts, err := uc.eventRepo.CountByKind(ctx, req.VenueID, localMidnight(start), localMidnight(end.AddDays(1)))
	if err != nil {
		uc.logger.Error("GetAnalytics: count events for venue=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: count events: %v", ErrInternal, err)
	}

	capacity := capacityInRange(doc.Schedule, start, end)
	funnel := buildFunnel(funnelCounts)

	resp := &Response{
		VenueID:     req.VenueID,
		VenueName:   doc.VenueName,
		StartDate:   string(start),
		EndDate:     string(end),
		DateField:   string(mode),
		Summary:     buildSummary(reservations, doc.Contents, capacity, funnelCounts),
		Daily:       buildDaily(reservations, doc.Contents, start, end, mode),
		ByContent:   buildByContent(reservations, doc.Contents, doc.Schedule, start, end),
		Acquisition: buildAcquisition(reservations),
		Funnel:      funnel,
	}
	return resp, nil
}

func validateRequest(req *Request) (types.DateString, types.DateString, domain.DateFieldMode, error) {
	if req.VenueID == "" {
		return "", "", "", fmt.Errorf("%w: venueId is required", ErrInvalidInput)
	}
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

// capacityInRange sums the capacity of every slot scheduled in the period.
func capacityInRange(schedule domain.Schedule, start, end types.DateString) int {
	total := 0
	for date, slots := range schedule {
		if !date.InRange(start, end) {
			continue
		}
		for _, slot := range slots {
			total += slot.Capacity
		}
	}
	return total
}

// buildSummary computes the headline numbers. Utilization is bookings over
// capacity rounded to whole percent, zero when no capacity is scheduled.
// Sales sum the catalog price per booking; bookings whose course left the
// catalog contribute nothing.
func buildSummary(reservations []*domain.Reservation, catalog []domain.ContentItem, capacity int, funnel map[domain.EventKind]int) Summary {
	web, sales := 0, 0
	for _, r := range reservations {
		if r.SourceType == domain.SourceWeb {
			web++
		}
		if content, ok := domain.FindContent(catalog, r.ContentID); ok {
			sales += content.Price
		}
	}

	utilization := 0
	if capacity > 0 {
		utilization = int(math.Round(float64(len(reservations)) / float64(capacity) * 100))
	}

	return Summary{
		TotalBookings:  len(reservations),
		WebBookings:    web,
		AdminBookings:  len(reservations) - web,
		TotalCapacity:  capacity,
		UtilizationPct: utilization,
		PageViews:      funnel[domain.EventPageView],
		SalesTotal:     sales,
	}
}

// contentBucket maps a booking or slot to its breakdown key: the content id
// while the course is still in the catalog, the unknown bucket otherwise.
func contentBucket(catalog []domain.ContentItem, contentID string) string {
	if _, ok := domain.FindContent(catalog, contentID); ok {
		return contentID
	}
	return unknownContentID
}

// buildDaily produces the zero-filled per-day series over the whole period,
// stacked by content. Every catalog content keys every day; the unknown
// bucket appears only when a removed course was actually booked.
func buildDaily(reservations []*domain.Reservation, catalog []domain.ContentItem, start, end types.DateString, mode domain.DateFieldMode) []DailyCount {
	buckets := make([]string, 0, len(catalog)+1)
	for _, c := range catalog {
		buckets = append(buckets, c.ID)
	}

	counts := make(map[types.DateString]map[string]int)
	hasUnknown := false
	for _, r := range reservations {
		bucket := contentBucket(catalog, r.ContentID)
		if bucket == unknownContentID {
			hasUnknown = true
		}
		date := mode.EffectiveDate(r)
		if counts[date] == nil {
			counts[date] = make(map[string]int)
		}
		counts[date][bucket]++
	}
	if hasUnknown {
		buckets = append(buckets, unknownContentID)
	}

	var daily []DailyCount
	types.EachDate(start, end, func(date types.DateString) {
		byContent := make(map[string]int, len(buckets))
		total := 0
		for _, b := range buckets {
			n := counts[date][b]
			byContent[b] = n
			total += n
		}
		daily = append(daily, DailyCount{Date: string(date), Total: total, ByContent: byContent})
	})
	return daily
}

// buildByContent accumulates bookings and in-range scheduled capacity per
// catalog content plus one merged unknown bucket for removed courses.
func buildByContent(reservations []*domain.Reservation, catalog []domain.ContentItem, schedule domain.Schedule, start, end types.DateString) []ContentCount {
	type bucket struct {
		name     string
		bookings int
		capacity int
	}
	buckets := make(map[string]*bucket, len(catalog)+1)
	order := make([]string, 0, len(catalog)+1)
	for _, c := range catalog {
		buckets[c.ID] = &bucket{name: c.Name}
		order = append(order, c.ID)
	}
	buckets[unknownContentID] = &bucket{name: unknownContentLabel}
	order = append(order, unknownContentID)

	resolve := func(contentID string) *bucket {
		if b, ok := buckets[contentID]; ok {
			return b
		}
		return buckets[unknownContentID]
	}

	for date, slots := range schedule {
		if !date.InRange(start, end) {
			continue
		}
		for _, slot := range slots {
			resolve(slot.ContentID).capacity += slot.Capacity
		}
	}
	for _, r := range reservations {
		resolve(r.ContentID).bookings++
	}

	rows := make([]ContentCount, 0, len(order))
	for _, id := range order {
		b := buckets[id]
		if b.bookings == 0 && b.capacity == 0 {
			continue
		}
		rows = append(rows, ContentCount{ContentID: id, CourseName: b.name, Bookings: b.bookings, Capacity: b.capacity})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Bookings != rows[j].Bookings {
			return rows[i].Bookings > rows[j].Bookings
		}
		return rows[i].CourseName < rows[j].CourseName
	})
	return rows
}

func buildAcquisition(reservations []*domain.Reservation) []AcquisitionCount {
	counts := make(map[string]int)
	for _, r := range reservations {
		counts[r.AcquisitionLabel()]++
	}

	rows := make([]AcquisitionCount, 0, len(counts))
	for label, count := range counts {
		rows = append(rows, AcquisitionCount{Label: label, Count: count})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// buildFunnel renders every stage in order with its conversion rate against
// the first stage.
func buildFunnel(counts map[domain.EventKind]int) []FunnelStage {
	base := counts[domain.FunnelStages[0]]

	stages := make([]FunnelStage, 0, len(domain.FunnelStages))
	for _, stage := range domain.FunnelStages {
		count := counts[stage]
		cvr := 0.0
		if base > 0 {
			cvr = float64(count) / float64(base) * 100
		}
		stages = append(stages, FunnelStage{
			Stage: string(stage),
			Count: count,
			CVR:   fmt.Sprintf("%.2f%%", cvr),
		})
	}
	return stages
}

func localMidnight(d types.DateString) time.Time {
	t := d.Time()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
