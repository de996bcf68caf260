package get_calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	"github.com/nishigaki-sys/school-booking-v2/pkg/ptr"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

const monthFormat = "2006-01"

// UseCase renders one month of a venue's public booking calendar: every
// scheduled slot with its remaining capacity and grade badge color.
type UseCase struct {
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	logger          Logger
}

func NewUseCase(scheduleRepo ScheduleRepository, reservationRepo ReservationRepository, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Execute builds the month view. Booked counts come from a single range
// query over the month's reservations rather than per-slot lookups.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: venue=%s month=%s", req.VenueID, req.Month)

	if req.VenueID == "" {
		uc.logger.Warn("GetCalendar: missing venue id")
		return nil, fmt.Errorf("%w: venueId is required", ErrInvalidInput)
	}
	month, err := time.Parse(monthFormat, req.Month)
	if err != nil {
		uc.logger.Warn("GetCalendar: invalid month %q: %v", req.Month, err)
		return nil, fmt.Errorf("%w: month must be YYYY-MM", ErrInvalidInput)
	}

	doc, err := uc.scheduleRepo.Get(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("GetCalendar: venue=%s not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetCalendar: load schedule for venue=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: load schedule: %v", ErrInternal, err)
	}

	first := types.NewDateString(month)
	last := types.NewDateString(month.AddDate(0, 1, -1))

	booked, err := uc.bookedCounts(ctx, req.VenueID, first, last)
	if err != nil {
		return nil, err
	}

	var days []CalendarDay
	for date, slots := range doc.Schedule {
		if !date.InRange(first, last) || len(slots) == 0 {
			continue
		}

		day := CalendarDay{Date: string(date), Slots: make([]CalendarSlot, 0, len(slots))}
		for _, slot := range slots {
			count := booked[slot.KeyOn(req.VenueID, date)]
			remaining := slot.Capacity - count
			if remaining < 0 {
				remaining = 0
			}

			courseName := ""
			if content, ok := domain.FindContent(doc.Contents, slot.ContentID); ok {
				courseName = content.Name
			}

			grades := make([]string, 0, len(slot.Grades))
			for _, g := range slot.Grades {
				grades = append(grades, string(g))
			}

			day.Slots = append(day.Slots, CalendarSlot{
				ID:         slot.ID,
				ContentID:  slot.ContentID,
				CourseName: courseName,
				StartTime:  string(slot.StartTime),
				EndTime:    string(slot.EndTime),
				Capacity:   slot.Capacity,
				Booked:     count,
				Remaining:  remaining,
				Grades:     grades,
				Color:      string(domain.ColorForGrades(slot.Grades)),
			})
		}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return &Response{
		VenueID:   req.VenueID,
		VenueName: doc.VenueName,
		Month:     req.Month,
		Days:      days,
	}, nil
}

func (uc *UseCase) bookedCounts(ctx context.Context, venueID string, first, last types.DateString) (map[domain.SlotKey]int, error) {
	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		VenueID:   ptr.Ptr(venueID),
		StartDate: &first,
		EndDate:   &last,
		DateField: domain.DateFieldEvent,
	})
	if err != nil {
		uc.logger.Error("GetCalendar: list reservations for venue=%s: %v", venueID, err)
		return nil, fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
	}

	counts := make(map[domain.SlotKey]int, len(reservations))
	for _, r := range reservations {
		counts[r.Key()]++
	}
	return counts, nil
}
