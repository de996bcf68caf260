package get_analytics

import (
	"context"
	"time"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
)

// ScheduleRepository is the schedule document contract.
type ScheduleRepository interface {
	Get(ctx context.Context, venueID string) (*domain.ScheduleDocument, error)
}

// ReservationRepository reads the bookings feeding the report.
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// AccessEventRepository reads the funnel event counts.
type AccessEventRepository interface {
	CountByKind(ctx context.Context, venueID string, from, to time.Time) (map[domain.EventKind]int, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
