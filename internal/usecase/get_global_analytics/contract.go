package get_global_analytics

import (
	"context"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
)

// VenueRepository lists the venues in the rollup.
type VenueRepository interface {
	List(ctx context.Context) ([]*domain.Venue, error)
}

// ScheduleRepository reads each venue's schedule for capacity sums.
type ScheduleRepository interface {
	Get(ctx context.Context, venueID string) (*domain.ScheduleDocument, error)
}

// ReservationRepository reads the bookings feeding the rollup.
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Reservation, error)
}

// AccessEventRepository reads per-venue page view totals.
type AccessEventRepository interface {
	CountTotal(ctx context.Context, kind domain.EventKind) (map[string]int, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
