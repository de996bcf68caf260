package get_calendar

import (
	"context"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
)

// ScheduleRepository is the schedule document contract.
type ScheduleRepository interface {
	Get(ctx context.Context, venueID string) (*domain.ScheduleDocument, error)
}

// ReservationRepository reads the bookings counted against each slot.
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
