package record_access_event

import (
	"context"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
)

// EventService records funnel events.
type EventService interface {
	Record(ctx context.Context, venueID string, kind domain.EventKind) error
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
