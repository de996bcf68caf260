package events

import (
	"context"
	"time"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
)

// AccessEventRepository is the event log contract.
type AccessEventRepository interface {
	Append(ctx context.Context, venueID string, kind domain.EventKind) (*domain.AccessEvent, error)
	CountByKind(ctx context.Context, venueID string, from, to time.Time) (map[domain.EventKind]int, error)
}

// ScheduleRepository verifies the venue exists before recording.
type ScheduleRepository interface {
	Get(ctx context.Context, venueID string) (*domain.ScheduleDocument, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
