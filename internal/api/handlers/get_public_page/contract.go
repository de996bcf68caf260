package get_public_page

import (
	"context"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
)

// VenueService reads venue schedule documents.
type VenueService interface {
	GetScheduleDocument(ctx context.Context, id string) (*domain.ScheduleDocument, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
