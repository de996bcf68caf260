package venues

import (
	"context"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
)

// VenueRepository is the venue registry contract.
type VenueRepository interface {
	List(ctx context.Context) ([]*domain.Venue, error)
	Get(ctx context.Context, id string) (*domain.Venue, error)
	Save(ctx context.Context, v *domain.Venue) error
	Delete(ctx context.Context, id string) error
}

// ScheduleRepository stores venue schedule documents.
type ScheduleRepository interface {
	Get(ctx context.Context, venueID string) (*domain.ScheduleDocument, error)
	Replace(ctx context.Context, doc *domain.ScheduleDocument) error
	Delete(ctx context.Context, venueID string) error
}

// ReservationRepository removes a venue's reservations on cascade delete.
type ReservationRepository interface {
	DeleteByVenue(ctx context.Context, venueID string) error
}

// AccessEventRepository removes a venue's event log on cascade delete.
type AccessEventRepository interface {
	DeleteByVenue(ctx context.Context, venueID string) error
}

// TransactionManager groups the multi-collection writes.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
