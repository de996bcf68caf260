package reservations

import (
	"context"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	reservationRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/reservation"
)

// ReservationRepository is the reservation persistence contract.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Update(ctx context.Context, id string, fields reservationRepo.UpdateFields) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	CountByKey(ctx context.Context, key domain.SlotKey) (int, error)
}

// ScheduleRepository reads venue schedule documents for slot validation
// and course-name snapshots.
type ScheduleRepository interface {
	Get(ctx context.Context, venueID string) (*domain.ScheduleDocument, error)
}

// TransactionManager groups the read-check-write paths.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
