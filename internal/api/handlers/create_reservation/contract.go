package create_reservation

import (
	"context"

	"github.com/nishigaki-sys/school-booking-v2/internal/service/reservations/models"
)

// ReservationService creates reservations.
type ReservationService interface {
	Create(ctx context.Context, req *models.CreateReservationRequest) (*models.ReservationResponse, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
