package get_reservation

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	reservationsService "github.com/nishigaki-sys/school-booking-v2/internal/service/reservations"
	"github.com/nishigaki-sys/school-booking-v2/internal/service/reservations/models"
)

const msgReservationNotFound = "reservation not found"

// ReservationService reads reservations.
type ReservationService interface {
	GetByID(ctx context.Context, id string) (*models.ReservationResponse, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["reservationId"]

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, reservationsService.ErrReservationNotFound) {
			handlers.RespondNotFound(w, msgReservationNotFound)
			return
		}
		h.logger.Error("GET /reservations/%s - %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
