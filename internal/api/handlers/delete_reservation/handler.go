package delete_reservation

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	reservationsService "github.com/nishigaki-sys/school-booking-v2/internal/service/reservations"
)

const msgReservationNotFound = "reservation not found"

// ReservationService deletes reservations.
type ReservationService interface {
	Delete(ctx context.Context, id string) error
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

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["reservationId"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)
		default:
			h.logger.Error("DELETE /reservations/%s - %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondNoContent(w)
}
