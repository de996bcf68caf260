package list_reservations

import (
	"context"
	"errors"
	"net/http"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	reservationsService "github.com/nishigaki-sys/school-booking-v2/internal/service/reservations"
	"github.com/nishigaki-sys/school-booking-v2/internal/service/reservations/models"
)

// ReservationService lists reservations.
type ReservationService interface {
	List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error)
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

// Handle GET /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListReservationsRequest{
		VenueID:   optional(query.Get("venueId")),
		StartDate: optional(query.Get("startDate")),
		EndDate:   optional(query.Get("endDate")),
		DateField: query.Get("dateField"),
		ContentID: optional(query.Get("contentId")),
		Source:    optional(query.Get("source")),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /reservations - %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
