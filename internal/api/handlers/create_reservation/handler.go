package create_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	reservationsService "github.com/nishigaki-sys/school-booking-v2/internal/service/reservations"
	"github.com/nishigaki-sys/school-booking-v2/internal/service/reservations/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgVenueNotFound      = "venue not found"
	msgSlotNotFound       = "slot not found"
)

// Handler serves both entry points. The public booking page pins the venue
// from the route and always books as a web reservation; the admin entry
// takes the body as sent.
type Handler struct {
	service ReservationService
	logger  Logger
	public  bool
}

// NewPublicHandler serves the public booking form.
func NewPublicHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger, public: true}
}

// NewAdminHandler serves staff entry.
func NewAdminHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle POST /api/v1/venues/{venueId}/reservations (public)
// Handle POST /api/v1/reservations (admin)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST reservations - invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if h.public {
		req.VenueID = mux.Vars(r)["venueId"]
		req.Source = string(domain.SourceWeb)
	} else if req.Source == "" {
		req.Source = string(domain.SourceAdmin)
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)
		case errors.Is(err, reservationsService.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, reservationsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST reservations - venue=%s: %v", req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
