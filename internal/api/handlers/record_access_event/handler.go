package record_access_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	eventsService "github.com/nishigaki-sys/school-booking-v2/internal/service/events"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgVenueNotFound      = "venue not found"
)

// RecordEventRequest is the HTTP body of a funnel event.
type RecordEventRequest struct {
	Kind string `json:"kind"`
}

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle POST /api/v1/venues/{venueId}/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]

	var req RecordEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/%s/events - invalid body: %v", venueID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Record(r.Context(), venueID, domain.EventKind(req.Kind)); err != nil {
		switch {
		case errors.Is(err, eventsService.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)
		case errors.Is(err, eventsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /venues/%s/events - %v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondNoContent(w)
}
