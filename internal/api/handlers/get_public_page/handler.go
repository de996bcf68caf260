package get_public_page

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	venuesService "github.com/nishigaki-sys/school-booking-v2/internal/service/venues"
)

const msgVenueNotFound = "venue not found"

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/venues/{venueId}/page
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]

	doc, err := h.service.GetScheduleDocument(r.Context(), venueID)
	if err != nil {
		if errors.Is(err, venuesService.ErrVenueNotFound) {
			handlers.RespondNotFound(w, msgVenueNotFound)
			return
		}
		h.logger.Error("GET /venues/%s/page - %v", venueID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}
