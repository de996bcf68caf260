package remove_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	removeSlot "github.com/nishigaki-sys/school-booking-v2/internal/usecase/remove_slot"
)

const (
	msgVenueNotFound   = "venue not found"
	msgSlotNotFound    = "slot not found"
	msgHasReservations = "slot has active reservations; move or cancel them first"
)

type Handler struct {
	useCase RemoveSlotUseCase
	logger  Logger
}

func NewHandler(useCase RemoveSlotUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle DELETE /api/v1/venues/{venueId}/schedule/{date}/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result, err := h.useCase.Execute(r.Context(), &removeSlot.Request{
		VenueID: vars["venueId"],
		Date:    vars["date"],
		SlotID:  vars["slotId"],
	})
	if err != nil {
		switch {
		case errors.Is(err, removeSlot.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)
		case errors.Is(err, removeSlot.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, removeSlot.ErrSlotHasReservations):
			handlers.RespondConflict(w, msgHasReservations)
		case errors.Is(err, removeSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("DELETE /venues/%s/schedule/%s/slots/%s - %v",
				vars["venueId"], vars["date"], vars["slotId"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
