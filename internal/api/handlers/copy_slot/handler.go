package copy_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	copySlot "github.com/nishigaki-sys/school-booking-v2/internal/usecase/copy_slot"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgVenueNotFound      = "venue not found"
	msgSlotNotFound       = "slot not found"
	msgSlotConflict       = "copy overlaps an existing slot; no dates were written"
)

// CopySlotRequest is the HTTP body of a slot copy.
type CopySlotRequest struct {
	SourceDate  string   `json:"sourceDate"`
	TargetDates []string `json:"targetDates"`
}

type Handler struct {
	useCase CopySlotUseCase
	logger  Logger
}

func NewHandler(useCase CopySlotUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle POST /api/v1/venues/{venueId}/schedule/slots/{slotId}/copy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID := vars["venueId"]
	slotID := vars["slotId"]

	var req CopySlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/%s/schedule/slots/%s/copy - invalid body: %v", venueID, slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &copySlot.Request{
		VenueID:     venueID,
		SourceDate:  req.SourceDate,
		SlotID:      slotID,
		TargetDates: req.TargetDates,
	})
	if err != nil {
		switch {
		case errors.Is(err, copySlot.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)
		case errors.Is(err, copySlot.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, copySlot.ErrSlotConflict):
			handlers.RespondConflict(w, msgSlotConflict)
		case errors.Is(err, copySlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /venues/%s/schedule/slots/%s/copy - %v", venueID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
