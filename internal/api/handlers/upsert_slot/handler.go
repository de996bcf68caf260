package upsert_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	upsertSlot "github.com/nishigaki-sys/school-booking-v2/internal/usecase/upsert_slot"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgVenueNotFound      = "venue not found"
	msgContentNotFound    = "content not found in venue catalog"
	msgSlotConflict       = "slot overlaps an existing slot on this date"
	msgSlotNotFound       = "slot not found"
)

type Handler struct {
	useCase UpsertSlotUseCase
	logger  Logger
}

func NewHandler(useCase UpsertSlotUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle PUT /api/v1/venues/{venueId}/schedule/{date}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID := vars["venueId"]
	date := vars["date"]

	var req UpsertSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/%s/schedule/%s/slots - invalid body: %v", venueID, date, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(venueID, date))
	if err != nil {
		switch {
		case errors.Is(err, upsertSlot.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)
		case errors.Is(err, upsertSlot.ErrContentNotFound):
			handlers.RespondBadRequest(w, msgContentNotFound)
		case errors.Is(err, upsertSlot.ErrSlotConflict):
			handlers.RespondConflict(w, msgSlotConflict)
		case errors.Is(err, upsertSlot.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, upsertSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /venues/%s/schedule/%s/slots - %v", venueID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if req.EditIndex == nil || *req.EditIndex < 0 {
		status = http.StatusCreated
	}
	handlers.RespondJSON(w, status, result)
}
