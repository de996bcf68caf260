package manage_venues

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	venuesService "github.com/nishigaki-sys/school-booking-v2/internal/service/venues"
	"github.com/nishigaki-sys/school-booking-v2/internal/service/venues/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgVenueNotFound      = "venue not found"
	msgVenueExists        = "venue already exists"
)

// VenueService manages the venue registry.
type VenueService interface {
	List(ctx context.Context) (*models.VenueListResponse, error)
	Get(ctx context.Context, id string) (*models.VenueResponse, error)
	Create(ctx context.Context, req *models.CreateVenueRequest) (*models.VenueResponse, error)
	Update(ctx context.Context, id string, req *models.UpdateVenueRequest) (*models.VenueResponse, error)
	UpdatePageSettings(ctx context.Context, id string, req *models.PageSettingsRequest) error
	Delete(ctx context.Context, id string) error
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleList GET /api/v1/venues
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /venues - %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/venues/{venueId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["venueId"]

	result, err := h.service.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, venuesService.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)
		default:
			h.logger.Error("GET /venues/%s - %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/venues
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues - invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, venuesService.ErrVenueExists):
			handlers.RespondConflict(w, msgVenueExists)
		case errors.Is(err, venuesService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /venues - %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PUT /api/v1/venues/{venueId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["venueId"]

	var req models.UpdateVenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/%s - invalid body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, venuesService.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)
		case errors.Is(err, venuesService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /venues/%s - %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePageSettings PATCH /api/v1/venues/{venueId}/page-settings
func (h *Handler) HandlePageSettings(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["venueId"]

	var req models.PageSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /venues/%s/page-settings - invalid body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdatePageSettings(r.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, venuesService.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)
		default:
			h.logger.Error("PATCH /venues/%s/page-settings - %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}
	handlers.RespondNoContent(w)
}

// HandleDelete DELETE /api/v1/venues/{venueId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["venueId"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, venuesService.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)
		default:
			h.logger.Error("DELETE /venues/%s - %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}
	handlers.RespondNoContent(w)
}
