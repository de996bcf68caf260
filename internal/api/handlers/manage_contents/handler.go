package manage_contents

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	catalogService "github.com/nishigaki-sys/school-booking-v2/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgVenueNotFound      = "venue not found"
	msgContentNotFound    = "content not found"
	msgContentInUse       = "content is referenced by scheduled slots"
)

// CatalogService manages venue and shared content catalogs.
type CatalogService interface {
	ListVenueContents(ctx context.Context, venueID string) ([]domain.ContentItem, error)
	AddVenueContent(ctx context.Context, venueID string, item domain.ContentItem) (*domain.ContentItem, error)
	UpdateVenueContent(ctx context.Context, venueID string, item domain.ContentItem) error
	DeleteVenueContent(ctx context.Context, venueID, contentID string) error
	ListSharedContents(ctx context.Context) ([]domain.ContentItem, error)
	SaveSharedContent(ctx context.Context, item domain.ContentItem) (*domain.ContentItem, error)
	DeleteSharedContent(ctx context.Context, contentID string) error
	ImportSharedContent(ctx context.Context, venueID, sharedContentID string) (*domain.ContentItem, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ContentListResponse wraps a catalog listing.
type ContentListResponse struct {
	Contents []domain.ContentItem `json:"contents"`
	Total    int                  `json:"total"`
}

// ImportRequest names the shared item to copy into a venue catalog.
type ImportRequest struct {
	SharedContentID string `json:"sharedContentId"`
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleListVenue GET /api/v1/venues/{venueId}/contents
func (h *Handler) HandleListVenue(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]

	contents, err := h.service.ListVenueContents(r.Context(), venueID)
	if err != nil {
		h.respondError(w, "GET /venues/"+venueID+"/contents", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, &ContentListResponse{Contents: contents, Total: len(contents)})
}

// HandleAddVenue POST /api/v1/venues/{venueId}/contents
func (h *Handler) HandleAddVenue(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]

	var item domain.ContentItem
	if err := handlers.DecodeJSON(r, &item); err != nil {
		h.logger.Warn("POST /venues/%s/contents - invalid body: %v", venueID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.AddVenueContent(r.Context(), venueID, item)
	if err != nil {
		h.respondError(w, "POST /venues/"+venueID+"/contents", err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, created)
}

// HandleUpdateVenue PUT /api/v1/venues/{venueId}/contents/{contentId}
func (h *Handler) HandleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, contentID := vars["venueId"], vars["contentId"]

	var item domain.ContentItem
	if err := handlers.DecodeJSON(r, &item); err != nil {
		h.logger.Warn("PUT /venues/%s/contents/%s - invalid body: %v", venueID, contentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	item.ID = contentID

	if err := h.service.UpdateVenueContent(r.Context(), venueID, item); err != nil {
		h.respondError(w, "PUT /venues/"+venueID+"/contents/"+contentID, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, &item)
}

// HandleDeleteVenue DELETE /api/v1/venues/{venueId}/contents/{contentId}
func (h *Handler) HandleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, contentID := vars["venueId"], vars["contentId"]

	if err := h.service.DeleteVenueContent(r.Context(), venueID, contentID); err != nil {
		h.respondError(w, "DELETE /venues/"+venueID+"/contents/"+contentID, err)
		return
	}
	handlers.RespondNoContent(w)
}

// HandleImport POST /api/v1/venues/{venueId}/contents/import
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]

	var req ImportRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/%s/contents/import - invalid body: %v", venueID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.SharedContentID == "" {
		handlers.RespondBadRequest(w, "sharedContentId is required")
		return
	}

	imported, err := h.service.ImportSharedContent(r.Context(), venueID, req.SharedContentID)
	if err != nil {
		h.respondError(w, "POST /venues/"+venueID+"/contents/import", err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, imported)
}

// HandleListShared GET /api/v1/shared-contents
func (h *Handler) HandleListShared(w http.ResponseWriter, r *http.Request) {
	contents, err := h.service.ListSharedContents(r.Context())
	if err != nil {
		h.respondError(w, "GET /shared-contents", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, &ContentListResponse{Contents: contents, Total: len(contents)})
}

// HandleSaveShared POST /api/v1/shared-contents
func (h *Handler) HandleSaveShared(w http.ResponseWriter, r *http.Request) {
	var item domain.ContentItem
	if err := handlers.DecodeJSON(r, &item); err != nil {
		h.logger.Warn("POST /shared-contents - invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	saved, err := h.service.SaveSharedContent(r.Context(), item)
	if err != nil {
		h.respondError(w, "POST /shared-contents", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, saved)
}

// HandleDeleteShared DELETE /api/v1/shared-contents/{contentId}
func (h *Handler) HandleDeleteShared(w http.ResponseWriter, r *http.Request) {
	contentID := mux.Vars(r)["contentId"]

	if err := h.service.DeleteSharedContent(r.Context(), contentID); err != nil {
		h.respondError(w, "DELETE /shared-contents/"+contentID, err)
		return
	}
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalogService.ErrVenueNotFound):
		handlers.RespondNotFound(w, msgVenueNotFound)
	case errors.Is(err, catalogService.ErrContentNotFound):
		handlers.RespondNotFound(w, msgContentNotFound)
	case errors.Is(err, catalogService.ErrContentInUse):
		handlers.RespondConflict(w, msgContentInUse)
	case errors.Is(err, catalogService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - %v", op, err)
		handlers.RespondInternalError(w)
	}
}
