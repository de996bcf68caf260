package manage_allowlist

import (
	"context"
	"errors"
	"net/http"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	accessService "github.com/nishigaki-sys/school-booking-v2/internal/service/accesscontrol"
)

const msgInvalidRequestBody = "invalid request body"

// AllowlistService manages the admin IP allow-list.
type AllowlistService interface {
	List(ctx context.Context) ([]string, error)
	Update(ctx context.Context, entries []string) error
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AllowlistResponse is the API shape of the allow-list.
type AllowlistResponse struct {
	IPs []string `json:"ips"`
}

// UpdateRequest replaces the allow-list.
type UpdateRequest struct {
	IPs []string `json:"ips"`
}

type Handler struct {
	service AllowlistService
	logger  Logger
}

func NewHandler(service AllowlistService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleGet GET /api/v1/settings/ip-allowlist
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ips, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/ip-allowlist - %v", err)
		handlers.RespondInternalError(w)
		return
	}
	if ips == nil {
		ips = []string{}
	}
	handlers.RespondJSON(w, http.StatusOK, &AllowlistResponse{IPs: ips})
}

// HandleUpdate PUT /api/v1/settings/ip-allowlist
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings/ip-allowlist - invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Update(r.Context(), req.IPs); err != nil {
		switch {
		case errors.Is(err, accessService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /settings/ip-allowlist - %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}
	handlers.RespondNoContent(w)
}
