package build_campaign_url

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	campaignurl "github.com/nishigaki-sys/school-booking-v2/internal/usecase/build_campaign_url"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgVenueNotFound      = "venue not found"
)

// CampaignURLUsecase builds tagged public page links.
type CampaignURLUsecase interface {
	Execute(ctx context.Context, req *campaignurl.Request) (*campaignurl.Response, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CampaignURLRequest is the request body.
type CampaignURLRequest struct {
	BaseURL  string `json:"baseUrl"`
	Source   string `json:"source"`
	Medium   string `json:"medium,omitempty"`
	Campaign string `json:"campaign,omitempty"`
}

type Handler struct {
	usecase CampaignURLUsecase
	logger  Logger
}

func NewHandler(usecase CampaignURLUsecase, logger Logger) *Handler {
	return &Handler{usecase: usecase, logger: logger}
}

// Handle POST /api/v1/venues/{venueId}/campaign-url
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]

	var body CampaignURLRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /venues/%s/campaign-url - invalid body: %v", venueID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.usecase.Execute(r.Context(), &campaignurl.Request{
		BaseURL:  body.BaseURL,
		VenueID:  venueID,
		Source:   body.Source,
		Medium:   body.Medium,
		Campaign: body.Campaign,
	})
	if err != nil {
		switch {
		case errors.Is(err, campaignurl.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)
		case errors.Is(err, campaignurl.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /venues/%s/campaign-url - %v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
