package get_analytics

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	analytics "github.com/nishigaki-sys/school-booking-v2/internal/usecase/get_analytics"
)

const msgVenueNotFound = "venue not found"

// AnalyticsUsecase builds the per-venue report.
type AnalyticsUsecase interface {
	Execute(ctx context.Context, req *analytics.Request) (*analytics.Response, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	usecase AnalyticsUsecase
	logger  Logger
}

func NewHandler(usecase AnalyticsUsecase, logger Logger) *Handler {
	return &Handler{usecase: usecase, logger: logger}
}

// Handle GET /api/v1/venues/{venueId}/analytics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]
	query := r.URL.Query()

	req := &analytics.Request{
		VenueID:   venueID,
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		DateField: query.Get("dateField"),
	}

	result, err := h.usecase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)
		case errors.Is(err, analytics.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /venues/%s/analytics - %v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
