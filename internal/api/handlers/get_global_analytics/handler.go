package get_global_analytics

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	globalanalytics "github.com/nishigaki-sys/school-booking-v2/internal/usecase/get_global_analytics"
)

// AnalyticsUsecase builds the cross-venue rollup.
type AnalyticsUsecase interface {
	Execute(ctx context.Context, req *globalanalytics.Request) (*globalanalytics.Response, error)
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

// Handle GET /api/v1/analytics/global
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &globalanalytics.Request{
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		DateField: query.Get("dateField"),
	}
	if raw := query.Get("recent"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			handlers.RespondBadRequest(w, "recent must be a non-negative integer")
			return
		}
		req.Recent = n
	}

	result, err := h.usecase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, globalanalytics.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /analytics - %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
