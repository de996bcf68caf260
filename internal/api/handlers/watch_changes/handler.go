package watch_changes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
	"github.com/nishigaki-sys/school-booking-v2/internal/watch"
)

// Subscriber hands out change streams. The channel closes when the context
// is cancelled or the watcher shuts down.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan watch.Change, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type changeEvent struct {
	VenueID string `json:"venueId"`
}

type Handler struct {
	subscriber Subscriber
	logger     Logger
}

func NewHandler(subscriber Subscriber, logger Logger) *Handler {
	return &Handler{subscriber: subscriber, logger: logger}
}

// Handle GET /api/v1/venues/{venueId}/changes
// Server-sent events: one event per change to the venue's schedule,
// reservations or access events. The event name is the changed collection;
// clients re-read it rather than parse a diff out of the payload.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /venues/%s/changes - response writer does not support streaming", venueID)
		handlers.RespondInternalError(w)
		return
	}

	ch, err := h.subscriber.Subscribe(r.Context())
	if err != nil {
		h.logger.Error("GET /venues/%s/changes - subscribe: %v", venueID, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("GET /venues/%s/changes - stream opened", venueID)

	for change := range ch {
		if change.VenueID != venueID {
			continue
		}
		payload, err := json.Marshal(changeEvent{VenueID: change.VenueID})
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", change.Kind, payload)
		flusher.Flush()
	}

	h.logger.Info("GET /venues/%s/changes - stream closed", venueID)
}
