package domain

import "time"

// EventKind is the closed funnel vocabulary recorded by the booking page.
type EventKind string

const (
	EventPageView         EventKind = "page_view"
	EventGradeSelection   EventKind = "grade_selection"
	EventDateClick        EventKind = "date_click"
	EventContentSelection EventKind = "content_selection"
	EventFormInput        EventKind = "form_input"
	EventConversion       EventKind = "conversion"
)

// FunnelStages lists every kind in funnel order, page view first.
var FunnelStages = []EventKind{
	EventPageView,
	EventGradeSelection,
	EventDateClick,
	EventContentSelection,
	EventFormInput,
	EventConversion,
}

// Valid reports whether k belongs to the vocabulary.
func (k EventKind) Valid() bool {
	switch k {
	case EventPageView, EventGradeSelection, EventDateClick,
		EventContentSelection, EventFormInput, EventConversion:
		return true
	}
	return false
}

// AccessEvent is one append-only funnel log entry scoped to a venue.
type AccessEvent struct {
	ID        int64
	VenueID   string
	Kind      EventKind
	CreatedAt time.Time
}
