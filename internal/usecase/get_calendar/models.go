package get_calendar

// Request names the venue and the month to render, as "YYYY-MM".
type Request struct {
	VenueID string
	Month   string
}

// CalendarSlot is one slot occurrence with its live availability. Remaining
// is clamped at zero for overbooked slots; Color is the grade badge color.
type CalendarSlot struct {
	ID         string   `json:"id"`
	ContentID  string   `json:"contentId"`
	CourseName string   `json:"courseName"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	Capacity   int      `json:"capacity"`
	Booked     int      `json:"booked"`
	Remaining  int      `json:"remaining"`
	Grades     []string `json:"grades"`
	Color      string   `json:"color"`
}

// CalendarDay is one date's slot list, sorted by start time.
type CalendarDay struct {
	Date  string         `json:"date"`
	Slots []CalendarSlot `json:"slots"`
}

// Response is the month view. Days holds only dates that have slots.
type Response struct {
	VenueID   string        `json:"venueId"`
	VenueName string        `json:"venueName"`
	Month     string        `json:"month"`
	Days      []CalendarDay `json:"days"`
}
