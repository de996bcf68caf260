package get_global_analytics

// Request bounds the rollup. DateField selects whether the range applies to
// the event date or the booking date; empty means event.
type Request struct {
	StartDate string
	EndDate   string
	DateField string
	Recent    int
}

// VenueStats is one venue's row. Venues with no activity in the period
// still appear with zero counts.
type VenueStats struct {
	VenueID        string `json:"venueId"`
	VenueName      string `json:"venueName"`
	Bookings       int    `json:"bookings"`
	WebBookings    int    `json:"webBookings"`
	Capacity       int    `json:"capacity"`
	UtilizationPct int    `json:"utilizationPct"`
	PageViews      int    `json:"pageViews"`
}

// DailyVenueCount is one point of the zero-filled per-day series, stacked
// by venue. Every registered venue keys every day.
type DailyVenueCount struct {
	Date    string         `json:"date"`
	Total   int            `json:"total"`
	ByVenue map[string]int `json:"byVenue"`
}

// RecentBooking is one row of the cross-venue recent bookings feed.
type RecentBooking struct {
	ID         string `json:"id"`
	VenueID    string `json:"venueId"`
	VenueName  string `json:"venueName"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	CourseName string `json:"courseName"`
	ChildName  string `json:"childName"`
	Source     string `json:"source"`
	CreatedAt  string `json:"createdAt"`
}

// Response is the cross-venue rollup.
type Response struct {
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	DateField     string          `json:"dateField"`
	TotalBookings int               `json:"totalBookings"`
	Daily         []DailyVenueCount `json:"daily"`
	Venues        []VenueStats      `json:"venues"`
	Recent        []RecentBooking   `json:"recent"`
}
