package get_analytics

// Request bounds the report. DateField selects whether the range applies to
// the event date or the booking date; empty means event.
type Request struct {
	VenueID   string
	StartDate string
	EndDate   string
	DateField string
}

// Summary is the headline numbers of the period.
type Summary struct {
	TotalBookings  int `json:"totalBookings"`
	WebBookings    int `json:"webBookings"`
	AdminBookings  int `json:"adminBookings"`
	TotalCapacity  int `json:"totalCapacity"`
	UtilizationPct int `json:"utilizationPct"`
	PageViews      int `json:"pageViews"`
	SalesTotal     int `json:"salesTotal"`
}

// DailyCount is one point of the zero-filled per-day series. ByContent
// splits the day's bookings by content id; bookings whose course no longer
// exists in the catalog land under the unknown bucket key.
type DailyCount struct {
	Date      string         `json:"date"`
	Total     int            `json:"total"`
	ByContent map[string]int `json:"byContent"`
}

// ContentCount is one row of the per-course breakdown: bookings against
// scheduled capacity in the period. Bookings and slots whose course no
// longer exists in the catalog merge into a single unknown bucket. Rows
// with neither capacity nor bookings are omitted.
type ContentCount struct {
	ContentID  string `json:"contentId"`
	CourseName string `json:"courseName"`
	Bookings   int    `json:"bookings"`
	Capacity   int    `json:"capacity"`
}

// AcquisitionCount is one row of the booking-source breakdown.
type AcquisitionCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FunnelStage is one step of the visitor funnel. CVR is the conversion
// rate against the first stage, formatted as "12.34%".
type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
	CVR   string `json:"cvr"`
}

// Response is the full per-venue report.
type Response struct {
	VenueID     string             `json:"venueId"`
	VenueName   string             `json:"venueName"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	DateField   string             `json:"dateField"`
	Summary     Summary            `json:"summary"`
	Daily       []DailyCount       `json:"daily"`
	ByContent   []ContentCount     `json:"byContent"`
	Acquisition []AcquisitionCount `json:"acquisition"`
	Funnel      []FunnelStage      `json:"funnel"`
}
