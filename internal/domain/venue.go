package domain

import "errors"

// ErrInvalidVenue is returned for a venue missing its id or name.
var ErrInvalidVenue = errors.New("domain: venue id and name are required")

// Venue is an independently scheduled school. The id doubles as the routable
// URL key of the venue's public booking page.
type Venue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Validate checks the venue's required fields.
func (v Venue) Validate() error {
	if v.ID == "" || v.Name == "" {
		return ErrInvalidVenue
	}
	return nil
}

// ScheduleDocument is a venue's whole settings document: display metadata,
// the venue-local content catalog and the date-keyed schedule. It is stored
// and replaced as a single document; slot writes merge only the touched date.
type ScheduleDocument struct {
	VenueID         string        `json:"schoolId"`
	VenueName       string        `json:"schoolName"`
	Address         string        `json:"address,omitempty"`
	PhoneNumber     string        `json:"phoneNumber,omitempty"`
	PageTitle       string        `json:"pageTitle,omitempty"`
	PageDescription string        `json:"pageDescription,omitempty"`
	HeaderImageURL  string        `json:"headerImageUrl,omitempty"`
	Contents        []ContentItem `json:"contents"`
	Schedule        Schedule      `json:"schedule"`
}

// NewScheduleDocument seeds the empty document created with a venue.
func NewScheduleDocument(venueID, name string) *ScheduleDocument {
	return &ScheduleDocument{
		VenueID:   venueID,
		VenueName: name,
		Contents:  []ContentItem{},
		Schedule:  Schedule{},
	}
}

// Normalize repairs nil collections on documents read from storage so the
// mutation paths never see a nil map.
func (d *ScheduleDocument) Normalize() {
	if d.Contents == nil {
		d.Contents = []ContentItem{}
	}
	if d.Schedule == nil {
		d.Schedule = Schedule{}
	}
}
