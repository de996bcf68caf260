package domain

import (
	"fmt"
	"time"

	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

// SourceType classifies how a reservation originated.
type SourceType string

const (
	SourceAdmin SourceType = "admin"
	SourceWeb   SourceType = "web"
)

// Valid reports whether s is one of the known source types.
func (s SourceType) Valid() bool {
	switch s {
	case SourceAdmin, SourceWeb:
		return true
	}
	return false
}

// Acquisition bucket labels for the analytics breakdown.
const (
	AcquisitionLabelAdmin  = "Admin entry"
	AcquisitionLabelDirect = "Web (Direct)"
)

// Reservation is a guardian's commitment against one slot occurrence.
// CourseName is snapshotted from the catalog at creation time so later
// catalog edits never alter historical records.
type Reservation struct {
	ID         string
	VenueID    string
	VenueName  string
	Date       types.DateString
	StartTime  types.TimeString
	ContentID  string
	CourseName string

	ChildName    string
	GuardianName string
	Email        string
	Phone        string
	Grade        Grade

	SourceType  SourceType
	UTMSource   string
	UTMMedium   string
	UTMCampaign string

	CreatedAt time.Time
}

// Key returns the slot occurrence this reservation counts against.
func (r *Reservation) Key() SlotKey {
	return SlotKey{VenueID: r.VenueID, Date: r.Date, StartTime: r.StartTime, ContentID: r.ContentID}
}

// CreatedDate returns the local calendar date of the creation timestamp.
// This is the "created" date-field mode; the "event" mode uses Date instead.
func (r *Reservation) CreatedDate() types.DateString {
	return types.NewDateString(r.CreatedAt.Local())
}

// AcquisitionLabel buckets the reservation by channel: the fixed admin
// label, "{source} ({medium})" or the bare source for attributed campaigns,
// and the direct label for everything else.
func (r *Reservation) AcquisitionLabel() string {
	switch r.SourceType {
	case SourceAdmin:
		return AcquisitionLabelAdmin
	case SourceWeb:
		if r.UTMSource != "" {
			if r.UTMMedium != "" {
				return fmt.Sprintf("%s (%s)", r.UTMSource, r.UTMMedium)
			}
			return r.UTMSource
		}
		return AcquisitionLabelDirect
	default:
		return AcquisitionLabelDirect
	}
}

// DateFieldMode selects which calendar date a range query filters on:
// the slot's event date, or the reservation's creation date. The two are
// distinct as-of semantics and never interchangeable.
type DateFieldMode string

const (
	DateFieldCreated DateFieldMode = "created"
	DateFieldEvent   DateFieldMode = "event"
)

// Valid reports whether m is one of the two known modes.
func (m DateFieldMode) Valid() bool {
	switch m {
	case DateFieldCreated, DateFieldEvent:
		return true
	}
	return false
}

// EffectiveDate returns the date the mode selects for r.
func (m DateFieldMode) EffectiveDate(r *Reservation) types.DateString {
	if m == DateFieldEvent {
		return r.Date
	}
	return r.CreatedDate()
}
