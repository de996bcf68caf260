package domain

import "github.com/nishigaki-sys/school-booking-v2/pkg/types"

// ReservationFilter selects reservations from the global collection.
// StartDate/EndDate form an inclusive range interpreted through DateField:
// the slot's event date, or the creation timestamp's local calendar date.
// Nil fields mean "no constraint".
type ReservationFilter struct {
	VenueID    *string
	StartDate  *types.DateString
	EndDate    *types.DateString
	DateField  DateFieldMode
	ContentID  *string
	SourceType *SourceType
}
