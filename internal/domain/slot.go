package domain

import (
	"errors"
	"fmt"

	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

var (
	// ErrInvalidSlotTime is returned when a slot's end does not lie strictly
	// after its start.
	ErrInvalidSlotTime = errors.New("domain: slot end must be after start")

	// ErrInvalidCapacity is returned for a non-positive capacity.
	ErrInvalidCapacity = errors.New("domain: slot capacity must be positive")

	// ErrEmptyGrades is returned for an empty eligible-grades set.
	ErrEmptyGrades = errors.New("domain: slot must accept at least one grade")

	// ErrUnknownGrade is returned when a grade is outside the closed set.
	ErrUnknownGrade = errors.New("domain: unknown grade")

	// ErrMissingContent is returned when a slot has no content reference.
	ErrMissingContent = errors.New("domain: slot content id is required")
)

// Slot is one scheduled occurrence of a content item: a time interval within
// a day, a capacity and the grades it accepts. The id is assigned once at
// creation and never changes across edits.
type Slot struct {
	ID        string           `json:"id"`
	ContentID string           `json:"contentId"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Capacity  int              `json:"capacity"`
	Grades    []Grade          `json:"grades"`
}

// Range returns the slot's [start, end) interval.
func (s Slot) Range() TimeRange {
	return NewTimeRange(s.StartTime, s.EndTime)
}

// KeyOn returns the reservation match key for this slot on the given date.
func (s Slot) KeyOn(venueID string, date types.DateString) SlotKey {
	return SlotKey{VenueID: venueID, Date: date, StartTime: s.StartTime, ContentID: s.ContentID}
}

// Validate checks the slot's own fields. Overlap against neighbours is the
// Schedule's concern, not the slot's.
func (s Slot) Validate() error {
	if s.ContentID == "" {
		return ErrMissingContent
	}
	if err := s.StartTime.Validate(); err != nil {
		return err
	}
	if err := s.EndTime.Validate(); err != nil {
		return err
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidSlotTime, s.StartTime, s.EndTime)
	}
	if s.Capacity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, s.Capacity)
	}
	if len(s.Grades) == 0 {
		return ErrEmptyGrades
	}
	for _, g := range s.Grades {
		if !g.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownGrade, g)
		}
	}
	return nil
}

// SlotKey identifies the slot occurrence a reservation commits to. Capacity
// counting matches reservations to slots by this tuple, not by a foreign key,
// so a capacity or grade edit on a slot never orphans existing reservations.
type SlotKey struct {
	VenueID   string
	Date      types.DateString
	StartTime types.TimeString
	ContentID string
}
