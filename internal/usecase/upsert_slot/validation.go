package upsert_slot

import (
	"fmt"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

// validateRequest checks the request and converts it to a domain slot.
func validateRequest(req *Request) (types.DateString, domain.Slot, error) {
	var slot domain.Slot

	if req.VenueID == "" {
		return "", slot, fmt.Errorf("%w: venueId is required", ErrInvalidInput)
	}
	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		return "", slot, fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}
	if req.EditIndex < -1 {
		return "", slot, fmt.Errorf("%w: editIndex must be -1 or a list position", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return "", slot, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return "", slot, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	grades := make([]domain.Grade, 0, len(req.Grades))
	for _, g := range req.Grades {
		grades = append(grades, domain.Grade(g))
	}

	slot = domain.Slot{
		ID:        req.SlotID,
		ContentID: req.ContentID,
		StartTime: startTime,
		EndTime:   endTime,
		Capacity:  req.Capacity,
		Grades:    grades,
	}
	if err := slot.Validate(); err != nil {
		return "", slot, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return date, slot, nil
}
