package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

// ErrSlotNotFound is returned when a slot id is absent from a date's list.
var ErrSlotNotFound = errors.New("domain: slot not found")

// ConflictError reports a time overlap with a slot already on the date.
// Callers surface the conflicting slot's bounds to the operator.
type ConflictError struct {
	Date     types.DateString
	Existing Slot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("domain: slot overlaps existing %s-%s on %s",
		e.Existing.StartTime, e.Existing.EndTime, e.Date)
}

// Schedule is one venue's date-keyed slot map. Each date holds its slots
// ordered by start time, and no two slots on a date overlap. All mutation
// goes through UpsertSlot / RemoveSlot, which preserve both invariants;
// either a mutation fully applies or the schedule is left untouched.
type Schedule map[types.DateString][]Slot

// SlotsOn returns the slot list for a date. Nil when the date has none.
func (s Schedule) SlotsOn(date types.DateString) []Slot {
	return s[date]
}

// FindSlot locates a slot by id on a date.
func (s Schedule) FindSlot(date types.DateString, slotID string) (Slot, int, error) {
	for i, slot := range s[date] {
		if slot.ID == slotID {
			return slot, i, nil
		}
	}
	return Slot{}, -1, fmt.Errorf("%w: %s on %s", ErrSlotNotFound, slotID, date)
}

// UpsertSlot validates slot and inserts it on date, or replaces the slot at
// editIndex when editIndex >= 0. The interval is checked against every other
// slot already on the date; on any overlap a *ConflictError is returned and
// nothing changes. On success the date's list is re-sorted by start time.
func (s Schedule) UpsertSlot(date types.DateString, slot Slot, editIndex int) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	if err := date.Validate(); err != nil {
		return err
	}

	existing := s[date]
	if editIndex >= len(existing) {
		return fmt.Errorf("%w: edit index %d on %s", ErrSlotNotFound, editIndex, date)
	}

	r := slot.Range()
	for i, other := range existing {
		if editIndex >= 0 && i == editIndex {
			continue
		}
		if r.Overlaps(other.Range()) {
			return &ConflictError{Date: date, Existing: other}
		}
	}

	if editIndex >= 0 {
		// An edit keeps the original slot id regardless of what the caller
		// sent; ids are assigned once at creation.
		slot.ID = existing[editIndex].ID
		existing[editIndex] = slot
	} else {
		existing = append(existing, slot)
	}

	sort.SliceStable(existing, func(i, j int) bool {
		return existing[i].StartTime.IsBefore(existing[j].StartTime)
	})
	s[date] = existing
	return nil
}

// RemoveSlot deletes the slot with slotID from date and returns it. The
// caller is responsible for the active-reservations check before removal.
func (s Schedule) RemoveSlot(date types.DateString, slotID string) (Slot, error) {
	slot, idx, err := s.FindSlot(date, slotID)
	if err != nil {
		return Slot{}, err
	}
	s[date] = append(s[date][:idx], s[date][idx+1:]...)
	if len(s[date]) == 0 {
		delete(s, date)
	}
	return slot, nil
}

// Validate checks the whole document: every slot well-formed and every date
// free of overlaps. Used on documents read back from storage.
func (s Schedule) Validate() error {
	for date, slots := range s {
		if err := date.Validate(); err != nil {
			return err
		}
		for i, slot := range slots {
			if err := slot.Validate(); err != nil {
				return fmt.Errorf("%s: %w", date, err)
			}
			for j := i + 1; j < len(slots); j++ {
				if slot.Range().Overlaps(slots[j].Range()) {
					return &ConflictError{Date: date, Existing: slots[j]}
				}
			}
		}
	}
	return nil
}
