package upsert_slot

import (
	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
)

// Request carries one slot write. EditIndex is the position of the slot
// being edited within the date's sorted list; -1 inserts a new slot.
type Request struct {
	VenueID   string
	Date      string
	EditIndex int

	SlotID    string
	ContentID string
	StartTime string
	EndTime   string
	Capacity  int
	Grades    []string
}

// Response returns the written slot and its date.
type Response struct {
	Date string      `json:"date"`
	Slot domain.Slot `json:"slot"`
}

// ConflictDetail describes the slot that blocked the write.
type ConflictDetail struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	ContentID string `json:"contentId"`
}
