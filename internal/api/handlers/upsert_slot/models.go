package upsert_slot

import (
	upsertSlot "github.com/nishigaki-sys/school-booking-v2/internal/usecase/upsert_slot"
)

// UpsertSlotRequest is the HTTP body of a slot write. EditIndex defaults to
// -1, an insert.
type UpsertSlotRequest struct {
	EditIndex *int     `json:"editIndex,omitempty"`
	SlotID    string   `json:"slotId,omitempty"`
	ContentID string   `json:"contentId"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Capacity  int      `json:"capacity"`
	Grades    []string `json:"grades"`
}

// ToUseCaseRequest combines the body with the route's venue and date.
func (r *UpsertSlotRequest) ToUseCaseRequest(venueID, date string) *upsertSlot.Request {
	editIndex := -1
	if r.EditIndex != nil {
		editIndex = *r.EditIndex
	}
	return &upsertSlot.Request{
		VenueID:   venueID,
		Date:      date,
		EditIndex: editIndex,
		SlotID:    r.SlotID,
		ContentID: r.ContentID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Capacity:  r.Capacity,
		Grades:    r.Grades,
	}
}
