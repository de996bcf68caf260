package models

import (
	"fmt"
	"time"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

// CreateReservationRequest carries a new reservation. Source distinguishes
// staff entries from self-service web bookings; the UTM fields only arrive
// on web bookings.
type CreateReservationRequest struct {
	VenueID   string `json:"venueId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	ContentID string `json:"contentId"`

	ChildName    string `json:"childName"`
	GuardianName string `json:"guardianName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Grade        string `json:"grade"`

	Source      string `json:"source"`
	UTMSource   string `json:"utmSource,omitempty"`
	UTMMedium   string `json:"utmMedium,omitempty"`
	UTMCampaign string `json:"utmCampaign,omitempty"`
}

// Validate checks the request and converts it to a domain reservation.
// The id, venue name and course name are filled in by the service.
func (r *CreateReservationRequest) ToDomain() (*domain.Reservation, error) {
	if r.VenueID == "" {
		return nil, fmt.Errorf("venueId is required")
	}
	date, err := types.NewDateStringFromString(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %v", err)
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %v", err)
	}
	if r.ContentID == "" {
		return nil, fmt.Errorf("contentId is required")
	}
	if r.ChildName == "" || r.GuardianName == "" {
		return nil, fmt.Errorf("childName and guardianName are required")
	}
	grade := domain.Grade(r.Grade)
	if !grade.Valid() {
		return nil, fmt.Errorf("unknown grade %q", r.Grade)
	}
	source := domain.SourceType(r.Source)
	if !source.Valid() {
		return nil, fmt.Errorf("unknown source %q", r.Source)
	}

	return &domain.Reservation{
		VenueID:      r.VenueID,
		Date:         date,
		StartTime:    startTime,
		ContentID:    r.ContentID,
		ChildName:    r.ChildName,
		GuardianName: r.GuardianName,
		Email:        r.Email,
		Phone:        r.Phone,
		Grade:        grade,
		SourceType:   source,
		UTMSource:    r.UTMSource,
		UTMMedium:    r.UTMMedium,
		UTMCampaign:  r.UTMCampaign,
	}, nil
}

// SlotRef names a slot occurrence for a reservation move.
type SlotRef struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	ContentID string `json:"contentId"`
}

// UpdateReservationRequest carries a partial reservation update. Nil fields
// stay unchanged; MoveTo reassigns the reservation to another slot.
type UpdateReservationRequest struct {
	ChildName    *string  `json:"childName,omitempty"`
	GuardianName *string  `json:"guardianName,omitempty"`
	Email        *string  `json:"email,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	MoveTo       *SlotRef `json:"moveTo,omitempty"`
}

// ListReservationsRequest filters the reservation list. DateField selects
// whether the date range applies to the event date or the booking date.
type ListReservationsRequest struct {
	VenueID   *string
	StartDate *string
	EndDate   *string
	DateField string
	ContentID *string
	Source    *string
}

// ToDomainFilter validates and converts the list request.
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	var filter domain.ReservationFilter
	filter.VenueID = r.VenueID
	filter.ContentID = r.ContentID

	if (r.StartDate == nil) != (r.EndDate == nil) {
		return filter, fmt.Errorf("startDate and endDate must be given together")
	}
	if r.StartDate != nil {
		start, err := types.NewDateStringFromString(*r.StartDate)
		if err != nil {
			return filter, fmt.Errorf("startDate: %v", err)
		}
		end, err := types.NewDateStringFromString(*r.EndDate)
		if err != nil {
			return filter, fmt.Errorf("endDate: %v", err)
		}
		if end.Before(start) {
			return filter, fmt.Errorf("endDate is before startDate")
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	mode := domain.DateFieldMode(r.DateField)
	if r.DateField == "" {
		mode = domain.DateFieldEvent
	}
	if !mode.Valid() {
		return filter, fmt.Errorf("unknown dateField %q", r.DateField)
	}
	filter.DateField = mode

	if r.Source != nil {
		source := domain.SourceType(*r.Source)
		if !source.Valid() {
			return filter, fmt.Errorf("unknown source %q", *r.Source)
		}
		filter.SourceType = &source
	}

	return filter, nil
}

// ReservationResponse is the API shape of a reservation.
type ReservationResponse struct {
	ID           string `json:"id"`
	VenueID      string `json:"venueId"`
	VenueName    string `json:"venueName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	ContentID    string `json:"contentId"`
	CourseName   string `json:"courseName"`
	ChildName    string `json:"childName"`
	GuardianName string `json:"guardianName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Grade        string `json:"grade"`
	Source       string `json:"source"`
	Acquisition  string `json:"acquisition"`
	UTMSource    string `json:"utmSource,omitempty"`
	UTMMedium    string `json:"utmMedium,omitempty"`
	UTMCampaign  string `json:"utmCampaign,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

// FromDomainReservation converts a domain reservation to its API shape.
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:           r.ID,
		VenueID:      r.VenueID,
		VenueName:    r.VenueName,
		Date:         string(r.Date),
		StartTime:    string(r.StartTime),
		ContentID:    r.ContentID,
		CourseName:   r.CourseName,
		ChildName:    r.ChildName,
		GuardianName: r.GuardianName,
		Email:        r.Email,
		Phone:        r.Phone,
		Grade:        string(r.Grade),
		Source:       string(r.SourceType),
		Acquisition:  r.AcquisitionLabel(),
		UTMSource:    r.UTMSource,
		UTMMedium:    r.UTMMedium,
		UTMCampaign:  r.UTMCampaign,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}

// ReservationListResponse wraps a reservation list.
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservationList converts a reservation slice.
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: out, Total: len(out)}
}

// AvailabilityResponse is the capacity ledger readout for one slot
// occurrence. Booked may exceed Capacity; Remaining never goes below zero.
type AvailabilityResponse struct {
	Capacity  int `json:"capacity"`
	Booked    int `json:"booked"`
	Remaining int `json:"remaining"`
}
