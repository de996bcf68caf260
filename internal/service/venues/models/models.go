package models

import (
	"fmt"
	"strings"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
)

// CreateVenueRequest registers a new venue. The id becomes the venue's
// public URL key; when empty it is derived from the name.
type CreateVenueRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

func (r *CreateVenueRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// UpdateVenueRequest renames a venue. The rename propagates into the
// venue's schedule document.
type UpdateVenueRequest struct {
	Name string `json:"name"`
}

// PageSettingsRequest updates the public page metadata on the venue's
// schedule document.
type PageSettingsRequest struct {
	Address         *string `json:"address,omitempty"`
	PhoneNumber     *string `json:"phoneNumber,omitempty"`
	PageTitle       *string `json:"pageTitle,omitempty"`
	PageDescription *string `json:"pageDescription,omitempty"`
	HeaderImageURL  *string `json:"headerImageUrl,omitempty"`
}

// VenueResponse is the API shape of a venue.
type VenueResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func FromDomainVenue(v *domain.Venue) *VenueResponse {
	return &VenueResponse{ID: v.ID, Name: v.Name}
}

// VenueListResponse wraps a venue list.
type VenueListResponse struct {
	Venues []*VenueResponse `json:"venues"`
	Total  int              `json:"total"`
}

func FromDomainVenueList(list []*domain.Venue) *VenueListResponse {
	out := make([]*VenueResponse, 0, len(list))
	for _, v := range list {
		out = append(out, FromDomainVenue(v))
	}
	return &VenueListResponse{Venues: out, Total: len(out)}
}
