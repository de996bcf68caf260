package domain

import "errors"

// ContentCategory tags a catalog item as a one-off event or a trial lesson.
type ContentCategory string

const (
	CategoryEvent      ContentCategory = "event"
	CategoryExperience ContentCategory = "experience"
)

// Valid reports whether c is one of the known categories.
func (c ContentCategory) Valid() bool {
	switch c {
	case CategoryEvent, CategoryExperience:
		return true
	}
	return false
}

var (
	// ErrInvalidContent is returned for a catalog item missing its required
	// fields or carrying a negative price.
	ErrInvalidContent = errors.New("domain: content name is required and price must be non-negative")

	// ErrDuplicateContentID is returned when a catalog already holds the id.
	ErrDuplicateContentID = errors.New("domain: content id already exists")

	// ErrContentNotFound is returned when a content id is absent.
	ErrContentNotFound = errors.New("domain: content not found")
)

// ContentItem is a bookable product in a catalog, either venue-local or in
// the shared cross-venue catalog. Price is in yen (smallest currency unit).
// Venue catalogs import shared items by value; there is no live link back.
type ContentItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    ContentCategory `json:"type"`
	Price       int             `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Description string          `json:"description,omitempty"`
	Duration    string          `json:"duration,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// Validate checks the item's required fields.
func (c ContentItem) Validate() error {
	if c.Name == "" || c.Price < 0 {
		return ErrInvalidContent
	}
	if !c.Category.Valid() {
		return ErrInvalidContent
	}
	return nil
}

// FindContent locates an item by id in a catalog slice.
func FindContent(catalog []ContentItem, id string) (ContentItem, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return ContentItem{}, false
}
