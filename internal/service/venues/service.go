package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	venueRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/venue"
	"github.com/nishigaki-sys/school-booking-v2/internal/service/venues/models"
)

// Service manages the venue registry and each venue's schedule document.
type Service struct {
	venues       VenueRepository
	schedules    ScheduleRepository
	reservations ReservationRepository
	accessEvents AccessEventRepository
	txManager    TransactionManager
	logger       Logger
}

func NewService(
	venues VenueRepository,
	schedules ScheduleRepository,
	reservations ReservationRepository,
	accessEvents AccessEventRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		venues:       venues,
		schedules:    schedules,
		reservations: reservations,
		accessEvents: accessEvents,
		txManager:    txManager,
		logger:       logger,
	}
}

// List returns all venues.
func (s *Service) List(ctx context.Context) (*models.VenueListResponse, error) {
	list, err := s.venues.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainVenueList(list), nil
}

// Get reads one venue.
func (s *Service) Get(ctx context.Context, id string) (*models.VenueResponse, error) {
	v, err := s.venues.Get(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("Get: venue id=%s not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("Get: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainVenue(v), nil
}

// Create registers a venue and seeds its empty schedule document in the
// same transaction.
func (s *Service) Create(ctx context.Context, req *models.CreateVenueRequest) (*models.VenueResponse, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	venue := &domain.Venue{ID: id, Name: strings.TrimSpace(req.Name)}

	s.logger.Info("Create: registering venue id=%s name=%s", venue.ID, venue.Name)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.venues.Get(ctx, venue.ID); err == nil {
			return ErrVenueExists
		} else if !errors.Is(err, venueRepo.ErrVenueNotFound) {
			return fmt.Errorf("%w: Create - check venue: %v", ErrInternal, err)
		}

		if err := s.venues.Save(ctx, venue); err != nil {
			return fmt.Errorf("%w: Create - save venue: %v", ErrInternal, err)
		}
		doc := domain.NewScheduleDocument(venue.ID, venue.Name)
		if err := s.schedules.Replace(ctx, doc); err != nil {
			return fmt.Errorf("%w: Create - seed schedule document: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVenueExists) {
			s.logger.Warn("Create: venue id=%s already exists", venue.ID)
		} else {
			s.logger.Error("Create: venue id=%s: %v", venue.ID, err)
		}
		return nil, err
	}

	s.logger.Info("Create: venue id=%s registered", venue.ID)
	return models.FromDomainVenue(venue), nil
}

// Update renames a venue and propagates the name into its schedule document.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateVenueRequest) (*models.VenueResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.logger.Warn("Update: empty name for venue id=%s", id)
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	s.logger.Info("Update: renaming venue id=%s to %q", id, name)

	venue := &domain.Venue{ID: id, Name: name}
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.venues.Get(ctx, id); err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("%w: Update - check venue: %v", ErrInternal, err)
		}
		if err := s.venues.Save(ctx, venue); err != nil {
			return fmt.Errorf("%w: Update - save venue: %v", ErrInternal, err)
		}

		doc, err := s.schedules.Get(ctx, id)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				doc = domain.NewScheduleDocument(id, name)
			} else {
				return fmt.Errorf("%w: Update - load schedule document: %v", ErrInternal, err)
			}
		}
		doc.VenueName = name
		if err := s.schedules.Replace(ctx, doc); err != nil {
			return fmt.Errorf("%w: Update - save schedule document: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			s.logger.Warn("Update: venue id=%s not found", id)
		} else {
			s.logger.Error("Update: venue id=%s: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Update: venue id=%s renamed", id)
	return models.FromDomainVenue(venue), nil
}

// UpdatePageSettings edits the public page metadata on the schedule document.
func (s *Service) UpdatePageSettings(ctx context.Context, id string, req *models.PageSettingsRequest) error {
	s.logger.Info("UpdatePageSettings: venue id=%s", id)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		doc, err := s.schedules.Get(ctx, id)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("%w: UpdatePageSettings - load schedule document: %v", ErrInternal, err)
		}

		if req.Address != nil {
			doc.Address = *req.Address
		}
		if req.PhoneNumber != nil {
			doc.PhoneNumber = *req.PhoneNumber
		}
		if req.PageTitle != nil {
			doc.PageTitle = *req.PageTitle
		}
		if req.PageDescription != nil {
			doc.PageDescription = *req.PageDescription
		}
		if req.HeaderImageURL != nil {
			doc.HeaderImageURL = *req.HeaderImageURL
		}

		if err := s.schedules.Replace(ctx, doc); err != nil {
			return fmt.Errorf("%w: UpdatePageSettings - save schedule document: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			s.logger.Warn("UpdatePageSettings: venue id=%s not found", id)
		} else {
			s.logger.Error("UpdatePageSettings: venue id=%s: %v", id, err)
		}
		return err
	}

	s.logger.Info("UpdatePageSettings: venue id=%s updated", id)
	return nil
}

// GetScheduleDocument returns the venue's full public document.
func (s *Service) GetScheduleDocument(ctx context.Context, id string) (*domain.ScheduleDocument, error) {
	doc, err := s.schedules.Get(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetScheduleDocument: venue id=%s not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetScheduleDocument: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetScheduleDocument - repository error: %v", ErrInternal, err)
	}
	return doc, nil
}

// Delete removes a venue and everything hanging off it: the schedule
// document, all reservations and the access event log, in one transaction.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: removing venue id=%s with all dependent data", id)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.venues.Delete(ctx, id); err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("%w: Delete - delete venue: %v", ErrInternal, err)
		}
		if err := s.schedules.Delete(ctx, id); err != nil {
			return fmt.Errorf("%w: Delete - delete schedule document: %v", ErrInternal, err)
		}
		if err := s.reservations.DeleteByVenue(ctx, id); err != nil {
			return fmt.Errorf("%w: Delete - delete reservations: %v", ErrInternal, err)
		}
		if err := s.accessEvents.DeleteByVenue(ctx, id); err != nil {
			return fmt.Errorf("%w: Delete - delete access events: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			s.logger.Warn("Delete: venue id=%s not found", id)
		} else {
			s.logger.Error("Delete: venue id=%s: %v", id, err)
		}
		return err
	}

	s.logger.Info("Delete: venue id=%s removed", id)
	return nil
}
