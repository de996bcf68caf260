package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	reservationRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/reservation"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	"github.com/nishigaki-sys/school-booking-v2/internal/service/reservations/models"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

// Service manages reservations and the per-slot capacity ledger.
type Service struct {
	reservations ReservationRepository
	schedules    ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

func NewService(
	reservations ReservationRepository,
	schedules ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservations: reservations,
		schedules:    schedules,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create records a reservation against an existing slot. The venue name and
// course name are snapshotted onto the row so admin lists survive later
// schedule edits. Capacity is advisory: an over-capacity booking is logged
// and accepted.
func (s *Service) Create(ctx context.Context, req *models.CreateReservationRequest) (*models.ReservationResponse, error) {
	res, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Create: invalid request for venue=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("Create: booking venue=%s date=%s time=%s content=%s source=%s",
		res.VenueID, res.Date, res.StartTime, res.ContentID, res.SourceType)

	var created *domain.Reservation
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		doc, err := s.schedules.Get(ctx, res.VenueID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("%w: Create - load schedule: %v", ErrInternal, err)
		}

		slot, ok := findSlot(doc, res.Date, res.StartTime, res.ContentID)
		if !ok {
			return ErrSlotNotFound
		}

		res.ID = uuid.NewString()
		res.VenueName = doc.VenueName
		if content, ok := domain.FindContent(doc.Contents, res.ContentID); ok {
			res.CourseName = content.Name
		}

		booked, err := s.reservations.CountByKey(ctx, res.Key())
		if err != nil {
			return fmt.Errorf("%w: Create - count bookings: %v", ErrInternal, err)
		}
		if booked >= slot.Capacity {
			s.logger.Warn("Create: slot venue=%s date=%s time=%s content=%s over capacity (%d/%d), accepting anyway",
				res.VenueID, res.Date, res.StartTime, res.ContentID, booked+1, slot.Capacity)
		}

		created, err = s.reservations.Create(ctx, res)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) || errors.Is(err, ErrSlotNotFound) {
			s.logger.Warn("Create: venue=%s date=%s time=%s content=%s: %v",
				res.VenueID, res.Date, res.StartTime, res.ContentID, err)
		} else {
			s.logger.Error("Create: venue=%s: %v", res.VenueID, err)
		}
		return nil, err
	}

	s.logger.Info("Create: reservation id=%s created for venue=%s", created.ID, created.VenueID)
	return models.FromDomainReservation(created), nil
}

// GetByID reads one reservation.
func (s *Service) GetByID(ctx context.Context, id string) (*models.ReservationResponse, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainReservation(res), nil
}

// Update applies a partial update. A slot move re-validates the target slot
// and refreshes the course-name snapshot.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Update: updating reservation id=%s", id)

	fields := reservationRepo.UpdateFields{
		ChildName:    req.ChildName,
		GuardianName: req.GuardianName,
		Email:        req.Email,
		Phone:        req.Phone,
	}

	var updated *domain.Reservation
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if req.MoveTo != nil {
			current, err := s.reservations.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, reservationRepo.ErrReservationNotFound) {
					return ErrReservationNotFound
				}
				return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
			}

			move, err := s.resolveMove(ctx, current.VenueID, req.MoveTo)
			if err != nil {
				return err
			}
			fields.MoveTo = move
		}

		var err error
		updated, err = s.reservations.Update(ctx, id, fields)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) || errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("Update: reservation id=%s: %v", id, err)
		} else {
			s.logger.Error("Update: reservation id=%s: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Update: reservation id=%s updated", id)
	return models.FromDomainReservation(updated), nil
}

// Delete cancels a reservation.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: cancelling reservation id=%s", id)

	if err := s.reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%s not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: reservation id=%s cancelled", id)
	return nil
}

// List returns reservations matching the filter.
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.reservations.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(list), nil
}

// Availability reads the capacity ledger for one slot occurrence. Remaining
// is clamped at zero when the slot is overbooked.
func (s *Service) Availability(ctx context.Context, venueID string, date types.DateString, slot domain.Slot) (*models.AvailabilityResponse, error) {
	booked, err := s.reservations.CountByKey(ctx, slot.KeyOn(venueID, date))
	if err != nil {
		s.logger.Error("Availability: repository error for venue=%s date=%s: %v", venueID, date, err)
		return nil, fmt.Errorf("%w: Availability - repository error: %v", ErrInternal, err)
	}

	remaining := slot.Capacity - booked
	if remaining < 0 {
		remaining = 0
	}
	return &models.AvailabilityResponse{
		Capacity:  slot.Capacity,
		Booked:    booked,
		Remaining: remaining,
	}, nil
}

// BookedCount returns the raw booked count for one slot occurrence.
func (s *Service) BookedCount(ctx context.Context, key domain.SlotKey) (int, error) {
	booked, err := s.reservations.CountByKey(ctx, key)
	if err != nil {
		s.logger.Error("BookedCount: repository error for venue=%s date=%s: %v", key.VenueID, key.Date, err)
		return 0, fmt.Errorf("%w: BookedCount - repository error: %v", ErrInternal, err)
	}
	return booked, nil
}

func (s *Service) resolveMove(ctx context.Context, venueID string, ref *models.SlotRef) (*reservationRepo.SlotMove, error) {
	date, err := types.NewDateStringFromString(ref.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: moveTo.date: %v", ErrInvalidInput, err)
	}
	startTime, err := types.NewTimeStringFromString(ref.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: moveTo.startTime: %v", ErrInvalidInput, err)
	}

	doc, err := s.schedules.Get(ctx, venueID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("%w: resolveMove - load schedule: %v", ErrInternal, err)
	}

	if _, ok := findSlot(doc, date, startTime, ref.ContentID); !ok {
		return nil, ErrSlotNotFound
	}

	courseName := ""
	if content, ok := domain.FindContent(doc.Contents, ref.ContentID); ok {
		courseName = content.Name
	}

	return &reservationRepo.SlotMove{
		Date:       date,
		StartTime:  startTime,
		ContentID:  ref.ContentID,
		CourseName: courseName,
	}, nil
}

func findSlot(doc *domain.ScheduleDocument, date types.DateString, startTime types.TimeString, contentID string) (domain.Slot, bool) {
	for _, slot := range doc.Schedule.SlotsOn(date) {
		if slot.StartTime == startTime && slot.ContentID == contentID {
			return slot, true
		}
	}
	return domain.Slot{}, false
}
