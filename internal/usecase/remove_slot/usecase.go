package remove_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

// Request names the slot occurrence to remove.
type Request struct {
	VenueID string
	Date    string
	SlotID  string
}

// Response returns the removed slot and how many reservations existed.
type Response struct {
	Date string      `json:"date"`
	Slot domain.Slot `json:"slot"`
}

// UseCase removes one slot from a venue's schedule. Slots with active
// reservations are never removed; those bookings point at the slot tuple
// and would be orphaned.
type UseCase struct {
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

func NewUseCase(
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute removes the slot after checking no reservation still targets it.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RemoveSlot: venue=%s date=%s slot=%s", req.VenueID, req.Date, req.SlotID)

	if req.VenueID == "" || req.SlotID == "" {
		uc.logger.Warn("RemoveSlot: missing venue or slot id")
		return nil, fmt.Errorf("%w: venueId and slotId are required", ErrInvalidInput)
	}
	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		uc.logger.Warn("RemoveSlot: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}

	var removed domain.Slot
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		doc, err := uc.scheduleRepo.Get(ctx, req.VenueID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("%w: load schedule: %v", ErrInternal, err)
		}

		slot, _, err := doc.Schedule.FindSlot(date, req.SlotID)
		if err != nil {
			return ErrSlotNotFound
		}

		booked, err := uc.reservationRepo.CountByKey(ctx, slot.KeyOn(req.VenueID, date))
		if err != nil {
			return fmt.Errorf("%w: count reservations: %v", ErrInternal, err)
		}
		if booked > 0 {
			uc.logger.Warn("RemoveSlot: venue=%s date=%s slot=%s blocked by %d reservations",
				req.VenueID, date, req.SlotID, booked)
			return fmt.Errorf("%w: %d active", ErrSlotHasReservations, booked)
		}

		removed, err = doc.Schedule.RemoveSlot(date, req.SlotID)
		if err != nil {
			return ErrSlotNotFound
		}

		if err := uc.scheduleRepo.MergeDate(ctx, req.VenueID, date, doc.Schedule.SlotsOn(date)); err != nil {
			return fmt.Errorf("%w: merge date: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrVenueNotFound), errors.Is(err, ErrSlotNotFound),
			errors.Is(err, ErrSlotHasReservations):
		default:
			uc.logger.Error("RemoveSlot: venue=%s date=%s slot=%s: %v", req.VenueID, req.Date, req.SlotID, err)
		}
		return nil, err
	}

	uc.logger.Info("RemoveSlot: venue=%s date=%s slot=%s removed", req.VenueID, date, req.SlotID)
	return &Response{Date: string(date), Slot: removed}, nil
}
