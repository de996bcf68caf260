package upsert_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
)

// UseCase writes one slot onto a venue's schedule. Insert and edit share
// the same path; only the touched date is written back to storage.
type UseCase struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

func NewUseCase(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute validates the slot, checks it against the date's existing slots
// and merges the date back. The whole read-check-write runs serializable so
// two concurrent edits cannot both pass the overlap check.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpsertSlot: venue=%s date=%s time=%s-%s content=%s editIndex=%d",
		req.VenueID, req.Date, req.StartTime, req.EndTime, req.ContentID, req.EditIndex)

	date, slot, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpsertSlot: validation failed: %v", err)
		return nil, err
	}

	var written domain.Slot
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		doc, err := uc.scheduleRepo.Get(ctx, req.VenueID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("%w: load schedule: %v", ErrInternal, err)
		}

		if _, ok := domain.FindContent(doc.Contents, slot.ContentID); !ok {
			return ErrContentNotFound
		}

		if req.EditIndex >= 0 {
			slots := doc.Schedule.SlotsOn(date)
			if req.EditIndex >= len(slots) {
				return ErrSlotNotFound
			}
			slot.ID = slots[req.EditIndex].ID
		} else if slot.ID == "" {
			slot.ID = uuid.NewString()
		}

		if err := doc.Schedule.UpsertSlot(date, slot, req.EditIndex); err != nil {
			var conflict *domain.ConflictError
			if errors.As(err, &conflict) {
				uc.logger.Warn("UpsertSlot: venue=%s date=%s %s-%s overlaps %s-%s",
					req.VenueID, date, slot.StartTime, slot.EndTime,
					conflict.Existing.StartTime, conflict.Existing.EndTime)
				return fmt.Errorf("%w: %v", ErrSlotConflict, err)
			}
			if errors.Is(err, domain.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		written, _, err = doc.Schedule.FindSlot(date, slot.ID)
		if err != nil {
			return fmt.Errorf("%w: locate written slot: %v", ErrInternal, err)
		}

		if err := uc.scheduleRepo.MergeDate(ctx, req.VenueID, date, doc.Schedule.SlotsOn(date)); err != nil {
			return fmt.Errorf("%w: merge date: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrVenueNotFound), errors.Is(err, ErrContentNotFound),
			errors.Is(err, ErrSlotConflict), errors.Is(err, ErrSlotNotFound),
			errors.Is(err, ErrInvalidInput):
		default:
			uc.logger.Error("UpsertSlot: venue=%s date=%s: %v", req.VenueID, req.Date, err)
		}
		return nil, err
	}

	uc.logger.Info("UpsertSlot: venue=%s date=%s slot=%s written", req.VenueID, date, written.ID)
	return &Response{Date: string(date), Slot: written}, nil
}
