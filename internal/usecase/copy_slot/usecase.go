package copy_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

// Request copies one slot onto one or more target dates.
type Request struct {
	VenueID     string
	SourceDate  string
	SlotID      string
	TargetDates []string
}

// CopiedSlot is one produced copy.
type CopiedSlot struct {
	Date string      `json:"date"`
	Slot domain.Slot `json:"slot"`
}

// Response lists every copy made.
type Response struct {
	Copies []CopiedSlot `json:"copies"`
}

// UseCase duplicates a slot across dates. Each copy gets a fresh id and
// inherits everything else from the source. The copy is all-or-nothing: a
// conflict on any target date writes none of them.
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

// Execute copies the source slot to every target date.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CopySlot: venue=%s source=%s slot=%s targets=%d",
		req.VenueID, req.SourceDate, req.SlotID, len(req.TargetDates))

	if req.VenueID == "" || req.SlotID == "" {
		uc.logger.Warn("CopySlot: missing venue or slot id")
		return nil, fmt.Errorf("%w: venueId and slotId are required", ErrInvalidInput)
	}
	if len(req.TargetDates) == 0 {
		uc.logger.Warn("CopySlot: no target dates")
		return nil, fmt.Errorf("%w: at least one target date is required", ErrInvalidInput)
	}

	sourceDate, err := types.NewDateStringFromString(req.SourceDate)
	if err != nil {
		uc.logger.Warn("CopySlot: invalid source date %q: %v", req.SourceDate, err)
		return nil, fmt.Errorf("%w: sourceDate: %v", ErrInvalidInput, err)
	}
	targets := make([]types.DateString, 0, len(req.TargetDates))
	for _, raw := range req.TargetDates {
		target, err := types.NewDateStringFromString(raw)
		if err != nil {
			uc.logger.Warn("CopySlot: invalid target date %q: %v", raw, err)
			return nil, fmt.Errorf("%w: targetDate %q: %v", ErrInvalidInput, raw, err)
		}
		targets = append(targets, target)
	}

	var copies []CopiedSlot
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		copies = copies[:0]

		doc, err := uc.scheduleRepo.Get(ctx, req.VenueID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("%w: load schedule: %v", ErrInternal, err)
		}

		source, _, err := doc.Schedule.FindSlot(sourceDate, req.SlotID)
		if err != nil {
			return ErrSlotNotFound
		}

		for _, target := range targets {
			copied := source
			copied.ID = uuid.NewString()

			if err := doc.Schedule.UpsertSlot(target, copied, -1); err != nil {
				var conflict *domain.ConflictError
				if errors.As(err, &conflict) {
					uc.logger.Warn("CopySlot: venue=%s target=%s %s-%s overlaps %s-%s",
						req.VenueID, target, copied.StartTime, copied.EndTime,
						conflict.Existing.StartTime, conflict.Existing.EndTime)
					return fmt.Errorf("%w: %v", ErrSlotConflict, err)
				}
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			copies = append(copies, CopiedSlot{Date: string(target), Slot: copied})
		}

		for _, target := range targets {
			if err := uc.scheduleRepo.MergeDate(ctx, req.VenueID, target, doc.Schedule.SlotsOn(target)); err != nil {
				return fmt.Errorf("%w: merge date %s: %v", ErrInternal, target, err)
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrVenueNotFound), errors.Is(err, ErrSlotNotFound),
			errors.Is(err, ErrSlotConflict), errors.Is(err, ErrInvalidInput):
		default:
			uc.logger.Error("CopySlot: venue=%s slot=%s: %v", req.VenueID, req.SlotID, err)
		}
		return nil, err
	}

	uc.logger.Info("CopySlot: venue=%s slot=%s copied to %d dates", req.VenueID, req.SlotID, len(copies))
	return &Response{Copies: copies}, nil
}
