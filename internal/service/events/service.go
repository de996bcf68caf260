package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	scheduleRepo "github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/schedule"
)

// Service records visitor funnel events from the public booking pages.
type Service struct {
	events    AccessEventRepository
	schedules ScheduleRepository
	logger    Logger
}

func NewService(events AccessEventRepository, schedules ScheduleRepository, logger Logger) *Service {
	return &Service{events: events, schedules: schedules, logger: logger}
}

// Record appends a funnel event for a venue.
func (s *Service) Record(ctx context.Context, venueID string, kind domain.EventKind) error {
	if !kind.Valid() {
		s.logger.Warn("Record: unknown event kind %q for venue=%s", kind, venueID)
		return fmt.Errorf("%w: unknown event kind %q", ErrInvalidInput, kind)
	}

	if _, err := s.schedules.Get(ctx, venueID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Record: venue=%s not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("Record: load schedule for venue=%s: %v", venueID, err)
		return fmt.Errorf("%w: Record - load schedule: %v", ErrInternal, err)
	}

	if _, err := s.events.Append(ctx, venueID, kind); err != nil {
		s.logger.Error("Record: repository error for venue=%s kind=%s: %v", venueID, kind, err)
		return fmt.Errorf("%w: Record - repository error: %v", ErrInternal, err)
	}
	return nil
}

// FunnelCounts returns the per-stage event counts for a venue, zero-filled
// over every funnel stage. Zero from/to means no time bound.
func (s *Service) FunnelCounts(ctx context.Context, venueID string, from, to time.Time) (map[domain.EventKind]int, error) {
	counts, err := s.events.CountByKind(ctx, venueID, from, to)
	if err != nil {
		s.logger.Error("FunnelCounts: repository error for venue=%s: %v", venueID, err)
		return nil, fmt.Errorf("%w: FunnelCounts - repository error: %v", ErrInternal, err)
	}

	filled := make(map[domain.EventKind]int, len(domain.FunnelStages))
	for _, stage := range domain.FunnelStages {
		filled[stage] = counts[stage]
	}
	return filled, nil
}
