package upsert_slot

import (
	"context"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

// ScheduleRepository is the schedule document contract.
type ScheduleRepository interface {
	Get(ctx context.Context, venueID string) (*domain.ScheduleDocument, error)
	MergeDate(ctx context.Context, venueID string, date types.DateString, slots []domain.Slot) error
}

// TransactionManager serializes the read-check-write of a slot edit.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
