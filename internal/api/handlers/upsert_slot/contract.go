package upsert_slot

import (
	"context"

	upsertSlot "github.com/nishigaki-sys/school-booking-v2/internal/usecase/upsert_slot"
)

// UpsertSlotUseCase is the use case contract.
type UpsertSlotUseCase interface {
	Execute(ctx context.Context, req *upsertSlot.Request) (*upsertSlot.Response, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
