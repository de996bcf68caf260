package copy_slot

import (
	"context"

	copySlot "github.com/nishigaki-sys/school-booking-v2/internal/usecase/copy_slot"
)

// CopySlotUseCase is the use case contract.
type CopySlotUseCase interface {
	Execute(ctx context.Context, req *copySlot.Request) (*copySlot.Response, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
