package remove_slot

import (
	"context"

	removeSlot "github.com/nishigaki-sys/school-booking-v2/internal/usecase/remove_slot"
)

// RemoveSlotUseCase is the use case contract.
type RemoveSlotUseCase interface {
	Execute(ctx context.Context, req *removeSlot.Request) (*removeSlot.Response, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
