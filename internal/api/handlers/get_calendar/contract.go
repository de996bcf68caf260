package get_calendar

import (
	"context"

	getCalendar "github.com/nishigaki-sys/school-booking-v2/internal/usecase/get_calendar"
)

// GetCalendarUseCase is the use case contract.
type GetCalendarUseCase interface {
	Execute(ctx context.Context, req *getCalendar.Request) (*getCalendar.Response, error)
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
